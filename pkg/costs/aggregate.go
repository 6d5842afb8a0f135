package costs

import (
	"math"
	"sort"
	"strings"
)

// topNPerGroup bounds the per-group sub-ranking in a summary.
const topNPerGroup = 5

// SubEntry is one member of a group's top-N sub-ranking.
type SubEntry struct {
	Key  string
	Cost float64
}

// GroupSummary is the aggregate for one distinct group key.
type GroupSummary struct {
	Key     string
	Total   float64
	Percent float64
	Count   int
	Top     []SubEntry
}

// Summary is the result of one aggregation run. When no records match
// the allow-set, NoData is true and no totals or percentages are
// populated.
type Summary struct {
	NoData     bool
	GrandTotal float64
	Currency   string
	Groups     []GroupSummary
}

// Aggregate groups records by key and produces per-group subtotals,
// percentages of the grand total, member counts and a top-5 sub-ranking
// by cost. The allow-set restricts aggregation to the named groups,
// matched case-insensitively; a nil or empty allow-set admits every
// group. Grand total and percentages are computed from raw, unrounded
// costs; rounding happens only at display time.
//
// Groups are ordered by descending subtotal, with first-encountered
// input order breaking ties, so repeated runs over the same input are
// byte-identical.
func Aggregate(records []Record, key KeyFunc, subKey KeyFunc, allow []string) Summary {
	allowed := normalizeAllowSet(allow)

	type bucket struct {
		key      string
		order    int
		total    float64
		count    int
		subs     map[string]float64
		subOrder []string
	}

	buckets := map[string]*bucket{}
	var sequence []*bucket
	currency := ""

	for _, r := range records {
		k := key(r)
		if allowed != nil {
			if _, ok := allowed[strings.ToLower(k)]; !ok {
				continue
			}
		}
		if currency == "" {
			currency = r.Currency
		}

		b, ok := buckets[k]
		if !ok {
			b = &bucket{key: k, order: len(sequence), subs: map[string]float64{}}
			buckets[k] = b
			sequence = append(sequence, b)
		}
		b.total += r.Cost
		b.count++

		sk := subKey(r)
		if _, seen := b.subs[sk]; !seen {
			b.subOrder = append(b.subOrder, sk)
		}
		b.subs[sk] += r.Cost
	}

	if len(sequence) == 0 {
		return Summary{NoData: true}
	}

	grand := 0.0
	for _, b := range sequence {
		grand += b.total
	}

	sort.SliceStable(sequence, func(i, j int) bool {
		if sequence[i].total != sequence[j].total {
			return sequence[i].total > sequence[j].total
		}
		return sequence[i].order < sequence[j].order
	})

	out := Summary{GrandTotal: grand, Currency: currency}
	for _, b := range sequence {
		g := GroupSummary{
			Key:   b.key,
			Total: b.total,
			Count: b.count,
			Top:   topEntries(b.subs, b.subOrder),
		}
		// idle periods produce matched rows that sum to zero; percent
		// stays zero rather than dividing zero by zero
		if grand != 0 {
			g.Percent = RoundPercent(b.total / grand * 100)
		}
		out.Groups = append(out.Groups, g)
	}
	return out
}

// topEntries ranks a group's sub-keys by descending cost, input order
// breaking ties, truncated to topNPerGroup.
func topEntries(subs map[string]float64, order []string) []SubEntry {
	entries := make([]SubEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, SubEntry{Key: k, Cost: subs[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Cost > entries[j].Cost
	})
	if len(entries) > topNPerGroup {
		entries = entries[:topNPerGroup]
	}
	return entries
}

func normalizeAllowSet(allow []string) map[string]struct{} {
	if len(allow) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allow))
	for _, a := range allow {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		set[strings.ToLower(a)] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// RoundCost rounds a cost for display, two decimal places.
func RoundCost(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPercent rounds a percentage for display, one decimal place.
func RoundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}
