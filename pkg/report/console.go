// Package report renders aggregated cost summaries to the console and
// to delimited files. Section order is fixed: grand total, breakdown
// by resource group, breakdown by service, breakdown by day.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexeyco/simpletable"

	"github.com/clampline/tenantctl/pkg/costs"
)

// CostReport bundles the three aggregation views of one report run.
type CostReport struct {
	SubscriptionID string
	ByGroup        costs.Summary
	ByService      costs.Summary
	ByDate         costs.Summary
}

// NoData reports whether the run matched no records at all.
func (r CostReport) NoData() bool {
	return r.ByGroup.NoData
}

// RenderConsole writes the full report to w.
func RenderConsole(w io.Writer, r CostReport) {
	if r.NoData() {
		fmt.Fprintln(w, "no data")
		return
	}

	fmt.Fprintf(w, "Grand total: %.2f %s\n", costs.RoundCost(r.ByGroup.GrandTotal), r.ByGroup.Currency)

	fmt.Fprintln(w, "\nBy resource group:")
	fmt.Fprintln(w, summaryTable(r.ByGroup, "Resource Group"))

	fmt.Fprintln(w, "\nBy service:")
	fmt.Fprintln(w, summaryTable(r.ByService, "Service"))

	fmt.Fprintln(w, "\nBy day:")
	fmt.Fprintln(w, summaryTable(r.ByDate, "Date"))
}

func summaryTable(sum costs.Summary, keyHeader string) string {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: keyHeader},
			{Align: simpletable.AlignCenter, Text: "Cost"},
			{Align: simpletable.AlignCenter, Text: "%"},
			{Align: simpletable.AlignCenter, Text: "Records"},
			{Align: simpletable.AlignCenter, Text: "Top"},
		},
	}

	for _, g := range sum.Groups {
		r := []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: g.Key},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%.2f", costs.RoundCost(g.Total))},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%.1f", g.Percent)},
			{Align: simpletable.AlignRight, Text: strconv.Itoa(g.Count)},
			{Align: simpletable.AlignLeft, Text: topCell(g.Top)},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleCompactLite)
	return table.String()
}

func topCell(top []costs.SubEntry) string {
	out := ""
	for i, e := range top {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s (%.2f)", e.Key, costs.RoundCost(e.Cost))
	}
	return out
}
