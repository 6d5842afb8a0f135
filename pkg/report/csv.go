package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clampline/tenantctl/pkg/costs"
	"github.com/clampline/tenantctl/pkg/types"
)

// timestampLayout keeps exported files collision-free across runs.
const timestampLayout = "20060102-150405"

// ExportFilename builds "<prefix>-<timestamp>.csv".
func ExportFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, now.Format(timestampLayout))
}

// DelimitedReport flattens a report into one exportable table with a
// section column, preserving the console section order.
func DelimitedReport(r CostReport) types.DelimitedTable {
	table := types.DelimitedTable{
		Headers: []string{"section", "key", "cost", "percent", "records"},
	}
	if r.NoData() {
		return table
	}

	appendSection := func(section string, sum costs.Summary) {
		for _, g := range sum.Groups {
			table.Rows = append(table.Rows, []string{
				section,
				g.Key,
				fmt.Sprintf("%.2f", costs.RoundCost(g.Total)),
				fmt.Sprintf("%.1f", g.Percent),
				fmt.Sprintf("%d", g.Count),
			})
		}
	}

	table.Rows = append(table.Rows, []string{
		"total", "", fmt.Sprintf("%.2f", costs.RoundCost(r.ByGroup.GrandTotal)), "100.0",
		fmt.Sprintf("%d", totalCount(r.ByGroup)),
	})
	appendSection("resource-group", r.ByGroup)
	appendSection("service", r.ByService)
	appendSection("day", r.ByDate)
	return table
}

func totalCount(sum costs.Summary) int {
	n := 0
	for _, g := range sum.Groups {
		n += g.Count
	}
	return n
}

// WriteCSV persists a delimited table under dir with a timestamped
// name and returns the full path.
func WriteCSV(dir, prefix string, table types.DelimitedTable) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ExportFilename(prefix, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return "", fmt.Errorf("failed to write export rows: %w", err)
	}
	w.Flush()
	return path, w.Error()
}
