package cost

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/costs"
	"github.com/clampline/tenantctl/pkg/interact"
	"github.com/clampline/tenantctl/pkg/report"
	"github.com/clampline/tenantctl/pkg/types"
)

func reportModule(records []costs.Record, opts map[string]string) *Report {
	declared := options.CreateDeepCopyOfOptions(ReportOptions)
	declared = append(declared, options.CreateDeepCopyOfOptions([]*types.Option{&options.OutputOpt})...)
	for name, value := range opts {
		if opt := types.GetOptionByName(name, declared); opt != nil {
			opt.Value = value
		}
	}
	m := NewReport(nil, declared)
	m.Prompter = &interact.Prompter{Interactive: false}
	m.Fetch = func(ctx context.Context, from, to time.Time) ([]costs.Record, error) {
		return records, nil
	}
	return m
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func sampleRecords() []costs.Record {
	return []costs.Record{
		{Date: day("2025-01-01"), ResourceGroup: "rg1", Service: "vm", Cost: 10.004, Currency: "USD"},
		{Date: day("2025-01-01"), ResourceGroup: "rg1", Service: "disk", Cost: 5.001, Currency: "USD"},
		{Date: day("2025-01-01"), ResourceGroup: "rg2", Service: "vm", Cost: 3.00, Currency: "USD"},
	}
}

func TestReportRestrictsToAllowedResourceGroups(t *testing.T) {
	m := reportModule(sampleRecords(), map[string]string{
		"subscription":    "00000000-0000-0000-0000-000000000000",
		"from":            "2025-01-01",
		"to":              "2025-01-31",
		"resource-groups": "rg1",
	})

	require.NoError(t, m.Invoke())

	result := <-m.Run.Data
	costReport := result.Data.(report.CostReport)

	require.Len(t, costReport.ByGroup.Groups, 1)
	assert.Equal(t, "rg1", costReport.ByGroup.Groups[0].Key)
	assert.InDelta(t, 15.005, costReport.ByGroup.GrandTotal, 1e-9)
	assert.Equal(t, 100.0, costReport.ByGroup.Groups[0].Percent)

	// secondary breakdowns only see the allowed groups' records
	for _, g := range costReport.ByService.Groups {
		assert.NotEqual(t, "rg2", g.Key)
	}
	total := 0.0
	for _, g := range costReport.ByService.Groups {
		total += g.Total
	}
	assert.InDelta(t, 15.005, total, 1e-9)
}

func TestReportNoMatchingData(t *testing.T) {
	m := reportModule(sampleRecords(), map[string]string{
		"subscription":    "00000000-0000-0000-0000-000000000000",
		"from":            "2025-01-01",
		"to":              "2025-01-31",
		"resource-groups": "rg-absent",
	})

	require.NoError(t, m.Invoke(), "empty match reports no data instead of failing")

	// the no-data run emits no result record
	r, ok := <-m.Run.Data
	assert.False(t, ok, "unexpected result %v", r)
}

func TestReportRejectsInvertedPeriod(t *testing.T) {
	m := reportModule(sampleRecords(), map[string]string{
		"subscription": "00000000-0000-0000-0000-000000000000",
		"from":         "2025-02-01",
		"to":           "2025-01-01",
	})
	require.Error(t, m.Invoke())
}

func TestReportPropagatesFetchFailure(t *testing.T) {
	m := reportModule(nil, map[string]string{
		"subscription": "00000000-0000-0000-0000-000000000000",
		"from":         "2025-01-01",
		"to":           "2025-01-31",
	})
	m.Fetch = func(ctx context.Context, from, to time.Time) ([]costs.Record, error) {
		return nil, errors.New("429 too many requests")
	}

	err := m.Invoke()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch cost records")
}

func TestReportExportsWhenFlagSet(t *testing.T) {
	dir := t.TempDir()
	m := reportModule(sampleRecords(), map[string]string{
		"subscription": "00000000-0000-0000-0000-000000000000",
		"from":         "2025-01-01",
		"to":           "2025-01-31",
		"export":       "true",
		"output":       dir,
	})

	require.NoError(t, m.Invoke())

	matches, err := filepath.Glob(filepath.Join(dir, "cost-report-*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1, "export flag must produce exactly one timestamped file")
}
