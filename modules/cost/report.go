// Package cost implements the subscription cost report: fetch usage
// records once, aggregate in memory, render to console and optionally
// export a delimited file.
package cost

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/internal/message"
	"github.com/clampline/tenantctl/modules"
	"github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/costs"
	"github.com/clampline/tenantctl/pkg/interact"
	"github.com/clampline/tenantctl/pkg/report"
	"github.com/clampline/tenantctl/pkg/types"
)

type Report struct {
	modules.BaseModule
	Session  *helpers.Session
	Prompter *interact.Prompter

	// Fetch is swappable for tests; defaults to the cost management API.
	Fetch func(ctx context.Context, from, to time.Time) ([]costs.Record, error)
}

var ReportMetadata = modules.Metadata{
	Id:          "cost-report",
	Name:        "Cost Report",
	Description: "Aggregate subscription costs by resource group, service and day",
	Platform:    types.Azure,
	References: []string{
		"https://learn.microsoft.com/en-us/rest/api/cost-management/query/usage",
	},
}

var ReportOptions = []*types.Option{
	&options.AzureSubscriptionOpt,
	&options.AzureFromOpt,
	&options.AzureToOpt,
	&options.AzureResourceGroupsOpt,
	&options.ExportOpt,
}

func NewReport(session *helpers.Session, opts []*types.Option) *Report {
	m := &Report{Session: session, Prompter: interact.NewPrompter()}
	m.Metadata = ReportMetadata
	m.Options = opts
	m.Run = modules.NewRun()
	return m
}

func (m *Report) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()
	subscription := options.Value(options.AzureSubscriptionOpt.Name, m.Options)

	from, err := time.Parse("2006-01-02", options.Value(options.AzureFromOpt.Name, m.Options))
	if err != nil {
		return fmt.Errorf("invalid from date: %w", err)
	}
	until, err := time.Parse("2006-01-02", options.Value(options.AzureToOpt.Name, m.Options))
	if err != nil {
		return fmt.Errorf("invalid to date: %w", err)
	}
	if until.Before(from) {
		return fmt.Errorf("report period ends (%s) before it starts (%s)",
			until.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	fetch := m.Fetch
	if fetch == nil {
		fetcher, err := costs.NewFetcher(m.Session.Credential, subscription)
		if err != nil {
			return err
		}
		fetch = fetcher.Fetch
	}

	message.Info("fetching costs for subscription %s (%s to %s)",
		subscription, from.Format("2006-01-02"), until.Format("2006-01-02"))

	records, err := fetch(ctx, from, until)
	if err != nil {
		return fmt.Errorf("failed to fetch cost records: %w", err)
	}

	allow := options.CSV(options.AzureResourceGroupsOpt.Name, m.Options)
	result := report.CostReport{
		SubscriptionID: subscription,
		ByGroup:        costs.Aggregate(records, costs.ByResourceGroup, costs.ByService, allow),
		ByService:      costs.Aggregate(filterByGroup(records, allow), costs.ByService, costs.ByResourceGroup, nil),
		ByDate:         costs.Aggregate(filterByGroup(records, allow), costs.ByDate, costs.ByResourceGroup, nil),
	}

	message.Section("Cost Report")
	report.RenderConsole(os.Stdout, result)

	if result.NoData() {
		message.Warning("no cost records matched the requested resource groups")
		return nil
	}

	if m.shouldExport() {
		path, err := report.WriteCSV(options.Value(options.OutputOpt.Name, m.Options), "cost-report", report.DelimitedReport(result))
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		message.Success("report exported to %s", path)
	}

	m.Run.Data <- m.MakeResult(result)
	return nil
}

// shouldExport honors the --export flag first and only then falls back
// to an interactive confirmation; headless runs without the flag never
// export.
func (m *Report) shouldExport() bool {
	if options.Bool(options.ExportOpt.Name, m.Options) {
		return true
	}
	return m.Prompter.Confirm("export report to CSV?", false)
}

func filterByGroup(records []costs.Record, allow []string) []costs.Record {
	if len(allow) == 0 {
		return records
	}
	allowed := make(map[string]bool, len(allow))
	for _, a := range allow {
		allowed[strings.ToLower(strings.TrimSpace(a))] = true
	}
	out := make([]costs.Record, 0, len(records))
	for _, r := range records {
		if allowed[strings.ToLower(r.ResourceGroup)] {
			out = append(out, r)
		}
	}
	return out
}
