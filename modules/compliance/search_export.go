// Package compliance wires the generic job orchestrator to the Purview
// compliance search API: create a content search, wait for it, then
// export its results and wait for the export.
package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/internal/message"
	op "github.com/clampline/tenantctl/internal/output_providers"
	"github.com/clampline/tenantctl/modules"
	"github.com/clampline/tenantctl/modules/options"
	compliancesdk "github.com/clampline/tenantctl/pkg/compliance"
	"github.com/clampline/tenantctl/pkg/jobs"
	"github.com/clampline/tenantctl/pkg/types"
)

type SearchExport struct {
	modules.BaseModule
	Session *helpers.Session

	// Client is swappable for tests; defaults to the Purview REST client.
	Client remoteClient
}

// remoteClient is the capability surface the module needs from the
// compliance service.
type remoteClient interface {
	CreateSearch(ctx context.Context, spec jobs.Spec) (string, error)
	CreateExport(ctx context.Context, parentID string, spec jobs.Spec) (string, error)
	Status(ctx context.Context, jobID string) (jobs.Status, error)
}

var SearchExportMetadata = modules.Metadata{
	Id:          "search-export",
	Name:        "Compliance Search Export",
	Description: "Run a compliance content search and export its results",
	Platform:    types.M365,
	References: []string{
		"https://learn.microsoft.com/en-us/purview/ediscovery-content-search",
	},
}

var SearchExportOptions = []*types.Option{
	&options.ComplianceSearchNameOpt,
	&options.ComplianceQueryOpt,
	&options.ComplianceLocationsOpt,
	&options.ComplianceExportFormatOpt,
	&options.PollIntervalOpt,
	&options.MaxAttemptsOpt,
}

var SearchExportOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

func NewSearchExport(session *helpers.Session, opts []*types.Option) *SearchExport {
	m := &SearchExport{Session: session}
	m.Metadata = SearchExportMetadata
	m.Options = opts
	m.Run = modules.NewRun()
	m.ConfigureOutputProviders(SearchExportOutputProviders)
	return m
}

func (m *SearchExport) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	client := m.Client
	if client == nil {
		client = compliancesdk.NewClient(m.Session.Credential)
	}

	searchName := options.Value(options.ComplianceSearchNameOpt.Name, m.Options)
	if searchName == "" {
		searchName = "tenantctl-search-" + uuid.New().String()[:8]
	}

	poller := jobs.NewPoller(options.Int(options.MaxAttemptsOpt.Name, m.Options, 180))
	poller.Interval = time.Duration(options.Int(options.PollIntervalOpt.Name, m.Options, 10)) * time.Second
	poller.OnTick = func(tick jobs.PollResult) {
		if !tick.Status.Terminal() {
			message.Info("job %s still %s after %d checks", tick.JobID, tick.Status, tick.Attempt)
		}
	}

	orchestrator := &jobs.Orchestrator{
		Poller:          poller,
		Create:          client.CreateSearch,
		CreateDependent: client.CreateExport,
		Status:          client.Status,
	}

	primary := jobs.Spec{
		Name: searchName,
		Parameters: map[string]string{
			"query":     options.Value(options.ComplianceQueryOpt.Name, m.Options),
			"locations": options.Value(options.ComplianceLocationsOpt.Name, m.Options),
		},
	}
	dependent := jobs.Spec{
		Name: searchName + "-export",
		Parameters: map[string]string{
			"format": options.Value(options.ComplianceExportFormatOpt.Name, m.Options),
		},
	}

	message.Info("starting compliance search %s", searchName)
	outcome, err := orchestrator.Run(ctx, primary, dependent)
	m.Run.Data <- m.MakeResult(outcome, types.WithFilename(searchName+".json"))

	if err != nil {
		return fmt.Errorf("compliance search sequence failed at the %s stage: %w", outcome.FailedStage, err)
	}

	message.Success("search %s and export %s completed", outcome.Primary.ID, outcome.Dependent.ID)
	return nil
}
