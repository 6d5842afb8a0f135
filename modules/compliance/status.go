package compliance

import (
	"context"
	"fmt"

	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/internal/message"
	op "github.com/clampline/tenantctl/internal/output_providers"
	"github.com/clampline/tenantctl/modules"
	"github.com/clampline/tenantctl/modules/options"
	compliancesdk "github.com/clampline/tenantctl/pkg/compliance"
	"github.com/clampline/tenantctl/pkg/jobs"
	"github.com/clampline/tenantctl/pkg/types"
)

// JobStatus reports the current state of a single compliance job
// without waiting on it.
type JobStatus struct {
	modules.BaseModule
	Session *helpers.Session

	Client remoteClient
}

type jobStatusReport struct {
	JobID    string      `json:"jobId"`
	Status   jobs.Status `json:"status"`
	Terminal bool        `json:"terminal"`
}

var JobStatusMetadata = modules.Metadata{
	Id:          "search-status",
	Name:        "Compliance Job Status",
	Description: "Check the status of a compliance search or export job",
	Platform:    types.M365,
	References: []string{
		"https://learn.microsoft.com/en-us/purview/ediscovery-content-search",
	},
}

var JobStatusOptions = []*types.Option{
	&options.ComplianceJobIDOpt,
}

var JobStatusOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
}

func NewJobStatus(session *helpers.Session, opts []*types.Option) *JobStatus {
	m := &JobStatus{Session: session}
	m.Metadata = JobStatusMetadata
	m.Options = opts
	m.Run = modules.NewRun()
	m.ConfigureOutputProviders(JobStatusOutputProviders)
	return m
}

func (m *JobStatus) Invoke() error {
	defer close(m.Run.Data)

	client := m.Client
	if client == nil {
		client = compliancesdk.NewClient(m.Session.Credential)
	}

	jobID := options.Value(options.ComplianceJobIDOpt.Name, m.Options)
	status, err := client.Status(context.Background(), jobID)
	if err != nil {
		return fmt.Errorf("failed to get status for job %s: %w", jobID, err)
	}

	message.Info("job %s is %s", jobID, status)
	m.Run.Data <- m.MakeResult(jobStatusReport{
		JobID:    jobID,
		Status:   status,
		Terminal: status.Terminal(),
	})
	return nil
}
