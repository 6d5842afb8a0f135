package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Stage identifies which half of a two-stage sequence an outcome or
// failure belongs to.
type Stage string

const (
	StagePrimary   Stage = "primary"
	StageDependent Stage = "dependent"
	StageNone      Stage = ""
)

// Spec describes a job to be created on the remote side. Parameters are
// passed through opaquely; the orchestrator never inspects them.
type Spec struct {
	Name       string
	Parameters map[string]string
}

// CreateFunc submits a job and returns its remote identifier.
type CreateFunc func(ctx context.Context, spec Spec) (string, error)

// CreateDependentFunc submits a follow-on job referencing the primary
// job's identifier (e.g. an export of a completed search).
type CreateDependentFunc func(ctx context.Context, parentID string, spec Spec) (string, error)

// Outcome is the composite result of an orchestrated sequence.
type Outcome struct {
	Primary     Job   `json:"primary"`
	Dependent   Job   `json:"dependent"`
	FailedStage Stage `json:"failedStage,omitempty"`
}

// Succeeded reports whether both stages reached Completed.
func (o Outcome) Succeeded() bool {
	return o.FailedStage == StageNone
}

// Orchestrator runs a two-stage dependent job sequence: submit the
// primary job, poll it to a terminal status, then submit and poll the
// dependent job. No rollback is attempted on partial failure; the
// primary job is left in whatever state the remote system put it.
type Orchestrator struct {
	Poller *Poller
	Logger *slog.Logger

	Create          CreateFunc
	CreateDependent CreateDependentFunc
	Status          StatusFunc
}

// Run executes the sequence. When the primary job ends Failed the
// dependent job is never submitted.
func (o *Orchestrator) Run(ctx context.Context, primary, dependent Spec) (Outcome, error) {
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}

	out := Outcome{FailedStage: StagePrimary}

	primaryID, err := o.Create(ctx, primary)
	if err != nil {
		return out, fmt.Errorf("failed to create job %q: %w", primary.Name, err)
	}
	out.Primary = Job{ID: primaryID, Kind: StagePrimary, CreatedAt: time.Now()}
	log.Info("submitted job", "job", primaryID, "stage", string(StagePrimary))

	st, err := o.Poller.Wait(ctx, primaryID, o.Status)
	out.Primary.Status = st
	if err != nil {
		return out, fmt.Errorf("primary job %s did not complete: %w", primaryID, err)
	}

	out.FailedStage = StageDependent

	dependentID, err := o.CreateDependent(ctx, primaryID, dependent)
	if err != nil {
		return out, fmt.Errorf("failed to create dependent job %q for %s: %w", dependent.Name, primaryID, err)
	}
	out.Dependent = Job{ID: dependentID, Kind: StageDependent, CreatedAt: time.Now()}
	log.Info("submitted job", "job", dependentID, "stage", string(StageDependent), "parent", primaryID)

	st, err = o.Poller.Wait(ctx, dependentID, o.Status)
	out.Dependent.Status = st
	if err != nil {
		return out, fmt.Errorf("dependent job %s did not complete: %w", dependentID, err)
	}

	out.FailedStage = StageNone
	return out, nil
}
