package power

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/internal/message"
	op "github.com/clampline/tenantctl/internal/output_providers"
	"github.com/clampline/tenantctl/modules"
	"github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/interact"
	powersdk "github.com/clampline/tenantctl/pkg/power"
	"github.com/clampline/tenantctl/pkg/types"
)

type Apply struct {
	modules.BaseModule
	Session  *helpers.Session
	Prompter *interact.Prompter

	Client applyClient
}

type applyClient interface {
	ListEnvironments(ctx context.Context) ([]powersdk.Environment, error)
	ApplyOperation(ctx context.Context, environmentName, operation string) error
}

// ApplyOutcome tallies one run across environments. Failed entries
// carry the environment name and the error text.
type ApplyOutcome struct {
	Operation string            `json:"operation"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

var ApplyMetadata = modules.Metadata{
	Id:          "apply",
	Name:        "Power Platform Apply",
	Description: "Apply an administrative operation across environments",
	Platform:    types.Power,
	References: []string{
		"https://learn.microsoft.com/en-us/power-platform/admin/admin-documentation",
	},
}

var ApplyOptions = []*types.Option{
	&options.PowerOperationOpt,
	&options.PowerEnvironmentOpt,
	&options.PowerAllEnvironmentsOpt,
	&options.PowerWorkerCountOpt,
	&options.YesOpt,
}

var ApplyOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

func NewApply(session *helpers.Session, opts []*types.Option) *Apply {
	m := &Apply{Session: session, Prompter: interact.NewPrompter()}
	m.Metadata = ApplyMetadata
	m.Options = opts
	m.Run = modules.NewRun()
	m.ConfigureOutputProviders(ApplyOutputProviders)
	return m
}

func (m *Apply) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	client := m.Client
	if client == nil {
		client = powersdk.NewClient(m.Session.Credential)
	}

	targets, err := m.resolveTargets(ctx, client)
	if err != nil {
		return err
	}

	operation := options.Value(options.PowerOperationOpt.Name, m.Options)
	workers := options.Int(options.PowerWorkerCountOpt.Name, m.Options, 1)
	if workers < 1 {
		workers = 1
	}

	// Bulk runs touch every environment in the tenant; require an
	// explicit go-ahead unless --yes was passed.
	if len(targets) > 1 && !options.Bool(options.YesOpt.Name, m.Options) {
		prompt := fmt.Sprintf("Apply %s to %d environments?", message.Emphasize(operation), len(targets))
		if !m.Prompter.Confirm(prompt, false) {
			return fmt.Errorf("aborted: pass --yes to apply %s across %d environments", operation, len(targets))
		}
	}

	outcome := m.applyAll(ctx, client, targets, operation, workers)
	m.Run.Data <- m.MakeResult(outcome)

	message.Info("%s: %d succeeded, %d failed", operation, len(outcome.Succeeded), len(outcome.Failed))
	if len(outcome.Failed) == len(targets) && len(targets) > 0 {
		return fmt.Errorf("operation %s failed for every environment", operation)
	}
	return nil
}

// applyAll runs the operation across targets with at most workers
// in-flight requests. One environment's failure never aborts the
// others; it is logged as a warning and tallied.
func (m *Apply) applyAll(ctx context.Context, client applyClient, targets []powersdk.Environment, operation string, workers int) ApplyOutcome {
	outcome := ApplyOutcome{
		Operation: operation,
		Failed:    map[string]string{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, env := range targets {
		env := env
		g.Go(func() error {
			if err := client.ApplyOperation(gctx, env.Name, operation); err != nil {
				message.Warning("environment %s: %v", env.Name, err)
				mu.Lock()
				outcome.Failed[env.Name] = err.Error()
				mu.Unlock()
				return nil
			}
			mu.Lock()
			outcome.Succeeded = append(outcome.Succeeded, env.Name)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return outcome
}

// resolveTargets returns either the single named environment or the
// full tenant listing when --all-environments is set.
func (m *Apply) resolveTargets(ctx context.Context, client applyClient) ([]powersdk.Environment, error) {
	name := options.Value(options.PowerEnvironmentOpt.Name, m.Options)
	all := options.Bool(options.PowerAllEnvironmentsOpt.Name, m.Options)

	if name == "" && !all {
		return nil, fmt.Errorf("either --environment or --all-environments is required")
	}

	envs, err := client.ListEnvironments(ctx)
	if err != nil {
		return nil, err
	}
	if all {
		return envs, nil
	}

	for _, env := range envs {
		if strings.EqualFold(env.Name, name) || strings.EqualFold(env.DisplayName, name) {
			return []powersdk.Environment{env}, nil
		}
	}
	return nil, fmt.Errorf("environment %q not found", name)
}
