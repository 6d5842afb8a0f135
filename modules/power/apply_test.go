package power

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/interact"
	powersdk "github.com/clampline/tenantctl/pkg/power"
	"github.com/clampline/tenantctl/pkg/types"
)

type fakePowerClient struct {
	envs    []powersdk.Environment
	listErr error
	failOn  map[string]error

	mu       sync.Mutex
	applied  []string
	inFlight int32
	maxSeen  int32
}

func (f *fakePowerClient) ListEnvironments(ctx context.Context) ([]powersdk.Environment, error) {
	return f.envs, f.listErr
}

func (f *fakePowerClient) ApplyOperation(ctx context.Context, name, operation string) error {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, cur) {
			break
		}
	}

	f.mu.Lock()
	f.applied = append(f.applied, name)
	f.mu.Unlock()

	if err, ok := f.failOn[name]; ok {
		return err
	}
	return nil
}

func applyModule(client *fakePowerClient, opts map[string]string) *Apply {
	declared := options.CreateDeepCopyOfOptions(ApplyOptions)
	// tests run headless; confirm bulk operations up front
	types.GetOptionByName(options.YesOpt.Name, declared).Value = "true"
	for name, value := range opts {
		if opt := types.GetOptionByName(name, declared); opt != nil {
			opt.Value = value
		}
	}
	m := NewApply(nil, declared)
	m.Client = client
	return m
}

func envs(names ...string) []powersdk.Environment {
	out := make([]powersdk.Environment, 0, len(names))
	for _, n := range names {
		out = append(out, powersdk.Environment{Name: n, DisplayName: n})
	}
	return out
}

func TestApplyIsolatesPerEnvironmentFailures(t *testing.T) {
	client := &fakePowerClient{
		envs:   envs("env-a", "env-b", "env-c"),
		failOn: map[string]error{"env-b": errors.New("locked")},
	}
	m := applyModule(client, map[string]string{
		"operation":        "tag",
		"all-environments": "true",
	})

	err := m.Invoke()
	require.NoError(t, err, "one failing environment must not fail the run")

	result := <-m.Run.Data
	outcome := result.Data.(ApplyOutcome)

	sort.Strings(outcome.Succeeded)
	assert.Equal(t, []string{"env-a", "env-c"}, outcome.Succeeded)
	assert.Equal(t, map[string]string{"env-b": "locked"}, outcome.Failed)
	assert.Len(t, client.applied, 3, "failure must not stop the loop")
}

func TestApplyFailsWhenEveryEnvironmentFails(t *testing.T) {
	client := &fakePowerClient{
		envs: envs("env-a", "env-b"),
		failOn: map[string]error{
			"env-a": errors.New("nope"),
			"env-b": errors.New("nope"),
		},
	}
	m := applyModule(client, map[string]string{
		"operation":        "tag",
		"all-environments": "true",
	})

	require.Error(t, m.Invoke())
}

func TestApplySingleEnvironmentByName(t *testing.T) {
	client := &fakePowerClient{envs: envs("env-a", "env-b")}
	m := applyModule(client, map[string]string{
		"operation":   "disable-sharing",
		"environment": "ENV-B",
	})

	require.NoError(t, m.Invoke())
	assert.Equal(t, []string{"env-b"}, client.applied)
}

func TestApplyUnknownEnvironment(t *testing.T) {
	client := &fakePowerClient{envs: envs("env-a")}
	m := applyModule(client, map[string]string{
		"operation":   "tag",
		"environment": "missing",
	})

	err := m.Invoke()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyBulkRunNeedsConfirmation(t *testing.T) {
	client := &fakePowerClient{envs: envs("env-a", "env-b")}
	m := applyModule(client, map[string]string{
		"operation":        "tag",
		"all-environments": "true",
		"yes":              "false",
	})
	m.Prompter = &interact.Prompter{Interactive: false}

	err := m.Invoke()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Empty(t, client.applied, "nothing may be applied before confirmation")
}

func TestApplyRequiresATarget(t *testing.T) {
	client := &fakePowerClient{envs: envs("env-a")}
	m := applyModule(client, map[string]string{"operation": "tag"})
	err := m.Invoke()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all-environments")
}

func TestApplyDefaultsToSequentialProcessing(t *testing.T) {
	client := &fakePowerClient{envs: envs("a", "b", "c", "d")}
	m := applyModule(client, map[string]string{
		"operation":        "tag",
		"all-environments": "true",
	})

	require.NoError(t, m.Invoke())
	assert.LessOrEqual(t, client.maxSeen, int32(1), "default worker count is 1")
	// sequential processing preserves listing order
	assert.Equal(t, []string{"a", "b", "c", "d"}, client.applied)
}
