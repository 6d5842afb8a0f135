package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns a StatusFunc that replays the given statuses in
// order and counts how many checks were issued.
func scripted(statuses []Status, checks *int) StatusFunc {
	return func(ctx context.Context, jobID string) (Status, error) {
		i := *checks
		*checks++
		if i >= len(statuses) {
			return statuses[len(statuses)-1], nil
		}
		return statuses[i], nil
	}
}

func testPoller(maxAttempts int) *Poller {
	p := NewPoller(maxAttempts)
	p.Interval = time.Millisecond
	return p
}

func TestWaitCompletesAfterNonTerminalTicks(t *testing.T) {
	checks := 0
	p := testPoller(10)

	start := time.Now()
	st, err := p.Wait(context.Background(), "search-1", scripted([]Status{StatusInProgress, StatusInProgress, StatusCompleted}, &checks))

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)
	assert.Equal(t, 3, checks, "one status check per tick")
	// two non-terminal ticks mean exactly two sleeps
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}

func TestWaitFailsFastOnFailedStatus(t *testing.T) {
	checks := 0
	p := testPoller(10)
	p.Interval = time.Hour // any sleep would hang the test

	st, err := p.Wait(context.Background(), "search-2", scripted([]Status{StatusFailed}, &checks))

	require.Error(t, err)
	assert.Equal(t, StatusFailed, st)
	assert.Equal(t, 1, checks, "terminal failure must not be polled again")
}

func TestWaitExhaustsAttemptBudget(t *testing.T) {
	checks := 0
	p := testPoller(4)

	_, err := p.Wait(context.Background(), "search-3", scripted([]Status{StatusInProgress}, &checks))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPollBudgetExceeded)
	assert.Equal(t, 4, checks)
}

func TestWaitRejectsUnboundedConfiguration(t *testing.T) {
	p := testPoller(0)
	_, err := p.Wait(context.Background(), "search-4", scripted([]Status{StatusCompleted}, new(int)))
	require.Error(t, err)
}

func TestWaitRetriesTransientStatusErrors(t *testing.T) {
	calls := 0
	flaky := func(ctx context.Context, jobID string) (Status, error) {
		calls++
		if calls < 3 {
			return StatusUnknown, errors.New("503 service unavailable")
		}
		return StatusCompleted, nil
	}

	p := testPoller(5)
	st, err := p.Wait(context.Background(), "search-5", flaky)

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)
	assert.Equal(t, 3, calls)
}

func TestWaitPropagatesPersistentStatusErrors(t *testing.T) {
	broken := func(ctx context.Context, jobID string) (Status, error) {
		return StatusUnknown, errors.New("401 token expired")
	}

	p := testPoller(5)
	p.StatusRetries = 1
	_, err := p.Wait(context.Background(), "search-6", broken)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := testPoller(100)
	p.Interval = time.Minute

	done := make(chan error, 1)
	go func() {
		_, err := p.Wait(ctx, "search-7", scripted([]Status{StatusInProgress}, new(int)))
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not observe cancellation")
	}
}

func TestWaitReportsEveryTick(t *testing.T) {
	checks := 0
	p := testPoller(10)

	var ticks []PollResult
	p.OnTick = func(tick PollResult) { ticks = append(ticks, tick) }

	_, err := p.Wait(context.Background(), "search-8", scripted([]Status{StatusInProgress, StatusCompleted}, &checks))

	require.NoError(t, err)
	require.Len(t, ticks, 2)
	assert.Equal(t, "search-8", ticks[0].JobID)
	assert.Equal(t, StatusInProgress, ticks[0].Status)
	assert.Equal(t, 1, ticks[0].Attempt)
	assert.Equal(t, StatusCompleted, ticks[1].Status)
	assert.Equal(t, 2, ticks[1].Attempt)
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Completed":   StatusCompleted,
		"succeeded":   StatusCompleted,
		"InProgress":  StatusInProgress,
		"in progress": StatusInProgress,
		"Starting":    StatusInProgress,
		"NotStarted":  StatusNotStarted,
		"Failed":      StatusFailed,
		"borked":      StatusUnknown,
		"":            StatusUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseStatus(raw), "raw=%q", raw)
	}
}

func TestStatusClassification(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.False(t, StatusNotStarted.Terminal())
	assert.False(t, StatusUnknown.Terminal())
	assert.True(t, StatusCompleted.Succeeded())
	assert.False(t, StatusFailed.Succeeded())
}
