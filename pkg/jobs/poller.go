package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// StatusFunc fetches the current status of a remote job.
type StatusFunc func(ctx context.Context, jobID string) (Status, error)

// DefaultPollInterval matches the interval the admin portals use for
// compliance search status checks.
const DefaultPollInterval = 10 * time.Second

// Poller waits for a remote job to reach a terminal status. MaxAttempts
// is mandatory: the remote side is not trusted to always terminate, so
// an unbounded poll loop is rejected up front rather than hung forever.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int

	// StatusRetries bounds the extra attempts made when a status check
	// itself fails transiently (network, throttling). Zero means a
	// failed check propagates immediately.
	StatusRetries uint64

	Logger *slog.Logger

	// OnTick, when set, observes every completed status check. Used for
	// user-facing progress output on long waits.
	OnTick func(PollResult)
}

// NewPoller returns a poller with the default interval.
func NewPoller(maxAttempts int) *Poller {
	return &Poller{
		Interval:      DefaultPollInterval,
		MaxAttempts:   maxAttempts,
		StatusRetries: 3,
		Logger:        slog.Default(),
	}
}

// ErrPollBudgetExceeded is wrapped into the error returned when a job
// stays non-terminal past MaxAttempts checks.
var ErrPollBudgetExceeded = fmt.Errorf("job did not reach a terminal status within the attempt budget")

// Wait polls jobID via status until a terminal status is observed.
//
// Exactly one status check is issued per tick; a non-terminal status
// causes exactly one sleep before the next check. A Failed status
// returns immediately with no further polling and no sleep. A
// Completed status returns nil. Context cancellation is honored at
// every sleep point.
func (p *Poller) Wait(ctx context.Context, jobID string, status StatusFunc) (Status, error) {
	if p.MaxAttempts <= 0 {
		return StatusUnknown, fmt.Errorf("poller requires a positive max attempts, got %d", p.MaxAttempts)
	}
	if p.Interval <= 0 {
		return StatusUnknown, fmt.Errorf("poller requires a positive interval, got %s", p.Interval)
	}

	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		st, err := p.checkOnce(ctx, jobID, status)
		if err != nil {
			return StatusUnknown, fmt.Errorf("failed to check status of job %s: %w", jobID, err)
		}

		log.Info("poll tick", "job", jobID, "status", string(st), "attempt", attempt)
		if p.OnTick != nil {
			p.OnTick(PollResult{JobID: jobID, Status: st, Attempt: attempt, ObservedAt: time.Now()})
		}

		if st.Terminal() {
			if !st.Succeeded() {
				return st, fmt.Errorf("job %s reported terminal status %s", jobID, st)
			}
			return st, nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return StatusUnknown, ctx.Err()
		case <-time.After(p.Interval):
		}
	}

	return StatusUnknown, fmt.Errorf("job %s: %w after %d attempts", jobID, ErrPollBudgetExceeded, p.MaxAttempts)
}

// checkOnce performs a single status check, retrying transient errors
// with capped exponential backoff when StatusRetries permits.
func (p *Poller) checkOnce(ctx context.Context, jobID string, status StatusFunc) (Status, error) {
	var st Status
	operation := func() error {
		var err error
		st, err = status(ctx, jobID)
		return err
	}

	if p.StatusRetries == 0 {
		err := operation()
		return st, err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.StatusRetries), ctx)
	err := backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		if p.Logger != nil {
			p.Logger.Warn("status check failed, retrying", "job", jobID, "in", next.String(), "error", err)
		}
	})
	return st, err
}
