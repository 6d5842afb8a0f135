package jobs

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a remote job as reported by the
// service. Remote APIs return these as free-form strings; ParseStatus
// maps anything unrecognized to StatusUnknown so callers never compare
// raw text.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
	StatusUnknown    Status = "Unknown"
)

// Terminal reports whether no further status transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Succeeded reports whether the job reached its terminal success state.
func (s Status) Succeeded() bool {
	return s == StatusCompleted
}

// ParseStatus normalizes a status string from the remote service.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "notstarted", "not started":
		return StatusNotStarted
	case "inprogress", "in progress", "starting", "running":
		return StatusInProgress
	case "completed", "succeeded", "success":
		return StatusCompleted
	case "failed", "error":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// Job is a remote, asynchronously-completing unit of work. Status is
// only ever observed from the remote side, never set locally.
type Job struct {
	ID        string    `json:"id"`
	Kind      Stage     `json:"kind"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// PollResult is the snapshot taken at one poll tick, handed to the
// poller's OnTick hook.
type PollResult struct {
	JobID      string
	Status     Status
	Attempt    int
	ObservedAt time.Time
}
