// Package audit records every looking-glass query construction, accepted or
// rejected, so operators can review what was asked of which device.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/newtron-network/lglass/pkg/util"
)

// Event is one query construction (and optional execution).
type Event struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	User      string        `json:"user"`
	Device    string        `json:"device"`
	QueryType string        `json:"query_type"`
	Target    string        `json:"target"`
	Mode      string        `json:"mode,omitempty"`     // api or command
	Status    string        `json:"status,omitempty"`   // success, warning, danger
	Message   string        `json:"message,omitempty"`
	Artifact  string        `json:"artifact,omitempty"` // JSON payload or rendered command
	Executed  bool          `json:"executed"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Devices     []string // any of; empty matches all
	User        string
	QueryTypes  []string // any of; empty matches all
	Status      string
	StartTime   time.Time
	EndTime     time.Time
	FailureOnly bool // status other than success, or an error
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, device, queryType, target string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		QueryType: queryType,
		Target:    target,
	}
}

// WithResult records the construction outcome.
func (e *Event) WithResult(mode, status, message, artifact string) *Event {
	e.Mode = mode
	e.Status = status
	e.Message = message
	e.Artifact = artifact
	return e
}

// WithExecuted marks the artifact as sent to the device.
func (e *Event) WithExecuted() *Event {
	e.Executed = true
	return e
}

// WithError records a configuration or execution error
func (e *Event) WithError(err error) *Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// Failed reports whether the event is a rejection or an error.
func (e *Event) Failed() bool {
	return e.Error != "" || e.Status != "success"
}

// Matches reports whether the event satisfies every criterion in f
// (Limit and Offset are applied by the caller).
func (f Filter) Matches(e *Event) bool {
	if len(f.Devices) > 0 && !util.Contains(f.Devices, e.Device) {
		return false
	}
	if f.User != "" && e.User != f.User {
		return false
	}
	if len(f.QueryTypes) > 0 && !util.Contains(f.QueryTypes, e.QueryType) {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if !f.StartTime.IsZero() && e.Timestamp.Before(f.StartTime) {
		return false
	}
	if !f.EndTime.IsZero() && e.Timestamp.After(f.EndTime) {
		return false
	}
	if f.FailureOnly && !e.Failed() {
		return false
	}
	return true
}

// page applies Offset and Limit.
func (f Filter) page(events []*Event) []*Event {
	if f.Offset > 0 {
		if f.Offset >= len(events) {
			return nil
		}
		events = events[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(events) {
		events = events[:f.Limit]
	}
	return events
}
