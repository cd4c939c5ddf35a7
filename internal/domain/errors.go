package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyAdmin     = errors.New("already an event admin")
	ErrScheduleConflict = errors.New("schedule conflict")
)

// FieldError describes a single invalid field in a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every invalid field of a session draft at once,
// so callers can surface all problems in a single round trip.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid session: " + strings.Join(parts, "; ")
}

// SpeakerConflictError is returned when a session cannot be scheduled because
// its speaker is already booked in an overlapping time slot. Conflicting is
// the existing session that caused the rejection.
type SpeakerConflictError struct {
	Conflicting *Session `json:"conflicting_session"`
}

func (e *SpeakerConflictError) Error() string {
	if e.Conflicting == nil {
		return "speaker is already booked in an overlapping time slot"
	}
	return fmt.Sprintf("speaker is already booked from %s to %s for %q",
		e.Conflicting.StartTime.Format("2006-01-02 15:04"),
		e.Conflicting.EndTime.Format("15:04"),
		e.Conflicting.Title,
	)
}
