package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// Session represents a scheduled talk or activity belonging to one event.
// Description, Room and SpeakerID are optional; empty string means absent
// (stored as NULL at the repository boundary). Time ranges are half-open,
// [StartTime, EndTime), so back-to-back sessions do not overlap.
// swagger:model Session
type Session struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Room        string    `json:"room,omitempty"`
	SpeakerID   string    `json:"speaker_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSession returns a new Session for the given event built from a draft.
// ID is typically set by the repository on create.
func NewSession(eventID string, draft SessionDraft, createdAt, updatedAt time.Time) *Session {
	return &Session{
		EventID:     eventID,
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		Room:        strings.TrimSpace(draft.Room),
		SpeakerID:   draft.SpeakerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// SessionDraft is an unpersisted candidate session awaiting validation and
// conflict checking.
type SessionDraft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Room        string    `json:"room"`
	SpeakerID   string    `json:"speaker_id"`
}

// Structural limits for session drafts.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
	RoomMaxLen        = 100
)

// Validate checks the draft's structural fields and returns one FieldError
// per violated rule. It reports every violation, not just the first. An empty
// result means the draft is well formed; in particular StartTime < EndTime
// holds strictly, so the conflict detector never sees an inverted or
// zero-length interval.
func (d SessionDraft) Validate() []FieldError {
	var errs []FieldError
	if n := utf8.RuneCountInString(strings.TrimSpace(d.Title)); n < TitleMinLen {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at least 3 characters"})
	} else if n > TitleMaxLen {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at most 200 characters"})
	}
	if utf8.RuneCountInString(d.Description) > DescriptionMaxLen {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Room)) > RoomMaxLen {
		errs = append(errs, FieldError{Field: "room", Message: "room must be at most 100 characters"})
	}
	if d.StartTime.IsZero() {
		errs = append(errs, FieldError{Field: "start_time", Message: "start time is required"})
	}
	if d.EndTime.IsZero() {
		errs = append(errs, FieldError{Field: "end_time", Message: "end time is required"})
	}
	if !d.StartTime.IsZero() && !d.EndTime.IsZero() && !d.EndTime.After(d.StartTime) {
		errs = append(errs, FieldError{Field: "end_time", Message: "end time must be after start time"})
	}
	return errs
}

// SessionRepository defines the interface for session storage. Reads reflect
// committed state only.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	UpdateSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, id string) error
	GetSessionByID(ctx context.Context, id string) (*Session, error)
	ListSessionsByEventID(ctx context.Context, eventID string) ([]*Session, error)
	ListSessionsBySpeaker(ctx context.Context, eventID, speakerID string) ([]*Session, error)
}

// ScheduleService defines the business logic for scheduling event sessions.
// It is the only mutating entry point for sessions; authorization is the
// caller's responsibility.
type ScheduleService interface {
	// ScheduleSession validates the draft, checks for speaker conflicts and
	// commits the session. An empty existingID creates a new session; a
	// non-empty one updates that session, excluding its own stored record
	// from the conflict check.
	ScheduleSession(ctx context.Context, eventID string, draft SessionDraft, existingID string) (*Session, error)
	DeleteSession(ctx context.Context, eventID, sessionID string) error
	ListEventProgram(ctx context.Context, eventID string) ([]*Session, error)
}
