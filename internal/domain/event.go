package domain

import (
	"context"
	"time"
)

// Event represents a managed event with its own program of sessions.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	OwnerID     string     `json:"owner_id"`
	Date        *time.Time `json:"date,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by
// the repository on create.
func NewEvent(name, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventAdminRepository stores which users administer an event, in addition to
// the event owner.
type EventAdminRepository interface {
	Add(ctx context.Context, eventID, userID string) error
	Remove(ctx context.Context, eventID, userID string) error
	IsAdmin(ctx context.Context, eventID, userID string) (bool, error)
}

// EventService defines the business logic for events, event admins and
// speakers. IsEventAdmin is the authorization gate callers evaluate before
// invoking the ScheduleService.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
	IsEventAdmin(ctx context.Context, eventID, userID string) (bool, error)
	AddEventAdmin(ctx context.Context, eventID, userIDToAdd, callerID string) error
	RemoveEventAdmin(ctx context.Context, eventID, userIDToRemove, callerID string) error
	CreateSpeaker(ctx context.Context, eventID, callerID string, speaker *Speaker) error
	ListEventSpeakers(ctx context.Context, eventID string) ([]*Speaker, error)
}
