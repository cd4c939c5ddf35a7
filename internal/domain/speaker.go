package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker at an event.
// swagger:model Speaker
type Speaker struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio,omitempty"`
	TagLine   string    `json:"tag_line,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set
// by the repository on create.
func NewSpeaker(eventID, fullName, bio, tagLine string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		EventID:   eventID,
		FullName:  fullName,
		Bio:       bio,
		TagLine:   tagLine,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	CreateSpeaker(ctx context.Context, speaker *Speaker) error
	GetSpeakerByID(ctx context.Context, id string) (*Speaker, error)
	ListSpeakersByEventID(ctx context.Context, eventID string) ([]*Speaker, error)
}
