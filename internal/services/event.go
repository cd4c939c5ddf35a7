package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventscheduling/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	adminRepo      domain.EventAdminRepository
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, adminRepo domain.EventAdminRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		adminRepo:      adminRepo,
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("event owner is required")
	}
	if strings.TrimSpace(event.Name) == "" {
		return domain.ErrInvalidInput
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// IsEventAdmin reports whether userID may administer the event: the owner
// always can, anyone else must have an event admin entry. This is the gate
// callers evaluate before invoking the schedule service.
func (s *eventService) IsEventAdmin(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID == userID {
		return true, nil
	}
	isAdmin, err := s.adminRepo.IsAdmin(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("check event admin: %w", err)
	}
	return isAdmin, nil
}

func (s *eventService) AddEventAdmin(ctx context.Context, eventID, userIDToAdd, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	// The owner already administers the event.
	if userIDToAdd == event.OwnerID {
		return domain.ErrInvalidInput
	}
	if err := s.adminRepo.Add(ctx, eventID, userIDToAdd); err != nil {
		if errors.Is(err, domain.ErrAlreadyAdmin) {
			return domain.ErrAlreadyAdmin
		}
		return fmt.Errorf("add event admin: %w", err)
	}
	return nil
}

func (s *eventService) RemoveEventAdmin(ctx context.Context, eventID, userIDToRemove, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if err := s.adminRepo.Remove(ctx, eventID, userIDToRemove); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove event admin: %w", err)
	}
	return nil
}

func (s *eventService) CreateSpeaker(ctx context.Context, eventID, callerID string, speaker *domain.Speaker) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	isAdmin, err := s.IsEventAdmin(ctx, eventID, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return domain.ErrForbidden
	}
	if strings.TrimSpace(speaker.FullName) == "" {
		return domain.ErrInvalidInput
	}

	speaker.EventID = eventID
	speaker.CreatedAt = time.Now()
	speaker.UpdatedAt = time.Now()

	if err := s.speakerRepo.CreateSpeaker(ctx, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *eventService) ListEventSpeakers(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	speakers, err := s.speakerRepo.ListSpeakersByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}
