package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventscheduling/internal/domain"
)

type scheduleService struct {
	eventRepo      domain.EventRepository
	sessionRepo    domain.SessionRepository
	locks          keyedMutex
	contextTimeout time.Duration
}

// NewScheduleService returns the ScheduleService backed by the given
// repositories. The service performs no authorization; callers are expected
// to gate with EventService.IsEventAdmin first.
func NewScheduleService(eventRepo domain.EventRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) ScheduleSession(ctx context.Context, eventID string, draft domain.SessionDraft, existingID string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Structural validation runs first; the conflict detector never sees an
	// inverted or zero-length interval.
	if fieldErrs := draft.Validate(); len(fieldErrs) > 0 {
		return nil, &domain.ValidationError{Fields: fieldErrs}
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var current *domain.Session
	if existingID != "" {
		sess, err := s.sessionRepo.GetSessionByID(ctx, existingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get session: %w", err)
		}
		if sess.EventID != eventID {
			return nil, domain.ErrNotFound
		}
		current = sess
	}

	// Serialize the check-then-write sequence per (event, speaker) so two
	// concurrent requests cannot both pass the conflict check and commit.
	// The lock is held through the insert/update below.
	if draft.SpeakerID != "" {
		unlock := s.locks.lock(eventID + "/" + draft.SpeakerID)
		defer unlock()

		existing, err := s.sessionRepo.ListSessionsBySpeaker(ctx, eventID, draft.SpeakerID)
		if err != nil {
			return nil, fmt.Errorf("list sessions by speaker: %w", err)
		}
		if hit := domain.DetectConflict(draft, existing, existingID); hit != nil {
			return nil, &domain.SpeakerConflictError{Conflicting: hit}
		}
	}

	now := time.Now()
	if existingID == "" {
		sess := domain.NewSession(eventID, draft, now, now)
		if err := s.sessionRepo.CreateSession(ctx, sess); err != nil {
			return nil, s.mapWriteError(ctx, eventID, draft, existingID, err)
		}
		return sess, nil
	}

	current.Title = strings.TrimSpace(draft.Title)
	current.Description = draft.Description
	current.StartTime = draft.StartTime
	current.EndTime = draft.EndTime
	current.Room = strings.TrimSpace(draft.Room)
	current.SpeakerID = draft.SpeakerID
	current.UpdatedAt = now
	if err := s.sessionRepo.UpdateSession(ctx, current); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, s.mapWriteError(ctx, eventID, draft, existingID, err)
	}
	return current, nil
}

// mapWriteError converts a storage-level overlap rejection (the database's
// exclusion constraint firing under a writer this process did not serialize)
// into the same typed conflict the detector produces, re-reading to identify
// the winning session when possible. Any other error is wrapped as a plain
// storage failure.
func (s *scheduleService) mapWriteError(ctx context.Context, eventID string, draft domain.SessionDraft, existingID string, err error) error {
	if !errors.Is(err, domain.ErrScheduleConflict) {
		return fmt.Errorf("write session: %w", err)
	}
	if draft.SpeakerID != "" {
		if existing, listErr := s.sessionRepo.ListSessionsBySpeaker(ctx, eventID, draft.SpeakerID); listErr == nil {
			if hit := domain.DetectConflict(draft, existing, existingID); hit != nil {
				return &domain.SpeakerConflictError{Conflicting: hit}
			}
		}
	}
	return &domain.SpeakerConflictError{}
}

func (s *scheduleService) DeleteSession(ctx context.Context, eventID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get session: %w", err)
	}
	if sess.EventID != eventID {
		return domain.ErrNotFound
	}
	// Freeing a slot cannot create a conflict, so no re-evaluation is needed.
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *scheduleService) ListEventProgram(ctx context.Context, eventID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	sessions, err := s.sessionRepo.ListSessionsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}
