package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

// fakeEventAdminRepo is an in-memory EventAdminRepository for tests.
type fakeEventAdminRepo struct {
	admins map[string]map[string]bool // eventID -> userID -> true
	err    error
}

func newFakeEventAdminRepo() *fakeEventAdminRepo {
	return &fakeEventAdminRepo{admins: make(map[string]map[string]bool)}
}

func (f *fakeEventAdminRepo) Add(ctx context.Context, eventID, userID string) error {
	if f.err != nil {
		return f.err
	}
	if f.admins[eventID] == nil {
		f.admins[eventID] = make(map[string]bool)
	}
	if f.admins[eventID][userID] {
		return domain.ErrAlreadyAdmin
	}
	f.admins[eventID][userID] = true
	return nil
}

func (f *fakeEventAdminRepo) Remove(ctx context.Context, eventID, userID string) error {
	if !f.admins[eventID][userID] {
		return domain.ErrNotFound
	}
	delete(f.admins[eventID], userID)
	return nil
}

func (f *fakeEventAdminRepo) IsAdmin(ctx context.Context, eventID, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[eventID][userID], nil
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests.
type fakeSpeakerRepo struct {
	speakers map[string]*domain.Speaker
	nextID   int
	err      error
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{speakers: make(map[string]*domain.Speaker), nextID: 1}
}

func (f *fakeSpeakerRepo) CreateSpeaker(ctx context.Context, sp *domain.Speaker) error {
	if f.err != nil {
		return f.err
	}
	sp.ID = fmt.Sprintf("sp-%d", f.nextID)
	f.nextID++
	f.speakers[sp.ID] = sp
	return nil
}

func (f *fakeSpeakerRepo) GetSpeakerByID(ctx context.Context, id string) (*domain.Speaker, error) {
	if sp, ok := f.speakers[id]; ok {
		return sp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) ListSpeakersByEventID(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	var out []*domain.Speaker
	for _, sp := range f.speakers {
		if sp.EventID == eventID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func newTestEventService(t *testing.T) (domain.EventService, *fakeEventRepo, *fakeEventAdminRepo, *fakeSpeakerRepo) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	adminRepo := newFakeEventAdminRepo()
	speakerRepo := newFakeSpeakerRepo()
	svc := NewEventService(eventRepo, adminRepo, speakerRepo, 2*time.Second)
	return svc, eventRepo, adminRepo, speakerRepo
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestEventService(t)

	event := domain.NewEvent("GopherCon", "user-1", time.Time{}, time.Time{})
	require.NoError(t, svc.CreateEvent(ctx, event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	noOwner := domain.NewEvent("GopherCon", "", time.Time{}, time.Time{})
	require.Error(t, svc.CreateEvent(ctx, noOwner))

	noName := domain.NewEvent("  ", "user-1", time.Time{}, time.Time{})
	require.ErrorIs(t, svc.CreateEvent(ctx, noName), domain.ErrInvalidInput)
}

func TestEventService_IsEventAdmin(t *testing.T) {
	ctx := context.Background()
	svc, eventRepo, adminRepo, _ := newTestEventService(t)
	eventRepo.byID["ev-1"] = &domain.Event{ID: "ev-1", Name: "GopherCon", OwnerID: "owner-1"}
	require.NoError(t, adminRepo.Add(ctx, "ev-1", "helper-1"))

	tests := []struct {
		name    string
		eventID string
		userID  string
		want    bool
		wantErr error
	}{
		{name: "owner is admin", eventID: "ev-1", userID: "owner-1", want: true},
		{name: "added admin is admin", eventID: "ev-1", userID: "helper-1", want: true},
		{name: "stranger is not admin", eventID: "ev-1", userID: "stranger-1", want: false},
		{name: "unknown event", eventID: "ev-missing", userID: "owner-1", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsEventAdmin(ctx, tt.eventID, tt.userID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEventService_AddRemoveEventAdmin(t *testing.T) {
	ctx := context.Background()
	svc, eventRepo, _, _ := newTestEventService(t)
	eventRepo.byID["ev-1"] = &domain.Event{ID: "ev-1", Name: "GopherCon", OwnerID: "owner-1"}

	// Only the owner may manage admins.
	require.ErrorIs(t, svc.AddEventAdmin(ctx, "ev-1", "helper-1", "stranger-1"), domain.ErrForbidden)

	// Adding the owner is rejected.
	require.ErrorIs(t, svc.AddEventAdmin(ctx, "ev-1", "owner-1", "owner-1"), domain.ErrInvalidInput)

	require.NoError(t, svc.AddEventAdmin(ctx, "ev-1", "helper-1", "owner-1"))
	require.ErrorIs(t, svc.AddEventAdmin(ctx, "ev-1", "helper-1", "owner-1"), domain.ErrAlreadyAdmin)

	isAdmin, err := svc.IsEventAdmin(ctx, "ev-1", "helper-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, svc.RemoveEventAdmin(ctx, "ev-1", "helper-1", "owner-1"))
	require.ErrorIs(t, svc.RemoveEventAdmin(ctx, "ev-1", "helper-1", "owner-1"), domain.ErrNotFound)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	svc, eventRepo, _, _ := newTestEventService(t)
	eventRepo.byID["ev-1"] = &domain.Event{ID: "ev-1", Name: "GopherCon", OwnerID: "owner-1"}

	require.ErrorIs(t, svc.DeleteEvent(ctx, "ev-1", "stranger-1"), domain.ErrForbidden)
	require.NoError(t, svc.DeleteEvent(ctx, "ev-1", "owner-1"))
	require.ErrorIs(t, svc.DeleteEvent(ctx, "ev-1", "owner-1"), domain.ErrNotFound)
}

func TestEventService_CreateSpeaker(t *testing.T) {
	ctx := context.Background()
	svc, eventRepo, adminRepo, _ := newTestEventService(t)
	eventRepo.byID["ev-1"] = &domain.Event{ID: "ev-1", Name: "GopherCon", OwnerID: "owner-1"}
	require.NoError(t, adminRepo.Add(ctx, "ev-1", "helper-1"))

	sp := domain.NewSpeaker("", "Ada Lovelace", "", "", time.Time{}, time.Time{})
	require.NoError(t, svc.CreateSpeaker(ctx, "ev-1", "helper-1", sp))
	assert.NotEmpty(t, sp.ID)
	assert.Equal(t, "ev-1", sp.EventID)

	require.ErrorIs(t, svc.CreateSpeaker(ctx, "ev-1", "stranger-1", domain.NewSpeaker("", "Grace Hopper", "", "", time.Time{}, time.Time{})), domain.ErrForbidden)
	require.ErrorIs(t, svc.CreateSpeaker(ctx, "ev-1", "owner-1", domain.NewSpeaker("", "  ", "", "", time.Time{}, time.Time{})), domain.ErrInvalidInput)

	speakers, err := svc.ListEventSpeakers(ctx, "ev-1")
	require.NoError(t, err)
	assert.Len(t, speakers, 1)

	_, err = svc.ListEventSpeakers(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
