package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 12, 1, hour, min, 0, 0, time.UTC)
}

func existingSession(id, speakerID string, start, end time.Time) *Session {
	return &Session{
		ID:        id,
		EventID:   "ev-1",
		Title:     "Existing Session",
		StartTime: start,
		EndTime:   end,
		SpeakerID: speakerID,
	}
}

func TestDetectConflict(t *testing.T) {
	tests := []struct {
		name       string
		candidate  SessionDraft
		existing   []*Session
		excludeID  string
		wantConfID string // empty means no conflict expected
	}{
		{
			name:       "strict overlap conflicts",
			candidate:  SessionDraft{SpeakerID: "sp-1", StartTime: at(10, 30), EndTime: at(12, 0)},
			existing:   []*Session{existingSession("s-1", "sp-1", at(10, 0), at(11, 30))},
			wantConfID: "s-1",
		},
		{
			name:      "adjacent sessions do not conflict",
			candidate: SessionDraft{SpeakerID: "sp-1", StartTime: at(11, 30), EndTime: at(13, 0)},
			existing:  []*Session{existingSession("s-1", "sp-1", at(10, 0), at(11, 30))},
		},
		{
			name:      "adjacent before does not conflict",
			candidate: SessionDraft{SpeakerID: "sp-1", StartTime: at(9, 0), EndTime: at(10, 0)},
			existing:  []*Session{existingSession("s-1", "sp-1", at(10, 0), at(11, 30))},
		},
		{
			name:      "different speaker does not conflict",
			candidate: SessionDraft{SpeakerID: "sp-2", StartTime: at(10, 30), EndTime: at(12, 0)},
			existing:  []*Session{existingSession("s-1", "sp-1", at(10, 0), at(11, 30))},
		},
		{
			name:      "no speaker never conflicts",
			candidate: SessionDraft{SpeakerID: "", StartTime: at(10, 0), EndTime: at(11, 0)},
			existing: []*Session{
				existingSession("s-1", "sp-1", at(10, 0), at(11, 0)),
				existingSession("s-2", "", at(10, 0), at(11, 0)),
			},
		},
		{
			name:       "containment conflicts",
			candidate:  SessionDraft{SpeakerID: "sp-1", StartTime: at(10, 15), EndTime: at(10, 45)},
			existing:   []*Session{existingSession("s-1", "sp-1", at(10, 0), at(11, 0))},
			wantConfID: "s-1",
		},
		{
			name:       "identical range conflicts",
			candidate:  SessionDraft{SpeakerID: "sp-1", StartTime: at(10, 0), EndTime: at(11, 0)},
			existing:   []*Session{existingSession("s-1", "sp-1", at(10, 0), at(11, 0))},
			wantConfID: "s-1",
		},
		{
			name:      "self exclusion on update",
			candidate: SessionDraft{SpeakerID: "sp-1", StartTime: at(10, 15), EndTime: at(11, 15)},
			existing:  []*Session{existingSession("s-7", "sp-1", at(10, 0), at(11, 0))},
			excludeID: "s-7",
		},
		{
			name:      "existing session without speaker is ignored",
			candidate: SessionDraft{SpeakerID: "sp-1", StartTime: at(10, 0), EndTime: at(11, 0)},
			existing:  []*Session{existingSession("s-1", "", at(10, 0), at(11, 0))},
		},
		{
			name:      "first conflict in input order is returned",
			candidate: SessionDraft{SpeakerID: "sp-1", StartTime: at(9, 0), EndTime: at(13, 0)},
			existing: []*Session{
				existingSession("s-2", "sp-2", at(9, 0), at(13, 0)),
				existingSession("s-3", "sp-1", at(11, 0), at(12, 0)),
				existingSession("s-4", "sp-1", at(9, 30), at(10, 30)),
			},
			wantConfID: "s-3",
		},
		{
			name:      "no existing sessions",
			candidate: SessionDraft{SpeakerID: "sp-1", StartTime: at(10, 0), EndTime: at(11, 0)},
			existing:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflict(tt.candidate, tt.existing, tt.excludeID)
			if tt.wantConfID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantConfID, got.ID)
		})
	}
}

// Two sessions with the same speaker must get the same verdict regardless of
// which one is the candidate and which one is already stored.
func TestDetectConflict_Symmetry(t *testing.T) {
	ranges := []struct{ start, end time.Time }{
		{at(9, 0), at(10, 30)},
		{at(10, 30), at(12, 0)},
		{at(10, 0), at(11, 0)},
		{at(11, 59), at(12, 1)},
		{at(8, 0), at(13, 0)},
	}

	for i, a := range ranges {
		for j, b := range ranges {
			if i == j {
				continue
			}
			candA := SessionDraft{SpeakerID: "sp-1", StartTime: a.start, EndTime: a.end}
			candB := SessionDraft{SpeakerID: "sp-1", StartTime: b.start, EndTime: b.end}
			storedA := existingSession("sa", "sp-1", a.start, a.end)
			storedB := existingSession("sb", "sp-1", b.start, b.end)

			aVsB := DetectConflict(candA, []*Session{storedB}, "") != nil
			bVsA := DetectConflict(candB, []*Session{storedA}, "") != nil
			assert.Equal(t, aVsB, bVsA, "verdict must be symmetric for ranges %d and %d", i, j)
		}
	}
}
