package domain

// DetectConflict reports whether the candidate session double-books its
// speaker. It returns the first session in existing (in input order) that is
// assigned to the same speaker and whose time range overlaps the candidate's,
// or nil when the candidate can be scheduled.
//
// The detector filters by speaker itself, so it is safe to pass an event's
// full session list. A candidate without a speaker never conflicts and is
// decided without scanning. excludeSessionID removes a session's own stored
// record from comparison when updating; pass "" on create.
//
// Overlap uses half-open interval semantics: two sessions conflict iff
// a.start < b.end && b.start < a.end, so a session ending exactly when
// another begins is not a conflict. Intervals are assumed well formed
// (validation runs before detection).
func DetectConflict(candidate SessionDraft, existing []*Session, excludeSessionID string) *Session {
	if candidate.SpeakerID == "" {
		return nil
	}
	for _, s := range existing {
		if s == nil || s.SpeakerID != candidate.SpeakerID {
			continue
		}
		if excludeSessionID != "" && s.ID == excludeSessionID {
			continue
		}
		if candidate.StartTime.Before(s.EndTime) && s.StartTime.Before(candidate.EndTime) {
			return s
		}
	}
	return nil
}
