package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventscheduling/internal/domain"
)

// Postgres error codes mapped to domain.ErrScheduleConflict. The sessions
// table carries an exclusion constraint over (event_id, speaker_id,
// tstzrange(start_time, end_time)) as the last line of defense against
// concurrent writers outside this process.
const (
	pqExclusionViolation = "23P01"
	pqUniqueViolation    = "23505"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, event_id, title, description, start_time, end_time, room, speaker_id, created_at, updated_at`

func (r *SessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (event_id, title, description, start_time, end_time, room, speaker_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		s.EventID, s.Title, toNullString(s.Description), s.StartTime, s.EndTime,
		toNullString(s.Room), toNullString(s.SpeakerID), s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *SessionRepository) UpdateSession(ctx context.Context, s *domain.Session) error {
	query := `
		UPDATE sessions
		SET title = $2, description = $3, start_time = $4, end_time = $5, room = $6, speaker_id = $7, updated_at = $8
		WHERE id = $1
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query,
		s.ID, s.Title, toNullString(s.Description), s.StartTime, s.EndTime,
		toNullString(s.Room), toNullString(s.SpeakerID), s.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapWriteError(err)
	}
	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) GetSessionByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	sess, err := scanSession(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (r *SessionRepository) ListSessionsByEventID(ctx context.Context, eventID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE event_id = $1
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query, eventID)
}

func (r *SessionRepository) ListSessionsBySpeaker(ctx context.Context, eventID, speakerID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE event_id = $1 AND speaker_id = $2
		ORDER BY start_time, id
	`
	return r.querySessions(ctx, query, eventID, speakerID)
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	sess := &domain.Session{}
	var description, room, speakerID sql.NullString
	if err := row.Scan(
		&sess.ID, &sess.EventID, &sess.Title, &description, &sess.StartTime,
		&sess.EndTime, &room, &speakerID, &sess.CreatedAt, &sess.UpdatedAt,
	); err != nil {
		return nil, err
	}
	sess.Description = description.String
	sess.Room = room.String
	sess.SpeakerID = speakerID.String
	return sess, nil
}

// mapWriteError converts the overlap guard firing into the domain sentinel;
// everything else is returned as-is.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pqExclusionViolation || pqErr.Code == pqUniqueViolation {
			return domain.ErrScheduleConflict
		}
	}
	return err
}

// toNullString maps the empty string to SQL NULL.
func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
