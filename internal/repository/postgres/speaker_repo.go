package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventscheduling/internal/domain"
)

type SpeakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &SpeakerRepository{
		DB: db,
	}
}

const speakerColumns = `id, event_id, full_name, bio, tag_line, created_at, updated_at`

func (r *SpeakerRepository) CreateSpeaker(ctx context.Context, sp *domain.Speaker) error {
	query := `
		INSERT INTO speakers (event_id, full_name, bio, tag_line, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sp.EventID, sp.FullName, toNullString(sp.Bio), toNullString(sp.TagLine),
		sp.CreatedAt, sp.UpdatedAt,
	).Scan(&sp.ID)
}

func (r *SpeakerRepository) GetSpeakerByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	sp, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

func (r *SpeakerRepository) ListSpeakersByEventID(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	query := `
		SELECT ` + speakerColumns + `
		FROM speakers
		WHERE event_id = $1
		ORDER BY full_name, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var speakers []*domain.Speaker
	for rows.Next() {
		sp, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, sp)
	}
	return speakers, rows.Err()
}

func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	sp := &domain.Speaker{}
	var bio, tagLine sql.NullString
	if err := row.Scan(&sp.ID, &sp.EventID, &sp.FullName, &bio, &tagLine, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return nil, err
	}
	sp.Bio = bio.String
	sp.TagLine = tagLine.String
	return sp, nil
}
