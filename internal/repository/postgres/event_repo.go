package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventscheduling/internal/domain"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &EventRepository{
		DB: db,
	}
}

const eventColumns = `id, name, owner_id, date, location, description, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, owner_id, date, location, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var date sql.NullTime
	if e.Date != nil {
		date = sql.NullTime{Time: *e.Date, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.OwnerID, date, toNullString(e.Location), toNullString(e.Description),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
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

func scanEvent(row rowScanner) (*domain.Event, error) {
	event := &domain.Event{}
	var date sql.NullTime
	var location, description sql.NullString
	if err := row.Scan(
		&event.ID, &event.Name, &event.OwnerID, &date, &location, &description,
		&event.CreatedAt, &event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if date.Valid {
		d := date.Time
		event.Date = &d
	}
	event.Location = location.String
	event.Description = description.String
	return event, nil
}
