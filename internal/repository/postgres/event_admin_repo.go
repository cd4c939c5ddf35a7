package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventscheduling/internal/domain"
)

type EventAdminRepository struct {
	DB *sql.DB
}

func NewEventAdminRepository(db *sql.DB) domain.EventAdminRepository {
	return &EventAdminRepository{
		DB: db,
	}
}

func (r *EventAdminRepository) Add(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_admins (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	res, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlreadyAdmin
	}
	return nil
}

func (r *EventAdminRepository) Remove(ctx context.Context, eventID, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM event_admins WHERE event_id = $1 AND user_id = $2`, eventID, userID)
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

func (r *EventAdminRepository) IsAdmin(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT 1 FROM event_admins WHERE event_id = $1 AND user_id = $2 LIMIT 1`
	var one int
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
