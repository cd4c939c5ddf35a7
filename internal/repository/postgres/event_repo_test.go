package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "owner_id", "date", "location", "description", "created_at", "updated_at",
	})
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		event := &domain.Event{
			Name:      "GopherCon",
			OwnerID:   "user-1",
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		mock.ExpectQuery(`INSERT INTO events`).
			WithArgs("GopherCon", "user-1", sql.NullTime{}, sql.NullString{}, sql.NullString{}, createdAt, createdAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("event-uuid-1"))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Create(ctx, event))
		require.Equal(t, "event-uuid-1", event.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO events`).
			WillReturnError(sql.ErrConnDone)

		repo := NewEventRepository(db)
		require.Error(t, repo.Create(ctx, &domain.Event{Name: "GopherCon", OwnerID: "user-1"}))
	})
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id`).
			WithArgs("ev-1").
			WillReturnRows(eventRows().
				AddRow("ev-1", "GopherCon", "user-1", date, "Berlin", nil, createdAt, createdAt))

		repo := NewEventRepository(db)
		event, err := repo.GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, "GopherCon", event.Name)
		require.NotNil(t, event.Date)
		require.Equal(t, date, *event.Date)
		require.Equal(t, "Berlin", event.Location)
		require.Empty(t, event.Description)
	})

	t.Run("missing event maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE id`).
			WithArgs("ev-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "ev-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM events WHERE id`).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM events WHERE id`).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEventRepository(db)
	require.NoError(t, repo.Delete(ctx, "ev-1"))
	require.ErrorIs(t, repo.Delete(ctx, "ev-1"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAdminRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("add and duplicate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO event_admins`).
			WithArgs("ev-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO event_admins`).
			WithArgs("ev-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventAdminRepository(db)
		require.NoError(t, repo.Add(ctx, "ev-1", "user-2"))
		require.ErrorIs(t, repo.Add(ctx, "ev-1", "user-2"), domain.ErrAlreadyAdmin)
	})

	t.Run("is admin", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT 1 FROM event_admins`).
			WithArgs("ev-1", "user-2").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectQuery(`SELECT 1 FROM event_admins`).
			WithArgs("ev-1", "user-3").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventAdminRepository(db)
		isAdmin, err := repo.IsAdmin(ctx, "ev-1", "user-2")
		require.NoError(t, err)
		require.True(t, isAdmin)

		isAdmin, err = repo.IsAdmin(ctx, "ev-1", "user-3")
		require.NoError(t, err)
		require.False(t, isAdmin)
	})

	t.Run("remove missing maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM event_admins`).
			WithArgs("ev-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventAdminRepository(db)
		require.ErrorIs(t, repo.Remove(ctx, "ev-1", "user-2"), domain.ErrNotFound)
	})
}
