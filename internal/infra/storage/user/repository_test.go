package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func TestRepository_Create(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO users \(name,phone_number,password_hash\)`).
			WithArgs("Ann", "+79990001122", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		u, err := repo.Create(context.Background(), &domain.User{Name: "Ann", PhoneNumber: "+79990001122", PasswordHash: "hash"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate phone", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), &domain.User{Name: "Ann", PhoneNumber: "+79990001122", PasswordHash: "hash"})
		assert.ErrorIs(t, err, ErrPhoneTaken)
	})
}

func TestRepository_GetByPhone(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE phone_number = \$1`).
			WithArgs("+79990001122").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(4, "Ann", "+79990001122", "hash", now, now))

		u, err := repo.GetByPhone(context.Background(), "+79990001122")
		require.NoError(t, err)
		assert.Equal(t, int64(4), u.ID)
		assert.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM users`).WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.GetByPhone(context.Background(), "+7000")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("phone collision", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`UPDATE users SET .+ WHERE id = \$4 RETURNING updated_at`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Update(context.Background(), &domain.User{ID: 1, Name: "Ann", PhoneNumber: "+7111", PasswordHash: "h"})
		assert.ErrorIs(t, err, ErrPhoneTaken)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`UPDATE users`).WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

		_, err := repo.Update(context.Background(), &domain.User{ID: 1})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`DELETE FROM users`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrUserNotFound)
	})

	t.Run("orders reference the user", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`DELETE FROM users`).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "orders_user_id_fkey"})

		err := repo.Delete(context.Background(), 4)
		assert.ErrorIs(t, err, ErrUserHasOrders)
		assert.NotErrorIs(t, err, domain.ErrStorageFailure)
	})

	t.Run("driver failure", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`DELETE FROM users`).WillReturnError(sqlmock.ErrCancelled)

		assert.ErrorIs(t, repo.Delete(context.Background(), 4), domain.ErrStorageFailure)
	})
}
