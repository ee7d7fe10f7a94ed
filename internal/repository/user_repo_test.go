package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mycask-api/internal/model"
)

var userRows = []string{
	"id", "first_name", "last_name", "email", "password_hash", "username",
	"is_active", "created_at", "updated_at", "deleted_at",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewUserRepository(mock)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	t.Run("returns the user including inactive accounts", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		now := time.Now().UTC()
		deleted := now.Add(-time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("gone@x.com").
			WillReturnRows(pgxmock.NewRows(userRows).
				AddRow(int64(7), nil, nil, "gone@x.com", "$2a$12$hash", nil,
					false, now, now, &deleted))

		user, err := repo.FindByEmail(context.Background(), "gone@x.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.False(t, user.IsActive)
		require.NotNil(t, user.DeletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps no rows to the not-found sentinel", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("nobody@x.com").
			WillReturnRows(pgxmock.NewRows(userRows))

		_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, model.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps infrastructure errors", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("a@x.com").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.FindByEmail(context.Background(), "a@x.com")
		require.Error(t, err)
		require.NotErrorIs(t, err, model.ErrUserNotFound)
		assert.Contains(t, err.Error(), "find user by email")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Exists(t *testing.T) {
	t.Run("email", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE email = \$1\)`).
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("username", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE username = \$1\)`).
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.ExistsByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("returns the inserted row with database-assigned fields", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		username := "alice"
		now := time.Now().UTC()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("a@x.com", "$2a$12$hash", &username, (*string)(nil), (*string)(nil)).
			WillReturnRows(pgxmock.NewRows(userRows).
				AddRow(int64(1), nil, nil, "a@x.com", "$2a$12$hash", &username,
					true, now, now, nil))

		user, err := repo.Create(context.Background(), model.NewUser{
			Email:        "a@x.com",
			PasswordHash: "$2a$12$hash",
			Username:     &username,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.True(t, user.IsActive)
		require.NotNil(t, user.Username)
		assert.Equal(t, "alice", *user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("classifies unique violations by constraint", func(t *testing.T) {
		cases := []struct {
			name       string
			constraint string
			want       error
		}{
			{"email constraint", "users_email_key", model.ErrDuplicateEmail},
			{"username constraint", "users_username_key", model.ErrDuplicateUsername},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				mock, repo := newMockRepo(t)

				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("a@x.com", "$2a$12$hash", (*string)(nil), (*string)(nil), (*string)(nil)).
					WillReturnError(&pgconn.PgError{
						Code:           "23505",
						ConstraintName: tc.constraint,
					})

				_, err := repo.Create(context.Background(), model.NewUser{
					Email:        "a@x.com",
					PasswordHash: "$2a$12$hash",
				})
				require.ErrorIs(t, err, tc.want)
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		}
	})

	t.Run("other database errors pass through wrapped", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("a@x.com", "$2a$12$hash", (*string)(nil), (*string)(nil), (*string)(nil)).
			WillReturnError(&pgconn.PgError{Code: "53300"}) // too many connections

		_, err := repo.Create(context.Background(), model.NewUser{
			Email:        "a@x.com",
			PasswordHash: "$2a$12$hash",
		})
		require.Error(t, err)
		require.NotErrorIs(t, err, model.ErrDuplicateEmail)
		require.NotErrorIs(t, err, model.ErrDuplicateUsername)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Deactivate(t *testing.T) {
	t.Run("soft-deletes an active user", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
			WithArgs(int64(7), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Deactivate(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or already-inactive user reports not found", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
			WithArgs(int64(8), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Deactivate(context.Background(), 8)
		require.ErrorIs(t, err, model.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
