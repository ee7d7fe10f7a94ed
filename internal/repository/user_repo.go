package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mycask-api/internal/model"
)

// Pool is the slice of pgxpool.Pool the repository uses; pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements the auth service's UserStore on PostgreSQL.
type UserRepository struct {
	pool Pool
}

func NewUserRepository(pool Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, password_hash, username,
	        is_active, created_at, updated_at, deleted_at`

// FindByEmail returns the user regardless of the active flag. Callers decide
// what inactive means for their flow.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Username,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

// Create inserts the record and returns it with database-assigned fields.
// Unique-constraint violations map to the model sentinels so the service
// can tell a lost registration race apart from an infrastructure failure.
func (r *UserRepository) Create(ctx context.Context, nu model.NewUser) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, username, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		nu.Email, nu.PasswordHash, nu.Username, nu.FirstName, nu.LastName).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Username,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(strings.ToLower(pgErr.ConstraintName), "username") {
				return model.User{}, model.ErrDuplicateUsername
			}
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Deactivate soft-deletes a user: the row stays, the active flag drops and
// deleted_at records when.
func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = FALSE, deleted_at = $2, updated_at = $2
		 WHERE id = $1 AND is_active`, id, now)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
