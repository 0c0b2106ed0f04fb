// Package user implements the user repository using SQLite.
package user

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const table = "users"

var columns = []string{"id", "username", "password_hash", "created_at", "updated_at"}

// Repo provides user persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new user repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new user.
// Returns domain.ErrAlreadyExists if the username is taken.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(u.ID, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "user", u.Username)
	}

	return nil
}

// GetByID returns a user by primary key.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	u, err := scanUser(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "user", id.String())
	}

	return u, nil
}

// GetByUsername returns a user by username.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	u, err := scanUser(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "user", username)
	}

	return u, nil
}

// UpdatePasswordHash replaces the user's password hash.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) UpdatePasswordHash(ctx context.Context, u *domain.User) error {
	query, args, err := sq.Update(table).
		Set("password_hash", u.PasswordHash).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "user", u.ID.String())
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}

	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
