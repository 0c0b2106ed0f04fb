// Package session implements the login-session repository using SQLite.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const table = "sessions"

var columns = []string{"id", "user_id", "token_hash", "expires_at", "created_at", "revoked_at"}

// Repo provides session persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new session repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new session.
func (r *Repo) Create(ctx context.Context, s *domain.Session) error {
	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(s.ID, s.UserID, s.TokenHash, s.ExpiresAt, s.CreatedAt, s.RevokedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "session", s.ID.String())
	}

	return nil
}

// GetByTokenHash returns a session by its token hash.
// Returns domain.ErrNotFound if no such session exists.
func (r *Repo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	var (
		s         domain.Session
		revokedAt sql.NullTime
	)
	err = q.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt, &revokedAt)
	if err != nil {
		return nil, sqlite.MapError(err, "session", "by token")
	}
	if revokedAt.Valid {
		s.RevokedAt = &revokedAt.Time
	}

	return &s, nil
}

// Revoke marks a session as revoked.
// Returns domain.ErrNotFound if the session does not exist.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
	query, args, err := sq.Update(table).
		Set("revoked_at", revokedAt).
		Where(sq.Eq{"id": id, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "session", id.String())
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// RevokeAllForUser revokes every active session of a user.
// Used on password change to force re-login everywhere.
func (r *Repo) RevokeAllForUser(ctx context.Context, userID uuid.UUID, revokedAt time.Time) error {
	query, args, err := sq.Update(table).
		Set("revoked_at", revokedAt).
		Where(sq.Eq{"user_id": userID, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "session", userID.String())
	}

	return nil
}

// DeleteExpired removes sessions that expired before the cutoff, plus any
// revoked sessions. Returns the number of rows deleted.
func (r *Repo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := sq.Delete(table).
		Where(sq.Or{
			sq.Lt{"expires_at": cutoff},
			sq.NotEq{"revoked_at": nil},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}
