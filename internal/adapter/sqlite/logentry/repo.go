// Package logentry implements the learning-log repository using SQLite.
package logentry

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const table = "log_entries"

var columns = []string{"id", "owner_id", "title", "body", "link_title", "link", "occurred_at", "created_at"}

// Repo provides learning-log persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new learning-log repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new journal entry.
func (r *Repo) Create(ctx context.Context, e *domain.LogEntry) error {
	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(e.ID, e.OwnerID, e.Title, e.Body, e.LinkTitle, e.Link, e.OccurredAt, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "log entry", e.ID.String())
	}

	return nil
}

// GetByID returns a journal entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LogEntry, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	e, err := scanEntry(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "log entry", id.String())
	}

	return e, nil
}

// List returns journal entries matching opts, newest first.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, opts domain.LogFilter) ([]*domain.LogEntry, error) {
	b := sq.Select(columns...).
		From(table).
		OrderBy("occurred_at DESC")

	if opts.OwnerID != nil {
		b = b.Where(sq.Eq{"owner_id": *opts.OwnerID})
	}
	if !opts.From.IsZero() {
		b = b.Where(sq.GtOrEq{"occurred_at": opts.From})
	}
	if !opts.To.IsZero() {
		b = b.Where(sq.LtOrEq{"occurred_at": opts.To})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.LogEntry{}
	for rows.Next() {
		e, err := scanEntryFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	return entries, nil
}

// Delete removes an owner's journal entry by ID.
// Returns domain.ErrNotFound if no such entry exists for that owner.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query, args, err := sq.Delete(table).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "log entry", id.String())
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("log entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanEntry(row *sql.Row) (*domain.LogEntry, error) {
	var (
		e         domain.LogEntry
		linkTitle sql.NullString
		link      sql.NullString
	)
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Body, &linkTitle, &link, &e.OccurredAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	applyNullables(&e, linkTitle, link)
	return &e, nil
}

func scanEntryFromRows(rows *sql.Rows) (*domain.LogEntry, error) {
	var (
		e         domain.LogEntry
		linkTitle sql.NullString
		link      sql.NullString
	)
	err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Body, &linkTitle, &link, &e.OccurredAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	applyNullables(&e, linkTitle, link)
	return &e, nil
}

func applyNullables(e *domain.LogEntry, linkTitle, link sql.NullString) {
	if linkTitle.Valid {
		e.LinkTitle = &linkTitle.String
	}
	if link.Valid {
		e.Link = &link.String
	}
}
