// Package module implements the university-module repository using SQLite.
package module

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const table = "modules"

var columns = []string{"id", "owner_id", "name", "year", "completed", "created_at", "updated_at"}

// Repo provides module persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new module repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new module.
// Returns domain.ErrAlreadyExists if the owner already has a module with the same name.
func (r *Repo) Create(ctx context.Context, m *domain.Module) error {
	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(m.ID, m.OwnerID, m.Name, string(m.Year), m.Completed, m.CreatedAt, m.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "module", m.Name)
	}

	return nil
}

// GetByName returns an owner's module by name.
// Returns domain.ErrNotFound if no such module exists.
func (r *Repo) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Module, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID, "name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	m, err := scanModule(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "module", name)
	}

	return m, nil
}

// List returns an owner's modules ordered by name, filtered per opts.
// Returns an empty slice (not nil) when the owner has no matching modules.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, opts domain.ModuleFilter) ([]*domain.Module, error) {
	b := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("name")

	if opts.Year != nil {
		b = b.Where(sq.Eq{"year": string(*opts.Year)})
	}
	if opts.CompletedOnly {
		b = b.Where(sq.Eq{"completed": true})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	modules := []*domain.Module{}
	for rows.Next() {
		var (
			m    domain.Module
			year string
		)
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Name, &year, &m.Completed, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		m.Year = domain.ModuleYear(year)
		modules = append(modules, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	return modules, nil
}

// Update rewrites a module row by primary key.
// Returns domain.ErrNotFound if the module does not exist, and
// domain.ErrAlreadyExists if a rename collides with another module.
func (r *Repo) Update(ctx context.Context, m *domain.Module) error {
	query, args, err := sq.Update(table).
		Set("name", m.Name).
		Set("year", string(m.Year)).
		Set("completed", m.Completed).
		Set("updated_at", m.UpdatedAt).
		Where(sq.Eq{"id": m.ID, "owner_id": m.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "module", m.Name)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("module %s: %w", m.Name, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an owner's module by name.
// Returns domain.ErrNotFound if no such module exists.
func (r *Repo) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	query, args, err := sq.Delete(table).
		Where(sq.Eq{"owner_id": ownerID, "name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "module", name)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("module %s: %w", name, domain.ErrNotFound)
	}

	return nil
}

func scanModule(row *sql.Row) (*domain.Module, error) {
	var (
		m    domain.Module
		year string
	)
	err := row.Scan(&m.ID, &m.OwnerID, &m.Name, &year, &m.Completed, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Year = domain.ModuleYear(year)
	return &m, nil
}
