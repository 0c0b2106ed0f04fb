// Package course implements the course repository using SQLite.
// List pushes filtering and ordering down into SQL rather than evaluating
// queries in memory.
package course

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const table = "courses"

var columns = []string{"id", "owner_id", "name", "provider", "topic", "completed", "created_at", "updated_at"}

// Repo provides course persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new course repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new course.
// Returns domain.ErrAlreadyExists if the owner already has a course with the same name.
func (r *Repo) Create(ctx context.Context, c *domain.Course) error {
	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(c.ID, c.OwnerID, c.Name, c.Provider, c.Topic, c.Completed, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "course", c.Name)
	}

	return nil
}

// GetByName returns an owner's course by name.
// Returns domain.ErrNotFound if no such course exists.
func (r *Repo) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Course, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID, "name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	c, err := scanCourse(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "course", name)
	}

	return c, nil
}

// List returns an owner's courses, filtered and ordered per opts.
// Returns an empty slice (not nil) when the owner has no matching courses.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, opts domain.CourseFilter) ([]*domain.Course, error) {
	b := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID})

	if opts.CompletedOnly {
		b = b.Where(sq.Eq{"completed": true})
	}

	switch opts.SortBy {
	case domain.CourseSortByProvider:
		b = b.OrderBy("provider", "name")
	default:
		b = b.OrderBy("name")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Provider, &c.Topic, &c.Completed, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

// Update rewrites a course row by primary key.
// Returns domain.ErrNotFound if the course does not exist, and
// domain.ErrAlreadyExists if a rename collides with another course.
func (r *Repo) Update(ctx context.Context, c *domain.Course) error {
	query, args, err := sq.Update(table).
		Set("name", c.Name).
		Set("provider", c.Provider).
		Set("topic", c.Topic).
		Set("completed", c.Completed).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID, "owner_id": c.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "course", c.Name)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("course %s: %w", c.Name, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an owner's course by name.
// Returns domain.ErrNotFound if no such course exists.
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
		return sqlite.MapError(err, "course", name)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("course %s: %w", name, domain.ErrNotFound)
	}

	return nil
}

// Skills aggregates the topics of an owner's completed courses,
// ordered by course count descending, then topic name ascending.
func (r *Repo) Skills(ctx context.Context, ownerID uuid.UUID) ([]domain.Skill, error) {
	query, args, err := sq.Select("topic", "count(*) AS cnt").
		From(table).
		Where(sq.Eq{"owner_id": ownerID, "completed": true}).
		GroupBy("topic").
		OrderBy("cnt DESC", "topic ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.Topic, &s.Count); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate skills: %w", err)
	}

	return skills, nil
}

func scanCourse(row *sql.Row) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Provider, &c.Topic, &c.Completed, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
