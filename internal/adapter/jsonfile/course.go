package jsonfile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/internal/query"
)

const coursesCollection = "courses"

type courseRecord struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	Topic     string    `json:"topic"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCourseRecord(c *domain.Course) courseRecord {
	return courseRecord{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Provider:  c.Provider,
		Topic:     c.Topic,
		Completed: c.Completed,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r courseRecord) toDomain() *domain.Course {
	return &domain.Course{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Provider:  r.Provider,
		Topic:     r.Topic,
		Completed: r.Completed,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// CourseRepo provides course persistence backed by a JSON file.
// Listing queries are evaluated through the in-memory query engine.
type CourseRepo struct {
	store *Store
}

// NewCourseRepo creates a new course repository.
func NewCourseRepo(store *Store) *CourseRepo {
	return &CourseRepo{store: store}
}

// Create appends a new course.
// Returns domain.ErrAlreadyExists if the owner already has a course with the same name.
func (r *CourseRepo) Create(_ context.Context, c *domain.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[courseRecord](r.store, coursesCollection)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.OwnerID == c.OwnerID && rec.Name == c.Name {
			return fmt.Errorf("course %s: %w", c.Name, domain.ErrAlreadyExists)
		}
	}

	records = append(records, toCourseRecord(c))
	return writeAll(r.store, coursesCollection, records)
}

// GetByName returns an owner's course by name.
// Returns domain.ErrNotFound if no such course exists.
func (r *CourseRepo) GetByName(_ context.Context, ownerID uuid.UUID, name string) (*domain.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[courseRecord](r.store, coursesCollection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.OwnerID == ownerID && rec.Name == name {
			return rec.toDomain(), nil
		}
	}

	return nil, fmt.Errorf("course %s: %w", name, domain.ErrNotFound)
}

// List returns an owner's courses, filtered and ordered per opts.
// Returns an empty slice (not nil) when the owner has no matching courses.
func (r *CourseRepo) List(_ context.Context, ownerID uuid.UUID, opts domain.CourseFilter) ([]*domain.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[courseRecord](r.store, coursesCollection)
	if err != nil {
		return nil, err
	}

	spec := query.Spec[courseRecord]{
		Filters: []query.Predicate[courseRecord]{
			func(rec courseRecord) bool { return rec.OwnerID == ownerID },
		},
	}
	if opts.CompletedOnly {
		spec.Filters = append(spec.Filters, func(rec courseRecord) bool { return rec.Completed })
	}

	switch opts.SortBy {
	case domain.CourseSortByProvider:
		spec.Sort = func(a, b courseRecord) bool {
			if a.Provider != b.Provider {
				return a.Provider < b.Provider
			}
			return a.Name < b.Name
		}
	default:
		spec.Sort = func(a, b courseRecord) bool { return a.Name < b.Name }
	}

	matched := spec.Apply(records)

	courses := make([]*domain.Course, len(matched))
	for i, rec := range matched {
		courses[i] = rec.toDomain()
	}
	return courses, nil
}

// Update rewrites a course by primary key.
// Returns domain.ErrNotFound if the course does not exist, and
// domain.ErrAlreadyExists if a rename collides with another course.
func (r *CourseRepo) Update(_ context.Context, c *domain.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[courseRecord](r.store, coursesCollection)
	if err != nil {
		return err
	}

	idx := -1
	for i, rec := range records {
		if rec.ID == c.ID && rec.OwnerID == c.OwnerID {
			idx = i
			continue
		}
		if rec.OwnerID == c.OwnerID && rec.Name == c.Name {
			return fmt.Errorf("course %s: %w", c.Name, domain.ErrAlreadyExists)
		}
	}
	if idx < 0 {
		return fmt.Errorf("course %s: %w", c.Name, domain.ErrNotFound)
	}

	records[idx] = toCourseRecord(c)
	return writeAll(r.store, coursesCollection, records)
}

// Delete removes an owner's course by name.
// Returns domain.ErrNotFound if no such course exists.
func (r *CourseRepo) Delete(_ context.Context, ownerID uuid.UUID, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[courseRecord](r.store, coursesCollection)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.OwnerID == ownerID && rec.Name == name {
			records = append(records[:i], records[i+1:]...)
			return writeAll(r.store, coursesCollection, records)
		}
	}

	return fmt.Errorf("course %s: %w", name, domain.ErrNotFound)
}

// Skills aggregates the topics of an owner's completed courses,
// ordered by course count descending, then topic name ascending.
func (r *CourseRepo) Skills(_ context.Context, ownerID uuid.UUID) ([]domain.Skill, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[courseRecord](r.store, coursesCollection)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, rec := range records {
		if rec.OwnerID == ownerID && rec.Completed {
			counts[rec.Topic]++
		}
	}

	skills := make([]domain.Skill, 0, len(counts))
	for topic, count := range counts {
		skills = append(skills, domain.Skill{Topic: topic, Count: count})
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Count != skills[j].Count {
			return skills[i].Count > skills[j].Count
		}
		return strings.Compare(skills[i].Topic, skills[j].Topic) < 0
	})

	return skills, nil
}
