package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/internal/query"
)

const modulesCollection = "modules"

type moduleRecord struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Year      string    `json:"year"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toModuleRecord(m *domain.Module) moduleRecord {
	return moduleRecord{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Year:      string(m.Year),
		Completed: m.Completed,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r moduleRecord) toDomain() *domain.Module {
	return &domain.Module{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Year:      domain.ModuleYear(r.Year),
		Completed: r.Completed,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ModuleRepo provides module persistence backed by a JSON file.
type ModuleRepo struct {
	store *Store
}

// NewModuleRepo creates a new module repository.
func NewModuleRepo(store *Store) *ModuleRepo {
	return &ModuleRepo{store: store}
}

// Create appends a new module.
// Returns domain.ErrAlreadyExists if the owner already has a module with the same name.
func (r *ModuleRepo) Create(_ context.Context, m *domain.Module) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[moduleRecord](r.store, modulesCollection)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.OwnerID == m.OwnerID && rec.Name == m.Name {
			return fmt.Errorf("module %s: %w", m.Name, domain.ErrAlreadyExists)
		}
	}

	records = append(records, toModuleRecord(m))
	return writeAll(r.store, modulesCollection, records)
}

// GetByName returns an owner's module by name.
// Returns domain.ErrNotFound if no such module exists.
func (r *ModuleRepo) GetByName(_ context.Context, ownerID uuid.UUID, name string) (*domain.Module, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[moduleRecord](r.store, modulesCollection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.OwnerID == ownerID && rec.Name == name {
			return rec.toDomain(), nil
		}
	}

	return nil, fmt.Errorf("module %s: %w", name, domain.ErrNotFound)
}

// List returns an owner's modules ordered by name, filtered per opts.
// Returns an empty slice (not nil) when the owner has no matching modules.
func (r *ModuleRepo) List(_ context.Context, ownerID uuid.UUID, opts domain.ModuleFilter) ([]*domain.Module, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[moduleRecord](r.store, modulesCollection)
	if err != nil {
		return nil, err
	}

	spec := query.Spec[moduleRecord]{
		Filters: []query.Predicate[moduleRecord]{
			func(rec moduleRecord) bool { return rec.OwnerID == ownerID },
		},
		Sort: func(a, b moduleRecord) bool { return a.Name < b.Name },
	}
	if opts.Year != nil {
		year := string(*opts.Year)
		spec.Filters = append(spec.Filters, func(rec moduleRecord) bool { return rec.Year == year })
	}
	if opts.CompletedOnly {
		spec.Filters = append(spec.Filters, func(rec moduleRecord) bool { return rec.Completed })
	}

	matched := spec.Apply(records)

	modules := make([]*domain.Module, len(matched))
	for i, rec := range matched {
		modules[i] = rec.toDomain()
	}
	return modules, nil
}

// Update rewrites a module by primary key.
// Returns domain.ErrNotFound if the module does not exist, and
// domain.ErrAlreadyExists if a rename collides with another module.
func (r *ModuleRepo) Update(_ context.Context, m *domain.Module) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[moduleRecord](r.store, modulesCollection)
	if err != nil {
		return err
	}

	idx := -1
	for i, rec := range records {
		if rec.ID == m.ID && rec.OwnerID == m.OwnerID {
			idx = i
			continue
		}
		if rec.OwnerID == m.OwnerID && rec.Name == m.Name {
			return fmt.Errorf("module %s: %w", m.Name, domain.ErrAlreadyExists)
		}
	}
	if idx < 0 {
		return fmt.Errorf("module %s: %w", m.Name, domain.ErrNotFound)
	}

	records[idx] = toModuleRecord(m)
	return writeAll(r.store, modulesCollection, records)
}

// Delete removes an owner's module by name.
// Returns domain.ErrNotFound if no such module exists.
func (r *ModuleRepo) Delete(_ context.Context, ownerID uuid.UUID, name string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[moduleRecord](r.store, modulesCollection)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.OwnerID == ownerID && rec.Name == name {
			records = append(records[:i], records[i+1:]...)
			return writeAll(r.store, modulesCollection, records)
		}
	}

	return fmt.Errorf("module %s: %w", name, domain.ErrNotFound)
}
