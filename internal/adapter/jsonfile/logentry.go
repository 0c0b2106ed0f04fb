package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/internal/query"
)

const logEntriesCollection = "log_entries"

type logEntryRecord struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	LinkTitle  *string   `json:"link_title,omitempty"`
	Link       *string   `json:"link,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func toLogEntryRecord(e *domain.LogEntry) logEntryRecord {
	return logEntryRecord{
		ID:         e.ID,
		OwnerID:    e.OwnerID,
		Title:      e.Title,
		Body:       e.Body,
		LinkTitle:  e.LinkTitle,
		Link:       e.Link,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
	}
}

func (r logEntryRecord) toDomain() *domain.LogEntry {
	return &domain.LogEntry{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Title:      r.Title,
		Body:       r.Body,
		LinkTitle:  r.LinkTitle,
		Link:       r.Link,
		OccurredAt: r.OccurredAt,
		CreatedAt:  r.CreatedAt,
	}
}

// LogEntryRepo provides learning-log persistence backed by a JSON file.
type LogEntryRepo struct {
	store *Store
}

// NewLogEntryRepo creates a new learning-log repository.
func NewLogEntryRepo(store *Store) *LogEntryRepo {
	return &LogEntryRepo{store: store}
}

// Create appends a new journal entry.
func (r *LogEntryRepo) Create(_ context.Context, e *domain.LogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[logEntryRecord](r.store, logEntriesCollection)
	if err != nil {
		return err
	}

	records = append(records, toLogEntryRecord(e))
	return writeAll(r.store, logEntriesCollection, records)
}

// GetByID returns a journal entry by ID.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *LogEntryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.LogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[logEntryRecord](r.store, logEntriesCollection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain(), nil
		}
	}

	return nil, fmt.Errorf("log entry %s: %w", id, domain.ErrNotFound)
}

// List returns journal entries matching opts, newest first.
// Returns an empty slice (not nil) when nothing matches.
func (r *LogEntryRepo) List(_ context.Context, opts domain.LogFilter) ([]*domain.LogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[logEntryRecord](r.store, logEntriesCollection)
	if err != nil {
		return nil, err
	}

	spec := query.Spec[logEntryRecord]{
		Sort:  func(a, b logEntryRecord) bool { return a.OccurredAt.Before(b.OccurredAt) },
		Desc:  true,
		Range: query.DateRange{From: opts.From, To: opts.To},
		At:    func(rec logEntryRecord) time.Time { return rec.OccurredAt },
	}
	if opts.OwnerID != nil {
		ownerID := *opts.OwnerID
		spec.Filters = append(spec.Filters, func(rec logEntryRecord) bool { return rec.OwnerID == ownerID })
	}

	matched := spec.Apply(records)

	entries := make([]*domain.LogEntry, len(matched))
	for i, rec := range matched {
		entries[i] = rec.toDomain()
	}
	return entries, nil
}

// Delete removes an owner's journal entry by ID.
// Returns domain.ErrNotFound if no such entry exists for that owner.
func (r *LogEntryRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[logEntryRecord](r.store, logEntriesCollection)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.ID == id && rec.OwnerID == ownerID {
			records = append(records[:i], records[i+1:]...)
			return writeAll(r.store, logEntriesCollection, records)
		}
	}

	return fmt.Errorf("log entry %s: %w", id, domain.ErrNotFound)
}
