package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	AddEntry(ctx context.Context, input journal.AddEntryInput) (*domain.LogEntry, error)
	DeleteEntry(ctx context.Context, input journal.DeleteEntryInput) error
	List(ctx context.Context, input journal.ListInput) ([]*domain.LogEntry, error)
}

// JournalHandler serves learning-log REST endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type entryRequest struct {
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Link       *string    `json:"link"`
	LinkTitle  *string    `json:"linkTitle"`
	OccurredAt *time.Time `json:"occurredAt"`
}

type entryResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Link       *string   `json:"link,omitempty"`
	LinkTitle  *string   `json:"linkTitle,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AddEntry handles POST /api/journal.
func (h *JournalHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := journal.AddEntryInput{
		Title:     req.Title,
		Body:      req.Body,
		Link:      req.Link,
		LinkTitle: req.LinkTitle,
	}
	if req.OccurredAt != nil {
		input.OccurredAt = *req.OccurredAt
	}

	entry, err := h.svc.AddEntry(r.Context(), input)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/journal/{id}.
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), journal.DeleteEntryInput{ID: id}); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/journal?scope=&user=&from=&to=.
// Scope defaults to mine; from/to accept RFC 3339 timestamps or plain dates.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	scope := domain.LogScope(q.Get("scope"))
	if scope == "" {
		scope = domain.ScopeMine
	}

	from, err := parseTimeParam(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parseTimeParam(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date")
		return
	}

	entries, err := h.svc.List(r.Context(), journal.ListInput{
		Scope:    scope,
		Username: q.Get("user"),
		From:     from,
		To:       to,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// parseTimeParam accepts RFC 3339 timestamps and date-only values.
func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func toEntryResponse(e *domain.LogEntry) entryResponse {
	return entryResponse{
		ID:         e.ID.String(),
		Title:      e.Title,
		Body:       e.Body,
		Link:       e.Link,
		LinkTitle:  e.LinkTitle,
		OccurredAt: e.OccurredAt,
	}
}
