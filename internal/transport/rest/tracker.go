package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/internal/service/tracker"
)

// trackerService defines the minimal interface needed by TrackerHandler.
type trackerService interface {
	AddCourse(ctx context.Context, input tracker.AddCourseInput) (*domain.Course, error)
	UpdateCourse(ctx context.Context, input tracker.UpdateCourseInput) (*domain.Course, error)
	DeleteCourse(ctx context.Context, input tracker.DeleteInput) error
	ListCourses(ctx context.Context, input tracker.ListCoursesInput) ([]*domain.Course, error)
	Skills(ctx context.Context) ([]domain.Skill, error)

	AddModule(ctx context.Context, input tracker.AddModuleInput) (*domain.Module, error)
	UpdateModule(ctx context.Context, input tracker.UpdateModuleInput) (*domain.Module, error)
	DeleteModule(ctx context.Context, input tracker.DeleteInput) error
	ListModules(ctx context.Context, input tracker.ListModulesInput) ([]*domain.Module, error)
}

// TrackerHandler serves course and module REST endpoints.
type TrackerHandler struct {
	svc trackerService
	log *slog.Logger
}

// NewTrackerHandler creates a TrackerHandler.
func NewTrackerHandler(svc trackerService, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{svc: svc, log: logger.With("handler", "tracker")}
}

type courseRequest struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Topic     string `json:"topic"`
	Completed bool   `json:"completed"`
}

type courseUpdateRequest struct {
	NewName   *string `json:"newName"`
	Provider  *string `json:"provider"`
	Topic     *string `json:"topic"`
	Completed *bool   `json:"completed"`
}

type courseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Topic     string `json:"topic"`
	Completed bool   `json:"completed"`
}

type moduleRequest struct {
	Name      string `json:"name"`
	Year      string `json:"year"`
	Completed bool   `json:"completed"`
}

type moduleUpdateRequest struct {
	NewName   *string `json:"newName"`
	Year      *string `json:"year"`
	Completed *bool   `json:"completed"`
}

type moduleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Year      string `json:"year"`
	Completed bool   `json:"completed"`
}

type skillResponse struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// AddCourse handles POST /api/courses.
func (h *TrackerHandler) AddCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.svc.AddCourse(r.Context(), tracker.AddCourseInput{
		Name:      req.Name,
		Provider:  req.Provider,
		Topic:     req.Topic,
		Completed: req.Completed,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCourseResponse(course))
}

// UpdateCourse handles PATCH /api/courses/{name}.
func (h *TrackerHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.svc.UpdateCourse(r.Context(), tracker.UpdateCourseInput{
		Name:      r.PathValue("name"),
		NewName:   req.NewName,
		Provider:  req.Provider,
		Topic:     req.Topic,
		Completed: req.Completed,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

// DeleteCourse handles DELETE /api/courses/{name}.
func (h *TrackerHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteCourse(r.Context(), tracker.DeleteInput{Name: r.PathValue("name")})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCourses handles GET /api/courses?sort=|completed=true.
func (h *TrackerHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	courses, err := h.svc.ListCourses(r.Context(), tracker.ListCoursesInput{
		SortBy:        domain.CourseSortField(q.Get("sort")),
		CompletedOnly: q.Get("completed") == "true",
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// Skills handles GET /api/skills.
func (h *TrackerHandler) Skills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.Skills(r.Context())
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillResponse{Topic: s.Topic, Count: s.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

// AddModule handles POST /api/modules.
func (h *TrackerHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	var req moduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	module, err := h.svc.AddModule(r.Context(), tracker.AddModuleInput{
		Name:      req.Name,
		Year:      domain.ModuleYear(req.Year),
		Completed: req.Completed,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toModuleResponse(module))
}

// UpdateModule handles PATCH /api/modules/{name}.
func (h *TrackerHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	var req moduleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var year *domain.ModuleYear
	if req.Year != nil {
		y := domain.ModuleYear(*req.Year)
		year = &y
	}

	module, err := h.svc.UpdateModule(r.Context(), tracker.UpdateModuleInput{
		Name:      r.PathValue("name"),
		NewName:   req.NewName,
		Year:      year,
		Completed: req.Completed,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toModuleResponse(module))
}

// DeleteModule handles DELETE /api/modules/{name}.
func (h *TrackerHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteModule(r.Context(), tracker.DeleteInput{Name: r.PathValue("name")})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListModules handles GET /api/modules?year=|completed=true.
func (h *TrackerHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var year *domain.ModuleYear
	if v := q.Get("year"); v != "" {
		y := domain.ModuleYear(v)
		year = &y
	}

	modules, err := h.svc.ListModules(r.Context(), tracker.ListModulesInput{
		Year:          year,
		CompletedOnly: q.Get("completed") == "true",
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]moduleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, toModuleResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func toCourseResponse(c *domain.Course) courseResponse {
	return courseResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Provider:  c.Provider,
		Topic:     c.Topic,
		Completed: c.Completed,
	}
}

func toModuleResponse(m *domain.Module) moduleResponse {
	return moduleResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Year:      string(m.Year),
		Completed: m.Completed,
	}
}
