package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/studylog-backend/internal/config"
	"github.com/heartmarshall/studylog-backend/internal/transport/middleware"
)

// TokenValidator resolves access tokens for the auth middleware.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Tracker *TrackerHandler
	Journal *JournalHandler
	Health  *HealthHandler
}

// NewRouter builds the HTTP routing table with the shared middleware chain.
// Health probes bypass auth and rate limiting; everything under /api runs
// through the full chain, and record endpoints additionally require a
// logged-in user.
func NewRouter(
	logger *slog.Logger,
	cfg config.CORSConfig,
	validator TokenValidator,
	limiter *middleware.RateLimiter,
	maxPerMinute int,
	h Handlers,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	api := http.NewServeMux()

	api.HandleFunc("POST /api/auth/register", h.Auth.Register)
	api.HandleFunc("POST /api/auth/login", h.Auth.Login)
	api.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	api.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	api.Handle("POST /api/auth/password", middleware.RequireAuth(http.HandlerFunc(h.Auth.ChangePassword)))

	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(fn)
	}

	api.Handle("GET /api/courses", authed(h.Tracker.ListCourses))
	api.Handle("POST /api/courses", authed(h.Tracker.AddCourse))
	api.Handle("PATCH /api/courses/{name}", authed(h.Tracker.UpdateCourse))
	api.Handle("DELETE /api/courses/{name}", authed(h.Tracker.DeleteCourse))
	api.Handle("GET /api/skills", authed(h.Tracker.Skills))

	api.Handle("GET /api/modules", authed(h.Tracker.ListModules))
	api.Handle("POST /api/modules", authed(h.Tracker.AddModule))
	api.Handle("PATCH /api/modules/{name}", authed(h.Tracker.UpdateModule))
	api.Handle("DELETE /api/modules/{name}", authed(h.Tracker.DeleteModule))

	api.Handle("GET /api/journal", authed(h.Journal.List))
	api.Handle("POST /api/journal", authed(h.Journal.AddEntry))
	api.Handle("DELETE /api/journal/{id}", authed(h.Journal.DeleteEntry))

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg),
		limiter.Limit(maxPerMinute),
		middleware.Auth(validator),
	)

	mux.Handle("/api/", chain(api))

	return mux
}
