package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/heartmarshall/studylog-backend/internal/adapter/jsonfile"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite/course"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite/logentry"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite/module"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite/session"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite/user"
	"github.com/google/uuid"
	"github.com/heartmarshall/studylog-backend/internal/auth"
	"github.com/heartmarshall/studylog-backend/internal/config"
	"github.com/heartmarshall/studylog-backend/internal/domain"
	authsvc "github.com/heartmarshall/studylog-backend/internal/service/auth"
	"github.com/heartmarshall/studylog-backend/internal/service/journal"
	"github.com/heartmarshall/studylog-backend/internal/service/tracker"
	"github.com/heartmarshall/studylog-backend/internal/transport/middleware"
	"github.com/heartmarshall/studylog-backend/internal/transport/rest"
)

// Driver-neutral views over the repositories. Both storage backends
// implement the same method sets, so the services can be wired against
// either one.
type userRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, u *domain.User) error
}

type sessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, revokedAt time.Time) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type courseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Course, error)
	List(ctx context.Context, ownerID uuid.UUID, opts domain.CourseFilter) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
	Skills(ctx context.Context, ownerID uuid.UUID) ([]domain.Skill, error)
}

type moduleRepo interface {
	Create(ctx context.Context, m *domain.Module) error
	GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Module, error)
	List(ctx context.Context, ownerID uuid.UUID, opts domain.ModuleFilter) ([]*domain.Module, error)
	Update(ctx context.Context, m *domain.Module) error
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
}

type logRepo interface {
	Create(ctx context.Context, e *domain.LogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LogEntry, error)
	List(ctx context.Context, opts domain.LogFilter) ([]*domain.LogEntry, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage bundles everything a configured persistence backend provides:
// the repositories, the transaction manager, a readiness probe, and a
// close hook for shutdown.
type storage struct {
	users    userRepo
	sessions sessionRepo
	courses  courseRepo
	modules  moduleRepo
	entries  logRepo
	tx       txManager
	ping     func(ctx context.Context) error
	close    func() error
}

// Run is the application entry point. It loads configuration, initializes
// the logger, opens the configured storage backend, wires the services and
// HTTP transport, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	// Step 1: load configuration and set up logging.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	// Step 2: open the persistence backend.
	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if cerr := store.close(); cerr != nil {
			logger.Error("closing storage", slog.Any("error", cerr))
		}
	}()

	// Step 3: build services.
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, store.users, store.sessions, store.tx, tokens, cfg.Auth)
	trackerService := tracker.NewService(logger, store.courses, store.modules, store.tx)
	journalService := journal.NewService(logger, store.entries, store.users)

	// Step 4: build the HTTP transport.
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handlers := rest.Handlers{
		Auth:    rest.NewAuthHandler(authService, logger),
		Tracker: rest.NewTrackerHandler(trackerService, logger),
		Journal: rest.NewJournalHandler(journalService, logger),
		Health:  rest.NewHealthHandler(rest.PingerFunc(store.ping), BuildVersion()),
	}

	router := rest.NewRouter(logger, cfg.CORS, authService, limiter, cfg.Server.RateLimitPerMinute, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Step 5: serve until the context is cancelled, then shut down gracefully.
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// openStorage opens the backend named by cfg.Driver and wires its
// repositories into the driver-neutral storage bundle.
func openStorage(ctx context.Context, cfg config.StorageConfig) (*storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:    user.New(db),
			sessions: session.New(db),
			courses:  course.New(db),
			modules:  module.New(db),
			entries:  logentry.New(db),
			tx:       sqlite.NewTxManager(db),
			ping:     db.PingContext,
			close:    db.Close,
		}, nil

	case config.DriverJSONFile:
		store, err := jsonfile.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		ping := func(context.Context) error {
			_, statErr := os.Stat(cfg.Path)
			return statErr
		}
		return &storage{
			users:    jsonfile.NewUserRepo(store),
			sessions: jsonfile.NewSessionRepo(store),
			courses:  jsonfile.NewCourseRepo(store),
			modules:  jsonfile.NewModuleRepo(store),
			entries:  jsonfile.NewLogEntryRepo(store),
			tx:       jsonfile.NewTxManager(),
			ping:     ping,
			close:    func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
