// Command cleanup-sessions deletes expired and revoked sessions.
//
// Usage:
//
//	cleanup-sessions
//
// Intended to be run periodically (e.g. from cron). Uses the same
// configuration as the server, so it works against either storage driver.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/heartmarshall/studylog-backend/internal/adapter/jsonfile"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite/session"
	"github.com/heartmarshall/studylog-backend/internal/config"
)

type sessionCleaner interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var sessions sessionCleaner
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.Path)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		sessions = session.New(db)
	case config.DriverJSONFile:
		store, err := jsonfile.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		sessions = jsonfile.NewSessionRepo(store)
	default:
		log.Fatalf("unknown storage driver %q", cfg.Storage.Driver)
	}

	deleted, err := sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Fatalf("cleanup sessions: %v", err)
	}

	fmt.Printf("Deleted %d expired/revoked sessions.\n", deleted)
}
