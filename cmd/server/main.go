// Command server runs the studylog HTTP API.
//
// Usage:
//
//	server
//
// Configuration is read from config.yaml (override with CONFIG_PATH) and
// environment variables. AUTH_JWT_SECRET is required.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/studylog-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
