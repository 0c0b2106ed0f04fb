package app

import "fmt"

// Version, Commit, and BuildTime are injected via -ldflags at build time,
// e.g. -X github.com/heartmarshall/studylog-backend/internal/app.Version=1.0.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build identity for startup logs and the health
// endpoint.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
