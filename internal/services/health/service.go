// Package health reports process liveness and dependency reachability.
package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks.
type Service struct {
	db *sql.DB
}

// NewService constructs a health service. db may be nil when the server runs
// on the in-memory catalog.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Status returns the health payload. The database check is best-effort and
// bounded so a hung pool cannot hang the probe.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true, "storage": "memory"}
	if s.db == nil {
		return out
	}
	out["storage"] = "postgres"
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		out["ok"] = false
		out["database"] = err.Error()
		return out
	}
	out["database"] = "up"
	return out
}
