// internal/server/health.go
package server

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// handleHealth reports overall service health plus per-dependency
// reachability. The endpoint itself always answers 200; orchestrators read
// the status field.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	deps := map[string]string{}
	healthy := true

	check := func(name string, p Pinger) {
		if p == nil {
			return
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = err.Error()
			healthy = false
			return
		}
		deps[name] = "ok"
	}
	check("postgres", s.deps.DB)
	check("redis", s.deps.Cache)

	if s.deps.Vector != nil {
		info, err := s.deps.Vector.CollectionInfo(ctx)
		switch {
		case err != nil:
			deps["qdrant"] = err.Error()
			healthy = false
		case !info.Exists:
			deps["qdrant"] = "collection missing"
		default:
			deps["qdrant"] = "ok"
		}
	}

	status := "healthy"
	if !healthy {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       status,
		"dependencies": deps,
	})
}
