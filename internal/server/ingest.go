// internal/server/ingest.go
package server

import (
	"net/http"
	"strconv"
	"time"
)

const defaultIncrementalHoursBack = 24

func (s *Server) handleIngestSync(w http.ResponseWriter, r *http.Request) {
	report := s.deps.Pipeline.SyncAll(r.Context())
	status := http.StatusOK
	if report.Status == "error" {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, report)
}

// handleIngestSyncIncremental syncs rows modified in the last hours_back
// hours (default 24).
func (s *Server) handleIngestSyncIncremental(w http.ResponseWriter, r *http.Request) {
	hoursBack := defaultIncrementalHoursBack
	if raw := r.URL.Query().Get("hours_back"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "hours_back must be a positive integer")
			return
		}
		hoursBack = parsed
	}

	since := time.Now().Add(-time.Duration(hoursBack) * time.Hour)
	report := s.deps.Pipeline.SyncIncremental(r.Context(), since)
	status := http.StatusOK
	if report.Status == "error" {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, report)
}

func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	info, err := s.deps.Pipeline.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "collection status retrieved",
		"data":    info,
	})
}

func (s *Server) handleIngestClear(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Pipeline.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "vector collection cleared",
	})
}
