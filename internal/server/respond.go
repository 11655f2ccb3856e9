// internal/server/respond.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/EmmanuelSan01/SportBot/internal/common/errors"
	"github.com/EmmanuelSan01/SportBot/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// writeStandardError emits the structured error envelope used for store and
// validation failures.
func writeStandardError(w http.ResponseWriter, status int, serr *apperrors.StandardError) {
	writeJSON(w, status, map[string]interface{}{
		"status": "error",
		"error":  serr,
	})
}

// writeStoreError maps store failures to HTTP statuses.
func writeStoreError(w http.ResponseWriter, entity string, id int64, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeStandardError(w, http.StatusNotFound, apperrors.NewRecordNotFoundError(entity, id))
		return
	}
	writeStandardError(w, http.StatusInternalServerError,
		apperrors.NewQueryExecutionFailedError(entity, err))
}
