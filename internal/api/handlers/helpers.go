package handlers

import (
	"encoding/json"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/platform/obs"
	"net/http"
)

func writeJSON(log *logger.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).WithFields(map[string]any{
			"req_id": obs.RequestID(r.Context()),
			"method": r.Method,
			"path":   r.URL.Path,
		}).Warn("encode response failed")
	}
}

func writeError(log *logger.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(log, w, r, status, map[string]string{"error": msg})
}
