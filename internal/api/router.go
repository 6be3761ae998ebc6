package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/navrex0/roastbot/internal/api/middleware"
	"github.com/navrex0/roastbot/internal/redact"
)

// readinessTimeout bounds the database ping behind /readyz.
const readinessTimeout = 2 * time.Second

// NewRouter builds the ops router. /healthz reports process liveness and
// uptime; /readyz pings the database and answers 503 while it is unreachable.
func NewRouter(logger *slog.Logger, db *sql.DB) http.Handler {
	started := time.Now()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, logger, http.StatusOK, map[string]string{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), readinessTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("readiness probe failed",
				slog.String("trace_id", middleware.GetTraceID(req.Context())),
				slog.String("error", redact.Error(err)))
			respondJSON(w, logger, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  "database unreachable",
			})
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// respondJSON writes a JSON response with the given status code and payload.
func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}
