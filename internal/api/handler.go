// internal/api/handler.go
package api

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github-events-pipeline/internal/database"
)

const maxLimit = 500

// Handler is the container for API dependencies.
type Handler struct {
	db     database.Querier
	logger *slog.Logger
}

// NewRouter creates a chi router serving the read-only analytics endpoints.
func NewRouter(db database.Querier, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", h.healthCheck)
	r.Route("/metrics", func(r chi.Router) {
		r.Get("/events-per-hour", h.getEventsPerHour)
		r.Get("/event-types", h.getEventTypes)
		r.Get("/top-repos", h.getTopRepos)
		r.Get("/top-actors", h.getTopActors)
		r.Get("/pipeline-runs", h.getPipelineRuns)
		r.Get("/anomalies", h.getAnomalies)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type hourCount struct {
	HourBucket  time.Time `json:"hour_bucket"`
	TotalEvents int64     `json:"total_events"`
}

// getEventsPerHour returns the most recent hours, oldest first.
// GET /metrics/events-per-hour?limit=N
func (h *Handler) getEventsPerHour(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 48)
	if !ok {
		return
	}
	rows, err := h.db.ListEventsPerHour(r.Context(), limit)
	if err != nil {
		h.internalError(w, "Failed to list events per hour", err)
		return
	}

	out := make([]hourCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, hourCount{HourBucket: row.HourBucket.Time.UTC(), TotalEvents: row.TotalEvents})
	}
	slices.Reverse(out)
	respondWithJSON(w, http.StatusOK, out)
}

type typeCount struct {
	EventType   string `json:"event_type"`
	TotalEvents int64  `json:"total_events"`
}

// GET /metrics/event-types?limit=N
func (h *Handler) getEventTypes(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 20)
	if !ok {
		return
	}
	rows, err := h.db.ListEventTypeDistribution(r.Context(), limit)
	if err != nil {
		h.internalError(w, "Failed to list event types", err)
		return
	}

	out := make([]typeCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, typeCount{EventType: row.EventType, TotalEvents: row.Total})
	}
	respondWithJSON(w, http.StatusOK, out)
}

type repoCount struct {
	RepoName    string `json:"repo_name"`
	TotalEvents int64  `json:"total_events"`
}

// GET /metrics/top-repos?limit=N
func (h *Handler) getTopRepos(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 10)
	if !ok {
		return
	}
	rows, err := h.db.ListTopRepos(r.Context(), limit)
	if err != nil {
		h.internalError(w, "Failed to list top repos", err)
		return
	}

	out := make([]repoCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, repoCount{RepoName: row.RepoName.String, TotalEvents: row.TotalEvents})
	}
	respondWithJSON(w, http.StatusOK, out)
}

type actorCount struct {
	ActorLogin  string `json:"actor_login"`
	TotalEvents int64  `json:"total_events"`
}

// GET /metrics/top-actors?limit=N
func (h *Handler) getTopActors(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 10)
	if !ok {
		return
	}
	rows, err := h.db.ListTopActors(r.Context(), limit)
	if err != nil {
		h.internalError(w, "Failed to list top actors", err)
		return
	}

	out := make([]actorCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, actorCount{ActorLogin: row.ActorLogin.String, TotalEvents: row.TotalEvents})
	}
	respondWithJSON(w, http.StatusOK, out)
}

type pipelineRun struct {
	RunID        string     `json:"run_id"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
	Status       string     `json:"status"`
	RowsFetched  int32      `json:"rows_fetched"`
	RowsInserted int32      `json:"rows_inserted"`
	ErrorMessage *string    `json:"error_message"`
}

// getPipelineRuns returns the latest runs, newest first.
// GET /metrics/pipeline-runs?limit=N
func (h *Handler) getPipelineRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 20)
	if !ok {
		return
	}
	rows, err := h.db.ListPipelineRuns(r.Context(), limit)
	if err != nil {
		h.internalError(w, "Failed to list pipeline runs", err)
		return
	}

	out := make([]pipelineRun, 0, len(rows))
	for _, row := range rows {
		run := pipelineRun{
			RunID:        uuid.UUID(row.RunID.Bytes).String(),
			StartedAt:    row.StartedAt.Time.UTC(),
			Status:       row.Status,
			RowsFetched:  row.RowsFetched,
			RowsInserted: row.RowsInserted,
		}
		if row.FinishedAt.Valid {
			t := row.FinishedAt.Time.UTC()
			run.FinishedAt = &t
		}
		if row.ErrorMessage.Valid {
			msg := row.ErrorMessage.String
			run.ErrorMessage = &msg
		}
		out = append(out, run)
	}
	respondWithJSON(w, http.StatusOK, out)
}

type hourActivity struct {
	HourBucket  time.Time `json:"hour_bucket"`
	TotalEvents int64     `json:"total_events"`
	OverallAvg  float64   `json:"overall_avg"`
	IsAnomaly   bool      `json:"is_anomaly"`
}

// GET /metrics/anomalies?limit=N
func (h *Handler) getAnomalies(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 24)
	if !ok {
		return
	}
	rows, err := h.db.ListHourlyAnomalies(r.Context(), limit)
	if err != nil {
		h.internalError(w, "Failed to list hourly anomalies", err)
		return
	}

	out := make([]hourActivity, 0, len(rows))
	for _, row := range rows {
		out = append(out, hourActivity{
			HourBucket:  row.HourBucket.Time.UTC(),
			TotalEvents: row.TotalEvents,
			OverallAvg:  row.OverallAvg,
			IsAnomaly:   row.IsAnomaly,
		})
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// parseLimit reads the limit query parameter and writes a 400 when it is invalid.
func parseLimit(w http.ResponseWriter, r *http.Request, def int32) (int32, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return def, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > maxLimit {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 500.")
		return 0, false
	}
	return int32(limit), true
}
