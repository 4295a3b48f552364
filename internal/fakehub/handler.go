package fakehub

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/psantana5/flexdash/pkg/logging"
	"github.com/psantana5/flexdash/pkg/models"
)

// Handler serves the hub REST API from a Store
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a handler backed by s
func NewHandler(s *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{store: s, logger: logger.WithComponent("fakehub")}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/jobs", h.ListJobs).Methods("GET")
	r.HandleFunc("/api/jobs/{id}", h.GetJob).Methods("GET")
	r.HandleFunc("/api/jobs/{id}/{type:stdout|stderr}", h.GetJobOutput).Methods("GET")
	r.HandleFunc("/api/flexlets", h.ListFlexlets).Methods("GET")
	r.HandleFunc("/api/stats", h.GetStats).Methods("GET")
	r.HandleFunc("/healthz", h.Health).Methods("GET")
}

// NewRouter returns a router with all API routes registered
func (h *Handler) NewRouter() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListJobs handles GET /api/jobs
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var q JobQuery

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		q.Limit = limit
	}
	if v := query.Get("before"); v != "" {
		before, err := parseJobID(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q.Before = before
	}
	if v := query.Get("state"); v != "" {
		switch state := models.JobState(v); state {
		case models.JobStateUnspecified, models.JobStatePending, models.JobStateRunning, models.JobStateFinished:
			q.State = state
		default:
			http.Error(w, fmt.Sprintf("invalid state %q", v), http.StatusBadRequest)
			return
		}
	}
	q.Label = query.Get("label")

	jobs := h.store.ListJobs(q)
	h.logger.Debug("Listed jobs", logging.Fields{"count": len(jobs), "before": q.Before, "limit": q.Limit})
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// GetJob handles GET /api/jobs/{id}
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.store.GetJob(id)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"job": job})
}

// GetJobOutput handles GET /api/jobs/{id}/stdout and /stderr
func (h *Handler) GetJobOutput(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.store.GetOutput(vars["id"], models.JobOutputType(vars["type"]))
	if errors.Is(err, ErrJobNotFound) {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Output not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

// ListFlexlets handles GET /api/flexlets
func (h *Handler) ListFlexlets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"flexlets": h.store.ListFlexlets()})
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": h.store.Stats()})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "ok")
}
