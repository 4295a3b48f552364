// Package dashboard serves the read-only HTML view of a Flex hub.
package dashboard

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/psantana5/flexdash/pkg/client"
	"github.com/psantana5/flexdash/pkg/logging"
	"github.com/psantana5/flexdash/pkg/metrics"
	"github.com/psantana5/flexdash/pkg/models"
	"github.com/psantana5/flexdash/pkg/ratelimit"
	"github.com/psantana5/flexdash/pkg/tracing"
)

// Hub is the subset of the Flex API the dashboard reads. *client.Client implements it.
type Hub interface {
	ListJobs(ctx context.Context, params *client.ListJobsParams) ([]models.JobStatus, error)
	GetJob(ctx context.Context, id string) (*models.JobStatus, error)
	ReadJobOutput(ctx context.Context, id string, outputType models.JobOutputType) (string, error)
	ListFlexlets(ctx context.Context) ([]models.FlexletStatus, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

// Options configures optional server behaviour. The zero value serves pages
// with no metrics, tracing or rate limiting.
type Options struct {
	// HubURL is shown in the page header
	HubURL string
	Logger *logging.Logger

	// Metrics instruments page handlers; Gatherer backs /metrics
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer

	Tracing *tracing.Provider
	Limiter *ratelimit.Limiter
}

// Server renders dashboard pages from a Hub
type Server struct {
	hub    Hub
	opts   Options
	logger *logging.Logger
}

// NewServer creates a dashboard server backed by hub
func NewServer(hub Hub, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{hub: hub, opts: opts, logger: logger.WithComponent("dashboard")}
}

func (s *Server) instrument(name string, h http.HandlerFunc) http.Handler {
	if s.opts.Metrics == nil {
		return h
	}
	return s.opts.Metrics.Instrument(name, h)
}

// Router returns the page routes without the middleware chain
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)

	r.Handle("/", s.instrument("index", s.handleIndex)).Methods("GET", "HEAD")
	r.Handle("/jobs/", s.instrument("jobs", s.handleJobs)).Methods("GET", "HEAD")
	r.Handle("/jobs/{id}/", s.instrument("job", s.handleJob)).Methods("GET", "HEAD")
	r.Handle("/flexlets/", s.instrument("flexlets", s.handleFlexlets)).Methods("GET", "HEAD")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET", "HEAD")
	if s.opts.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(s.opts.Gatherer)).Methods("GET")
	}
	return r
}

// Handler returns the full handler: request ids, access logging, tracing
// and rate limiting around the router.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router()
	if s.opts.Limiter != nil {
		h = s.opts.Limiter.Middleware(ratelimit.IPKeyFunc)(h)
	}
	if s.opts.Tracing != nil {
		h = tracing.HTTPMiddleware(s.opts.Tracing)(h)
	}
	h = LoggingMiddleware(s.logger)(h)
	return RequestIDMiddleware(h)
}

func (s *Server) base(sec section) baseValues {
	return baseValues{Section: sec, HubURL: s.opts.HubURL}
}
