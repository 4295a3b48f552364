package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/psantana5/flexdash/pkg/client"
	"github.com/psantana5/flexdash/pkg/logging"
	"github.com/psantana5/flexdash/pkg/models"
	"github.com/psantana5/flexdash/pkg/view"
)

// defaultPageSize is the number of jobs on one page of /jobs/
const defaultPageSize = 100

type indexValues struct {
	Base       baseValues
	Stats      models.Stats
	TotalCores int32
}

type jobsValues struct {
	Base    baseValues
	Jobs    []models.JobStatus
	NextURL string
}

type jobValues struct {
	Base        baseValues
	Job         models.JobStatus
	Stdout      string
	StdoutError string
	Stderr      string
	StderrError string
}

type flexletsValues struct {
	Base       baseValues
	Flexlets   []models.FlexletStatus
	OnlineOnly bool
}

// hubError maps a failed hub call to a response. A job the hub does not
// know is a 404; anything else means the backend misbehaved.
func (s *Server) hubError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if client.IsNotFound(err) {
		status = http.StatusNotFound
	}
	s.logger.Warn("Hub request failed", logging.Fields{
		"path":       r.URL.Path,
		"status":     status,
		"error":      err,
		"request_id": RequestID(r.Context()),
	})
	http.Error(w, err.Error(), status)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, values interface{}) {
	if err := renderHTML(w, tmpl, values); err != nil {
		s.logger.Error("Failed to render page", logging.Fields{"path": r.URL.Path, "error": err})
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	stats, err := s.hub.GetStats(r.Context())
	if err != nil {
		s.hubError(w, r, err)
		return
	}
	values := &indexValues{
		Base:       s.base(sectionIndex),
		Stats:      *stats,
		TotalCores: view.TotalCores(*stats),
	}
	s.renderPage(w, r, templateIndex, values)
}

func parseJobsQuery(q url.Values) (*client.ListJobsParams, error) {
	params := &client.ListJobsParams{
		Limit:  defaultPageSize,
		Before: q.Get("before"),
		State:  models.JobState(q.Get("state")),
		Label:  q.Get("label"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		params.Limit = n
	}
	if params.State != "" && !params.State.Valid() {
		return nil, fmt.Errorf("invalid state %q", params.State)
	}
	return params, nil
}

// olderURL links to the page after jobs, keeping the current filters
func olderURL(params *client.ListJobsParams, jobs []models.JobStatus) string {
	cursor := view.NextCursor(jobs)
	if cursor == "" {
		return ""
	}
	q := url.Values{}
	q.Set("before", cursor)
	if params.Limit != defaultPageSize {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.State != "" {
		q.Set("state", string(params.State))
	}
	if params.Label != "" {
		q.Set("label", params.Label)
	}
	return "/jobs/?" + q.Encode()
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	params, err := parseJobsQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	jobs, err := s.hub.ListJobs(r.Context(), params)
	if err != nil {
		s.hubError(w, r, err)
		return
	}
	values := &jobsValues{
		Base:    s.base(sectionJobs),
		Jobs:    jobs,
		NextURL: olderURL(params, jobs),
	}
	s.renderPage(w, r, templateJobs, values)
}

// readOutputs fetches stdout and stderr concurrently. Failures are reported
// in the values rather than failing the page.
func (s *Server) readOutputs(ctx context.Context, id string, values *jobValues) {
	var wg sync.WaitGroup
	read := func(t models.JobOutputType, out, errMsg *string) {
		defer wg.Done()
		text, err := s.hub.ReadJobOutput(ctx, id, t)
		if err != nil {
			*errMsg = fmt.Sprintf("Failed to load %s: %v", t, err)
			return
		}
		*out = text
	}
	wg.Add(2)
	go read(models.JobOutputStdout, &values.Stdout, &values.StdoutError)
	go read(models.JobOutputStderr, &values.Stderr, &values.StderrError)
	wg.Wait()
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := s.hub.GetJob(r.Context(), id)
	if err != nil {
		s.hubError(w, r, err)
		return
	}

	values := &jobValues{Base: s.base(sectionJobs), Job: *job}
	if job.State == models.JobStateFinished {
		s.readOutputs(r.Context(), id, values)
	}
	s.renderPage(w, r, templateJob, values)
}

func (s *Server) handleFlexlets(w http.ResponseWriter, r *http.Request) {
	flexlets, err := s.hub.ListFlexlets(r.Context())
	if err != nil {
		s.hubError(w, r, err)
		return
	}
	onlineOnly := r.URL.Query().Get("online") == "1"
	if onlineOnly {
		flexlets = view.OnlineFlexlets(flexlets)
	}
	values := &flexletsValues{
		Base:       s.base(sectionFlexlets),
		Flexlets:   flexlets,
		OnlineOnly: onlineOnly,
	}
	s.renderPage(w, r, templateFlexlets, values)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
