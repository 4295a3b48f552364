// Package fakehub is an in-memory Flex hub that serves the REST API the
// dashboard and CLI consume. It backs tests and local development.
package fakehub

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/psantana5/flexdash/pkg/models"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrOutputNotFound = errors.New("output not found")
	ErrInvalidJobID   = errors.New("invalid job id")
)

const (
	// DefaultLimit is the page size used when a listing does not specify one
	DefaultLimit = 100
	// MaxLimit caps the page size
	MaxLimit = 1000
)

// JobQuery filters ListJobs. Before of 0 means no cursor.
type JobQuery struct {
	Limit  int
	Before int64
	State  models.JobState
	Label  string
}

type outputKey struct {
	id  int64
	typ models.JobOutputType
}

// Store holds jobs, flexlets and job outputs in memory.
// Job IDs are decimal integers; a larger ID is a newer job.
type Store struct {
	mu       sync.RWMutex
	jobs     map[int64]models.JobStatus
	nextID   int64
	flexlets map[string]models.FlexletStatus
	outputs  map[outputKey]string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		jobs:     make(map[int64]models.JobStatus),
		nextID:   1,
		flexlets: make(map[string]models.FlexletStatus),
		outputs:  make(map[outputKey]string),
	}
}

func parseJobID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidJobID, id)
	}
	return n, nil
}

// AddJob stores a job under the next free ID and returns that ID.
// Any ID already set on status is overwritten.
func (s *Store) AddJob(status models.JobStatus) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	status.Job.ID = strconv.FormatInt(id, 10)
	s.jobs[id] = normalizeJobStatus(status)
	return status.Job.ID
}

// UpdateJob replaces a stored job, matched by ID
func (s *Store) UpdateJob(status models.JobStatus) error {
	id, err := parseJobID(status.Job.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return ErrJobNotFound
	}
	s.jobs[id] = normalizeJobStatus(status)
	return nil
}

// GetJob retrieves a job by ID
func (s *Store) GetJob(id string) (models.JobStatus, error) {
	n, err := parseJobID(id)
	if err != nil {
		return models.JobStatus{}, ErrJobNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[n]
	if !ok {
		return models.JobStatus{}, ErrJobNotFound
	}
	return job, nil
}

// ListJobs returns jobs newest first, applying q
func (s *Store) ListJobs(q JobQuery) []models.JobStatus {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.jobs))
	for id := range s.jobs {
		if q.Before > 0 && id >= q.Before {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	jobs := make([]models.JobStatus, 0, limit)
	for _, id := range ids {
		if len(jobs) == limit {
			break
		}
		job := s.jobs[id]
		if q.State != "" && job.State != q.State {
			continue
		}
		if q.Label != "" && !hasLabel(job.Job, q.Label) {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

func hasLabel(job models.Job, label string) bool {
	for _, l := range job.Spec.Annotations.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// SetOutput records a job's captured output
func (s *Store) SetOutput(id string, outputType models.JobOutputType, output string) error {
	n, err := parseJobID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[n]; !ok {
		return ErrJobNotFound
	}
	s.outputs[outputKey{id: n, typ: outputType}] = output
	return nil
}

// GetOutput returns a job's captured output
func (s *Store) GetOutput(id string, outputType models.JobOutputType) (string, error) {
	n, err := parseJobID(id)
	if err != nil {
		return "", ErrJobNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.jobs[n]; !ok {
		return "", ErrJobNotFound
	}
	out, ok := s.outputs[outputKey{id: n, typ: outputType}]
	if !ok {
		return "", ErrOutputNotFound
	}
	return out, nil
}

// PutFlexlet adds or replaces a flexlet, keyed by name
func (s *Store) PutFlexlet(status models.FlexletStatus) {
	jobs := make([]models.Job, len(status.CurrentJobs))
	for i, job := range status.CurrentJobs {
		jobs[i] = normalizeJob(job)
	}
	status.CurrentJobs = jobs

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flexlets[status.Flexlet.Name] = status
}

// ListFlexlets returns all flexlets sorted by name
func (s *Store) ListFlexlets() []models.FlexletStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flexlets := make([]models.FlexletStatus, 0, len(s.flexlets))
	for _, f := range s.flexlets {
		flexlets = append(flexlets, f)
	}
	sort.Slice(flexlets, func(i, j int) bool {
		return flexlets[i].Flexlet.Name < flexlets[j].Flexlet.Name
	})
	return flexlets
}

// Stats computes counters from the current contents. Busy cores are the
// jobs running on online flexlets; idle cores only count flexlets with a
// known core count.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.Stats
	for _, job := range s.jobs {
		switch job.State {
		case models.JobStatePending:
			stats.Job.PendingJobs++
		case models.JobStateRunning:
			stats.Job.RunningJobs++
		}
	}
	for _, f := range s.flexlets {
		if f.State != models.FlexletStateOnline {
			stats.Flexlet.OfflineFlexlets++
			continue
		}
		stats.Flexlet.OnlineFlexlets++
		busy := int32(len(f.CurrentJobs))
		stats.Flexlet.BusyCores += busy
		if f.Flexlet.Spec.Cores > busy {
			stats.Flexlet.IdleCores += f.Flexlet.Spec.Cores - busy
		}
	}
	return stats
}

// normalizeJobStatus makes sure list fields encode as [] rather than null
func normalizeJobStatus(status models.JobStatus) models.JobStatus {
	status.Job = normalizeJob(status.Job)
	return status
}

func normalizeJob(job models.Job) models.Job {
	if job.Spec.Command.Args == nil {
		job.Spec.Command.Args = []string{}
	}
	if job.Spec.Inputs.Packages == nil {
		job.Spec.Inputs.Packages = []models.JobPackage{}
	}
	if job.Spec.Annotations.Labels == nil {
		job.Spec.Annotations.Labels = []string{}
	}
	return job
}
