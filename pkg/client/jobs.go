package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/psantana5/flexdash/pkg/models"
)

// ListJobsParams filters a job listing. Zero-valued fields are not sent,
// so the hub's own defaults apply.
type ListJobsParams struct {
	// Limit is the page size
	Limit int
	// Before restricts results to jobs strictly older than this job ID
	Before string
	State  models.JobState
	Label  string
}

func (p *ListJobsParams) query() (url.Values, error) {
	q := url.Values{}
	if p == nil {
		return q, nil
	}
	if p.Limit < 0 {
		return nil, fmt.Errorf("invalid limit %d: must be positive", p.Limit)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Before != "" {
		q.Set("before", p.Before)
	}
	if p.State != "" {
		q.Set("state", string(p.State))
	}
	if p.Label != "" {
		q.Set("label", p.Label)
	}
	return q, nil
}

type listJobsResponse struct {
	Jobs []models.JobStatus `json:"jobs"`
}

type getJobResponse struct {
	Job *models.JobStatus `json:"job"`
}

// ListJobs returns one page of jobs, newest first. An empty page is not an
// error; it means there are no more jobs to fetch.
func (c *Client) ListJobs(ctx context.Context, params *ListJobsParams) ([]models.JobStatus, error) {
	q, err := params.query()
	if err != nil {
		return nil, err
	}

	var res listJobsResponse
	if err := c.getJSON(ctx, "api/jobs", q, &res); err != nil {
		return nil, err
	}
	if err := validateJobStatuses("jobs", res.Jobs); err != nil {
		return nil, &DecodeError{URL: c.mustEndpoint("api/jobs", q), Err: err}
	}
	if res.Jobs == nil {
		res.Jobs = []models.JobStatus{}
	}
	return res.Jobs, nil
}

// GetJob returns the status of a single job
func (c *Client) GetJob(ctx context.Context, id string) (*models.JobStatus, error) {
	if id == "" {
		return nil, errors.New("job id is required")
	}

	ref := "api/jobs/" + escapeSegment(id)
	var res getJobResponse
	if err := c.getJSON(ctx, ref, nil, &res); err != nil {
		return nil, err
	}
	if res.Job == nil {
		return nil, &DecodeError{URL: c.mustEndpoint(ref, nil), Err: errors.New("missing field job")}
	}
	if err := validateJobStatus("job", res.Job); err != nil {
		return nil, &DecodeError{URL: c.mustEndpoint(ref, nil), Err: err}
	}
	if res.Job.Job.ID != id {
		return nil, &DecodeError{
			URL: c.mustEndpoint(ref, nil),
			Err: fmt.Errorf("job.job.id: requested %q, got %q", id, res.Job.Job.ID),
		}
	}
	return res.Job, nil
}

// GetJobOutput fetches a job's stdout or stderr. The response is returned as
// is, whatever its status: missing output is an expected condition and the
// caller decides how to present it. The caller must close the body.
// An error is returned only when the request could not be sent.
func (c *Client) GetJobOutput(ctx context.Context, id string, outputType models.JobOutputType) (*http.Response, error) {
	if id == "" {
		return nil, errors.New("job id is required")
	}
	switch outputType {
	case models.JobOutputStdout, models.JobOutputStderr:
	default:
		return nil, fmt.Errorf("invalid output type %q", outputType)
	}

	ref := "api/jobs/" + escapeSegment(id) + "/" + string(outputType)
	return c.do(ctx, ref, nil, "text/plain")
}

// ReadJobOutput fetches and reads a job output stream. Any error means the
// output is unavailable and should not abort the surrounding work.
func (c *Client) ReadJobOutput(ctx context.Context, id string, outputType models.JobOutputType) (string, error) {
	resp, err := c.GetJobOutput(ctx, id, outputType)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", outputType, err)
	}
	return string(b), nil
}

// mustEndpoint is used for error reporting after a request already succeeded
// with the same ref, so resolution cannot fail here.
func (c *Client) mustEndpoint(ref string, query url.Values) string {
	s, err := c.endpoint(ref, query)
	if err != nil {
		return ref
	}
	return s
}
