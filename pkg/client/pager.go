package client

import (
	"context"

	"github.com/psantana5/flexdash/pkg/models"
)

// JobPager walks the job listing backwards in time, one page per call to
// Next, using the last job ID of each page as the cursor for the next.
type JobPager struct {
	client *Client
	params ListJobsParams
	done   bool
}

// NewJobPager creates a pager starting from params. params may be nil.
func NewJobPager(c *Client, params *ListJobsParams) *JobPager {
	p := &JobPager{client: c}
	if params != nil {
		p.params = *params
	}
	return p
}

// Next fetches the next page. After an empty page Done reports true and
// Next returns no more jobs. A failed fetch does not advance the cursor, so
// Next may be called again.
func (p *JobPager) Next(ctx context.Context) ([]models.JobStatus, error) {
	if p.done {
		return []models.JobStatus{}, nil
	}

	jobs, err := p.client.ListJobs(ctx, &p.params)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		p.done = true
		return jobs, nil
	}
	p.params.Before = jobs[len(jobs)-1].Job.ID
	return jobs, nil
}

// Done reports whether the last page has been reached
func (p *JobPager) Done() bool {
	return p.done
}

// Cursor returns the job ID the next page will start before
func (p *JobPager) Cursor() string {
	return p.params.Before
}
