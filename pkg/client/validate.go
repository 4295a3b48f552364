package client

import (
	"fmt"

	"github.com/psantana5/flexdash/pkg/models"
)

// Shape checks applied after JSON decoding. They reject responses that
// decoded without error but cannot be a valid resource, such as a job with
// no ID or an unknown state token.

func validateJobStatuses(path string, jobs []models.JobStatus) error {
	for i := range jobs {
		if err := validateJobStatus(fmt.Sprintf("%s[%d]", path, i), &jobs[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateJobStatus(path string, js *models.JobStatus) error {
	if err := validateJob(path+".job", &js.Job); err != nil {
		return err
	}
	switch {
	case js.State == "":
		return fmt.Errorf("%s.state: missing", path)
	case !js.State.Valid():
		return fmt.Errorf("%s.state: unknown job state %q", path, js.State)
	}
	return nil
}

func validateJob(path string, job *models.Job) error {
	if job.ID == "" {
		return fmt.Errorf("%s.id: missing", path)
	}
	for i, pkg := range job.Spec.Inputs.Packages {
		if pkg.Hash == "" {
			return fmt.Errorf("%s.spec.inputs.packages[%d].hash: missing", path, i)
		}
	}
	return nil
}

func validateFlexletStatuses(path string, flexlets []models.FlexletStatus) error {
	for i := range flexlets {
		p := fmt.Sprintf("%s[%d]", path, i)
		f := &flexlets[i]
		if f.Flexlet.Name == "" {
			return fmt.Errorf("%s.flexlet.name: missing", p)
		}
		switch f.State {
		case models.FlexletStateOnline, models.FlexletStateOffline:
		case "":
			return fmt.Errorf("%s.state: missing", p)
		default:
			return fmt.Errorf("%s.state: unknown flexlet state %q", p, f.State)
		}
		for j := range f.CurrentJobs {
			if err := validateJob(fmt.Sprintf("%s.currentJobs[%d]", p, j), &f.CurrentJobs[j]); err != nil {
				return err
			}
		}
	}
	return nil
}
