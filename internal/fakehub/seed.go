package fakehub

import (
	"fmt"

	"github.com/psantana5/flexdash/pkg/models"
)

func strPtr(s string) *string {
	return &s
}

// Seed fills s with a small, varied data set for local development: finished
// jobs with and without output, running and pending jobs, and flexlets with
// known and unknown core counts.
func Seed(s *Store) {
	for i := 1; i <= 25; i++ {
		status := models.JobStatus{
			Job: models.Job{
				Spec: models.JobSpec{
					Command:     models.JobCommand{Args: []string{"bash", "-c", fmt.Sprintf("echo 'task %d' && sleep 1", i)}},
					Inputs:      models.JobInputs{Packages: []models.JobPackage{{Hash: fmt.Sprintf("%040x", i), Tag: "", InstallDir: "bin"}}},
					Limits:      models.JobLimits{Time: "60s"},
					Constraints: models.JobConstraints{Priority: int32(i % 3)},
					Annotations: models.JobAnnotations{Labels: []string{"demo"}},
				},
			},
			State:  models.JobStateFinished,
			TaskID: fmt.Sprintf("task-%d", i),
			Result: models.TaskResult{ExitCode: 0, Message: "exit status 0", Time: strPtr("1.02s")},
		}
		if i%7 == 0 {
			status.Result = models.TaskResult{ExitCode: 1, Message: "exit status 1", Time: strPtr("0.4s")}
		}
		if i%5 == 0 {
			status.Job.Spec.Inputs.Packages[0].Tag = "tools"
			status.Job.Spec.Annotations.Labels = append(status.Job.Spec.Annotations.Labels, "nightly")
		}
		status.FlexletName = fmt.Sprintf("flexlet-%d", i%2+1)
		id := s.AddJob(status)
		if i%4 != 0 {
			s.SetOutput(id, models.JobOutputStdout, fmt.Sprintf("task %d\n", i))
			s.SetOutput(id, models.JobOutputStderr, "")
		}
	}

	running := models.JobStatus{
		Job: models.Job{Spec: models.JobSpec{
			Command: models.JobCommand{Args: []string{"make", "test"}},
			Limits:  models.JobLimits{Time: "10m"},
		}},
		State:       models.JobStateRunning,
		TaskID:      "task-running",
		FlexletName: "flexlet-1",
	}
	runningID := s.AddJob(running)
	running.Job.ID = runningID

	s.AddJob(models.JobStatus{
		Job: models.Job{Spec: models.JobSpec{
			Command: models.JobCommand{Args: []string{"python3", "train.py", "--epochs=10"}},
			Limits:  models.JobLimits{Time: "1h"},
		}},
		State: models.JobStatePending,
	})

	s.PutFlexlet(models.FlexletStatus{
		Flexlet:     models.Flexlet{Name: "flexlet-1", Spec: models.FlexletSpec{Cores: 4}},
		State:       models.FlexletStateOnline,
		CurrentJobs: []models.Job{running.Job},
	})
	s.PutFlexlet(models.FlexletStatus{
		Flexlet: models.Flexlet{Name: "flexlet-2", Spec: models.FlexletSpec{Cores: -1}},
		State:   models.FlexletStateOnline,
	})
	s.PutFlexlet(models.FlexletStatus{
		Flexlet: models.Flexlet{Name: "flexlet-3", Spec: models.FlexletSpec{Cores: 8}},
		State:   models.FlexletStateOffline,
	})
}
