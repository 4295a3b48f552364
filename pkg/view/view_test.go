package view

import (
	"testing"

	"github.com/psantana5/flexdash/pkg/models"
)

func TestStateLabel(t *testing.T) {
	tests := []struct {
		name string
		job  models.JobStatus
		want string
	}{
		{"pending", models.JobStatus{State: models.JobStatePending}, "Pending"},
		{"running", models.JobStatus{State: models.JobStateRunning}, "Running"},
		{"success", models.JobStatus{State: models.JobStateFinished, Result: models.TaskResult{ExitCode: 0}}, "Success"},
		{"failure", models.JobStatus{State: models.JobStateFinished, Result: models.TaskResult{ExitCode: 2}}, "Failure"},
		{"unspecified", models.JobStatus{State: models.JobStateUnspecified}, "UNSPECIFIED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateLabel(tt.job).Text; got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLoadFallsBackToJobCount(t *testing.T) {
	tests := []struct {
		cores int32
		jobs  int
		want  string
	}{
		{cores: -1, jobs: 2, want: "2 / 2"},
		{cores: -1, jobs: 0, want: "0 / 0"},
		{cores: 4, jobs: 2, want: "2 / 4"},
		{cores: 0, jobs: 0, want: "0 / 0"},
	}
	for _, tt := range tests {
		f := models.FlexletStatus{
			Flexlet:     models.Flexlet{Name: "w", Spec: models.FlexletSpec{Cores: tt.cores}},
			CurrentJobs: make([]models.Job, tt.jobs),
		}
		if got := Load(f); got != tt.want {
			t.Errorf("cores=%d jobs=%d: expected %q, got %q", tt.cores, tt.jobs, tt.want, got)
		}
	}
}

func TestCommandLine(t *testing.T) {
	got := CommandLine([]string{"bash", "-c", "echo hello world"})
	if got != "bash -c 'echo hello world'" {
		t.Errorf("Unexpected command line: %s", got)
	}
}

func TestOnlineFlexlets(t *testing.T) {
	flexlets := []models.FlexletStatus{
		{Flexlet: models.Flexlet{Name: "a"}, State: models.FlexletStateOnline},
		{Flexlet: models.Flexlet{Name: "b"}, State: models.FlexletStateOffline},
		{Flexlet: models.Flexlet{Name: "c"}, State: models.FlexletStateOnline},
	}
	online := OnlineFlexlets(flexlets)
	if len(online) != 2 || online[0].Flexlet.Name != "a" || online[1].Flexlet.Name != "c" {
		t.Errorf("Unexpected online flexlets: %+v", online)
	}
}

func TestResultTimeAndPackageName(t *testing.T) {
	d := "1.5s"
	if got := ResultTime(models.TaskResult{Time: &d}); got != "1.5s" {
		t.Errorf("Expected 1.5s, got %s", got)
	}
	if got := ResultTime(models.TaskResult{}); got != "-" {
		t.Errorf("Expected -, got %s", got)
	}
	if got := PackageName(models.JobPackage{Hash: "abc"}); got != "abc" {
		t.Errorf("Expected abc, got %s", got)
	}
	if got := PackageName(models.JobPackage{Hash: "abc", Tag: "tools"}); got != "abc (tools)" {
		t.Errorf("Expected abc (tools), got %s", got)
	}
}

func TestNextCursorAndTotalCores(t *testing.T) {
	if NextCursor(nil) != "" {
		t.Error("Expected empty cursor for empty page")
	}
	jobs := []models.JobStatus{{Job: models.Job{ID: "9"}}, {Job: models.Job{ID: "7"}}}
	if NextCursor(jobs) != "7" {
		t.Errorf("Expected cursor 7, got %s", NextCursor(jobs))
	}
	stats := models.Stats{Flexlet: models.FlexletStats{BusyCores: 3, IdleCores: 5}}
	if TotalCores(stats) != 8 {
		t.Errorf("Expected 8 total cores, got %d", TotalCores(stats))
	}
}
