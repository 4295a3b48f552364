package models

import (
	"encoding/json"
	"strings"
	"testing"
)

const finishedJobJSON = `{
  "job": {
    "id": "5",
    "spec": {
      "command": {"args": ["bash", "-c", "echo ok"]},
      "inputs": {"packages": [{"hash": "abc123", "tag": "", "installDir": "pkg"}]},
      "limits": {"time": "60s"},
      "constraints": {"priority": 3},
      "annotations": {"labels": ["nightly", "ci"]}
    }
  },
  "state": "FINISHED",
  "taskId": "t-1",
  "flexletName": "worker-1",
  "result": {"exitCode": 0, "message": "ok", "time": null}
}`

func TestJobStatusDecode(t *testing.T) {
	var status JobStatus
	if err := json.Unmarshal([]byte(finishedJobJSON), &status); err != nil {
		t.Fatalf("Failed to decode job status: %v", err)
	}

	if status.Job.ID != "5" {
		t.Errorf("Expected id 5, got %q", status.Job.ID)
	}
	if status.State != JobStateFinished {
		t.Errorf("Expected state FINISHED, got %s", status.State)
	}
	if got := strings.Join(status.Job.Spec.Command.Args, " "); got != "bash -c echo ok" {
		t.Errorf("Unexpected args: %q", got)
	}
	if status.Job.Spec.Constraints.Priority != 3 {
		t.Errorf("Expected priority 3, got %d", status.Job.Spec.Constraints.Priority)
	}
	if len(status.Job.Spec.Annotations.Labels) != 2 || status.Job.Spec.Annotations.Labels[0] != "nightly" {
		t.Errorf("Unexpected labels: %v", status.Job.Spec.Annotations.Labels)
	}
}

func TestEmptyTagRoundTrips(t *testing.T) {
	var status JobStatus
	if err := json.Unmarshal([]byte(finishedJobJSON), &status); err != nil {
		t.Fatalf("Failed to decode job status: %v", err)
	}

	data, err := json.Marshal(status)
	if err != nil {
		t.Fatalf("Failed to encode job status: %v", err)
	}
	if !strings.Contains(string(data), `"tag":""`) {
		t.Errorf("Expected empty tag to be encoded as \"\", got %s", data)
	}

	var again JobStatus
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("Failed to decode re-encoded job status: %v", err)
	}
	if again.Job.Spec.Inputs.Packages[0].Tag != "" {
		t.Errorf("Expected empty tag, got %q", again.Job.Spec.Inputs.Packages[0].Tag)
	}
}

func TestResultTimeNullVersusValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
		want    string
		encoded string
	}{
		{name: "null", input: `{"exitCode":0,"message":"","time":null}`, wantNil: true, encoded: `"time":null`},
		{name: "value", input: `{"exitCode":0,"message":"ok","time":"1.2s"}`, want: "1.2s", encoded: `"time":"1.2s"`},
		{name: "empty", input: `{"exitCode":0,"message":"ok","time":""}`, want: "", encoded: `"time":""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result TaskResult
			if err := json.Unmarshal([]byte(tt.input), &result); err != nil {
				t.Fatalf("Failed to decode result: %v", err)
			}
			if tt.wantNil {
				if result.Time != nil {
					t.Fatalf("Expected nil time, got %q", *result.Time)
				}
			} else {
				if result.Time == nil {
					t.Fatalf("Expected time %q, got nil", tt.want)
				}
				if *result.Time != tt.want {
					t.Errorf("Expected time %q, got %q", tt.want, *result.Time)
				}
			}

			data, err := json.Marshal(result)
			if err != nil {
				t.Fatalf("Failed to encode result: %v", err)
			}
			if !strings.Contains(string(data), tt.encoded) {
				t.Errorf("Expected %s in %s", tt.encoded, data)
			}
		})
	}
}

func TestFlexletStatusDecode(t *testing.T) {
	input := `{"flexlet":{"name":"w1","spec":{"cores":-1}},"state":"ONLINE","currentJobs":[{"id":"1","spec":{}},{"id":"2","spec":{}}]}`

	var status FlexletStatus
	if err := json.Unmarshal([]byte(input), &status); err != nil {
		t.Fatalf("Failed to decode flexlet status: %v", err)
	}
	if status.Flexlet.Spec.Cores != -1 {
		t.Errorf("Expected cores -1, got %d", status.Flexlet.Spec.Cores)
	}
	if status.State != FlexletStateOnline {
		t.Errorf("Expected ONLINE, got %s", status.State)
	}
	if len(status.CurrentJobs) != 2 {
		t.Errorf("Expected 2 current jobs, got %d", len(status.CurrentJobs))
	}
}

func TestJobStateValid(t *testing.T) {
	for _, s := range []JobState{JobStateUnspecified, JobStatePending, JobStateRunning, JobStateFinished} {
		if !s.Valid() {
			t.Errorf("Expected %s to be valid", s)
		}
	}
	for _, s := range []JobState{"", "DONE", "finished"} {
		if s.Valid() {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}
