package models

// JobState represents the lifecycle state of a job
type JobState string

const (
	JobStateUnspecified JobState = "UNSPECIFIED"
	JobStatePending     JobState = "PENDING"
	JobStateRunning     JobState = "RUNNING"
	JobStateFinished    JobState = "FINISHED"
)

// Valid reports whether s is one of the known state tokens
func (s JobState) Valid() bool {
	switch s {
	case JobStateUnspecified, JobStatePending, JobStateRunning, JobStateFinished:
		return true
	}
	return false
}

// JobOutputType selects which output stream of a job to fetch
type JobOutputType string

const (
	JobOutputStdout JobOutputType = "stdout"
	JobOutputStderr JobOutputType = "stderr"
)

// Job is a unit of work submitted to Flex
type Job struct {
	ID   string  `json:"id"`
	Spec JobSpec `json:"spec"`
}

// JobSpec describes what a job runs and how
type JobSpec struct {
	Command     JobCommand     `json:"command"`
	Inputs      JobInputs      `json:"inputs"`
	Limits      JobLimits      `json:"limits"`
	Constraints JobConstraints `json:"constraints"`
	Annotations JobAnnotations `json:"annotations"`
}

// JobCommand holds the executable and its arguments, in order
type JobCommand struct {
	Args []string `json:"args"`
}

// JobInputs lists the packages materialized for a job
type JobInputs struct {
	Packages []JobPackage `json:"packages"`
}

// JobPackage is a content-addressed input package.
// An empty Tag means the package is untagged.
type JobPackage struct {
	Hash       string `json:"hash"`
	Tag        string `json:"tag"`
	InstallDir string `json:"installDir"`
}

// JobLimits holds resource limits, e.g. Time = "60s"
type JobLimits struct {
	Time string `json:"time"`
}

// JobConstraints holds scheduling constraints; higher priority is more urgent
type JobConstraints struct {
	Priority int32 `json:"priority"`
}

// JobAnnotations holds free-form labels used for filtering
type JobAnnotations struct {
	Labels []string `json:"labels"`
}

// JobStatus is a snapshot of a job and its execution state
type JobStatus struct {
	Job         Job        `json:"job"`
	State       JobState   `json:"state"`
	TaskID      string     `json:"taskId"`
	FlexletName string     `json:"flexletName"`
	Result      TaskResult `json:"result"`
}

// TaskResult is meaningful only when the job is FINISHED.
// Time is nil when not applicable (the job never ran).
type TaskResult struct {
	ExitCode int32   `json:"exitCode"`
	Message  string  `json:"message"`
	Time     *string `json:"time"`
}
