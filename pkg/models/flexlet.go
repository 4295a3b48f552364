package models

// FlexletState represents the connectivity of a flexlet
type FlexletState string

const (
	FlexletStateOffline FlexletState = "OFFLINE"
	FlexletStateOnline  FlexletState = "ONLINE"
)

// Flexlet is a worker node that executes jobs
type Flexlet struct {
	Name string      `json:"name"`
	Spec FlexletSpec `json:"spec"`
}

// FlexletSpec describes flexlet capacity.
// Cores < 0 means the capacity is unknown.
type FlexletSpec struct {
	Cores int32 `json:"cores"`
}

// FlexletStatus is a snapshot of a flexlet and the jobs assigned to it
type FlexletStatus struct {
	Flexlet     Flexlet      `json:"flexlet"`
	State       FlexletState `json:"state"`
	CurrentJobs []Job        `json:"currentJobs"`
}
