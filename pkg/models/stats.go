package models

// Stats holds point-in-time counters reported by the hub
type Stats struct {
	Job     JobStats     `json:"job"`
	Flexlet FlexletStats `json:"flexlet"`
}

// JobStats counts jobs by state
type JobStats struct {
	PendingJobs int32 `json:"pendingJobs"`
	RunningJobs int32 `json:"runningJobs"`
}

// FlexletStats counts flexlets and cores
type FlexletStats struct {
	OnlineFlexlets  int32 `json:"onlineFlexlets"`
	OfflineFlexlets int32 `json:"offlineFlexlets"`
	BusyCores       int32 `json:"busyCores"`
	IdleCores       int32 `json:"idleCores"`
}
