// Package view derives display values from Flex resources. The dashboard
// and the CLI both render through it so they agree on labels and loads.
package view

import (
	"fmt"

	"al.essio.dev/pkg/shellescape"
	"github.com/psantana5/flexdash/pkg/models"
)

// Label is a short status text plus the badge style used to render it
type Label struct {
	Text  string
	Class string
}

// StateLabel summarizes a job. A finished job is a Success only with exit
// code 0. Unknown states are shown verbatim.
func StateLabel(job models.JobStatus) Label {
	switch job.State {
	case models.JobStatePending:
		return Label{Text: "Pending", Class: "bg-secondary"}
	case models.JobStateRunning:
		return Label{Text: "Running", Class: "bg-warning"}
	case models.JobStateFinished:
		if job.Result.ExitCode != 0 {
			return Label{Text: "Failure", Class: "bg-danger"}
		}
		return Label{Text: "Success", Class: "bg-success"}
	default:
		return Label{Text: string(job.State), Class: "bg-dark"}
	}
}

// FlexletLabel renders the online/offline badge
func FlexletLabel(f models.FlexletStatus) Label {
	if f.State == models.FlexletStateOnline {
		return Label{Text: "Online", Class: "bg-success"}
	}
	return Label{Text: "Offline", Class: "bg-secondary"}
}

// Capacity is the number of cores to show for a flexlet. A negative core
// count means unknown capacity, in which case the assigned job count is used.
func Capacity(f models.FlexletStatus) int {
	if f.Flexlet.Spec.Cores < 0 {
		return len(f.CurrentJobs)
	}
	return int(f.Flexlet.Spec.Cores)
}

// Load renders "<jobs> / <capacity>", e.g. "2 / 4"
func Load(f models.FlexletStatus) string {
	return fmt.Sprintf("%d / %d", len(f.CurrentJobs), Capacity(f))
}

// CommandLine renders job arguments as a shell-quoted command
func CommandLine(args []string) string {
	return shellescape.QuoteCommand(args)
}

// TotalCores is idle plus busy cores as reported by the hub
func TotalCores(stats models.Stats) int32 {
	return stats.Flexlet.IdleCores + stats.Flexlet.BusyCores
}

// OnlineFlexlets returns only the flexlets that are online, preserving order
func OnlineFlexlets(flexlets []models.FlexletStatus) []models.FlexletStatus {
	online := make([]models.FlexletStatus, 0, len(flexlets))
	for _, f := range flexlets {
		if f.State == models.FlexletStateOnline {
			online = append(online, f)
		}
	}
	return online
}

// ResultTime renders the run time of a finished job; "-" when not recorded
func ResultTime(result models.TaskResult) string {
	if result.Time == nil {
		return "-"
	}
	return *result.Time
}

// PackageName renders a package as "hash" or "hash (tag)"
func PackageName(pkg models.JobPackage) string {
	if pkg.Tag == "" {
		return pkg.Hash
	}
	return fmt.Sprintf("%s (%s)", pkg.Hash, pkg.Tag)
}

// NextCursor is the "before" value for the page after jobs, or "" when
// jobs is empty and there is nothing older to show.
func NextCursor(jobs []models.JobStatus) string {
	if len(jobs) == 0 {
		return ""
	}
	return jobs[len(jobs)-1].Job.ID
}
