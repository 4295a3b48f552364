package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/psantana5/flexdash/pkg/models"
)

// StatsSource is satisfied by *client.Client
type StatsSource interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

// HubCollector fetches hub stats at scrape time and exposes them as gauges.
// Values are passed through as reported.
type HubCollector struct {
	source  StatsSource
	timeout time.Duration

	up              *prometheus.Desc
	pendingJobs     *prometheus.Desc
	runningJobs     *prometheus.Desc
	onlineFlexlets  *prometheus.Desc
	offlineFlexlets *prometheus.Desc
	busyCores       *prometheus.Desc
	idleCores       *prometheus.Desc
}

// NewHubCollector creates a collector; each scrape waits at most timeout for the hub
func NewHubCollector(source StatsSource, timeout time.Duration) *HubCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "hub", name), help, nil, nil)
	}
	return &HubCollector{
		source:          source,
		timeout:         timeout,
		up:              desc("up", "Whether the last stats fetch from the hub succeeded"),
		pendingJobs:     desc("pending_jobs", "Pending jobs reported by the hub"),
		runningJobs:     desc("running_jobs", "Running jobs reported by the hub"),
		onlineFlexlets:  desc("online_flexlets", "Online flexlets reported by the hub"),
		offlineFlexlets: desc("offline_flexlets", "Offline flexlets reported by the hub"),
		busyCores:       desc("busy_cores", "Busy cores reported by the hub"),
		idleCores:       desc("idle_cores", "Idle cores reported by the hub"),
	}
}

// Describe implements prometheus.Collector
func (c *HubCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	ch <- c.pendingJobs
	ch <- c.runningJobs
	ch <- c.onlineFlexlets
	ch <- c.offlineFlexlets
	ch <- c.busyCores
	ch <- c.idleCores
}

// Collect implements prometheus.Collector
func (c *HubCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats, err := c.source.GetStats(ctx)
	if err != nil {
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)
	ch <- prometheus.MustNewConstMetric(c.pendingJobs, prometheus.GaugeValue, float64(stats.Job.PendingJobs))
	ch <- prometheus.MustNewConstMetric(c.runningJobs, prometheus.GaugeValue, float64(stats.Job.RunningJobs))
	ch <- prometheus.MustNewConstMetric(c.onlineFlexlets, prometheus.GaugeValue, float64(stats.Flexlet.OnlineFlexlets))
	ch <- prometheus.MustNewConstMetric(c.offlineFlexlets, prometheus.GaugeValue, float64(stats.Flexlet.OfflineFlexlets))
	ch <- prometheus.MustNewConstMetric(c.busyCores, prometheus.GaugeValue, float64(stats.Flexlet.BusyCores))
	ch <- prometheus.MustNewConstMetric(c.idleCores, prometheus.GaugeValue, float64(stats.Flexlet.IdleCores))
}
