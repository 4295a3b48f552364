package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/psantana5/flexdash/pkg/view"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show job and flexlet counters reported by the hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			stats, err := c.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			p := opts.printer(cmd)
			if p.structured() {
				return p.encode(stats)
			}
			itoa := func(n int32) string { return strconv.Itoa(int(n)) }
			return p.table([]string{"Metric", "Value"}, [][]string{
				{"Pending jobs", itoa(stats.Job.PendingJobs)},
				{"Running jobs", itoa(stats.Job.RunningJobs)},
				{"Online flexlets", itoa(stats.Flexlet.OnlineFlexlets)},
				{"Offline flexlets", itoa(stats.Flexlet.OfflineFlexlets)},
				{"Busy cores", itoa(stats.Flexlet.BusyCores)},
				{"Idle cores", itoa(stats.Flexlet.IdleCores)},
				{"Total cores", itoa(view.TotalCores(*stats))},
			})
		},
	}
}
