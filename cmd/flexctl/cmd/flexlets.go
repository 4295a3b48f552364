package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/psantana5/flexdash/pkg/models"
	"github.com/psantana5/flexdash/pkg/view"
)

func newFlexletsCmd(opts *rootOptions) *cobra.Command {
	flexletsCmd := &cobra.Command{
		Use:   "flexlets",
		Short: "Inspect flexlets",
		Long:  `Commands for listing the worker agents (flexlets) connected to the hub.`,
	}

	var online bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List flexlets with their state and load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			flexlets, err := c.ListFlexlets(cmd.Context())
			if err != nil {
				return err
			}
			if online {
				flexlets = view.OnlineFlexlets(flexlets)
			}

			p := opts.printer(cmd)
			if p.structured() {
				return p.encode(map[string]interface{}{"flexlets": flexlets})
			}
			if len(flexlets) == 0 {
				p.println("No flexlets found")
				return nil
			}
			rows := make([][]string, 0, len(flexlets))
			for _, f := range flexlets {
				rows = append(rows, []string{
					f.Flexlet.Name,
					view.FlexletLabel(f).Text,
					view.Load(f),
					jobIDs(f.CurrentJobs),
				})
			}
			if err := p.table([]string{"Name", "State", "Load", "Jobs"}, rows); err != nil {
				return err
			}
			p.printf("\nTotal flexlets: %d\n", len(flexlets))
			return nil
		},
	}
	listCmd.Flags().BoolVar(&online, "online", false, "only list online flexlets")

	flexletsCmd.AddCommand(listCmd)
	return flexletsCmd
}

func jobIDs(jobs []models.Job) string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return orDash(strings.Join(ids, ", "))
}
