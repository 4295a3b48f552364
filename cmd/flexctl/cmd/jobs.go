package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psantana5/flexdash/pkg/client"
	"github.com/psantana5/flexdash/pkg/models"
	"github.com/psantana5/flexdash/pkg/view"
)

func newJobsCmd(opts *rootOptions) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect jobs",
		Long:  `Commands for listing jobs and reading their details and outputs.`,
	}
	jobsCmd.AddCommand(newJobsListCmd(opts))
	jobsCmd.AddCommand(newJobsShowCmd(opts))
	jobsCmd.AddCommand(newJobsOutputCmd(opts))
	return jobsCmd
}

func newJobsListCmd(opts *rootOptions) *cobra.Command {
	var (
		params client.ListJobsParams
		state  string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		Long: `List jobs newest first. Use --before with the last ID of a page to see older
jobs, or --all to walk every page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.State = models.JobState(strings.ToUpper(state))
			return runJobsList(cmd, opts, params, all)
		},
	}
	cmd.Flags().IntVar(&params.Limit, "limit", 20, "maximum number of jobs per page (0 uses the hub default)")
	cmd.Flags().StringVar(&params.Before, "before", "", "only list jobs older than this job ID")
	cmd.Flags().StringVar(&state, "state", "", "only list jobs in this state (PENDING, RUNNING, FINISHED)")
	cmd.Flags().StringVar(&params.Label, "label", "", "only list jobs carrying this label")
	cmd.Flags().BoolVar(&all, "all", false, "follow pagination until no older jobs remain")
	return cmd
}

func runJobsList(cmd *cobra.Command, opts *rootOptions, params client.ListJobsParams, all bool) error {
	c, err := opts.newClient(cmd)
	if err != nil {
		return err
	}

	var jobs []models.JobStatus
	if all {
		pager := client.NewJobPager(c, &params)
		for !pager.Done() {
			page, err := pager.Next(cmd.Context())
			if err != nil {
				return err
			}
			jobs = append(jobs, page...)
		}
	} else {
		jobs, err = c.ListJobs(cmd.Context(), &params)
		if err != nil {
			return err
		}
	}

	p := opts.printer(cmd)
	if p.structured() {
		return p.encode(map[string]interface{}{"jobs": jobs})
	}
	if len(jobs) == 0 {
		p.println("No jobs found")
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, js := range jobs {
		rows = append(rows, []string{
			js.Job.ID,
			view.StateLabel(js).Text,
			view.CommandLine(js.Job.Spec.Command.Args),
			js.FlexletName,
			view.ResultTime(js.Result),
		})
	}
	if err := p.table([]string{"ID", "State", "Command", "Flexlet", "Time"}, rows); err != nil {
		return err
	}
	if !all {
		p.printf("\nOlder jobs: flexctl jobs list --before %s\n", view.NextCursor(jobs))
	}
	return nil
}

func newJobsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show details of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			job, err := c.GetJob(cmd.Context(), args[0])
			if client.IsNotFound(err) {
				return fmt.Errorf("job %s not found", args[0])
			}
			if err != nil {
				return err
			}

			p := opts.printer(cmd)
			if p.structured() {
				return p.encode(job)
			}
			return p.properties(jobProperties(job))
		},
	}
}

func jobProperties(js *models.JobStatus) [][]string {
	spec := js.Job.Spec
	packages := make([]string, 0, len(spec.Inputs.Packages))
	for _, pkg := range spec.Inputs.Packages {
		name := view.PackageName(pkg)
		if pkg.InstallDir != "" {
			name += " -> " + pkg.InstallDir
		}
		packages = append(packages, name)
	}

	rows := [][]string{
		{"Job ID", js.Job.ID},
		{"State", view.StateLabel(*js).Text},
		{"Command", view.CommandLine(spec.Command.Args)},
		{"Packages", orDash(strings.Join(packages, "\n"))},
		{"Time Limit", orDash(spec.Limits.Time)},
		{"Priority", strconv.Itoa(int(spec.Constraints.Priority))},
		{"Labels", orDash(strings.Join(spec.Annotations.Labels, ", "))},
		{"Task ID", orDash(js.TaskID)},
		{"Flexlet", orDash(js.FlexletName)},
	}
	if js.State == models.JobStateFinished {
		rows = append(rows,
			[]string{"Exit Code", strconv.Itoa(int(js.Result.ExitCode))},
			[]string{"Message", orDash(js.Result.Message)},
			[]string{"Time", view.ResultTime(js.Result)},
		)
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newJobsOutputCmd(opts *rootOptions) *cobra.Command {
	var stderr bool
	cmd := &cobra.Command{
		Use:   "output <job-id>",
		Short: "Print the stdout (or stderr) of a finished job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			outputType := models.JobOutputStdout
			if stderr {
				outputType = models.JobOutputStderr
			}

			text, err := c.ReadJobOutput(cmd.Context(), args[0], outputType)
			if client.IsNotFound(err) {
				return fmt.Errorf("no %s available for job %s", outputType, args[0])
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&stderr, "stderr", false, "print stderr instead of stdout")
	return cmd
}
