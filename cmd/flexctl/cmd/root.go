package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/flexdash/pkg/client"
	"github.com/psantana5/flexdash/pkg/logging"
	"github.com/psantana5/flexdash/pkg/tlsutil"
)

const defaultHubURL = "http://localhost:7111"

// rootOptions holds global flags and the resolved configuration
type rootOptions struct {
	cfgFile string
	verbose bool

	v *viper.Viper
}

// NewRootCmd builds the flexctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "flexctl",
		Short: "CLI for the Flex job hub",
		Long: `flexctl is a read-only command line interface for a Flex hub. It lists
jobs and flexlets, shows job details and outputs and prints cluster statistics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.flexctl/config.yaml)")
	flags.String("hub", "", "Flex hub URL (default from config, FLEX_HUB_URL or "+defaultHubURL+")")
	flags.StringP("output", "o", "table", "output format: table, json or yaml")
	flags.String("api-key", "", "bearer token sent to the hub (default from config or FLEX_API_KEY)")
	flags.String("ca-file", "", "PEM CA certificate used to verify an HTTPS hub (default from config or FLEX_CA_FILE)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every hub request to stderr")

	opts.v.BindPFlag("hub_url", flags.Lookup("hub"))
	opts.v.BindPFlag("output", flags.Lookup("output"))
	opts.v.BindPFlag("api_key", flags.Lookup("api-key"))
	opts.v.BindPFlag("ca_file", flags.Lookup("ca-file"))
	opts.v.BindEnv("hub_url", "FLEX_HUB_URL")
	opts.v.BindEnv("api_key", "FLEX_API_KEY")
	opts.v.BindEnv("ca_file", "FLEX_CA_FILE")
	opts.v.SetDefault("hub_url", defaultHubURL)

	rootCmd.AddCommand(newJobsCmd(opts))
	rootCmd.AddCommand(newFlexletsCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs flexctl with the process arguments
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// initConfig reads the config file if there is one. A missing default
// config file is not an error; a missing explicit one is.
func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		o.v.AddConfigPath(filepath.Join(home, ".flexctl"))
		o.v.SetConfigName("config")
		o.v.SetConfigType("yaml")
	}

	if err := o.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || o.cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	switch o.outputFormat() {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or yaml)", o.outputFormat())
	}
	return nil
}

func (o *rootOptions) hubURL() string {
	return o.v.GetString("hub_url")
}

func (o *rootOptions) outputFormat() string {
	return strings.ToLower(o.v.GetString("output"))
}

func (o *rootOptions) logger(cmd *cobra.Command) *logging.Logger {
	if !o.verbose {
		return logging.Discard()
	}
	l := logging.NewLogger(logging.DEBUG, false)
	l.SetOutput(cmd.ErrOrStderr())
	return l.WithComponent("flexctl")
}

// newClient creates a hub client with the configured URL, credentials and logging
func (o *rootOptions) newClient(cmd *cobra.Command) (*client.Client, error) {
	rt, err := tlsutil.Transport(o.v.GetString("ca_file"))
	if err != nil {
		return nil, err
	}
	if key := o.v.GetString("api_key"); key != "" {
		rt = &bearerTransport{token: key, next: rt}
	}
	if o.verbose {
		rt = &loggingTransport{logger: o.logger(cmd), next: rt}
	}

	return client.New(o.hubURL(),
		client.WithTransport(rt),
		client.WithUserAgent("flexctl/"+version.Version),
	)
}

func (o *rootOptions) printer(cmd *cobra.Command) *printer {
	return &printer{format: o.outputFormat(), out: cmd.OutOrStdout()}
}
