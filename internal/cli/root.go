package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"contracting/internal/backend"
	"contracting/internal/config"
)

// options are the flags shared by every command.
type options struct {
	configFile string
	envFile    string
	port       string
	backend    string
	logLevel   string
}

// NewRootCmd creates the top-level "contracting" command. Without a
// subcommand it serves the API.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "contracting",
		Short:         "Contracting company dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return LoadEnvFile(opts.envFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file (default $CONFIG_FILE)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	addOverrideFlags(flags, opts)

	serve := newServeCmd(opts)
	root.RunE = serve.RunE
	root.AddCommand(serve, newConfigCmd(opts))
	return root
}

func addOverrideFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.port, "port", "p", "", "HTTP port, overrides PORT")
	flags.StringVar(&opts.backend, "backend", "", fmt.Sprintf("data backend %v, overrides DATA_BACKEND", backend.GetBackendTypeStrings()))
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error, overrides LOG_LEVEL")
}

// load reads the configuration with command-line overrides applied last.
func (o *options) load() (*config.Config, error) {
	return LoadAndValidateConfig(o.configFile, func(cfg *config.Config) {
		if o.port != "" {
			cfg.Port = o.port
		}
		if o.backend != "" {
			cfg.DataBackend = o.backend
		}
		if o.logLevel != "" {
			cfg.LogLevel = o.logLevel
		}
	})
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Validate and print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			shown := *cfg
			if u, err := url.Parse(shown.AMQPURL); err == nil && shown.AMQPURL != "" {
				shown.AMQPURL = u.Redacted()
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&shown); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
