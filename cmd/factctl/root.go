package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"yorkfacts/internal/backend"
	"yorkfacts/internal/config"
	"yorkfacts/internal/logger"
)

type rootOptions struct {
	driver     string
	csvPath    string
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "factctl",
		Short:         "Manage the York Region fact store",
		Long:          `Check, import, export and migrate facts using the same configuration as the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.driver, "driver", "", "store driver, csv or postgres (default $STORE_DRIVER)")
	flags.StringVar(&opts.csvPath, "csv", "", "facts CSV path (default $FACTS_CSV_PATH)")
	flags.StringVar(&opts.configFile, "config", "", "catalog YAML file (default $CONFIG_FILE)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(
		newCheckCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

// config loads the environment configuration and applies flag overrides.
func (o *rootOptions) config() (*config.Config, error) {
	cfg := config.Load()
	if o.driver != "" {
		cfg.StoreDriver = o.driver
	}
	if o.csvPath != "" {
		cfg.CSVPath = o.csvPath
	}
	if o.configFile != "" {
		cfg.ConfigFile = o.configFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger writes to stderr so export output stays clean.
func (o *rootOptions) logger() *slog.Logger {
	return logger.NewWithWriter(os.Stderr, "factctl", o.logLevel)
}

// open builds the backend for a command.
func (o *rootOptions) open(cmd *cobra.Command) (*backend.Backend, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return backend.Open(cmd.Context(), cfg, o.logger())
}
