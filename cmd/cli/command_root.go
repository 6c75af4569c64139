package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib/launcher"
)

// app is the state shared by all commands of one invocation.
type app struct {
	configPath  string
	logLevel    string
	metricsFile string

	cfg      Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	launcher launcher.Launcher

	// exitCode is the status prl exits with after a successful Execute.
	exitCode int
}

func newApp() *app {
	return &app{logger: zerolog.Nop()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prl",
		Short:         "Process Launcher CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.writeMetrics()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(EnvConfig), "TOML file with launch defaults")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write launch metrics to this file in Prometheus text format")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newSpawnCmd(a))
	root.AddCommand(newBenchCmd(a))
	root.AddCommand(newFitsCmd(a))
	root.AddCommand(newQuoteCmd())

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	applyEnvOverrides(&cfg)

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	a.cfg = cfg

	a.logger, err = newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.launcher = launcher.New(
		launcher.WithLogger(a.logger),
		launcher.WithMetrics(launcher.NewMetrics(a.registry)),
	)
	return nil
}

func (a *app) writeMetrics() error {
	if a.cfg.MetricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug().Str("path", a.cfg.MetricsFile).Msg("Metrics written")
	return nil
}
