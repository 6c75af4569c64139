package main

import (
	"fmt"
	"time"

	"github.com/influxdata/tdigest"
	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
)

// benchReport summarises repeated runs of one command.
type benchReport struct {
	Runs     int
	Failures int
	P50      time.Duration
	P90      time.Duration
	P99      time.Duration
	MaxUser  time.Duration
	PeakMem  uint64
}

func newBenchCmd(a *app) *cobra.Command {
	var flags launchFlags
	var runs int

	cmd := &cobra.Command{
		Use:   "bench [flags] -- <program> [args...]",
		Short: "Run a program repeatedly and report wall time percentiles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs <= 0 {
				return fmt.Errorf("-n must be positive")
			}
			req, err := flags.request(cmd, a.cfg, args)
			if err != nil {
				return err
			}
			secs := flags.secondsToWait(cmd, a.cfg)

			a.logger.Info().Str("command", cmdline.Format(args...)).Int("runs", runs).Msg("Benchmarking")

			td := tdigest.NewWithCompression(100)
			report := benchReport{Runs: runs}
			for i := 0; i < runs; i++ {
				res, err := a.launcher.ExecuteAndWait(cmd.Context(), req, secs)
				if err != nil || res.ExitCode != 0 {
					report.Failures++
					a.logger.Debug().Int("run", i).Err(err).Msg("Run failed")
					if err := cmd.Context().Err(); err != nil {
						return err
					}
					continue
				}
				td.Add(float64(res.Stats.TotalTime), 1)
				report.MaxUser = max(report.MaxUser, res.Stats.UserTime)
				report.PeakMem = max(report.PeakMem, res.Stats.PeakMemory)
			}

			if report.Failures < runs {
				report.P50 = time.Duration(td.Quantile(0.5))
				report.P90 = time.Duration(td.Quantile(0.9))
				report.P99 = time.Duration(td.Quantile(0.99))
			}
			if report.Failures > 0 {
				a.exitCode = exitFailure
			}

			printBench(cmd.OutOrStdout(), report)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&runs, "runs", "n", 10, "Number of runs")

	return cmd
}
