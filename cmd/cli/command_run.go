package main

import (
	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/launcher"
)

// Exit statuses of prl itself when the child has none to report.
const (
	exitFailure      = 1
	exitTimeout      = 124
	exitLaunchFailed = 127
	exitKilled       = 137
)

func newRunCmd(a *app) *cobra.Command {
	var flags launchFlags
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run [flags] -- <program> [args...]",
		Short: "Run a program and wait for it, exiting with its status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, a.cfg, args)
			if err != nil {
				return err
			}

			a.logger.Info().Str("command", cmdline.Format(args...)).Msg("Running")
			res, err := a.launcher.ExecuteAndWait(cmd.Context(), req, flags.secondsToWait(cmd, a.cfg))
			a.exitCode = exitStatus(res, err)

			if !quiet {
				printResult(cmd.ErrOrStderr(), res, err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the summary")

	return cmd
}

// exitStatus maps a launch outcome to the status prl exits with.
func exitStatus(res *launcher.Result, err error) int {
	if err == nil {
		return res.ExitCode
	}
	switch lib.KindOf(err) {
	case lib.KindLaunchFailed:
		return exitLaunchFailed
	case lib.KindTimeout:
		return exitTimeout
	case lib.KindMemoryLimit, lib.KindSignaled, lib.KindCanceled:
		return exitKilled
	default:
		return exitFailure
	}
}
