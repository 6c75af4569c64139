package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
)

func newSpawnCmd(a *app) *cobra.Command {
	var flags launchFlags
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "spawn [flags] -- <program> [args...]",
		Short: "Start a program in the background and poll it until it finishes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--poll-interval must be positive")
			}
			req, err := flags.request(cmd, a.cfg, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			info, err := a.launcher.ExecuteNoWait(ctx, req)
			if err != nil {
				a.exitCode = exitStatus(nil, err)
				printResult(cmd.ErrOrStderr(), nil, err)
				return nil
			}
			a.logger.Info().Str("id", info.ID).Int("pid", info.Pid).Str("command", cmdline.Format(args...)).Msg("Spawned")
			printHandle(cmd.OutOrStdout(), info)

			var deadline time.Time
			if secs := flags.secondsToWait(cmd, a.cfg); secs > 0 {
				deadline = time.Now().Add(time.Duration(secs) * time.Second)
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				res, err := a.launcher.Wait(ctx, info, 0, true)
				if info.State == lib.ProcessStateExited || err != nil {
					a.exitCode = exitStatus(res, err)
					printResult(cmd.ErrOrStderr(), res, err)
					return nil
				}

				if !deadline.IsZero() && time.Now().After(deadline) {
					a.logger.Warn().Str("id", info.ID).Msg("Deadline reached, killing process")
					if err := a.launcher.Kill(info); err != nil {
						return fmt.Errorf("kill %s: %w", info.ID, err)
					}
					res, err := a.launcher.Wait(ctx, info, 0, false)
					a.exitCode = exitTimeout
					printResult(cmd.ErrOrStderr(), res, err)
					return nil
				}

				a.logger.Debug().Str("id", info.ID).Str("state", info.State.String()).Msg("Still running")
				select {
				case <-ctx.Done():
					_ = a.launcher.Kill(info)
					return ctx.Err()
				case <-ticker.C:
				}
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&interval, "poll-interval", 100*time.Millisecond, "How often to poll the process")

	return cmd
}
