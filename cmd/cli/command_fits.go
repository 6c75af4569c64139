package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
)

func newFitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fits -- <program> [args...]",
		Short: "Check whether a command line fits within the system argument limit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limits := cmdline.DefaultLimits()
			size := limits.EncodedSize(args[0], args)
			ok := limits.Fits(args[0], args)

			verdict := "fits"
			if !ok {
				verdict = "does not fit"
				a.exitCode = exitFailure
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d of %d bytes)\n", verdict, size, limits.MaxSize)
			return nil
		},
	}
}
