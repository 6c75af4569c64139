package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
)

func newQuoteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "quote [--force] -- <args...>",
		Short: "Print arguments the way the launcher logs them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, arg := range args {
				if i > 0 {
					fmt.Fprint(out, " ")
				}
				if err := cmdline.PrintArg(out, arg, force); err != nil {
					return err
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Quote every argument")

	return cmd
}
