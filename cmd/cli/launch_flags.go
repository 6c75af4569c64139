package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/launcher"
)

// launchFlags are the flags shared by every command that starts a program.
type launchFlags struct {
	timeout     uint
	memoryLimit string
	redirects   [3]string
	env         []string
	clearEnv    bool
}

var redirectFlags = [3]string{lib.Stdin: "stdin", lib.Stdout: "stdout", lib.Stderr: "stderr"}

func (f *launchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.UintVar(&f.timeout, "timeout", 0, "Seconds to wait before killing the program (0 waits forever)")
	fs.StringVar(&f.memoryLimit, "memory-limit", "", "Resident memory cap, e.g. 512M (empty for none)")
	for i, name := range redirectFlags {
		fs.StringVar(&f.redirects[i], name, "", fmt.Sprintf("Redirect %s to this file (empty for the null device)", name))
	}
	fs.StringArrayVar(&f.env, "env", nil, "Add KEY=VALUE to the child environment (repeatable)")
	fs.BoolVar(&f.clearEnv, "clear-env", false, "Start from an empty environment instead of inheriting")
}

func (f *launchFlags) secondsToWait(cmd *cobra.Command, cfg Config) uint {
	if cmd.Flags().Changed("timeout") {
		return f.timeout
	}
	return cfg.TimeoutSeconds
}

// request resolves argv[0] on PATH and builds the launch request. argv is
// passed to the child verbatim.
func (f *launchFlags) request(cmd *cobra.Command, cfg Config, argv []string) (launcher.Request, error) {
	program, err := launcher.FindProgramByName(argv[0], nil)
	if err != nil {
		return launcher.Request{}, fmt.Errorf("find program: %w", err)
	}
	if !cmdline.Fits(program, argv) {
		return launcher.Request{}, fmt.Errorf("command line of %d bytes exceeds the system limit", cmdline.EncodedSize(program, argv))
	}

	req := launcher.Request{
		Program:     program,
		Args:        argv,
		MemoryLimit: cfg.MemoryLimit,
	}

	if cmd.Flags().Changed("memory-limit") {
		if req.MemoryLimit, err = parseSize(f.memoryLimit); err != nil {
			return launcher.Request{}, fmt.Errorf("parse --memory-limit: %w", err)
		}
	}

	req.Redirects = lib.Redirects{lib.Stdin: cfg.Stdin, lib.Stdout: cfg.Stdout, lib.Stderr: cfg.Stderr}
	for i, name := range redirectFlags {
		if cmd.Flags().Changed(name) {
			req.Redirects[i] = lib.Redirect(f.redirects[i])
		}
	}

	switch {
	case f.clearEnv:
		req.Env = append([]string{}, f.env...)
	case len(f.env) > 0:
		req.Env = append(os.Environ(), f.env...)
	}

	return req, nil
}
