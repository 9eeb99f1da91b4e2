// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"glquad.dev/glquad/base/logx"
	"glquad.dev/glquad/config"
)

// exitError is returned by commands that fail with a specific exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// verbosity holds the logging flags.
type verbosity struct {
	veryVerbose, verbose, quiet bool
}

func (v *verbosity) apply() {
	if v.veryVerbose || v.verbose || v.quiet {
		logx.UserLevel = logx.LevelFromFlags(v.veryVerbose, v.verbose, v.quiet)
	}
}

// newRootCmd returns the glquad command, which calls run
// with the resulting config when it is executed.
func newRootCmd(run func(cfg *config.Config) int) *cobra.Command {
	cfg := config.New()
	var file string
	var vb verbosity
	root := &cobra.Command{
		Use:           "glquad",
		Short:         "Draw an animated quad with OpenGL",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			vb.apply()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cmd.Flags(), cfg, file); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if code := run(cfg); code != 0 {
				return &exitError{code: code, err: fmt.Errorf("glquad exited with code %d", code)}
			}
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVar(&vb.veryVerbose, "vv", false, "show debug messages")
	pf.BoolVarP(&vb.verbose, "verbose", "v", false, "show informational messages")
	pf.BoolVarP(&vb.quiet, "quiet", "q", false, "only show errors")

	root.Flags().StringVarP(&file, "config", "c", "", "the TOML or YAML config file to read")
	config.AddFlags(root.Flags(), cfg)

	root.AddCommand(newConfigCmd())
	return root
}

// newConfigCmd returns the command that writes the default config to a file.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <file>",
		Short: "Write the default config to a .toml or .yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(config.New(), args[0]); err != nil {
				return err
			}
			slog.Info("wrote default config", "file", args[0])
			return nil
		},
	}
}

// execute runs the glquad command with the given arguments
// and returns the process exit code.
func execute(args []string) int {
	logx.SetDefaultLogger()
	root := newRootCmd(run)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	slog.Error(err.Error())
	return 1
}
