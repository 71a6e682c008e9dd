// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-esl/esl/value"
)

func newRunCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "run FILE",
		Short:                 "run a script file",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runFile(cmd, g, args[0])
	}
	return c
}

func runFile(cmd *cobra.Command, g *globalConfig, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	interp, err := newInterpreter(g, string(src))
	if err != nil {
		return err
	}

	result, err := interp.Run(cmd.Context())
	if err != nil {
		return err
	}
	if _, isNil := result.(value.Nil); !isNil {
		fmt.Fprintln(cmd.OutOrStdout(), value.Repr(result))
	}
	return nil
}
