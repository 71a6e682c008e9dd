// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-esl/esl/esl"
	"github.com/go-esl/esl/value"
)

func newReplCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "repl",
		Short:                 "start an interactive read-eval-print loop",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd, g)
	}
	return c
}

// runRepl evaluates one chunk per blank-line-terminated block of input
// against a single namespace shared across the whole session, so
// variables declared in one block are visible in the next.
func runRepl(cmd *cobra.Command, g *globalConfig) error {
	// Build an interpreter over an empty chunk (never run) purely to get a
	// namespace with the configured extension set installed.
	seed, err := newInterpreter(g, "")
	if err != nil {
		return err
	}
	ns := seed.Namespace()

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	var buf strings.Builder

	prompt := func(p string) { fmt.Fprint(out, p) }
	prompt("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if buf.Len() == 0 {
				prompt("> ")
				continue
			}
		} else {
			buf.WriteString(line)
			buf.WriteByte('\n')
			prompt(".. ")
			continue
		}

		source := buf.String()
		buf.Reset()

		interp, err := esl.New(source, esl.WithNamespace(ns), esl.WithoutDefaultExtensions(), esl.WithDebug(g.cliConfig.Debug))
		if err != nil {
			fmt.Fprintln(out, err)
			prompt("> ")
			continue
		}
		result, err := interp.Run(cmd.Context())
		switch {
		case err != nil:
			fmt.Fprintln(out, err)
		default:
			if _, isNil := result.(value.Nil); !isNil {
				fmt.Fprintln(out, value.Repr(result))
			}
		}
		prompt("> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
