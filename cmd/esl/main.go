// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Command esl runs scripts written in the language implemented by package
// esl: a small Cobra root command with persistent --debug/--config flags
// and subcommands that do the real work (run a file, or start an
// interactive REPL).
package main

import (
	"context"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"
)

type globalConfig struct {
	configPath string
	debug      bool
	cliConfig
}

func main() {
	rootCommand := &cobra.Command{
		Use:           "esl",
		Short:         "run esl scripts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := new(globalConfig)
	var extensionFlag []string
	rootCommand.PersistentFlags().StringVar(&g.configPath, "config", "", "`path` to a JSON-with-comments config file")
	rootCommand.PersistentFlags().BoolVar(&g.debug, "debug", false, "show debugging output")
	registerExtensionFlag(rootCommand.PersistentFlags(), &extensionFlag)
	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if g.configPath != "" {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			g.cliConfig = *cfg
		}
		if g.debug {
			g.cliConfig.Debug = true
		}
		if len(extensionFlag) > 0 {
			g.cliConfig.Extensions = extensionFlag
		}
		initLogging(g.cliConfig.Debug)
		return nil
	}

	rootCommand.AddCommand(
		newRunCommand(g),
		newReplCommand(g),
	)

	ctx := context.Background()
	if err := rootCommand.ExecuteContext(ctx); err != nil {
		initLogging(g.cliConfig.Debug)
		log.Errorf(ctx, "%v", err)
		os.Exit(1)
	}
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "esl: ", log.StdFlags, nil),
		})
	})
}
