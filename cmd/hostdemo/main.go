// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Command hostdemo runs the internal/hostdemo example HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"zombiezen.com/go/log"

	"github.com/go-esl/esl/internal/hostdemo"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "`address` to listen on")
	flag.Parse()

	log.SetDefault(&log.LevelFilter{
		Min:    log.Info,
		Output: log.New(os.Stderr, "hostdemo: ", log.StdFlags, nil),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Infof(ctx, "listening on %s", *addr)
	if err := hostdemo.Serve(ctx, *addr); err != nil {
		log.Errorf(ctx, "%v", err)
		os.Exit(1)
	}
}
