// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package hostdemo

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
)

// loggingHandler wraps h in an Apache Combined Log Format access logger.
func loggingHandler(h http.Handler) http.Handler {
	return handlers.CombinedLoggingHandler(os.Stdout, h)
}
