// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package hostdemo is a minimal example of an application embedding
// package esl behind an HTTP API: POST a script body and a JSON object of
// arguments, get back the script's result (or the error it raised) as
// JSON. It is a net/http handler wrapped in github.com/gorilla/handlers
// request logging.
package hostdemo

import (
	"context"
	"encoding/json"
	"net/http"

	"zombiezen.com/go/log"

	"github.com/go-esl/esl/esl"
	"github.com/go-esl/esl/namespace"
)

// request is the POST body: a script plus the named arguments it runs
// against, e.g. {"code": "return x + 1", "args": {"x": 41}}.
type request struct {
	Code string         `json:"code"`
	Args map[string]any `json:"args"`
}

// response is the JSON result: Error is set when the request or script
// fails; otherwise Result holds the script's value, and is omitted when
// that value is nil.
type response struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Handler is an http.Handler that runs one script per request.
type Handler struct{}

func (Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Error: err.Error()})
		return
	}

	ns := namespace.New()
	for name, v := range req.Args {
		ns.SetVar(name, fromJSON(v), true)
	}

	interp, err := esl.New(req.Code, esl.WithNamespace(ns))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Error: err.Error()})
		return
	}

	result, err := interp.Run(r.Context())
	if err != nil {
		log.Errorf(r.Context(), "hostdemo: script failed: %v", err)
		writeJSON(w, http.StatusUnprocessableEntity, response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response{Result: toJSON(result)})
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// NewServeMux returns the demo's routes mounted on a fresh mux, ready to
// be wrapped by a logging middleware (see [Serve]).
func NewServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /run", Handler{})
	return mux
}

// Serve starts listening on addr, serving every request through
// gorilla/handlers.CombinedLoggingHandler so operators get Apache-style
// access logs alongside the structured zombiezen.com/go/log lines emitted
// per failed script run.
func Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: loggingHandler(NewServeMux()),
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	return srv.ListenAndServe()
}
