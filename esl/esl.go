// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package esl is the embeddable public API for the language: parse a
// script, install host extensions, and run it to completion.
package esl

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"zombiezen.com/go/log"

	"github.com/go-esl/esl/ast"
	"github.com/go-esl/esl/eval"
	"github.com/go-esl/esl/extensions"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/parser"
	"github.com/go-esl/esl/value"
)

// SyntaxError wraps a lexer or parser failure under one umbrella type.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// RuntimeError wraps any failure raised while evaluating a parsed chunk.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string { return e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }

// Interpreter holds a parsed script together with the namespace it will
// run in.
type Interpreter struct {
	code         string
	chunk        *ast.Chunk
	ns           *namespace.Namespace
	debug        bool
	skipDefaults bool
	installed    map[string]bool

	// runID uniquely tags this interpreter's log lines, since a host
	// process may run many scripts concurrently.
	runID uuid.UUID
}

// Option configures a new [Interpreter].
type Option func(*Interpreter)

// WithNamespace runs the script against an existing namespace instead of
// a fresh one, letting a host pre-populate variables before Run.
func WithNamespace(ns *namespace.Namespace) Option {
	return func(i *Interpreter) { i.ns = ns }
}

// WithDebug turns on verbose diagnostics: a Go-level error dump is
// logged (via zombiezen.com/go/log) alongside the esl call-stack report
// when Run fails.
func WithDebug(debug bool) Option {
	return func(i *Interpreter) { i.debug = debug }
}

// WithoutDefaultExtensions skips installing [extensions.All] so the host
// can build its namespace from scratch.
func WithoutDefaultExtensions() Option {
	return func(i *Interpreter) { i.skipDefaults = true }
}

// New parses code and returns a ready-to-run Interpreter. By default, the
// full builtin extension set (package extensions) is installed into a
// fresh root namespace.
func New(code string, opts ...Option) (*Interpreter, error) {
	chunk, err := parser.Parse(code)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}

	i := &Interpreter{code: code, chunk: chunk, runID: uuid.New(), installed: make(map[string]bool)}
	for _, opt := range opts {
		opt(i)
	}
	if i.ns == nil {
		i.ns = namespace.New()
	}
	if !i.skipDefaults {
		i.AddExtensions(extensions.All())
	}
	return i, nil
}

// AddExtensions installs additional host callables/values into the
// interpreter's root namespace. Names that collide
// with an already-installed extension are logged at debug level rather
// than silently overwritten, since a host composing several extension
// sets is the most likely place such a collision would otherwise go
// unnoticed.
func (i *Interpreter) AddExtensions(vals map[string]value.Value) {
	for name, v := range vals {
		if i.installed[name] {
			log.Debugf(context.Background(), "[%s] extension %q redefined", i.runID, name)
		}
		i.installed[name] = true
		i.ns.SetVar(name, v, true)
	}
}

// Namespace returns the interpreter's root namespace, so a host can read
// back script-defined globals after Run.
func (i *Interpreter) Namespace() *namespace.Namespace {
	return i.ns
}

// Run evaluates the parsed chunk to completion. A top-level `return x`
// yields x, `return a, b` yields the values as a positional table (the
// engine's sequence type), and a chunk with no return yields nil. On
// failure it logs the esl call stack and offending source line before
// returning a *RuntimeError; WithDebug additionally logs at debug level.
func (i *Interpreter) Run(ctx context.Context) (value.Value, error) {
	ev := eval.New(i.code, i.debug)
	results, err := ev.Run(ctx, i.chunk, i.ns)
	if err != nil {
		i.logFailure(ctx, ev, err)
		return nil, &RuntimeError{Err: unwrapTrace(err)}
	}
	switch len(results) {
	case 0:
		return value.Nil{}, nil
	case 1:
		return results[0], nil
	default:
		seq := value.NewTable()
		for _, v := range results {
			seq.Append(v)
		}
		return seq, nil
	}
}

func unwrapTrace(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return err
}

func (i *Interpreter) logFailure(ctx context.Context, ev *eval.Evaluator, err error) {
	msg := lowercaseFirst(unwrapTrace(err).Error())
	log.Errorf(ctx, "[%s] error: %s", i.runID, msg)

	var tr *eval.Trace
	if t, ok := err.(*eval.Trace); ok {
		tr = t
	}
	if tr == nil {
		return
	}

	parentFn := "<main>"
	for _, frame := range tr.CallStack {
		log.Errorf(ctx, "[%s] ... %s line %v: %s()", i.runID, parentFn, frame.Line, frame.Name)
		parentFn = frame.Name
	}
	if len(tr.Lines) > 0 {
		lastLine := tr.Lines[len(tr.Lines)-1]
		if text, ok := ev.SourceLine(lastLine); ok {
			if len(text) > 50 {
				text = text[:50]
			}
			log.Errorf(ctx, "[%s] ... %s line %v: %s ...", i.runID, parentFn, lastLine, text)
		} else {
			log.Errorf(ctx, "[%s] ... %s line %v: can't find source line", i.runID, parentFn, lastLine)
		}
	}
	if i.debug {
		log.Debugf(ctx, "[%s] go error detail: %+v", i.runID, err)
	}
}

func lowercaseFirst(s string) string {
	if s == "" {
		return "(no message)"
	}
	return strings.ToLower(s[:1]) + s[1:]
}
