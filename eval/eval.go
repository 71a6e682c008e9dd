// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package eval implements the tree-walking evaluator for esl's AST. It
// threads diagnostic line and call stacks plus the breaking/returning
// control flags through every node; while and repeat loops run uncapped,
// stopping only when their condition says so, a break fires, or the host
// cancels the run's context.
package eval

import (
	"context"
	"strings"

	"github.com/go-esl/esl/ast"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/token"
	"github.com/go-esl/esl/value"
)

// Evaluator walks an AST against a namespace, accumulating diagnostic
// stacks and control flags as it goes. It is not safe for concurrent use:
// esl scripts are cooperatively single-threaded, suspending only at
// host-call and host-iteration boundaries.
type Evaluator struct {
	Source string
	Debug  bool

	lineStack []token.Position
	callStack []CallFrame
	loopDepth int

	breaking  bool
	returning bool
}

// New returns an Evaluator over source, used only for diagnostics (line
// text in error reports).
func New(source string, debug bool) *Evaluator {
	return &Evaluator{Source: source, Debug: debug}
}

func (e *Evaluator) pushLine(line token.Position) { e.lineStack = append(e.lineStack, line) }
func (e *Evaluator) popLine()                     { e.lineStack = e.lineStack[:len(e.lineStack)-1] }

// traceError attaches the diagnostic stacks to err the first time it
// propagates through a block, while the stacks still describe the point
// of failure (the deferred pops unwind them as the error travels up), and
// records line as the offending statement. Outer blocks and Run pass an
// already-built Trace through untouched.
func (e *Evaluator) traceError(err error, line token.Position) error {
	if _, ok := err.(*Trace); ok {
		return err
	}
	lines := append([]token.Position(nil), e.lineStack...)
	lines = append(lines, line)
	return &Trace{Err: err, Lines: lines, CallStack: append([]CallFrame(nil), e.callStack...)}
}

// Run evaluates chunk in ns, returning every value produced by its first
// top-level return statement: a one-element slice for `return x`, the
// full sequence for `return a, b`, and nil when no return fired.
func (e *Evaluator) Run(ctx context.Context, chunk *ast.Chunk, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(chunk.Line())
	defer e.popLine()

	results, err := e.evalBlock(ctx, chunk.Block, ns)
	if err != nil {
		return nil, e.traceError(err, chunk.Line())
	}
	return results, nil
}

// SourceLine returns the trimmed text of the given 1-based source line,
// for use in error reports. The caller truncates for display.
func (e *Evaluator) SourceLine(line token.Position) (string, bool) {
	lines := strings.Split(e.Source, "\n")
	idx := int(line) - 1
	if idx < 0 || idx >= len(lines) {
		return "", false
	}
	return strings.TrimSpace(lines[idx]), true
}
