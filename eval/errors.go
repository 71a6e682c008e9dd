// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package eval

import (
	"fmt"

	"github.com/go-esl/esl/token"
)

// RuntimeError is the interface shared by the failures the evaluator
// raises itself, matching esl's ESLRuntimeError. Callers that need to
// distinguish failure kinds should use [errors.As] against [*NameError],
// [*TypeError], [*AccessError], or [*ArityError]; all four satisfy this
// interface. Errors returned by host callables (including the error() and
// assert() builtins) and context cancellation errors pass through
// unchanged and do not satisfy it.
type RuntimeError interface {
	error
	runtimeError()
}

type baseError struct {
	Line token.Position
	Msg  string
}

func (e *baseError) Error() string {
	if !e.Line.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%v: %s", e.Line, e.Msg)
}

func (*baseError) runtimeError() {}

// NameError reports a reference to an undeclared variable.
type NameError struct{ *baseError }

func newNameError(line token.Position, format string, args ...any) *NameError {
	return &NameError{&baseError{line, fmt.Sprintf(format, args...)}}
}

// TypeError reports an operation applied to a value of the wrong type,
// such as arithmetic on a string or indexing a non-table, non-host value.
type TypeError struct{ *baseError }

func newTypeError(line token.Position, format string, args ...any) *TypeError {
	return &TypeError{&baseError{line, fmt.Sprintf(format, args...)}}
}

// AccessError reports denial of a "_"-prefixed host attribute or item
// access (package hostbridge's only sandboxing guarantee).
type AccessError struct{ *baseError }

func newAccessError(line token.Position, format string, args ...any) *AccessError {
	return &AccessError{&baseError{line, fmt.Sprintf(format, args...)}}
}

// ArityError reports a host callable invoked with the wrong number of
// arguments. Script-to-script calls are intentionally permissive (missing
// parameters bind to nil, extra arguments are discarded) so this is only
// reachable through a host boundary.
type ArityError struct{ *baseError }

// NewArityError is for host callables that validate their own argument
// counts; the evaluator itself never raises one. The line is filled in by
// the error report from the evaluator's line stack, so it is zero here.
func NewArityError(format string, args ...any) *ArityError {
	return &ArityError{&baseError{0, fmt.Sprintf(format, args...)}}
}

// CallFrame is one entry of the evaluator's call stack, used for
// diagnostics when a RuntimeError propagates out of Run.
type CallFrame struct {
	Name string
	Line token.Position
}

// Trace describes where an error occurred: the source line stack active
// at the point of failure and the chain of esl function calls leading to
// it.
type Trace struct {
	Err       error
	Lines     []token.Position
	CallStack []CallFrame
}

func (t *Trace) Error() string {
	return t.Err.Error()
}

func (t *Trace) Unwrap() error {
	return t.Err
}
