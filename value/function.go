// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package value

import (
	"context"
	"fmt"
)

// ScriptFunction is a closure produced by evaluating a function expression
// or declaration: its body and parameter list plus the namespace in scope
// at the point of definition. The concrete body/namespace types live in
// package eval and package namespace; ScriptFunction only needs to carry
// them opaquely to avoid an import cycle between eval and value.
type ScriptFunction struct {
	Name   string // diagnostic name; "" for anonymous functions
	Params []string
	Body   any // *ast.Block
	Env    any // *namespace.Namespace captured at definition time
	Call   func(ctx context.Context, args []Value) ([]Value, error)
}

func (f *ScriptFunction) Type() Type     { return TypeFunction }
func (f *ScriptFunction) Truthy() bool   { return true }
func (f *ScriptFunction) functionValue() {}
func (f *ScriptFunction) String() string {
	if f.Name != "" {
		return fmt.Sprintf("function: %s", f.Name)
	}
	return fmt.Sprintf("function: %p", f)
}

// HostCallable is a function supplied by the embedding host, invoked via
// the hostbridge.Callable/AsyncCallable contract. Sync callables run Call
// on the evaluator's goroutine; when Async is set, the evaluator runs Call
// in its own goroutine through hostbridge.RunAsync and waits for its
// result (package hostbridge, package eval).
type HostCallable struct {
	Name  string
	Async bool
	Call  func(ctx context.Context, args []Value) ([]Value, error)
}

func (h HostCallable) Type() Type     { return TypeHostCallable }
func (h HostCallable) Truthy() bool   { return true }
func (h HostCallable) functionValue() {}
func (h HostCallable) String() string {
	if h.Name != "" {
		return fmt.Sprintf("builtin: %s", h.Name)
	}
	return "builtin: ?"
}

// HostObject wraps an arbitrary value supplied by the embedding host and
// exposed to scripts through the hostbridge capability interfaces
// (Attributable, Indexable, Iterable). esl never inspects Native directly;
// all access goes through the capability the host chooses to implement.
type HostObject struct {
	Native any
}

func (h HostObject) Type() Type     { return TypeHostObject }
func (h HostObject) Truthy() bool   { return true }
func (h HostObject) String() string { return fmt.Sprintf("userdata: %p", &h) }
