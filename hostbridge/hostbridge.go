// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package hostbridge defines the capability interfaces an embedding
// application implements to expose Go values to esl scripts: calling
// (sync and async), attribute access, item access, and iteration, plus
// the "_"-prefix access-denial rule. A host callable is handed a
// (context.Context, arguments) pair and returns (results, error).
package hostbridge

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/go-esl/esl/value"
)

// ErrAccessDenied is returned (or wrapped) when a script attempts to read,
// write, or delete a host attribute or item whose key begins with "_".
// This is esl's only sandboxing guarantee.
var ErrAccessDenied = errors.New("access denied")

// CheckKey enforces the "_"-prefix denial rule. The package-level access
// functions below call it before touching a host object.
func CheckKey(key string) error {
	if strings.HasPrefix(key, "_") {
		return ErrAccessDenied
	}
	return nil
}

// Callable is implemented by a host value that scripts can call
// synchronously: `f(1, 2)` resumes the interpreter with the result
// immediately, without suspending the evaluator.
type Callable interface {
	Call(ctx context.Context, args []value.Value) ([]value.Value, error)
}

// AsyncCallable is implemented by a host value whose call must suspend
// script evaluation until the host operation completes — an I/O request,
// for example. The evaluator runs CallAsync in its own goroutine via
// [RunAsync] and resumes the script with its result.
type AsyncCallable interface {
	CallAsync(ctx context.Context, args []value.Value) ([]value.Value, error)
}

// Attributable is implemented by a host value that supports `obj.name`
// style access. Get returns (value.Nil{}, false) for an attribute the
// host does not have.
type Attributable interface {
	GetAttribute(key string) (value.Value, bool)
	SetAttribute(key string, val value.Value) error
	DelAttribute(key string) error
	HasAttribute(key string) bool
}

// Indexable is implemented by a host value that supports `obj[key]` style
// access, where key can be any esl value (an Int or Str in practice).
type Indexable interface {
	GetItem(key value.Value) (value.Value, bool)
	SetItem(key value.Value, val value.Value) error
	DelItem(key value.Value) error
	HasItem(key value.Value) bool
}

// Iterable is implemented by a host value usable as the expression list of
// a generic-for loop, following Lua's `(f, s, var)` stateless-iterator
// protocol: Iterator returns a function that, called with the control
// variable, yields the next (key, value, ok) triple.
type Iterable interface {
	Iterator() func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error)
}

// AsyncIterable is the suspension-aware counterpart to Iterable, for host
// iterators backed by I/O (paging through a remote API, for example).
type AsyncIterable interface {
	AsyncIterator() func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error)
}

// RunAsync is the evaluator's suspension point: it runs fn in its own
// goroutine under an errgroup.Group bound to ctx, so
// a host cancellation at this point unwinds the call (and the evaluator
// above it) as soon as fn notices ctx.Done, rather than leaving the
// cooperative run blocked indefinitely on an abandoned host operation.
// The evaluator is blocked on exactly one in-flight goroutine at a time,
// which preserves the single-threaded-cooperative ordering guarantee:
// nothing else runs concurrently with the suspended call.
func RunAsync(ctx context.Context, fn func(ctx context.Context) ([]value.Value, error)) ([]value.Value, error) {
	g, gctx := errgroup.WithContext(ctx)
	var results []value.Value
	g.Go(func() error {
		rs, err := fn(gctx)
		results = rs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetAttribute dispatches obj.key through obj's Attributable
// implementation, enforcing the access-denial rule first.
func GetAttribute(obj value.HostObject, key string) (value.Value, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	a, ok := obj.Native.(Attributable)
	if !ok {
		return value.Nil{}, nil
	}
	v, found := a.GetAttribute(key)
	if !found {
		return value.Nil{}, nil
	}
	return v, nil
}

// SetAttribute dispatches obj.key = val, enforcing the access-denial rule.
func SetAttribute(obj value.HostObject, key string, val value.Value) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	a, ok := obj.Native.(Attributable)
	if !ok {
		return errors.New("object does not support attribute assignment")
	}
	return a.SetAttribute(key, val)
}

// DelAttribute dispatches removal of obj.key, enforcing the access-denial
// rule.
func DelAttribute(obj value.HostObject, key string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	a, ok := obj.Native.(Attributable)
	if !ok {
		return errors.New("object does not support attribute deletion")
	}
	return a.DelAttribute(key)
}

// keyName extracts the string form of key for the "_"-prefix check, or ""
// if key is not a string (non-string item keys are never denied).
func keyName(key value.Value) string {
	if s, ok := key.(value.Str); ok {
		return string(s)
	}
	return ""
}

// GetItem dispatches obj[key], enforcing the access-denial rule when key
// is a string.
func GetItem(obj value.HostObject, key value.Value) (value.Value, error) {
	if err := CheckKey(keyName(key)); err != nil {
		return nil, err
	}
	i, ok := obj.Native.(Indexable)
	if !ok {
		return value.Nil{}, nil
	}
	v, found := i.GetItem(key)
	if !found {
		return value.Nil{}, nil
	}
	return v, nil
}

// SetItem dispatches obj[key] = val, enforcing the access-denial rule.
func SetItem(obj value.HostObject, key value.Value, val value.Value) error {
	if err := CheckKey(keyName(key)); err != nil {
		return err
	}
	i, ok := obj.Native.(Indexable)
	if !ok {
		return errors.New("object does not support item assignment")
	}
	return i.SetItem(key, val)
}

// DelItem dispatches removal of obj[key], enforcing the access-denial rule.
func DelItem(obj value.HostObject, key value.Value) error {
	if err := CheckKey(keyName(key)); err != nil {
		return err
	}
	i, ok := obj.Native.(Indexable)
	if !ok {
		return errors.New("object does not support item deletion")
	}
	return i.DelItem(key)
}
