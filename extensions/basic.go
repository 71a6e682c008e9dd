// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package extensions provides the built-in host callables esl programs
// get by default: next/pairs/ipairs, error/assert, math.round,
// table.insert, and the python_list, python_datetime, python_timedelta,
// and python_decimal families.
package extensions

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-esl/esl/hostbridge"
	"github.com/go-esl/esl/value"
)

// Basic returns the always-present builtins, to be merged into the root
// namespace.
func Basic() map[string]value.Value {
	return map[string]value.Value{
		"next":   value.HostCallable{Name: "next", Call: nextFn},
		"pairs":  value.HostCallable{Name: "pairs", Call: pairsFn},
		"ipairs": value.HostCallable{Name: "ipairs", Call: ipairsFn},
		"error":  value.HostCallable{Name: "error", Call: errorFn},
		"assert": value.HostCallable{Name: "assert", Call: assertFn},
	}
}

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Nil{}
}

// tableNext implements the stateless-iterator step function backing
// next/pairs for *value.Table: given (table, key), it returns the entry
// immediately following key in [value.Table.Iterate]'s order, or Nil to
// signal the end.
func tableNext(t *value.Table, key value.Value) (value.Value, value.Value) {
	foundKey := key.Type() == value.TypeNil
	var nextKey, nextVal value.Value
	t.Iterate(func(e value.Entry) bool {
		if foundKey {
			nextKey, nextVal = e.Key, e.Val
			return false
		}
		if value.Equal(e.Key, key) {
			foundKey = true
		}
		return true
	})
	if nextKey == nil {
		return value.Nil{}, value.Nil{}
	}
	return nextKey, nextVal
}

func nextFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	obj := arg(args, 0)
	key := arg(args, 1)
	t, ok := obj.(*value.Table)
	if !ok {
		return nil, fmt.Errorf("next: expected a table, got %s", value.TypeName(obj))
	}
	k, v := tableNext(t, key)
	if k.Type() == value.TypeNil {
		return []value.Value{value.Nil{}}, nil
	}
	return []value.Value{k, v}, nil
}

// pairsFn returns the (iterator, state, control) triple the generic-for
// loop drives.
func pairsFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	obj := arg(args, 0)
	return []value.Value{value.HostCallable{Name: "next", Call: nextFn}, obj, value.Nil{}}, nil
}

// ipairsFn iterates the positional run of a table (indices 1..#t),
// stopping at the first absent index. When given a host object that
// advertises an async- or sync-iterator capability (hostbridge.Iterable /
// hostbridge.AsyncIterable), it passes the object straight back as the
// "fun" slot of the generic-for triple: the evaluator's host-capability
// branch recognizes and drives it directly, never calling it as a
// stateless-iterator function.
func ipairsFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	obj := arg(args, 0)
	if ho, ok := obj.(value.HostObject); ok {
		switch ho.Native.(type) {
		case hostbridge.AsyncIterable, hostbridge.Iterable:
			return []value.Value{ho, value.Nil{}, value.Nil{}}, nil
		}
	}
	step := value.HostCallable{Name: "inext", Call: func(ctx context.Context, a []value.Value) ([]value.Value, error) {
		t, ok := arg(a, 0).(*value.Table)
		if !ok {
			return nil, fmt.Errorf("ipairs: expected a table, got %s", value.TypeName(arg(a, 0)))
		}
		i, _ := arg(a, 1).(value.Int)
		i++
		v := t.Get(i)
		if v.Type() == value.TypeNil {
			return []value.Value{value.Nil{}}, nil
		}
		return []value.Value{i, v}, nil
	}}
	return []value.Value{step, obj, value.Int(0)}, nil
}

// scriptError is raised by the error() builtin and carries the script's
// message verbatim, so esl package can surface it without wrapping.
type scriptError struct {
	msg string
}

func (e *scriptError) Error() string { return e.msg }

func errorFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	msg := value.Repr(arg(args, 0))
	return nil, &scriptError{msg: msg}
}

func assertFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	cond := arg(args, 0)
	if !cond.Truthy() {
		msg := "assertion failed!"
		if len(args) > 1 {
			msg = value.Repr(args[1])
		}
		return nil, &scriptError{msg: msg}
	}
	return args, nil
}

// IsScriptError reports whether err originated from the error() or
// assert() builtins, for hosts that want to distinguish script-raised
// failures from interpreter-raised ones.
func IsScriptError(err error) bool {
	var se *scriptError
	return errors.As(err, &se)
}
