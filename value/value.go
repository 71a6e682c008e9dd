// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package value defines the runtime value model of esl: a closed sum
// type of Nil, Bool, Int, Str, Table, ScriptFunction, HostCallable, and
// HostObject.
package value

import "strconv"

// Type identifies the dynamic type of a [Value].
type Type int

const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeString
	TypeTable
	TypeFunction
	TypeHostCallable
	TypeHostObject
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeFunction:
		return "function"
	case TypeHostCallable:
		return "function"
	case TypeHostObject:
		return "userdata"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value esl can hold: [Nil], [Bool],
// [Int], [Str], *[Table], *[ScriptFunction], [HostCallable], and
// [HostObject] implementations.
type Value interface {
	Type() Type
	// Truthy reports whether the value counts as true in a boolean context.
	// Only Nil and the boolean false value are falsy.
	Truthy() bool
	String() string
}

// Nil is the single absent value.
type Nil struct{}

func (Nil) Type() Type     { return TypeNil }
func (Nil) Truthy() bool   { return false }
func (Nil) String() string { return "nil" }

// Bool wraps a Go bool.
type Bool bool

func (b Bool) Type() Type     { return TypeBool }
func (b Bool) Truthy() bool   { return bool(b) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Int is esl's sole numeric type: an arbitrary-width integer is not
// supported, values are Go's native 64-bit int, and the dialect has no
// float literals.
type Int int64

func (i Int) Type() Type     { return TypeInt }
func (i Int) Truthy() bool   { return true }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Str is an immutable byte string.
type Str string

func (s Str) Type() Type     { return TypeString }
func (s Str) Truthy() bool   { return true }
func (s Str) String() string { return string(s) }

// Function is implemented by both *[ScriptFunction] and [HostCallable],
// the two callable value kinds.
type Function interface {
	Value
	functionValue()
}

// Equal reports whether a and b are the same esl value under `==`.
// Tables, functions, and host objects compare by identity; other kinds
// compare by Go equality of their underlying representation.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil{}
	}
	if b == nil {
		b = Nil{}
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Nil:
		return true
	case Bool:
		return av == b.(Bool)
	case Int:
		return av == b.(Int)
	case Str:
		return av == b.(Str)
	case *Table:
		return av == b.(*Table)
	default:
		return a == b
	}
}

// TypeName is a convenience for diagnostics: the dynamic type name of v,
// treating a nil Go interface as esl nil.
func TypeName(v Value) string {
	if v == nil {
		return TypeNil.String()
	}
	return v.Type().String()
}

// Repr renders v the way esl's `tostring`-equivalent diagnostics do:
// strings are unquoted, everything else uses its String method.
func Repr(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
