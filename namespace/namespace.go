// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package namespace implements esl's lexical scope chain: a
// parent-linked frame of local variables with local-vs-delegate-to-parent
// write semantics. Host attribute/item access (and the "_"-prefix denial
// rule) lives in package hostbridge, not here: the variable scope chain
// and the host-object facade are separable concerns.
package namespace

import "github.com/go-esl/esl/value"

// Namespace is one frame of the lexical scope chain.
type Namespace struct {
	vars   map[string]value.Value
	parent *Namespace
}

// New returns a root namespace with no parent.
func New() *Namespace {
	return &Namespace{vars: make(map[string]value.Value)}
}

// Child returns a new namespace nested inside ns. Every block, function
// call, and loop iteration that needs its own scope creates one of these.
func (ns *Namespace) Child() *Namespace {
	return &Namespace{vars: make(map[string]value.Value), parent: ns}
}

// SetVar stores value for key. When local is false, the assignment walks
// up the parent chain to the frame that already declares key and updates
// it there; only when no frame declares key (or local is true) does it
// create a new binding in ns itself. Plain `x = 1` mutates an existing
// outer binding if one exists; `local x = 1` always shadows into ns.
func (ns *Namespace) SetVar(key string, val value.Value, local bool) {
	if _, ok := ns.vars[key]; ok || local || ns.parent == nil {
		ns.vars[key] = val
		return
	}
	ns.parent.SetVar(key, val, false)
}

// GetVar looks up key in ns and its ancestors, returning value.Nil{} and
// false if no frame declares it.
func (ns *Namespace) GetVar(key string) (value.Value, bool) {
	if v, ok := ns.vars[key]; ok {
		return v, true
	}
	if ns.parent != nil {
		return ns.parent.GetVar(key)
	}
	return value.Nil{}, false
}

// DelVar removes key from whichever frame in the chain declares it.
func (ns *Namespace) DelVar(key string) {
	if _, ok := ns.vars[key]; ok {
		delete(ns.vars, key)
		return
	}
	if ns.parent != nil {
		ns.parent.DelVar(key)
	}
}

// Parent returns ns's enclosing namespace, or nil at the root.
func (ns *Namespace) Parent() *Namespace {
	return ns.parent
}
