// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package namespace_test

import (
	"testing"

	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/value"
)

// A bare assignment in a nested scope updates the nearest existing
// binding, while a local declaration always binds fresh in the innermost
// frame.
func TestScopeWriteDiscipline(t *testing.T) {
	root := namespace.New()
	root.SetVar("a", value.Int(1), true)

	child := root.Child()
	child.SetVar("a", value.Int(2), false)

	got, ok := root.GetVar("a")
	if !ok || got != value.Int(2) {
		t.Fatalf("bare assignment in child scope should update root binding, got %v", got)
	}

	grandchild := child.Child()
	grandchild.SetVar("a", value.Int(3), true)

	gotChild, _ := child.GetVar("a")
	if gotChild != value.Int(2) {
		t.Errorf("local declaration leaked into parent scope: got %v", gotChild)
	}
	gotGrandchild, _ := grandchild.GetVar("a")
	if gotGrandchild != value.Int(3) {
		t.Errorf("grandchild shadow not visible: got %v", gotGrandchild)
	}
}

func TestGetVarUndeclaredReturnsNil(t *testing.T) {
	ns := namespace.New()
	v, ok := ns.GetVar("nope")
	if ok {
		t.Fatal("expected not found")
	}
	if v.Type() != value.TypeNil {
		t.Errorf("got %v, want nil", v)
	}
}

func TestDelVarRemovesNearestBinding(t *testing.T) {
	root := namespace.New()
	root.SetVar("x", value.Int(1), true)
	child := root.Child()
	child.DelVar("x")
	if _, ok := root.GetVar("x"); ok {
		t.Error("DelVar should have removed the root binding")
	}
}

func TestChildSetVarWithoutExistingBindingCreatesAtRoot(t *testing.T) {
	root := namespace.New()
	child := root.Child()
	// No frame declares "y" yet, so a non-local assignment creates it at
	// the root (the outermost frame).
	child.SetVar("y", value.Int(9), false)
	got, ok := root.GetVar("y")
	if !ok || got != value.Int(9) {
		t.Errorf("got %v, ok=%v, want 9 at root", got, ok)
	}
}
