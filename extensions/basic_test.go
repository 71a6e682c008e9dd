// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions_test

import (
	"context"
	"testing"

	"github.com/go-esl/esl/extensions"
	"github.com/go-esl/esl/value"
)

func TestNextOverTable(t *testing.T) {
	tbl := value.NewTable()
	tbl.Append(value.Int(10))
	tbl.Append(value.Int(20))

	basic := extensions.Basic()
	next := basic["next"].(value.HostCallable)

	rets, err := next.Call(context.Background(), []value.Value{tbl, value.Nil{}})
	if err != nil {
		t.Fatal(err)
	}
	if rets[0] != value.Int(1) || rets[1] != value.Int(10) {
		t.Fatalf("first next() = %v, want (1, 10)", rets)
	}

	rets, err = next.Call(context.Background(), []value.Value{tbl, rets[0]})
	if err != nil {
		t.Fatal(err)
	}
	if rets[0] != value.Int(2) || rets[1] != value.Int(20) {
		t.Fatalf("second next() = %v, want (2, 20)", rets)
	}

	rets, err = next.Call(context.Background(), []value.Value{tbl, rets[0]})
	if err != nil {
		t.Fatal(err)
	}
	if rets[0].Type() != value.TypeNil {
		t.Fatalf("next() past the end = %v, want nil", rets)
	}
}

func TestPairsReturnsNextTableNil(t *testing.T) {
	basic := extensions.Basic()
	pairs := basic["pairs"].(value.HostCallable)
	tbl := value.NewTable()

	rets, err := pairs.Call(context.Background(), []value.Value{tbl})
	if err != nil {
		t.Fatal(err)
	}
	if len(rets) != 3 {
		t.Fatalf("pairs() returned %d values, want 3", len(rets))
	}
	if _, ok := rets[0].(value.HostCallable); !ok {
		t.Errorf("pairs()[0] = %T, want a HostCallable iterator", rets[0])
	}
	if rets[1] != value.Value(tbl) {
		t.Errorf("pairs()[1] = %v, want the table itself", rets[1])
	}
	if rets[2].Type() != value.TypeNil {
		t.Errorf("pairs()[2] = %v, want nil", rets[2])
	}
}

func TestAssertRaisesOnFalsy(t *testing.T) {
	basic := extensions.Basic()
	assert := basic["assert"].(value.HostCallable)

	if _, err := assert.Call(context.Background(), []value.Value{value.Bool(true)}); err != nil {
		t.Errorf("assert(true) failed: %v", err)
	}

	_, err := assert.Call(context.Background(), []value.Value{value.Bool(false), value.Str("boom")})
	if err == nil {
		t.Fatal("assert(false) should raise")
	}
	if !extensions.IsScriptError(err) {
		t.Errorf("assert error not classified as a script error: %v", err)
	}
	if err.Error() != "boom" {
		t.Errorf("got %q, want %q", err.Error(), "boom")
	}
}

func TestErrorFnRaisesScriptError(t *testing.T) {
	basic := extensions.Basic()
	errorFn := basic["error"].(value.HostCallable)

	_, err := errorFn.Call(context.Background(), []value.Value{value.Str("oops")})
	if err == nil || err.Error() != "oops" {
		t.Fatalf("got %v, want error \"oops\"", err)
	}
	if !extensions.IsScriptError(err) {
		t.Error("error() result should be a script error")
	}
}

func TestMathRound(t *testing.T) {
	math := extensions.Math()["math"].(*value.Table)
	round := math.Get(value.Str("round")).(value.HostCallable)
	rets, err := round.Call(context.Background(), []value.Value{value.Int(7)})
	if err != nil {
		t.Fatal(err)
	}
	if rets[0] != value.Int(7) {
		t.Errorf("got %v, want 7", rets[0])
	}
}
