// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// eval_test exercises the evaluator end-to-end via package parser and a
// fresh namespace/extensions, running whole scripts rather than mocking
// individual AST nodes: the evaluator's behavior is only meaningful in
// terms of what a whole chunk returns.
package eval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-esl/esl/eval"
	"github.com/go-esl/esl/extensions"
	"github.com/go-esl/esl/hostbridge"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/parser"
	"github.com/go-esl/esl/value"
)

// counter1to10 is a host value implementing hostbridge.AsyncIterable,
// producing the integers 1..10 and then signalling exhaustion.
type counter1to10 struct{}

func (counter1to10) AsyncIterator() func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error) {
	return func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error) {
		i, _ := control.(value.Int)
		next := i + 1
		if next > 10 {
			return value.Nil{}, value.Nil{}, false, nil
		}
		return next, next, true, nil
	}
}

func run(t *testing.T, src string) value.Value {
	t.Helper()
	chunk, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	ns := namespace.New()
	for name, v := range extensions.All() {
		ns.SetVar(name, v, true)
	}
	ev := eval.New(src, false)
	results, err := ev.Run(context.Background(), chunk, ns)
	if err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
	if len(results) == 0 {
		return value.Nil{}
	}
	return results[0]
}

func TestArithmeticPrecedence(t *testing.T) {
	if got := run(t, "return 5 + 4 * 3"); got != value.Int(17) {
		t.Errorf("got %v, want 17", got)
	}
}

func TestNestedNumericFor(t *testing.T) {
	src := `a=0
for i=1,12,2 do
  for j=1,5 do
    a=a+1
  end
end
return a`
	if got := run(t, src); got != value.Int(30) {
		t.Errorf("got %v, want 30", got)
	}
}

func TestGenericForOverMixedTable(t *testing.T) {
	src := `a={1,2,3,["b"]=7,c=8,4,5}
b=0
for k,v in pairs(a) do b=b+v end
return b`
	if got := run(t, src); got != value.Int(30) {
		t.Errorf("got %v, want 30", got)
	}
}

func TestFunctionValueSelection(t *testing.T) {
	src := `function f(x) return 1+x end
function g(x) return 2+x end
function h(m) return m end
return 1+h(f or g)(5)`
	if got := run(t, src); got != value.Int(7) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestLongStringNoEscapeProcessing(t *testing.T) {
	src := "--[=[ x ]=] local s = [[a\\nb]]; return s"
	got := run(t, src)
	want := `a\nb`
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

// and/or short-circuit, never evaluating the unreached operand. A call
// with an observable side effect makes this checkable.
func TestShortCircuit(t *testing.T) {
	src := `hit = false
function bang() hit = true; return true end
x = false and bang()
return hit`
	if got := run(t, src); got.Truthy() {
		t.Error("false and X evaluated X")
	}

	src2 := `hit = false
function bang() hit = true; return true end
x = true or bang()
return hit`
	if got := run(t, src2); got.Truthy() {
		t.Error("true or X evaluated X")
	}
}

// break exits only the innermost loop.
func TestBreakOnlyExitsInnermostLoop(t *testing.T) {
	src := `count = 0
for i=1,3 do
  for j=1,3 do
    if j == 2 then break end
    count = count + 1
  end
end
return count`
	if got := run(t, src); got != value.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	chunk, err := parser.Parse("break")
	if err != nil {
		t.Fatal(err)
	}
	ev := eval.New("break", false)
	_, err = ev.Run(context.Background(), chunk, namespace.New())
	if err == nil {
		t.Fatal("expected an error for break outside a loop")
	}
}

func TestReturnUnwindsToCallBoundary(t *testing.T) {
	src := `function f()
  for i=1,10 do
    if i == 3 then return i end
  end
  return -1
end
return f()`
	if got := run(t, src); got != value.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
}

// A multi-value top-level return yields every value, in order.
func TestMultiValueTopLevelReturn(t *testing.T) {
	src := `a, b = 5, 6
a, b = b, a
return a, b`
	chunk, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	ev := eval.New(src, false)
	results, err := ev.Run(context.Background(), chunk, namespace.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0] != value.Int(6) || results[1] != value.Int(5) {
		t.Errorf("got %v, want [6 5]", results)
	}
}

func TestWhileAndRepeatUntil(t *testing.T) {
	if got := run(t, "a=0; while a < 5 do a = a + 1 end; return a"); got != value.Int(5) {
		t.Errorf("while: got %v, want 5", got)
	}
	if got := run(t, "a=0; repeat a = a + 1 until a >= 5; return a"); got != value.Int(5) {
		t.Errorf("repeat/until: got %v, want 5", got)
	}
}

func TestIfElseifElse(t *testing.T) {
	src := `function classify(n)
  if n < 0 then return "neg"
  elseif n == 0 then return "zero"
  else return "pos"
  end
end
return classify(-1) .. classify(0) .. classify(1)`
	if got := run(t, src); got.String() != "negzeropos" {
		t.Errorf("got %q", got.String())
	}
}

func TestMethodCallBindsSelf(t *testing.T) {
	src := `t = {}
t.value = 41
function t:bump(n) return self.value + n end
return t:bump(1)`
	if got := run(t, src); got != value.Int(42) {
		t.Errorf("got %v, want 42", got)
	}
}

// A failure inside a called function carries the call stack and the
// offending line in its Trace, so the host can render a script-level
// report.
func TestRuntimeErrorCarriesTrace(t *testing.T) {
	src := `function f()
  return 1 + "a"
end
return f()`
	chunk, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	ns := namespace.New()
	ev := eval.New(src, false)
	_, err = ev.Run(context.Background(), chunk, ns)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	var tr *eval.Trace
	if !errors.As(err, &tr) {
		t.Fatalf("got %T, want *eval.Trace", err)
	}
	if len(tr.CallStack) == 0 || tr.CallStack[len(tr.CallStack)-1].Name != "f" {
		t.Errorf("call stack = %v, want innermost frame f", tr.CallStack)
	}
	if len(tr.Lines) == 0 || tr.Lines[len(tr.Lines)-1] != 2 {
		t.Errorf("line stack = %v, want offending line 2", tr.Lines)
	}
}

func TestAccessDeniedOnUnderscorePrefix(t *testing.T) {
	chunk, err := parser.Parse("return host._secret")
	if err != nil {
		t.Fatal(err)
	}
	ns := namespace.New()
	ns.SetVar("host", value.HostObject{Native: nil}, true)
	ev := eval.New("", false)
	_, err = ev.Run(context.Background(), chunk, ns)
	if err == nil {
		t.Fatal("expected an access error")
	}
}

func TestTableInsertExtension(t *testing.T) {
	src := `t = {1, 2}
table.insert(t, 3)
return #t`
	if got := run(t, src); got != value.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestLengthOperator(t *testing.T) {
	if got := run(t, "t={1,2,3}; return #t"); got != value.Int(3) {
		t.Errorf("#t = %v, want 3", got)
	}
	// String length counts codepoints, not bytes.
	if got := run(t, `return #"héllo"`); got != value.Int(5) {
		t.Errorf(`#"héllo" = %v, want 5`, got)
	}
}

func TestIntegerDivisionTruncatesTowardZero(t *testing.T) {
	if got := run(t, "return 7/2"); got != value.Int(3) {
		t.Errorf("7/2 = %v, want 3", got)
	}
	if got := run(t, "return -7/2"); got != value.Int(-3) {
		t.Errorf("-7/2 = %v, want -3", got)
	}
}

// A host async iterator producing 1..10, driven through ipairs's
// generic-for protocol.
func TestGenericForOverHostAsyncIterator(t *testing.T) {
	chunk, err := parser.Parse(`result=0
for _,v in ipairs(a) do result=result+v end
return result`)
	if err != nil {
		t.Fatal(err)
	}
	ns := namespace.New()
	for name, v := range extensions.All() {
		ns.SetVar(name, v, true)
	}
	ns.SetVar("a", value.HostObject{Native: counter1to10{}}, true)

	ev := eval.New("", false)
	results, err := ev.Run(context.Background(), chunk, ns)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0] != value.Int(55) {
		t.Errorf("got %v, want [55]", results)
	}
}

var _ hostbridge.AsyncIterable = counter1to10{}
