// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions_test

import (
	"context"
	"testing"

	"github.com/go-esl/esl/eval"
	"github.com/go-esl/esl/extensions"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/parser"
	"github.com/go-esl/esl/value"
)

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

func TestTableInsertAppends(t *testing.T) {
	src := `t = {10, 20}
table.insert(t, 30)
return t[1] + t[2] + t[3]`
	if got := run(t, src); got != value.Int(60) {
		t.Errorf("got %v, want 60", got)
	}
}

func TestMathRoundIdentityOnInt(t *testing.T) {
	if got := run(t, "return math.round(7)"); got != value.Int(7) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestPythonListNewAppendAndIndex(t *testing.T) {
	src := `l = python_list.new({1, 2, 3})
python_list.append(l, 4)
sum = 0
for i, v in ipairs(l) do sum = sum + v end
return sum + l[0]`
	if got := run(t, src); got != value.Int(11) {
		t.Errorf("got %v, want 11", got)
	}
}

func TestPythonDecimalStringAttribute(t *testing.T) {
	src := `d = python_decimal.new("3.1400")
return d.string`
	if got := run(t, src); got.String() != "3.1400" {
		t.Errorf("got %q, want %q", got.String(), "3.1400")
	}
}
