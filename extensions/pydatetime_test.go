// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-esl/esl/eval"
	"github.com/go-esl/esl/extensions"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/parser"
	"github.com/go-esl/esl/value"
)

func TestStrftimeTranslatesDirectives(t *testing.T) {
	src := `return python_datetime.strftime(stamp, "%Y-%m-%d %H:%M:%S")`
	chunk, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	ns := namespace.New()
	for name, v := range extensions.All() {
		ns.SetVar(name, v, true)
	}
	ns.SetVar("stamp", value.HostObject{Native: time.Date(2024, time.March, 5, 13, 45, 9, 0, time.UTC)}, true)

	ev := eval.New(src, false)
	results, err := ev.Run(context.Background(), chunk, ns)
	if err != nil {
		t.Fatal(err)
	}
	want := "2024-03-05 13:45:09"
	if len(results) != 1 || results[0].String() != want {
		t.Errorf("got %v, want %q", results, want)
	}
}
