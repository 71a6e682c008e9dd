// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package esl_test

import (
	"context"
	"testing"

	"github.com/go-esl/esl/esl"
	"github.com/go-esl/esl/value"
)

func TestRunReturnsTopLevelReturnValue(t *testing.T) {
	interp, err := esl.New("return 5 + 4 * 3")
	if err != nil {
		t.Fatal(err)
	}
	got, err := interp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Int(17) {
		t.Errorf("got %v, want 17", got)
	}
}

func TestRunMultiValueReturnYieldsSequence(t *testing.T) {
	interp, err := esl.New("a, b = 5, 6\na, b = b, a\nreturn a, b")
	if err != nil {
		t.Fatal(err)
	}
	got, err := interp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	seq, ok := got.(*value.Table)
	if !ok {
		t.Fatalf("got %T, want a sequence table", got)
	}
	if seq.Len() != 2 || seq.Get(value.Int(1)) != value.Int(6) || seq.Get(value.Int(2)) != value.Int(5) {
		t.Errorf("got %v len %d, want [6, 5]", seq, seq.Len())
	}
}

func TestRunWithNoReturnYieldsNil(t *testing.T) {
	interp, err := esl.New("x = 1")
	if err != nil {
		t.Fatal(err)
	}
	got, err := interp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Type() != value.TypeNil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestSyntaxErrorFromMalformedScript(t *testing.T) {
	_, err := esl.New("if x then")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	var se *esl.SyntaxError
	if se, _ = err.(*esl.SyntaxError); se == nil {
		t.Fatalf("got %T, want *esl.SyntaxError", err)
	}
}

func TestRuntimeErrorFromTypeMismatch(t *testing.T) {
	interp, err := esl.New(`return 1 + "a"`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = interp.Run(context.Background())
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if _, ok := err.(*esl.RuntimeError); !ok {
		t.Fatalf("got %T, want *esl.RuntimeError", err)
	}
}

func TestAddExtensionsAndNamespace(t *testing.T) {
	interp, err := esl.New("return greet()", esl.WithoutDefaultExtensions())
	if err != nil {
		t.Fatal(err)
	}
	interp.AddExtensions(map[string]value.Value{
		"greet": value.HostCallable{Name: "greet", Call: func(ctx context.Context, args []value.Value) ([]value.Value, error) {
			return []value.Value{value.Str("hi")}, nil
		}},
	})
	got, err := interp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Str("hi") {
		t.Errorf("got %v, want hi", got)
	}
}

func TestWithNamespaceSharesGlobalsAcrossRuns(t *testing.T) {
	first, err := esl.New("x = 41")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	second, err := esl.New("return x + 1", esl.WithNamespace(first.Namespace()), esl.WithoutDefaultExtensions())
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Int(42) {
		t.Errorf("got %v, want 42", got)
	}
}
