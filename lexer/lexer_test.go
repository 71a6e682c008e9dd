// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package lexer_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/go-esl/esl/lexer"
	"github.com/go-esl/esl/token"
)

// Lexing the decimal spelling of any non-negative integer yields a
// single Int token whose value parses back to that integer.
func TestIntegerRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 7, 42, 1000000} {
		src := strconv.FormatInt(n, 10)
		toks, err := lexer.All(src)
		if err != nil {
			t.Fatalf("All(%q): %v", src, err)
		}
		if len(toks) != 1 || toks[0].Kind != token.Int {
			t.Fatalf("All(%q) = %v, want single Int token", src, toks)
		}
		got, err := strconv.ParseInt(toks[0].Value, 10, 64)
		if err != nil || got != n {
			t.Errorf("All(%q) token value = %q, want %d", src, toks[0].Value, n)
		}
	}
}

func TestShortString(t *testing.T) {
	toks, err := lexer.All(`"hello, world"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != token.String || toks[0].Value != "hello, world" {
		t.Fatalf("got %v", toks)
	}
}

// Long-bracket strings preserve their inner text verbatim, including
// characters that would be escape sequences in the short-string form.
func TestLongBracketStringVerbatim(t *testing.T) {
	toks, err := lexer.All(`[[a\nb]]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != token.String || toks[0].Value != `a\nb` {
		t.Fatalf("got %v, want literal four-char body a\\nb", toks)
	}
}

func TestLongBracketStringWithEqLevel(t *testing.T) {
	toks, err := lexer.All(`[==[ x ]=] still inside ]==]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != token.String {
		t.Fatalf("got %v", toks)
	}
	want := " x ]=] still inside "
	if toks[0].Value != want {
		t.Errorf("got %q, want %q", toks[0].Value, want)
	}
}

func TestLongBracketStringDropsLeadingNewline(t *testing.T) {
	toks, err := lexer.All("[[\nfirst line]]")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Value != "first line" {
		t.Fatalf("got %v", toks)
	}
}

func TestShortCommentToEndOfLine(t *testing.T) {
	toks, err := lexer.All("a = 1 -- trailing comment\nb = 2")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, tok := range toks {
		if tok.Kind == token.Name {
			names = append(names, tok.Value)
		}
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("got names %v", names)
	}
}

func TestLongBracketComment(t *testing.T) {
	toks, err := lexer.All("--[=[ x\ny ]=]\nlocal a = 1")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) == 0 || toks[0].Kind != token.Local {
		t.Fatalf("comment not fully skipped: got %v", toks)
	}
	// The comment spans two lines, so "local" should be on line 3.
	if toks[0].Line != 3 {
		t.Errorf("local token line = %v, want 3", toks[0].Line)
	}
}

func TestKeywordVsName(t *testing.T) {
	toks, err := lexer.All("while whiley")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Kind != token.While || toks[1].Kind != token.Name {
		t.Fatalf("got %v", toks)
	}
}

func TestUnterminatedLongStringIsLexError(t *testing.T) {
	_, err := lexer.All("[[unterminated")
	if err == nil {
		t.Fatal("expected a lex error")
	}
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %T, want *lexer.Error", err)
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	toks, err := lexer.All("a ~= b == c <= d .. e ... f")
	if err != nil {
		t.Fatal(err)
	}
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.Name, token.Ne, token.Name, token.Eq, token.Name, token.Le, token.Name,
		token.Concat, token.Name, token.Ellipsis, token.Name,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}
