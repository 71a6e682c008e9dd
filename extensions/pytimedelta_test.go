// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions_test

import (
	"testing"

	"github.com/go-esl/esl/value"
)

func TestPythonTimedeltaNewAndAttributes(t *testing.T) {
	src := `d = python_timedelta.new(1, 3661)
return d.days .. ":" .. d.seconds`
	if got := run(t, src); got.String() != "1:3661" {
		t.Errorf("got %q, want %q", got.String(), "1:3661")
	}
}

func TestPythonTimedeltaMillisecondsCarry(t *testing.T) {
	src := `d = python_timedelta.new(0, 0, 0, 1500)
return d.seconds * 1000000 + d.microseconds`
	if got := run(t, src); got != value.Int(1500000) {
		t.Errorf("got %v, want 1500000", got)
	}
}

func TestPythonTimedeltaHoursMinutesWeeks(t *testing.T) {
	src := `d = python_timedelta.new(0, 0, 0, 0, 30, 2, 1)
return d.days .. ":" .. d.seconds`
	if got := run(t, src); got.String() != "7:9000" {
		t.Errorf("got %q, want %q", got.String(), "7:9000")
	}
}
