// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"fmt"
	"time"

	"github.com/go-esl/esl/value"
)

// PythonTimedelta returns the `python_timedelta` table. new() takes up to
// seven positional integers (days, seconds, microseconds, milliseconds,
// minutes, hours, weeks), each defaulting to 0, and wraps the resulting
// span in a value.HostObject backed by a Go time.Duration.
func PythonTimedelta() map[string]value.Value {
	tbl := value.NewTable()
	tbl.Set(value.Str("new"), value.HostCallable{Name: "python_timedelta.new", Call: timedeltaNewFn})
	return map[string]value.Value{"python_timedelta": tbl}
}

func timedeltaNewFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	parts := make([]int64, 7)
	for i := range parts {
		switch x := arg(args, i).(type) {
		case value.Int:
			parts[i] = int64(x)
		case value.Nil:
			// absent argument keeps the default of 0
		default:
			return nil, fmt.Errorf("python_timedelta.new: expected a number, got %s", value.TypeName(arg(args, i)))
		}
	}
	days, seconds, micros, millis, minutes, hours, weeks := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5], parts[6]
	d := time.Duration(days)*24*time.Hour +
		time.Duration(seconds)*time.Second +
		time.Duration(micros)*time.Microsecond +
		time.Duration(millis)*time.Millisecond +
		time.Duration(minutes)*time.Minute +
		time.Duration(hours)*time.Hour +
		time.Duration(weeks)*7*24*time.Hour
	return []value.Value{value.HostObject{Native: timedeltaValue{d}}}, nil
}

// timedeltaValue adapts time.Duration to the hostbridge.Attributable
// contract, exposing the span normalized the way a calendar delta is
// usually read: days may be negative, while seconds and microseconds are
// always non-negative remainders of a day and a second respectively.
type timedeltaValue struct {
	d time.Duration
}

const (
	microsPerSecond = int64(time.Second / time.Microsecond)
	microsPerDay    = 24 * 60 * 60 * microsPerSecond
)

// normalize splits the duration into (days, seconds, microseconds) with
// floored division, so -1 second becomes (-1 days, 86399 seconds).
func (td timedeltaValue) normalize() (days, seconds, micros int64) {
	total := td.d.Microseconds()
	days = total / microsPerDay
	rem := total - days*microsPerDay
	if rem < 0 {
		days--
		rem += microsPerDay
	}
	return days, rem / microsPerSecond, rem % microsPerSecond
}

func (td timedeltaValue) GetAttribute(key string) (value.Value, bool) {
	days, seconds, micros := td.normalize()
	switch key {
	case "days":
		return value.Int(days), true
	case "seconds":
		return value.Int(seconds), true
	case "microseconds":
		return value.Int(micros), true
	default:
		return value.Nil{}, false
	}
}

func (td timedeltaValue) SetAttribute(key string, val value.Value) error {
	return fmt.Errorf("python_timedelta: %s is read-only", key)
}

func (td timedeltaValue) DelAttribute(key string) error {
	return fmt.Errorf("python_timedelta: %s cannot be deleted", key)
}

func (td timedeltaValue) HasAttribute(key string) bool {
	switch key {
	case "days", "seconds", "microseconds":
		return true
	default:
		return false
	}
}
