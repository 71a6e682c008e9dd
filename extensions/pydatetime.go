// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-esl/esl/eval"
	"github.com/go-esl/esl/value"
)

// PythonDatetime returns the `python_datetime` table. A host exposes a Go
// time.Time to scripts by wrapping it in value.HostObject{Native: t};
// strftime here accepts that wrapper and translates Python's strftime
// directives to Go's reference-time layout before calling time.Format.
func PythonDatetime() map[string]value.Value {
	tbl := value.NewTable()
	tbl.Set(value.Str("strftime"), value.HostCallable{Name: "python_datetime.strftime", Call: strftimeFn})
	return map[string]value.Value{"python_datetime": tbl}
}

func strftimeFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	if len(args) < 2 {
		return nil, eval.NewArityError("python_datetime.strftime: takes 2 arguments (%d given)", len(args))
	}
	ho, ok := arg(args, 0).(value.HostObject)
	if !ok {
		return nil, fmt.Errorf("python_datetime.strftime: expected a datetime, got %s", value.TypeName(arg(args, 0)))
	}
	t, ok := ho.Native.(time.Time)
	if !ok {
		return nil, fmt.Errorf("python_datetime.strftime: host object does not wrap a time.Time")
	}
	frmt, ok := arg(args, 1).(value.Str)
	if !ok {
		return nil, fmt.Errorf("python_datetime.strftime: expected a format string")
	}
	return []value.Value{value.Str(t.Format(strftimeToGoLayout(string(frmt))))}, nil
}

// strftimeToGoLayout translates the subset of Python's strftime directives
// esl scripts are likely to use into Go's reference-time layout string.
func strftimeToGoLayout(format string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006",
		"%y", "06",
		"%m", "01",
		"%d", "02",
		"%H", "15",
		"%I", "03",
		"%M", "04",
		"%S", "05",
		"%p", "PM",
		"%Z", "MST",
		"%z", "-0700",
		"%A", "Monday",
		"%a", "Mon",
		"%B", "January",
		"%b", "Jan",
		"%%", "%",
	)
	return replacer.Replace(format)
}
