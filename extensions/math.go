// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"fmt"

	"github.com/go-esl/esl/value"
)

// Math returns the `math` table. esl's value model has no float kind, so
// round is the identity function on an Int and a type error on anything
// else; kept so scripts written against a float-capable host don't need
// to special-case its absence.
func Math() map[string]value.Value {
	tbl := value.NewTable()
	tbl.Set(value.Str("round"), value.HostCallable{Name: "math.round", Call: roundFn})
	return map[string]value.Value{"math": tbl}
}

func roundFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	v := arg(args, 0)
	if i, ok := v.(value.Int); ok {
		return []value.Value{i}, nil
	}
	return nil, fmt.Errorf("math.round: expected a number, got %s", value.TypeName(v))
}
