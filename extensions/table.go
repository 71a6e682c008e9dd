// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"fmt"

	"github.com/go-esl/esl/value"
)

// Table returns the `table` helper table.
func Table() map[string]value.Value {
	tbl := value.NewTable()
	tbl.Set(value.Str("insert"), value.HostCallable{Name: "table.insert", Call: insertFn})
	return map[string]value.Value{"table": tbl}
}

func insertFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	t, ok := arg(args, 0).(*value.Table)
	if !ok {
		return nil, fmt.Errorf("table.insert: expected a table, got %s", value.TypeName(arg(args, 0)))
	}
	t.Append(arg(args, 1))
	return nil, nil
}
