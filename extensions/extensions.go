// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import "github.com/go-esl/esl/value"

// All returns the complete default extension set: the always-present
// basic builtins plus every optional family (math, table, python_list,
// python_datetime, python_timedelta, python_decimal). esl.Interpreter
// installs this set unless the embedding host supplies its own.
func All() map[string]value.Value {
	merged := map[string]value.Value{}
	for _, group := range []map[string]value.Value{
		Basic(),
		Math(),
		Table(),
		PythonList(),
		PythonDatetime(),
		PythonTimedelta(),
		PythonDecimal(),
	} {
		for k, v := range group {
			merged[k] = v
		}
	}
	return merged
}
