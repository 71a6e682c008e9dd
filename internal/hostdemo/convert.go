// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package hostdemo

import "github.com/go-esl/esl/value"

// fromJSON converts a decoded JSON value into an esl [value.Value].
// Numbers are truncated to Int since the value model has no float kind;
// objects become Tables keyed by their field names and arrays become
// 1-based sequence Tables.
func fromJSON(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Bool(x)
	case float64:
		return value.Int(int64(x))
	case string:
		return value.Str(x)
	case []any:
		t := value.NewTable()
		for _, elem := range x {
			t.Append(fromJSON(elem))
		}
		return t
	case map[string]any:
		t := value.NewTable()
		for k, elem := range x {
			t.Set(value.Str(k), fromJSON(elem))
		}
		return t
	default:
		return value.Nil{}
	}
}

// toJSON converts an esl [value.Value] back into a plain Go value that
// encoding/json can marshal, the mirror image of fromJSON.
func toJSON(v value.Value) any {
	switch x := v.(type) {
	case value.Nil:
		return nil
	case value.Bool:
		return bool(x)
	case value.Int:
		return int64(x)
	case value.Str:
		return string(x)
	case *value.Table:
		return tableToJSON(x)
	default:
		return x.String()
	}
}

// tableToJSON renders a Table as a JSON array if it has no named keys
// (a plain sequence), or an object otherwise. Table.Iterate always yields
// the positional run (length t.Len()) before any named entries, so
// anything past that point means the table has named keys.
func tableToJSON(t *value.Table) any {
	seqLen := int(t.Len())
	seq := make([]any, 0, seqLen)
	obj := map[string]any{}
	i := 0
	t.Iterate(func(e value.Entry) bool {
		if i < seqLen {
			seq = append(seq, toJSON(e.Val))
		} else {
			obj[value.Repr(e.Key)] = toJSON(e.Val)
		}
		i++
		return true
	})
	if len(obj) == 0 {
		return seq
	}
	for i, v := range seq {
		obj[value.Int(i+1).String()] = v
	}
	return obj
}
