// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/go-esl/esl/value"
)

// PythonDecimal returns the `python_decimal` table. esl has no
// arbitrary-precision numeric kind, so new() wraps
// github.com/shopspring/decimal.Decimal in a value.HostObject. Scripts can
// read the value back through its `string` attribute; esl's arithmetic
// operators accept only Int, so they do not apply to a decimal.
func PythonDecimal() map[string]value.Value {
	tbl := value.NewTable()
	tbl.Set(value.Str("new"), value.HostCallable{Name: "python_decimal.new", Call: decimalNewFn})
	return map[string]value.Value{"python_decimal": tbl}
}

func decimalNewFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	v := arg(args, 0)
	var d decimal.Decimal
	switch x := v.(type) {
	case value.Int:
		d = decimal.NewFromInt(int64(x))
	case value.Str:
		parsed, err := decimal.NewFromString(string(x))
		if err != nil {
			return nil, fmt.Errorf("python_decimal.new: %w", err)
		}
		d = parsed
	default:
		return nil, fmt.Errorf("python_decimal.new: cannot convert %s to a decimal", value.TypeName(v))
	}
	return []value.Value{value.HostObject{Native: decimalValue{d}}}, nil
}

// decimalValue adapts decimal.Decimal to the hostbridge.Attributable
// contract so scripts can read d.string to render a decimal without a
// tostring builtin.
type decimalValue struct {
	d decimal.Decimal
}

func (d decimalValue) GetAttribute(key string) (value.Value, bool) {
	switch key {
	case "string":
		// Keep the digits after the point the value was written with, so
		// "3.1400" reads back as "3.1400" rather than "3.14".
		if exp := d.d.Exponent(); exp < 0 {
			return value.Str(d.d.StringFixed(-exp)), true
		}
		return value.Str(d.d.String()), true
	default:
		return value.Nil{}, false
	}
}

func (d decimalValue) SetAttribute(key string, val value.Value) error {
	return fmt.Errorf("python_decimal: %s is read-only", key)
}

func (d decimalValue) DelAttribute(key string) error {
	return fmt.Errorf("python_decimal: %s cannot be deleted", key)
}

func (d decimalValue) HasAttribute(key string) bool {
	return key == "string"
}
