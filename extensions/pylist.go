// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"fmt"

	"github.com/go-esl/esl/value"
)

// pyList is a 0-indexed mutable sequence. It implements
// hostbridge.Indexable and hostbridge.Iterable so scripts can use normal
// `[]` indexing and generic-for over a python_list value.
type pyList struct {
	items []value.Value
}

func (l *pyList) GetItem(key value.Value) (value.Value, bool) {
	i, ok := key.(value.Int)
	if !ok || i < 0 || int(i) >= len(l.items) {
		return value.Nil{}, false
	}
	return l.items[i], true
}

func (l *pyList) SetItem(key value.Value, val value.Value) error {
	i, ok := key.(value.Int)
	if !ok || i < 0 {
		return fmt.Errorf("python_list: invalid index %s", value.Repr(key))
	}
	for int(i) >= len(l.items) {
		l.items = append(l.items, value.Nil{})
	}
	l.items[i] = val
	return nil
}

func (l *pyList) DelItem(key value.Value) error {
	i, ok := key.(value.Int)
	if !ok || i < 0 || int(i) >= len(l.items) {
		return fmt.Errorf("python_list: invalid index %s", value.Repr(key))
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

func (l *pyList) HasItem(key value.Value) bool {
	_, ok := l.GetItem(key)
	return ok
}

func (l *pyList) Iterator() func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error) {
	return func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error) {
		i, _ := control.(value.Int)
		if int(i) >= len(l.items) {
			return value.Nil{}, value.Nil{}, false, nil
		}
		v := l.items[i]
		return i + 1, v, true, nil
	}
}

// PythonList returns the `python_list` table.
func PythonList() map[string]value.Value {
	tbl := value.NewTable()
	tbl.Set(value.Str("new"), value.HostCallable{Name: "python_list.new", Call: pyListNewFn})
	tbl.Set(value.Str("append"), value.HostCallable{Name: "python_list.append", Call: pyListAppendFn})
	return map[string]value.Value{"python_list": tbl}
}

func pyListNewFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	l := &pyList{}
	if src, ok := arg(args, 0).(*value.Table); ok {
		src.Iterate(func(e value.Entry) bool {
			l.items = append(l.items, e.Val)
			return true
		})
	}
	return []value.Value{value.HostObject{Native: l}}, nil
}

func pyListAppendFn(ctx context.Context, args []value.Value) ([]value.Value, error) {
	ho, ok := arg(args, 0).(value.HostObject)
	if !ok {
		return nil, fmt.Errorf("python_list.append: expected a python_list, got %s", value.TypeName(arg(args, 0)))
	}
	l, ok := ho.Native.(*pyList)
	if !ok {
		return nil, fmt.Errorf("python_list.append: expected a python_list")
	}
	l.items = append(l.items, arg(args, 1))
	return nil, nil
}
