// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package value

import "fmt"

// Table is esl's single composite data structure: a hybrid array/map.
// It keeps a contiguous positional sequence (1-based) separate from an
// insertion-ordered keyed store, and absorbs keyed integer entries into
// the sequence as soon as they become reachable by appending.
type Table struct {
	seq   []Value // seq[i] holds the value at integer key i+1
	keys  []Value // insertion order of named (keyed) entries
	named map[Value]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{named: make(map[Value]Value)}
}

func (t *Table) Type() Type     { return TypeTable }
func (t *Table) Truthy() bool   { return true }
func (t *Table) String() string { return fmt.Sprintf("table: %p", t) }

// normalizeKey collapses a nil Go interface to Nil{}, matching how callers
// pass around Value.
func normalizeKey(key Value) Value {
	if key == nil {
		return Nil{}
	}
	return key
}

// Get returns the value stored at key, or Nil{} if absent.
func (t *Table) Get(key Value) Value {
	key = normalizeKey(key)
	if i, ok := key.(Int); ok {
		idx := int64(i)
		if idx >= 1 && idx <= int64(len(t.seq)) {
			v := t.seq[idx-1]
			if v == nil {
				return Nil{}
			}
			return v
		}
	}
	if v, ok := t.named[key]; ok {
		return v
	}
	return Nil{}
}

// Set stores value at key, deleting the entry when value is Nil{} or nil.
// Setting the key one past the end of the positional sequence appends to
// it and then absorbs any now-contiguous named integer keys.
func (t *Table) Set(key, val Value) {
	key = normalizeKey(key)
	if val == nil {
		val = Nil{}
	}
	isNil := val.Type() == TypeNil

	if i, ok := key.(Int); ok {
		idx := int64(i)
		switch {
		case idx >= 1 && idx <= int64(len(t.seq)):
			if isNil {
				t.removeSeqIndex(int(idx - 1))
			} else {
				t.seq[idx-1] = val
			}
			return
		case idx == int64(len(t.seq))+1:
			if isNil {
				return
			}
			t.seq = append(t.seq, val)
			next := idx + 1
			for {
				nv, ok := t.named[Int(next)]
				if !ok {
					break
				}
				t.seq = append(t.seq, nv)
				t.deleteNamed(Int(next))
				next++
			}
			return
		}
	}

	if isNil {
		t.deleteNamed(key)
		return
	}
	if _, exists := t.named[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.named[key] = val
}

// removeSeqIndex deletes the positional entry at i (0-based), shifting
// later entries down by one.
func (t *Table) removeSeqIndex(i int) {
	t.seq = append(t.seq[:i], t.seq[i+1:]...)
}

func (t *Table) deleteNamed(key Value) {
	if _, ok := t.named[key]; !ok {
		return
	}
	delete(t.named, key)
	for i, k := range t.keys {
		if Equal(k, key) {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Len returns the length of the positional sequence, esl's `#t` operator.
func (t *Table) Len() Int {
	return Int(len(t.seq))
}

// Entry is one (key, value) pair yielded by [Table.Iterate], in the order
// `pairs` would produce: the positional run first (keys 1..n), then named
// entries in insertion order.
type Entry struct {
	Key Value
	Val Value
}

// Iterate calls yield for every entry in the table, stopping early if
// yield returns false. It is the implementation behind the `pairs`
// extension and the generic-for loop over tables.
func (t *Table) Iterate(yield func(Entry) bool) {
	for i, v := range t.seq {
		if !yield(Entry{Key: Int(i + 1), Val: v}) {
			return
		}
	}
	for _, k := range t.keys {
		if !yield(Entry{Key: k, Val: t.named[k]}) {
			return
		}
	}
}

// Append adds val to the end of the positional sequence, used by the
// table.insert extension and wherever Go code builds a sequence table.
func (t *Table) Append(val Value) {
	t.Set(Int(len(t.seq)+1), val)
}

