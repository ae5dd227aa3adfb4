// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package slots maps Go values to uintptr ids so they can travel through a
// C void* without violating cgo pointer rules. The native side only ever
// sees the id; the exported callback trampoline resolves it back.
package slots

import "sync"

// Table issues one-shot ids for Go values. Ids are never reused within a
// Table, so a stale id from an already-fired callback cannot alias a live
// entry.
type Table struct {
	mu  sync.Mutex
	seq uintptr
	m   map[uintptr]any
}

// New creates an empty table.
func New() *Table {
	return &Table{m: make(map[uintptr]any)}
}

// Put stores v and returns its id. The id is nonzero.
func (t *Table) Put(v any) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.m[t.seq] = v
	return t.seq
}

// Take removes and returns the value for id. The second result is false if
// the id is unknown or already taken.
func (t *Table) Take(id uintptr) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.m[id]
	if ok {
		delete(t.m, id)
	}
	return v, ok
}

// Len reports the number of live entries. Useful for leak checks in tests.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}
