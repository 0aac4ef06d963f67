// Package history implements a linear undo/redo stack. State values are
// immutable: every transition returns a new State and never writes to the
// receiver's backing array.
package history

import "sync"

// State is a list of snapshots and a cursor into it. Index is -1 when there
// is nothing current.
type State[T any] struct {
	Entries []T `json:"entries"`
	Index   int `json:"index"`
}

// Empty returns a state with no entries.
func Empty[T any]() State[T] {
	return State[T]{Entries: []T{}, Index: -1}
}

// Push discards any redoable entries past the cursor and appends v.
func (s State[T]) Push(v T) State[T] {
	keep := s.Index + 1
	if keep < 0 {
		keep = 0
	}
	if keep > len(s.Entries) {
		keep = len(s.Entries)
	}
	entries := make([]T, keep, keep+1)
	copy(entries, s.Entries[:keep])
	entries = append(entries, v)
	return State[T]{Entries: entries, Index: len(entries) - 1}
}

// Undo moves the cursor back one entry. It never moves below the first entry.
func (s State[T]) Undo() State[T] {
	if s.CanUndo() {
		s.Index--
	}
	return s
}

// Redo moves the cursor forward one entry, stopping at the last.
func (s State[T]) Redo() State[T] {
	if s.CanRedo() {
		s.Index++
	}
	return s
}

// Replace swaps in a new list with the cursor on its last entry.
func (s State[T]) Replace(entries []T) State[T] {
	return s.ReplaceAt(entries, len(entries)-1)
}

// ReplaceAt swaps in a new list with the cursor clamped into
// [-1, len(entries)-1].
func (s State[T]) ReplaceAt(entries []T, index int) State[T] {
	cp := make([]T, len(entries))
	copy(cp, entries)
	return State[T]{Entries: cp, Index: clampIndex(index, len(cp))}
}

func clampIndex(index, n int) int {
	if n == 0 || index < -1 {
		return -1
	}
	if index > n-1 {
		return n - 1
	}
	return index
}

// Current returns the entry under the cursor.
func (s State[T]) Current() (T, bool) {
	var zero T
	if s.Index < 0 || s.Index >= len(s.Entries) {
		return zero, false
	}
	return s.Entries[s.Index], true
}

func (s State[T]) CanUndo() bool {
	return s.Index > 0
}

func (s State[T]) CanRedo() bool {
	return s.Index >= 0 && s.Index < len(s.Entries)-1
}

func (s State[T]) Len() int {
	return len(s.Entries)
}

// Trim keeps at most max entries, dropping the oldest. A max of zero or less
// leaves the state unchanged.
func (s State[T]) Trim(max int) State[T] {
	if max <= 0 || len(s.Entries) <= max {
		return s
	}
	drop := len(s.Entries) - max
	entries := make([]T, max)
	copy(entries, s.Entries[drop:])
	index := s.Index - drop
	if index < 0 {
		index = 0
	}
	return State[T]{Entries: entries, Index: index}
}

// Normalize repairs a state read from outside, e.g. storage, so that the
// cursor is inside the entries.
func (s State[T]) Normalize() State[T] {
	if s.Entries == nil {
		s.Entries = []T{}
	}
	s.Index = clampIndex(s.Index, len(s.Entries))
	return s
}

// Guarded serializes transitions on a single State for concurrent callers.
type Guarded[T any] struct {
	mu    sync.Mutex
	state State[T]
	max   int
}

// NewGuarded returns an empty stack holding at most max entries (unbounded
// when max <= 0).
func NewGuarded[T any](max int) *Guarded[T] {
	return &Guarded[T]{state: Empty[T](), max: max}
}

// Apply runs fn on the current state under the lock and stores the result,
// trimmed to the configured maximum.
func (g *Guarded[T]) Apply(fn func(State[T]) State[T]) State[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = fn(g.state).Trim(g.max)
	return g.state
}

func (g *Guarded[T]) Push(v T) State[T] {
	return g.Apply(func(s State[T]) State[T] { return s.Push(v) })
}

func (g *Guarded[T]) Undo() State[T] {
	return g.Apply(func(s State[T]) State[T] { return s.Undo() })
}

func (g *Guarded[T]) Redo() State[T] {
	return g.Apply(func(s State[T]) State[T] { return s.Redo() })
}

func (g *Guarded[T]) Replace(entries []T) State[T] {
	return g.Apply(func(s State[T]) State[T] { return s.Replace(entries) })
}

func (g *Guarded[T]) ReplaceAt(entries []T, index int) State[T] {
	return g.Apply(func(s State[T]) State[T] { return s.ReplaceAt(entries, index) })
}

// Snapshot returns the current state. The caller must not modify Entries.
func (g *Guarded[T]) Snapshot() State[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
