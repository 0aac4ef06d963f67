package history

import (
	"reflect"
	"sync"
	"testing"
)

func build(values ...string) State[string] {
	s := Empty[string]()
	for _, v := range values {
		s = s.Push(v)
	}
	return s
}

func TestEmpty(t *testing.T) {
	s := Empty[string]()
	if s.Index != -1 || s.Len() != 0 {
		t.Fatalf("Empty() = %+v", s)
	}
	if _, ok := s.Current(); ok {
		t.Error("empty state has a current entry")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("empty state can undo or redo")
	}
	if got := s.Undo(); got.Index != -1 {
		t.Errorf("Undo on empty moved index to %d", got.Index)
	}
	if got := s.Redo(); got.Index != -1 {
		t.Errorf("Redo on empty moved index to %d", got.Index)
	}
}

func TestPush(t *testing.T) {
	s := build("a", "b", "c")
	if !reflect.DeepEqual(s.Entries, []string{"a", "b", "c"}) || s.Index != 2 {
		t.Fatalf("state = %+v", s)
	}
	if cur, _ := s.Current(); cur != "c" {
		t.Errorf("Current() = %q, want c", cur)
	}
	if !s.CanUndo() || s.CanRedo() {
		t.Errorf("CanUndo=%v CanRedo=%v at top", s.CanUndo(), s.CanRedo())
	}
}

func TestPushAfterUndoTruncatesFuture(t *testing.T) {
	s := build("a", "b", "c").Undo().Undo().Push("d")

	if want := []string{"a", "d"}; !reflect.DeepEqual(s.Entries, want) {
		t.Errorf("entries = %v, want %v", s.Entries, want)
	}
	if s.Index != 1 {
		t.Errorf("index = %d, want 1", s.Index)
	}
	if s.CanRedo() {
		t.Error("redo should be unavailable after a divergent push")
	}
}

func TestTransitionsDoNotAlias(t *testing.T) {
	base := build("a", "b", "c").Undo()
	x := base.Push("x")
	y := base.Push("y")

	if !reflect.DeepEqual(base.Entries, []string{"a", "b", "c"}) {
		t.Errorf("base changed to %v", base.Entries)
	}
	if !reflect.DeepEqual(x.Entries, []string{"a", "b", "x"}) {
		t.Errorf("x = %v", x.Entries)
	}
	if !reflect.DeepEqual(y.Entries, []string{"a", "b", "y"}) {
		t.Errorf("y = %v", y.Entries)
	}

	src := []string{"p", "q"}
	r := Empty[string]().Replace(src)
	src[0] = "changed"
	if r.Entries[0] != "p" {
		t.Error("Replace kept a reference to the caller's slice")
	}
}

func TestUndoRedoBounds(t *testing.T) {
	s := build("a", "b")
	s = s.Undo().Undo().Undo()
	if s.Index != 0 {
		t.Errorf("index after repeated undo = %d, want 0", s.Index)
	}
	if s.CanUndo() {
		t.Error("CanUndo at index 0")
	}
	s = s.Redo().Redo().Redo()
	if s.Index != 1 {
		t.Errorf("index after repeated redo = %d, want 1", s.Index)
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name      string
		entries   []string
		index     int
		useIndex  bool
		wantIndex int
	}{
		{name: "defaults to last", entries: []string{"a", "b", "c"}, wantIndex: 2},
		{name: "explicit", entries: []string{"a", "b", "c"}, index: 1, useIndex: true, wantIndex: 1},
		{name: "clamped high", entries: []string{"a", "b"}, index: 9, useIndex: true, wantIndex: 1},
		{name: "clamped low", entries: []string{"a", "b"}, index: -7, useIndex: true, wantIndex: -1},
		{name: "minus one kept", entries: []string{"a"}, index: -1, useIndex: true, wantIndex: -1},
		{name: "empty forces minus one", entries: nil, index: 3, useIndex: true, wantIndex: -1},
		{name: "empty default", entries: []string{}, wantIndex: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build("x", "y")
			if tt.useIndex {
				s = s.ReplaceAt(tt.entries, tt.index)
			} else {
				s = s.Replace(tt.entries)
			}
			if s.Index != tt.wantIndex {
				t.Errorf("index = %d, want %d", s.Index, tt.wantIndex)
			}
			if s.Len() != len(tt.entries) {
				t.Errorf("len = %d, want %d", s.Len(), len(tt.entries))
			}
		})
	}
}

func TestReplaceAtMinusOne(t *testing.T) {
	s := Empty[string]().ReplaceAt([]string{"a", "b"}, -1)
	if _, ok := s.Current(); ok {
		t.Error("index -1 should have no current entry")
	}
	if s.CanRedo() || s.CanUndo() {
		t.Error("index -1 can neither undo nor redo")
	}
	s = s.Push("c")
	if !reflect.DeepEqual(s.Entries, []string{"c"}) {
		t.Errorf("push at -1 = %v, want [c]", s.Entries)
	}
}

func TestTrim(t *testing.T) {
	s := build("a", "b", "c", "d", "e").Trim(3)
	if !reflect.DeepEqual(s.Entries, []string{"c", "d", "e"}) || s.Index != 2 {
		t.Errorf("Trim(3) = %+v", s)
	}

	s = build("a", "b", "c", "d").Undo().Undo().Undo().Trim(2)
	if !reflect.DeepEqual(s.Entries, []string{"c", "d"}) || s.Index != 0 {
		t.Errorf("Trim past cursor = %+v", s)
	}

	same := build("a", "b")
	if got := same.Trim(0); !reflect.DeepEqual(got, same) {
		t.Errorf("Trim(0) = %+v", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   State[string]
		want State[string]
	}{
		{State[string]{}, State[string]{Entries: []string{}, Index: -1}},
		{State[string]{Entries: []string{"a"}, Index: 5}, State[string]{Entries: []string{"a"}, Index: 0}},
		{State[string]{Entries: []string{"a"}, Index: -3}, State[string]{Entries: []string{"a"}, Index: -1}},
		{State[string]{Entries: []string{"a", "b"}, Index: 1}, State[string]{Entries: []string{"a", "b"}, Index: 1}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestGuarded(t *testing.T) {
	g := NewGuarded[[]string](0)
	g.Push([]string{"#ff0000"})
	g.Push([]string{"#00ff00"})
	g.Push([]string{"#0000ff"})
	g.Undo()
	g.Undo()
	s := g.Push([]string{"#ffffff"})

	want := [][]string{{"#ff0000"}, {"#ffffff"}}
	if !reflect.DeepEqual(s.Entries, want) || s.CanRedo() {
		t.Errorf("state = %+v", s)
	}
	if got := g.Redo(); got.Index != 1 {
		t.Errorf("Redo at top moved index to %d", got.Index)
	}
	if got := g.ReplaceAt([][]string{{"#111111"}, {"#222222"}}, 0); got.Index != 0 {
		t.Errorf("ReplaceAt index = %d", got.Index)
	}
	if got := g.Replace(nil); got.Index != -1 {
		t.Errorf("Replace(nil) index = %d", got.Index)
	}
}

func TestGuarded_Concurrent(t *testing.T) {
	g := NewGuarded[int](50)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g.Push(i)
		}(i)
	}
	wg.Wait()

	s := g.Snapshot()
	if s.Len() != 50 {
		t.Errorf("len = %d, want 50", s.Len())
	}
	if s.Index != 49 {
		t.Errorf("index = %d, want 49", s.Index)
	}
}

func TestGuarded_ApplyTrims(t *testing.T) {
	g := NewGuarded[string](2)
	got := g.Apply(func(s State[string]) State[string] {
		return s.Push("a").Push("b").Push("c")
	})
	if !reflect.DeepEqual(got.Entries, []string{"b", "c"}) || got.Index != 1 {
		t.Errorf("Apply() = %+v", got)
	}
}
