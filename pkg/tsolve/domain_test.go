package tsolve

import "testing"

func TestNewNodeSetSortsAndDedups(t *testing.T) {
	tests := []struct {
		name   string
		values []Node
		want   []Node
	}{
		{"already sorted", []Node{1, 2, 3}, []Node{1, 2, 3}},
		{"reverse sorted", []Node{3, 2, 1}, []Node{1, 2, 3}},
		{"duplicates", []Node{2, 2, 1, 1, 3}, []Node{1, 2, 3}},
		{"empty", []Node{}, nil},
		{"single", []Node{5}, []Node{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newNodeSet(tt.values)
			if s.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", s.Len(), len(tt.want))
			}
			for i, w := range tt.want {
				if s.At(i) != w {
					t.Errorf("At(%d) = %d, want %d", i, s.At(i), w)
				}
			}
		})
	}
}

func TestNodeSetHas(t *testing.T) {
	s := newNodeSet([]Node{2, 5, 7})

	tests := []struct {
		n    Node
		want bool
	}{
		{2, true},
		{5, true},
		{7, true},
		{1, false},
		{6, false},
		{8, false},
	}
	for _, tt := range tests {
		if got := s.Has(tt.n); got != tt.want {
			t.Errorf("Has(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestNodeSetCursorWalksInOrder(t *testing.T) {
	s := newNodeSet([]Node{3, 1, 2})
	c := newCursor(s)

	var got []Node
	for !c.done() {
		got = append(got, c.next())
	}

	want := []Node{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("cursor produced %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("position %d = %d, want %d", i, got[i], w)
		}
	}
}

func TestNodeSetCursorDoneOnEmptySet(t *testing.T) {
	c := newCursor(newNodeSet(nil))
	if !c.done() {
		t.Error("cursor over an empty set should be done immediately")
	}
}
