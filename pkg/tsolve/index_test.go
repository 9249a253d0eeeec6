package tsolve

import "testing"

func TestFactIndexAddAndIsTrue(t *testing.T) {
	fi := NewFactIndex()
	fi.AddFact(1, 2, 3)

	if !fi.IsTrue(NewFact(1, 2, 3)) {
		t.Error("expected (1,2,3) to be true after Add")
	}
	if fi.IsTrue(NewFact(1, 2, 4)) {
		t.Error("expected (1,2,4) to be false")
	}
}

func TestFactIndexLookupByMask(t *testing.T) {
	fi := NewFactIndex()
	fi.AddFact(1, 2, 3)
	fi.AddFact(1, 2, 4)
	fi.AddFact(9, 2, 3)

	tests := []struct {
		name    string
		pattern Pattern
		want    int
	}{
		{"fully specified match", NewFact(1, 2, 3), 1},
		{"fully specified no match", NewFact(1, 2, 5), 0},
		{"wildcard last position", Triplet{NodeTerm(1), NodeTerm(2), TermEmpty}, 2},
		{"wildcard first position", Triplet{TermEmpty, NodeTerm(2), NodeTerm(3)}, 2},
		{"all wildcard", Triplet{TermEmpty, TermEmpty, TermEmpty}, 3},
		{"two wildcards", Triplet{NodeTerm(1), TermEmpty, TermEmpty}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fi.Lookup(tt.pattern)
			if len(got) != tt.want {
				t.Errorf("Lookup(%s) returned %d facts, want %d", tt.pattern, len(got), tt.want)
			}
		})
	}
}

func TestFactIndexRemove(t *testing.T) {
	fi := NewFactIndex()
	fi.AddFact(1, 2, 3)
	fi.AddFact(1, 2, 4)

	fi.RemoveFact(1, 2, 3)

	if fi.IsTrue(NewFact(1, 2, 3)) {
		t.Error("(1,2,3) should no longer be true after Remove")
	}
	got := fi.Lookup(Triplet{NodeTerm(1), NodeTerm(2), TermEmpty})
	if len(got) != 1 || got[0] != NewFact(1, 2, 4) {
		t.Errorf("Lookup after Remove = %v, want only (1,2,4)", got)
	}
}

func TestFactIndexAllTrue(t *testing.T) {
	fi := NewFactIndex()
	fi.AddFact(1, 2, 3)
	fi.AddFact(4, 5, 6)

	if !fi.AllTrue([]Triplet{NewFact(1, 2, 3), NewFact(4, 5, 6)}) {
		t.Error("AllTrue should be true when every fact is present")
	}
	if fi.AllTrue([]Triplet{NewFact(1, 2, 3), NewFact(7, 8, 9)}) {
		t.Error("AllTrue should be false when any fact is absent")
	}
}

func TestFactIndexAddDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add of an already-present fact should panic")
		}
	}()
	fi := NewFactIndex()
	fi.AddFact(1, 2, 3)
	fi.AddFact(1, 2, 3)
}

func TestFactIndexAddNonGroundPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add of a non-ground triplet should panic")
		}
	}()
	fi := NewFactIndex()
	fi.Add(Triplet{NodeTerm(1), VarTerm(0), NodeTerm(3)})
}

func TestFactIndexRemoveAbsentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Remove of an absent fact should panic")
		}
	}()
	fi := NewFactIndex()
	fi.RemoveFact(1, 2, 3)
}

func TestFactIndexLookupNoMatchReturnsEmpty(t *testing.T) {
	fi := NewFactIndex()
	got := fi.Lookup(Triplet{TermEmpty, TermEmpty, TermEmpty})
	if len(got) != 0 {
		t.Errorf("Lookup on empty index = %v, want empty", got)
	}
}
