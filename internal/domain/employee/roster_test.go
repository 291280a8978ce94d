package employee

import (
	"errors"
	"testing"
)

func rosterWith(t *testing.T, count int) *Roster {
	t.Helper()
	roster := NewRoster()
	for i := 0; i < count; i++ {
		agent, err := NewAgent(roster.Sequence(), sampleFields(), float64(i))
		if err != nil {
			t.Fatalf("agent %d: %v", i, err)
		}
		roster.Add(agent)
	}
	return roster
}

func ids(items []Employee) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.Details().ID)
	}
	return out
}

func TestRemoveKeepsOrder(t *testing.T) {
	roster := rosterWith(t, 4)
	if err := roster.Remove(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got := ids(roster.List())
	want := []int64{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRemoveAbsentID(t *testing.T) {
	roster := rosterWith(t, 2)
	if err := roster.Remove(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if roster.Len() != 2 {
		t.Fatalf("expected roster unchanged, got %d", roster.Len())
	}
}

func TestRemovedIDsAreNotReused(t *testing.T) {
	roster := rosterWith(t, 3)
	if err := roster.Remove(3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	trainer, err := NewTrainer(roster.Sequence(), sampleFields(), 1)
	if err != nil {
		t.Fatalf("trainer: %v", err)
	}
	if trainer.ID != 4 {
		t.Fatalf("expected id 4, got %d", trainer.ID)
	}
}

func TestListReturnsCopy(t *testing.T) {
	roster := rosterWith(t, 2)
	list := roster.List()
	list[0] = nil
	if item, ok := roster.Find(1); !ok || item == nil {
		t.Fatal("mutating the listed slice should not touch the roster")
	}
}

func TestReplaceAdvancesSequence(t *testing.T) {
	roster := NewRoster()
	loaded := []Employee{
		&Agent{Base: Base{ID: 5}},
		&Trainer{Base: Base{ID: 12}},
	}
	if err := roster.Replace(loaded); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if next := roster.Sequence().Next(); next != 13 {
		t.Fatalf("expected next id 13, got %d", next)
	}
}

func TestReplaceRejectsDuplicates(t *testing.T) {
	roster := rosterWith(t, 1)
	err := roster.Replace([]Employee{&Agent{Base: Base{ID: 3}}, &Trainer{Base: Base{ID: 3}}})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if roster.Len() != 1 {
		t.Fatalf("expected roster untouched, got %d items", roster.Len())
	}
}
