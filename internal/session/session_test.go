package session

import "testing"

func TestSelectAndClear(t *testing.T) {
	var store Store

	if _, ok := store.Selected(); ok {
		t.Fatal("fresh store should have no selection")
	}

	store.Select(42)
	id, ok := store.Selected()
	if !ok || id != 42 {
		t.Fatalf("expected selection 42, got %d (%v)", id, ok)
	}

	store.Select(7)
	if id, _ := store.Selected(); id != 7 {
		t.Fatalf("expected selection to move to 7, got %d", id)
	}

	store.Clear()
	if _, ok := store.Selected(); ok {
		t.Fatal("expected cleared selection")
	}
}

func TestSelectIgnoresInvalidIDs(t *testing.T) {
	var store Store
	store.Select(0)
	store.Select(-3)
	if _, ok := store.Selected(); ok {
		t.Fatal("invalid ids must not create a selection")
	}
}

func TestClearIfOnlyMatchingSelection(t *testing.T) {
	var store Store
	store.Select(10)

	store.ClearIf(11)
	if id, ok := store.Selected(); !ok || id != 10 {
		t.Fatal("mismatched ClearIf must keep the selection")
	}

	store.ClearIf(10)
	if _, ok := store.Selected(); ok {
		t.Fatal("matching ClearIf must drop the selection")
	}
}
