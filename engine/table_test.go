package engine

import "testing"

func TestTableCreateGetDestroy(t *testing.T) {
	tb := NewTable()

	e := New()
	h := tb.Create(e)
	if h == 0 {
		t.Fatal("zero handle issued")
	}

	got, ok := tb.Get(h)
	if !ok || got != e {
		t.Fatal("handle does not resolve to its engine")
	}
	if tb.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tb.Len())
	}

	if !tb.Destroy(h) {
		t.Fatal("Destroy rejected a live handle")
	}
	if _, ok := tb.Get(h); ok {
		t.Fatal("destroyed handle still resolves")
	}
	if tb.Destroy(h) {
		t.Fatal("double destroy accepted")
	}
	if tb.Len() != 0 {
		t.Fatalf("Len = %d after destroy, want 0", tb.Len())
	}
}

func TestTableStaleGeneration(t *testing.T) {
	tb := NewTable()

	old := tb.Create(New())
	tb.Destroy(old)

	// The slot is reused under a new generation.
	fresh := tb.Create(New())
	if uint32(fresh) != uint32(old) {
		t.Fatalf("slot not reused: old idx %d, new idx %d", uint32(old), uint32(fresh))
	}
	if fresh == old {
		t.Fatal("reissued handle equals the destroyed one")
	}

	if _, ok := tb.Get(old); ok {
		t.Fatal("stale handle resolves to the slot's new tenant")
	}
	if _, ok := tb.Get(fresh); !ok {
		t.Fatal("fresh handle does not resolve")
	}
}

func TestTableUnknownHandle(t *testing.T) {
	tb := NewTable()
	if _, ok := tb.Get(Handle(0)); ok {
		t.Fatal("zero handle resolved")
	}
	if _, ok := tb.Get(makeHandle(7, 1)); ok {
		t.Fatal("out-of-range slot resolved")
	}
	if tb.Destroy(makeHandle(7, 1)) {
		t.Fatal("destroy of unknown handle accepted")
	}
}

func TestTableManyInstances(t *testing.T) {
	tb := NewTable()

	handles := make([]Handle, 10)
	for i := range handles {
		handles[i] = tb.Create(New())
	}
	if tb.Len() != 10 {
		t.Fatalf("Len = %d, want 10", tb.Len())
	}

	seen := make(map[Handle]bool, len(handles))
	for _, h := range handles {
		if seen[h] {
			t.Fatalf("duplicate handle %#x", h)
		}
		seen[h] = true
		if _, ok := tb.Get(h); !ok {
			t.Fatalf("handle %#x does not resolve", h)
		}
	}

	for _, h := range handles[:5] {
		tb.Destroy(h)
	}
	if tb.Len() != 5 {
		t.Fatalf("Len = %d after destroys, want 5", tb.Len())
	}
	for _, h := range handles[5:] {
		if _, ok := tb.Get(h); !ok {
			t.Fatalf("surviving handle %#x does not resolve", h)
		}
	}
}
