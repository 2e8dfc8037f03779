package registry_test

import (
	"sync"
	"testing"

	"github.com/LynnColeArt/kronos-compute/registry"
)

type record struct {
	name string
}

func TestInsertLookup(t *testing.T) {
	tbl := registry.NewTable[record]()

	h := tbl.Insert(record{name: "buffer-a"})
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	rec, ok := tbl.Lookup(h)
	if !ok {
		t.Fatal("expected handle to be present")
	}
	if rec.name != "buffer-a" {
		t.Errorf("name = %q, want %q", rec.name, "buffer-a")
	}
}

func TestLookupZeroIsAlwaysMiss(t *testing.T) {
	tbl := registry.NewTable[record]()
	tbl.Insert(record{name: "x"})

	if _, ok := tbl.Lookup(0); ok {
		t.Error("handle 0 must never resolve, even in a non-empty table")
	}
}

func TestHandlesNeverReused(t *testing.T) {
	tbl := registry.NewTable[record]()

	h1 := tbl.Insert(record{name: "a"})
	tbl.Remove(h1)
	h2 := tbl.Insert(record{name: "b"})

	if h1 == h2 {
		t.Fatalf("handle %d reused after removal", h1)
	}
	if _, ok := tbl.Lookup(h1); ok {
		t.Error("removed handle should no longer resolve")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	tbl := registry.NewTable[record]()
	h := tbl.Insert(record{name: "a"})

	if _, ok := tbl.Remove(h); !ok {
		t.Fatal("expected first remove to report present")
	}
	if _, ok := tbl.Remove(h); ok {
		t.Error("second remove of the same handle must report absent, not panic")
	}
}

func TestMustLookupWrapsUnknownHandle(t *testing.T) {
	tbl := registry.NewTable[record]()

	if _, err := tbl.MustLookup("registry", "Lookup", 999); err == nil {
		t.Fatal("expected an error for an unknown handle")
	}
}

func TestUpdateInPlace(t *testing.T) {
	tbl := registry.NewTable[record]()
	h := tbl.Insert(record{name: "a"})

	if !tbl.Update(h, record{name: "b"}) {
		t.Fatal("expected update of a live handle to succeed")
	}
	rec, _ := tbl.Lookup(h)
	if rec.name != "b" {
		t.Errorf("name = %q, want %q", rec.name, "b")
	}
	if tbl.Update(h+1000, record{name: "c"}) {
		t.Error("update of an absent handle must report false")
	}
}

func TestConcurrentInsertLookup(t *testing.T) {
	tbl := registry.NewTable[record]()
	var wg sync.WaitGroup

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			h := tbl.Insert(record{name: "r"})
			if _, ok := tbl.Lookup(h); !ok {
				t.Errorf("goroutine %d: inserted handle not visible", n)
			}
		}(i)
	}
	wg.Wait()

	if tbl.Len() != 64 {
		t.Errorf("Len() = %d, want 64", tbl.Len())
	}
}
