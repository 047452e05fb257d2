package handles

import (
	"sync"
	"testing"
)

type source struct {
	name string
	size int
}

func TestPutAndGet(t *testing.T) {
	tbl := New[*source]()
	s := &source{name: "blob", size: 42}

	id := tbl.Put(s)
	if id == 0 {
		t.Fatal("Put should return a non-zero handle")
	}

	got, ok := tbl.Get(id)
	if !ok {
		t.Fatal("Get should find a registered handle")
	}
	if got != s {
		t.Errorf("Get returned %+v, want %+v", got, s)
	}
}

func TestDelete(t *testing.T) {
	tbl := New[string]()
	id := tbl.Put("x")
	tbl.Delete(id)

	if _, ok := tbl.Get(id); ok {
		t.Error("handle should be gone after Delete")
	}
	if tbl.Len() != 0 {
		t.Errorf("Len = %d after Delete, want 0", tbl.Len())
	}

	// Deleting twice is harmless.
	tbl.Delete(id)
}

func TestZeroHandleNeverResolves(t *testing.T) {
	tbl := New[int]()
	tbl.Put(7)
	if _, ok := tbl.Get(0); ok {
		t.Error("handle 0 must never resolve")
	}
}

func TestHandlesAreUnique(t *testing.T) {
	tbl := New[int]()
	seen := make(map[uintptr]bool)
	for i := 0; i < 100; i++ {
		id := tbl.Put(i)
		if seen[id] {
			t.Fatalf("duplicate handle %d", id)
		}
		seen[id] = true
	}
}

func TestConcurrentAccess(t *testing.T) {
	tbl := New[int]()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := tbl.Put(g*1000 + i)
				if v, ok := tbl.Get(id); !ok || v != g*1000+i {
					t.Errorf("Get(%d) = %d, %v", id, v, ok)
					return
				}
				tbl.Delete(id)
			}
		}(g)
	}
	wg.Wait()

	if tbl.Len() != 0 {
		t.Errorf("Len = %d, want 0 after all deletes", tbl.Len())
	}
}
