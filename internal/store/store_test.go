package store

import (
	"testing"

	"github.com/kirpit/dirtools3/internal/item"
)

func sizeKey(s item.Summary) int64 { return s.Size }

func names(items []item.Summary) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertAscending(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "b", Size: 20}, sizeKey, false)
	s.Insert(item.Summary{Name: "a", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "c", Size: 30}, sizeKey, false)

	got := names(s.Items())
	want := []string{"a", "b", "c"}
	if !equal(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
	if s.TotalSize() != 60 {
		t.Fatalf("TotalSize() = %d, want 60", s.TotalSize())
	}
}

func TestInsertDescending(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "b", Size: 20}, sizeKey, true)
	s.Insert(item.Summary{Name: "a", Size: 10}, sizeKey, true)
	s.Insert(item.Summary{Name: "c", Size: 30}, sizeKey, true)

	got := names(s.Items())
	want := []string{"c", "b", "a"}
	if !equal(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
}

func TestInsertTiesLandBeforeEquals(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "first", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "second", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "third", Size: 10}, sizeKey, false)

	// The live head scan places each tie in front of the existing equals.
	got := names(s.Items())
	want := []string{"third", "second", "first"}
	if !equal(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
}

func TestResortRanksTiesByArrival(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "first", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "second", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "third", Size: 10}, sizeKey, false)

	s.Resort(sizeKey, false)

	got := names(s.Items())
	want := []string{"first", "second", "third"}
	if !equal(got, want) {
		t.Fatalf("Items() after resort = %v, want %v", got, want)
	}

	// Descending over equal keys keeps the same arrival order.
	s.Resort(sizeKey, true)
	got = names(s.Items())
	if !equal(got, want) {
		t.Fatalf("Items() after descending resort = %v, want %v", got, want)
	}
}

func TestInsertAppendsAtTail(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "a", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "b", Size: 20}, sizeKey, false)
	s.Insert(item.Summary{Name: "c", Size: 30}, sizeKey, false)

	got := names(s.Items())
	want := []string{"a", "b", "c"}
	if !equal(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
}

func TestResortIdempotent(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "c", Size: 30}, sizeKey, false)
	s.Insert(item.Summary{Name: "a", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "b", Size: 20}, sizeKey, false)

	depthKey := func(sum item.Summary) int64 { return int64(sum.Depth) }
	s.Resort(depthKey, false)
	first := names(s.Items())
	s.Resort(depthKey, false)
	second := names(s.Items())
	if !equal(first, second) {
		t.Fatalf("resort not idempotent: %v then %v", first, second)
	}
}

func TestPopFrontBookkeeping(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "a", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "b", Size: 20}, sizeKey, false)

	sum, ok := s.PopFront()
	if !ok {
		t.Fatal("PopFront() returned no item")
	}
	if sum.Name != "a" {
		t.Fatalf("PopFront() = %q, want %q", sum.Name, "a")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.TotalSize() != 20 {
		t.Fatalf("TotalSize() = %d, want 20", s.TotalSize())
	}

	s.PopFront()
	if _, ok := s.PopFront(); ok {
		t.Fatal("PopFront() on empty store returned an item")
	}
	if s.TotalSize() != 0 {
		t.Fatalf("TotalSize() = %d, want 0", s.TotalSize())
	}
}

func TestTakeByName(t *testing.T) {
	s := New()
	s.Insert(item.Summary{Name: "a", Size: 10}, sizeKey, false)
	s.Insert(item.Summary{Name: "b", Size: 20}, sizeKey, false)
	s.Insert(item.Summary{Name: "c", Size: 30}, sizeKey, false)

	sum, ok := s.Take("b")
	if !ok || sum.Size != 20 {
		t.Fatalf("Take(b) = %+v, %v", sum, ok)
	}
	if s.TotalSize() != 40 {
		t.Fatalf("TotalSize() = %d, want 40", s.TotalSize())
	}
	if _, ok := s.Take("missing"); ok {
		t.Fatal("Take(missing) reported success")
	}
}
