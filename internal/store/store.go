// Package store keeps item summaries in a caller-chosen sort order while a
// scan is feeding it from multiple goroutines.
//
// Insert places each summary near its sorted position with a head scan;
// under concurrent aggregation the position is approximate and a final
// Resort produces the single authoritative order. In that order, items
// with equal keys rank by discovery order: the store numbers summaries as
// they arrive and resorts on (key, arrival).
package store

import (
	"sort"
	"sync"

	"github.com/kirpit/dirtools3/internal/item"
)

type record struct {
	sum item.Summary
	seq int64
}

// Store is an ordered sequence of summaries with running bookkeeping.
// All methods are safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	items     []record
	totalSize int64
	nextSeq   int64
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Insert places sum at its approximate sorted position under the given key
// and direction, and updates the running totals.
func (s *Store) Insert(sum item.Summary, key item.KeyFunc, descending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := record{sum: sum, seq: s.nextSeq}
	s.nextSeq++

	index := s.findIndex(sum, key, descending)
	s.items = append(s.items, record{})
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = rec
	s.totalSize += sum.Size
}

// findIndex scans from the head for the first position where sum sorts at
// or before the existing entry. No match appends at the tail.
func (s *Store) findIndex(sum item.Summary, key item.KeyFunc, descending bool) int {
	k := key(sum)
	for i := range s.items {
		if !descending && k <= key(s.items[i].sum) {
			return i
		}
		if descending && k >= key(s.items[i].sum) {
			return i
		}
	}
	return len(s.items)
}

// Resort sorts the whole sequence by the given key and direction, breaking
// key ties by arrival. This is the only ordering operation that is
// authoritative, and it is idempotent for any criterion.
func (s *Store) Resort(key item.KeyFunc, descending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.items, func(i, j int) bool {
		ki, kj := key(s.items[i].sum), key(s.items[j].sum)
		if ki == kj {
			return s.items[i].seq < s.items[j].seq
		}
		if descending {
			return ki > kj
		}
		return ki < kj
	})
}

// PopFront removes and returns the head of the order, decrementing the
// totals before the caller touches the filesystem.
func (s *Store) PopFront() (item.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return item.Summary{}, false
	}
	rec := s.items[0]
	s.items = s.items[1:]
	s.totalSize -= rec.sum.Size
	return rec.sum, true
}

// Take removes the summary with the given name, wherever it sits in the
// order, decrementing the totals.
func (s *Store) Take(name string) (item.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].sum.Name != name {
			continue
		}
		sum := s.items[i].sum
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.totalSize -= sum.Size
		return sum, true
	}
	return item.Summary{}, false
}

// Len returns the number of stored summaries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalSize returns the running byte total of stored summaries.
func (s *Store) TotalSize() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSize
}

// Items returns a copy of the current sequence in order.
func (s *Store) Items() []item.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]item.Summary, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].sum
	}
	return out
}
