// Package board holds the authoritative ordered sequence of task items.
package board

import (
	"sync"

	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

// Change is emitted after every committed replacement.
type Change struct {
	Version  uint64
	Sequence Sequence
}

// Store keeps the current sequence and swaps it whole. Readers only ever see
// a complete sequence: Replace clones its input and Snapshot clones its
// output, so no caller shares backing storage with the store.
type Store struct {
	mu      sync.RWMutex
	seq     Sequence
	version uint64

	events chan Change
}

// NewStore creates a store seeded with the provided items. The seed must
// satisfy the same invariants as Replace.
func NewStore(seed ...item.Item) *Store {
	s := &Store{
		events: make(chan Change, 64),
	}
	s.Replace(Sequence(seed))
	return s
}

// Events exposes committed changes. Sends never block; when the consumer
// falls behind, changes are dropped and the next one still carries the full
// sequence.
func (s *Store) Events() <-chan Change {
	return s.events
}

// Replace atomically swaps in next. A sequence that breaks an invariant is a
// programming error and panics with *InvariantError.
func (s *Store) Replace(next Sequence) {
	if err := next.Validate(); err != nil {
		Invariant("replace: %v", err)
	}
	cp := next.Clone()

	s.mu.Lock()
	s.seq = cp
	s.version++
	change := Change{Version: s.version, Sequence: cp.Clone()}
	s.mu.Unlock()

	select {
	case s.events <- change:
	default:
	}
}

// Snapshot returns a copy of the current sequence.
func (s *Store) Snapshot() Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Clone()
}

// Version counts committed replacements, starting at 1 for the seed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// FindByID returns the item with the given id.
func (s *Store) FindByID(id string) (item.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Find(id)
}

// ProjectLane returns every item in l, in store order.
func (s *Store) ProjectLane(l lane.ID) Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Lane(l)
}

// Lanes projects every lane at once from a single consistent snapshot.
func (s *Store) Lanes() map[lane.ID]Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Lanes()
}

// Len reports the number of items on the board.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seq)
}
