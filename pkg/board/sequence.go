package board

import (
	"fmt"

	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

// Sequence is the global display order of every item on the board. Lane
// grouping is a projection over it.
type Sequence []item.Item

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return Sequence{}
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// IndexOf returns the global index of id, or -1.
func (s Sequence) IndexOf(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func (s Sequence) Find(id string) (item.Item, bool) {
	if idx := s.IndexOf(id); idx >= 0 {
		return s[idx], true
	}
	return item.Item{}, false
}

// Lane returns the items in l, in sequence order.
func (s Sequence) Lane(l lane.ID) Sequence {
	out := make(Sequence, 0, len(s))
	for _, it := range s {
		if it.Lane == l {
			out = append(out, it)
		}
	}
	return out
}

// Lanes groups the sequence by lane, keeping sequence order in each group.
func (s Sequence) Lanes() map[lane.ID]Sequence {
	out := make(map[lane.ID]Sequence, len(lane.All()))
	for _, l := range lane.All() {
		out[l] = s.Lane(l)
	}
	return out
}

// IDs lists the item ids in order.
func (s Sequence) IDs() []string {
	ids := make([]string, len(s))
	for i := range s {
		ids[i] = s[i].ID
	}
	return ids
}

// Without returns a copy of the sequence with id filtered out.
func (s Sequence) Without(id string) Sequence {
	out := make(Sequence, 0, len(s))
	for _, it := range s {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Validate checks the sequence invariants: non-empty unique ids and lanes
// drawn from the closed set.
func (s Sequence) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, it := range s {
		if it.ID == "" {
			return fmt.Errorf("item at %d has an empty id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate id %q at %d", it.ID, i)
		}
		seen[it.ID] = struct{}{}
		if !it.Lane.Valid() {
			return fmt.Errorf("item %q has unknown lane %q", it.ID, it.Lane)
		}
	}
	return nil
}
