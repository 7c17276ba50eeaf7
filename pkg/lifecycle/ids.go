package lifecycle

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces item ids. taken reports whether an id is already on
// the board; generators must never return a taken id.
type IDGenerator interface {
	Next(taken func(id string) bool) string
}

// Sequential hands out card-1, card-2, ... skipping ids already in use.
type Sequential struct {
	mu   sync.Mutex
	next int
}

// NewSequential starts numbering after start.
func NewSequential(start int) *Sequential {
	return &Sequential{next: start}
}

// Next implements IDGenerator.
func (s *Sequential) Next(taken func(id string) bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		s.next++
		id := fmt.Sprintf("card-%d", s.next)
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// UUID hands out random card-<uuid> ids.
type UUID struct{}

// Next implements IDGenerator.
func (UUID) Next(taken func(id string) bool) string {
	return "card-" + uuid.NewString()
}

// NewIDGenerator builds a generator from its configured name.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", "sequential":
		return NewSequential(0), nil
	case "uuid":
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("lifecycle: unknown id strategy %q", strategy)
	}
}
