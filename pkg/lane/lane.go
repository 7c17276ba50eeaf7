// Package lane defines the closed set of board lanes and their display order.
package lane

import (
	"fmt"
	"strings"
)

// ID identifies a board lane.
type ID string

const (
	// Done holds finished tasks.
	Done ID = "done"
	// Pending holds tasks that are waiting on something.
	Pending ID = "pending"
	// NotDone holds tasks that have not been started.
	NotDone ID = "not-done"
)

// Default is the lane new tasks are created in.
const Default = Pending

// All returns the lanes in display order, left to right.
func All() []ID {
	return []ID{
		Done,
		Pending,
		NotDone,
	}
}

// Valid reports whether id is one of the known lanes.
func (id ID) Valid() bool {
	for _, candidate := range All() {
		if candidate == id {
			return true
		}
	}
	return false
}

// Title returns the human-facing lane name.
func (id ID) Title() string {
	switch id {
	case Done:
		return "Done"
	case Pending:
		return "Pending"
	case NotDone:
		return "Not Done"
	default:
		return string(id)
	}
}

// Position returns the display index of the lane, or -1 if unknown.
func (id ID) Position() int {
	for i, candidate := range All() {
		if candidate == id {
			return i
		}
	}
	return -1
}

func (id ID) String() string {
	return string(id)
}

// Parse converts an id or a display title into an ID. Matching ignores case,
// surrounding whitespace, and the separator between words.
func Parse(raw string) (ID, error) {
	key := normalize(raw)
	if key == "" {
		return "", fmt.Errorf("lane: empty lane name")
	}
	for _, candidate := range All() {
		if normalize(string(candidate)) == key || normalize(candidate.Title()) == key {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("lane: unknown lane %q", raw)
}

// MustParse parses the input and panics on error. Intended for tests/config.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
