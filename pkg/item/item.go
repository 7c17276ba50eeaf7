// Package item defines the task card stored on the board.
package item

import (
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/lanes/pkg/lane"
)

// Tag tracks the timed transition an item is going through.
type Tag int

const (
	// TagNone is a settled item.
	TagNone Tag = iota
	// TagEntering is set on creation until the entry transition elapses.
	TagEntering
	// TagExiting is set on deletion until the exit transition elapses and the
	// item is removed.
	TagExiting
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagEntering:
		return "entering"
	case TagExiting:
		return "exiting"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// MarshalJSON renders the tag by name.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a tag name.
func (t *Tag) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch strings.ToLower(raw) {
	case "", "none":
		*t = TagNone
	case "entering":
		*t = TagEntering
	case "exiting":
		*t = TagExiting
	default:
		return fmt.Errorf("item: unknown tag %q", raw)
	}
	return nil
}

// Item is a single task card. Items are values: mutating a copy never
// changes the board.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Lane        lane.ID   `json:"lane"`
	Tag         Tag       `json:"tag"`
	Created     Timestamp `json:"created"`
}

// New builds a settled item in the given lane.
func New(id string, l lane.ID, title, description string) Item {
	return Item{
		ID:          id,
		Title:       title,
		Description: description,
		Lane:        l,
	}
}

// Exiting reports whether the item is on its way out.
func (i Item) Exiting() bool {
	return i.Tag == TagExiting
}

// Entering reports whether the item is still playing its entry transition.
func (i Item) Entering() bool {
	return i.Tag == TagEntering
}

func (i Item) String() string {
	return fmt.Sprintf("%s@%s", i.ID, i.Lane)
}
