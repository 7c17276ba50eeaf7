// Package reorder computes the next board sequence for a drag gesture.
//
// Move is a pure function: it never touches a store, it only returns the
// sequence the caller should commit.
package reorder

import (
	"fmt"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

var (
	// ErrMissingItem is returned when the dragged id is not on the board,
	// which means the drag session is out of sync with the store.
	ErrMissingItem = fmt.Errorf("reorder: dragged item missing: %w", board.ErrStaleReference)
	// ErrStaleDrag is returned when the dragged item is already exiting.
	ErrStaleDrag = fmt.Errorf("reorder: dragged item is being removed: %w", board.ErrStaleReference)
)

// Op names the kind of change Move produced.
type Op int

const (
	// OpNone leaves the sequence unchanged.
	OpNone Op = iota
	// OpReorder moved an item within its own lane.
	OpReorder
	// OpMove moved an item into another lane.
	OpMove
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpReorder:
		return "reorder"
	case OpMove:
		return "move"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Request describes one drop. An empty TargetID means the item was dropped
// on the lane area rather than on another card.
type Request struct {
	DraggedID string
	TargetID  string
	Lane      lane.ID
}

// Result carries the sequence to commit.
type Result struct {
	Sequence board.Sequence
	Op       Op
}

// Changed reports whether the result differs from the input.
func (r Result) Changed() bool {
	return r.Op != OpNone
}

// Move applies req to seq. seq is never modified.
func Move(seq board.Sequence, req Request) (Result, error) {
	if !req.Lane.Valid() {
		board.Invariant("reorder: destination lane %q is not a board lane", req.Lane)
	}
	unchanged := Result{Sequence: seq, Op: OpNone}

	if req.DraggedID == req.TargetID {
		return unchanged, nil
	}

	draggedIndex := seq.IndexOf(req.DraggedID)
	if draggedIndex < 0 {
		return unchanged, fmt.Errorf("%w: %q", ErrMissingItem, req.DraggedID)
	}
	dragged := seq[draggedIndex]
	if dragged.Exiting() {
		return unchanged, fmt.Errorf("%w: %q", ErrStaleDrag, req.DraggedID)
	}

	target, targetIndex, hasTarget := resolveTarget(seq, req.TargetID)

	if dragged.Lane == req.Lane {
		if !hasTarget {
			// Dropped back onto the area of its own lane.
			return unchanged, nil
		}
		if target.Lane == req.Lane {
			insertAt := targetIndex
			if targetIndex > draggedIndex {
				insertAt = targetIndex - 1
			}
			if insertAt == draggedIndex {
				return unchanged, nil
			}
			return Result{Sequence: reorderWithinLane(seq, draggedIndex, insertAt), Op: OpReorder}, nil
		}
		// The target lives in another lane: the item goes to the end of its
		// own lane.
		if draggedIndex == len(seq)-1 {
			return unchanged, nil
		}
		return Result{Sequence: moveAcrossLanes(seq, draggedIndex, req.TargetID, req.Lane), Op: OpReorder}, nil
	}

	return Result{Sequence: moveAcrossLanes(seq, draggedIndex, req.TargetID, req.Lane), Op: OpMove}, nil
}

// resolveTarget finds a valid drop target. Missing and exiting items are not
// targets; the drop then behaves like a drop on the lane area.
func resolveTarget(seq board.Sequence, id string) (item.Item, int, bool) {
	if id == "" {
		return item.Item{}, -1, false
	}
	idx := seq.IndexOf(id)
	if idx < 0 || seq[idx].Exiting() {
		return item.Item{}, -1, false
	}
	return seq[idx], idx, true
}

// reorderWithinLane removes the dragged item and reinserts it at insertAt.
// Removal shifts everything after draggedIndex down by one, so callers pass
// targetIndex-1 for a target that sat after the dragged item.
func reorderWithinLane(seq board.Sequence, draggedIndex, insertAt int) board.Sequence {
	dragged := seq[draggedIndex]
	out := remove(seq, draggedIndex)
	return insert(out, insertAt, dragged)
}

// moveAcrossLanes relabels the dragged item and places it before the target
// if the target is a live member of the destination lane, otherwise at the
// end of the sequence (which is also the end of the destination lane).
func moveAcrossLanes(seq board.Sequence, draggedIndex int, targetID string, dest lane.ID) board.Sequence {
	moved := seq[draggedIndex]
	moved.Lane = dest
	out := remove(seq, draggedIndex)

	if targetID != "" {
		for _, candidate := range out.Lane(dest) {
			if candidate.ID != targetID || candidate.Exiting() {
				continue
			}
			// Lane-local position translated back to the global index of the
			// target after removal.
			return insert(out, out.IndexOf(candidate.ID), moved)
		}
	}
	return append(out, moved)
}

func remove(seq board.Sequence, idx int) board.Sequence {
	out := make(board.Sequence, 0, len(seq))
	out = append(out, seq[:idx]...)
	return append(out, seq[idx+1:]...)
}

func insert(seq board.Sequence, idx int, it item.Item) board.Sequence {
	out := make(board.Sequence, 0, len(seq)+1)
	out = append(out, seq[:idx]...)
	out = append(out, it)
	return append(out, seq[idx:]...)
}
