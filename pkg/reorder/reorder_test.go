package reorder

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

func seqOf(specs ...string) board.Sequence {
	seq := make(board.Sequence, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "@", 2)
		seq = append(seq, item.New(parts[0], lane.MustParse(parts[1]), "Task "+parts[0], ""))
	}
	return seq
}

func render(seq board.Sequence) string {
	parts := make([]string, len(seq))
	for i, it := range seq {
		parts[i] = it.String()
	}
	return strings.Join(parts, ",")
}

func mustMove(t *testing.T, seq board.Sequence, req Request) Result {
	t.Helper()
	res, err := Move(seq, req)
	if err != nil {
		t.Fatalf("move %+v: %v", req, err)
	}
	return res
}

// Dragging A before B when A already precedes B resolves to index 0, so the
// order is unchanged and nothing needs committing.
func TestScenarioADragOntoFollowingNeighbourKeepsOrder(t *testing.T) {
	seq := seqOf("A@pending", "B@pending", "C@done")
	res := mustMove(t, seq, Request{DraggedID: "A", TargetID: "B", Lane: lane.Pending})

	if got := render(res.Sequence); got != "A@pending,B@pending,C@done" {
		t.Fatalf("expected [A,B,C] unchanged, got %s", got)
	}
	if res.Changed() {
		t.Fatalf("expected no change, got %s", res.Op)
	}
}

func TestScenarioBDragOntoPrecedingNeighbour(t *testing.T) {
	seq := seqOf("A@pending", "B@pending")
	res := mustMove(t, seq, Request{DraggedID: "B", TargetID: "A", Lane: lane.Pending})

	if got := render(res.Sequence); got != "B@pending,A@pending" {
		t.Fatalf("expected [B,A], got %s", got)
	}
}

func TestScenarioCMoveToEmptyLane(t *testing.T) {
	seq := seqOf("A@pending")
	res := mustMove(t, seq, Request{DraggedID: "A", Lane: lane.Done})

	if got := render(res.Sequence); got != "A@done" {
		t.Fatalf("expected [A@done], got %s", got)
	}
	if res.Op != OpMove {
		t.Fatalf("expected move op, got %s", res.Op)
	}
}

func TestDropOnSelfIsNoOp(t *testing.T) {
	seq := seqOf("A@pending", "B@done", "C@pending")
	for _, l := range lane.All() {
		res := mustMove(t, seq, Request{DraggedID: "C", TargetID: "C", Lane: l})
		if res.Changed() || render(res.Sequence) != render(seq) {
			t.Fatalf("self drop into %s changed sequence: %s", l, render(res.Sequence))
		}
	}
}

func TestSameLaneMoveDownAcrossSeveral(t *testing.T) {
	seq := seqOf("A@pending", "X@done", "B@pending", "C@pending", "D@pending")
	res := mustMove(t, seq, Request{DraggedID: "A", TargetID: "D", Lane: lane.Pending})

	if got := strings.Join(res.Sequence.IDs(), ","); got != "X,B,C,A,D" {
		t.Fatalf("expected A just before D, got %s", got)
	}
}

func TestSameLaneMoveUp(t *testing.T) {
	seq := seqOf("A@pending", "X@done", "B@pending", "C@pending")
	res := mustMove(t, seq, Request{DraggedID: "C", TargetID: "A", Lane: lane.Pending})

	if got := strings.Join(res.Sequence.IDs(), ","); got != "C,A,X,B" {
		t.Fatalf("expected C first, got %s", got)
	}
}

func TestCrossLaneInsertsBeforeTargetInDestinationLane(t *testing.T) {
	seq := seqOf("A@done", "B@pending", "C@done", "D@not-done", "E@done")
	res := mustMove(t, seq, Request{DraggedID: "D", TargetID: "C", Lane: lane.Done})

	if got := render(res.Sequence); got != "A@done,B@pending,D@done,C@done,E@done" {
		t.Fatalf("unexpected sequence %s", got)
	}
	if got := strings.Join(res.Sequence.Lane(lane.Done).IDs(), ","); got != "A,D,C,E" {
		t.Fatalf("expected D before C within Done, got %s", got)
	}
}

// The target sits after the dragged item globally; its index must be taken
// after the dragged item has been removed.
func TestCrossLaneTargetAfterDraggedUsesPostRemovalIndex(t *testing.T) {
	seq := seqOf("A@pending", "B@done", "C@done")
	res := mustMove(t, seq, Request{DraggedID: "A", TargetID: "C", Lane: lane.Done})

	if got := render(res.Sequence); got != "B@done,A@done,C@done" {
		t.Fatalf("unexpected sequence %s", got)
	}
}

func TestCrossLaneTargetOutsideDestinationAppends(t *testing.T) {
	seq := seqOf("A@pending", "B@not-done", "C@done")
	res := mustMove(t, seq, Request{DraggedID: "A", TargetID: "B", Lane: lane.Done})

	if got := render(res.Sequence); got != "B@not-done,C@done,A@done" {
		t.Fatalf("expected append, got %s", got)
	}
}

func TestCrossLaneMissingTargetAppends(t *testing.T) {
	seq := seqOf("A@pending", "B@done")
	res := mustMove(t, seq, Request{DraggedID: "A", TargetID: "gone", Lane: lane.Done})

	if got := render(res.Sequence); got != "B@done,A@done" {
		t.Fatalf("expected append, got %s", got)
	}
}

func TestExitingTargetIsNotACandidate(t *testing.T) {
	seq := seqOf("A@done", "B@done", "C@pending")
	seq[0].Tag = item.TagExiting

	res := mustMove(t, seq, Request{DraggedID: "C", TargetID: "A", Lane: lane.Done})
	if got := render(res.Sequence); got != "A@done,B@done,C@done" {
		t.Fatalf("expected append after exiting target, got %s", got)
	}
	if !res.Sequence[0].Exiting() {
		t.Fatalf("exiting item must keep its position and tag")
	}

	same := mustMove(t, seq, Request{DraggedID: "B", TargetID: "A", Lane: lane.Done})
	if same.Changed() {
		t.Fatalf("same-lane drop onto exiting item must be a no-op, got %s", render(same.Sequence))
	}
}

func TestDropOnOwnLaneAreaIsNoOp(t *testing.T) {
	seq := seqOf("A@pending", "B@pending")
	res := mustMove(t, seq, Request{DraggedID: "A", Lane: lane.Pending})
	if res.Changed() {
		t.Fatalf("expected no-op, got %s", render(res.Sequence))
	}
}

func TestOwnLaneDropOntoForeignTargetAppends(t *testing.T) {
	seq := seqOf("A@pending", "B@pending", "C@done")
	res := mustMove(t, seq, Request{DraggedID: "A", TargetID: "C", Lane: lane.Pending})
	if got := render(res.Sequence); got != "B@pending,C@done,A@pending" {
		t.Fatalf("expected A appended to pending, got %s", got)
	}
	if res.Op != OpReorder {
		t.Fatalf("expected reorder op, got %s", res.Op)
	}

	last := seqOf("B@pending", "C@done", "A@pending")
	same := mustMove(t, last, Request{DraggedID: "A", TargetID: "C", Lane: lane.Pending})
	if same.Changed() {
		t.Fatalf("item already last must stay put, got %s", render(same.Sequence))
	}
}

func TestMissingDraggedItemIsReported(t *testing.T) {
	seq := seqOf("A@pending")
	res, err := Move(seq, Request{DraggedID: "ghost", TargetID: "A", Lane: lane.Pending})
	if !errors.Is(err, ErrMissingItem) || !errors.Is(err, board.ErrStaleReference) {
		t.Fatalf("expected ErrMissingItem, got %v", err)
	}
	if render(res.Sequence) != render(seq) {
		t.Fatalf("failed move must not change the sequence")
	}
}

func TestExitingDraggedItemIsStale(t *testing.T) {
	seq := seqOf("A@pending", "B@done")
	seq[0].Tag = item.TagExiting
	_, err := Move(seq, Request{DraggedID: "A", Lane: lane.Done})
	if !errors.Is(err, ErrStaleDrag) {
		t.Fatalf("expected ErrStaleDrag, got %v", err)
	}
}

func TestUnknownDestinationLanePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, board.ErrInvariantViolation) {
			t.Fatalf("expected invariant panic, got %v", r)
		}
	}()
	_, _ = Move(seqOf("A@pending"), Request{DraggedID: "A", Lane: lane.ID("archived")})
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	seq := seqOf("A@pending", "B@pending", "C@done")
	before := render(seq)
	mustMove(t, seq, Request{DraggedID: "A", TargetID: "C", Lane: lane.Done})
	mustMove(t, seq, Request{DraggedID: "B", TargetID: "A", Lane: lane.Pending})
	if render(seq) != before {
		t.Fatalf("input mutated: %s", render(seq))
	}
}

// TestRandomMovesPreserveInvariants drives Move with random requests and
// checks uniqueness and both conservation properties after each step.
func TestRandomMovesPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lanes := lane.All()

	seq := make(board.Sequence, 0, 12)
	for i := 0; i < 12; i++ {
		seq = append(seq, item.New(fmt.Sprintf("card-%d", i), lanes[rng.Intn(len(lanes))], "t", ""))
	}

	for step := 0; step < 500; step++ {
		dragged := seq[rng.Intn(len(seq))]
		target := ""
		if rng.Intn(4) > 0 {
			target = seq[rng.Intn(len(seq))].ID
		}
		dest := lanes[rng.Intn(len(lanes))]

		res := mustMove(t, seq, Request{DraggedID: dragged.ID, TargetID: target, Lane: dest})
		next := res.Sequence

		if err := next.Validate(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if !sameMultiset(seq, next) {
			t.Fatalf("step %d: items not conserved", step)
		}

		changedLanes := 0
		for _, it := range next {
			prev, _ := seq.Find(it.ID)
			if prev.Lane != it.Lane {
				changedLanes++
				if it.ID != dragged.ID || it.Lane != dest {
					t.Fatalf("step %d: unexpected lane change on %s", step, it)
				}
			}
		}
		if changedLanes > 1 {
			t.Fatalf("step %d: %d lanes changed", step, changedLanes)
		}

		// Every lane's relative order, ignoring the dragged item, is kept.
		for _, l := range lanes {
			if a, b := idsWithout(seq.Lane(l), dragged.ID), idsWithout(next.Lane(l), dragged.ID); a != b {
				t.Fatalf("step %d: lane %s order changed: %s -> %s", step, l, a, b)
			}
		}

		if res.Op == OpReorder {
			for _, l := range lanes {
				if l == dest {
					continue
				}
				if a, b := render(seq.Lane(l)), render(next.Lane(l)); a != b {
					t.Fatalf("step %d: reorder touched lane %s", step, l)
				}
			}
		}
		seq = next
	}
}

func sameMultiset(a, b board.Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	ai, bi := a.IDs(), b.IDs()
	sort.Strings(ai)
	sort.Strings(bi)
	return strings.Join(ai, ",") == strings.Join(bi, ",")
}

func idsWithout(seq board.Sequence, id string) string {
	return strings.Join(seq.Without(id).IDs(), ",")
}
