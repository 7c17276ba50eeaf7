package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

func TestBoardPrintsLanesInOrder(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf)
	exiting := item.New("card-3", lane.Done, "Old", "")
	exiting.Tag = item.TagExiting

	pp.Board(map[lane.ID]board.Sequence{
		lane.Done:    {item.New("card-1", lane.Done, "Ship it", "release notes"), exiting},
		lane.Pending: {item.New("card-2", lane.Pending, "Review", "")},
	})

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected plain output for a buffer, got %q", out)
	}
	done := strings.Index(out, "Done - 2 cards")
	pending := strings.Index(out, "Pending - 1 card\n")
	notDone := strings.Index(out, "Not Done - 0 cards")
	if done < 0 || pending < 0 || notDone < 0 || !(done < pending && pending < notDone) {
		t.Fatalf("lanes missing or out of order:\n%s", out)
	}
	for _, want := range []string{"• Ship it  release notes", "× Old", "• Review", " empty"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDraggedAndIDs(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf)
	pp.ShowID = true
	pp.Dragged = "card-2"
	pp.Lane(lane.Pending, board.Sequence{item.New("card-2", lane.Pending, "Review", "")})

	out := buf.String()
	if !strings.Contains(out, "card-2") || !strings.Contains(out, "⇕ Review") {
		t.Fatalf("expected id and drag marker:\n%s", out)
	}
}

func TestConstantsTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Constants(lane.Metas(), 300*time.Millisecond, time.Second)
	out := buf.String()
	for _, want := range []string{"Not Done", "not-done", "300ms", "1s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSessionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sessions(nil)
	if !strings.Contains(buf.String(), "no sessions") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
