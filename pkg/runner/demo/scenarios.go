package demo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/lifecycle"
	"tableflip.dev/lanes/pkg/loop"
)

// Scenario is a scripted sequence of operations against a fresh board.
type Scenario struct {
	Name    string
	Summary string
	Seed    []item.Item
	Steps   func(svc *app.Service, clock *loop.Manual) ([]string, error)
	// Want is the expected global order as id@lane pairs.
	Want string
}

// Outcome is the result of running a Scenario.
type Outcome struct {
	Name     string         `json:"name"`
	Summary  string         `json:"summary"`
	Steps    []string       `json:"steps"`
	Sequence board.Sequence `json:"sequence"`
	Got      string         `json:"got"`
	Want     string         `json:"want"`
	Passed   bool           `json:"passed"`
	Error    string         `json:"error,omitempty"`
}

func card(id string, l lane.ID) item.Item {
	return item.New(id, l, "Task "+id, "")
}

// Scenarios returns the reference scenarios for the reorder engine and the
// lifecycle coordinator.
func Scenarios() []Scenario {
	return []Scenario{{
		Name:    "A",
		Summary: "drag A onto B in Pending when A already precedes B",
		Seed:    []item.Item{card("A", lane.Pending), card("B", lane.Pending), card("C", lane.Done)},
		Steps: func(svc *app.Service, _ *loop.Manual) ([]string, error) {
			svc.StartDrag("A")
			res, err := svc.DropOnItem("B", lane.Pending)
			svc.EndDrag()
			return []string{"start-drag A", "drop-on-item B pending -> " + res.Op.String(), "end-drag"}, err
		},
		Want: "A@pending B@pending C@done",
	}, {
		Name:    "B",
		Summary: "drag B onto A in Pending",
		Seed:    []item.Item{card("A", lane.Pending), card("B", lane.Pending)},
		Steps: func(svc *app.Service, _ *loop.Manual) ([]string, error) {
			svc.StartDrag("B")
			res, err := svc.DropOnItem("A", lane.Pending)
			svc.EndDrag()
			return []string{"start-drag B", "drop-on-item A pending -> " + res.Op.String(), "end-drag"}, err
		},
		Want: "B@pending A@pending",
	}, {
		Name:    "C",
		Summary: "drop A on the empty Done lane",
		Seed:    []item.Item{card("A", lane.Pending)},
		Steps: func(svc *app.Service, _ *loop.Manual) ([]string, error) {
			svc.StartDrag("A")
			res, err := svc.DropOnLane(lane.Done)
			svc.EndDrag()
			return []string{"start-drag A", "drop-on-lane done -> " + res.Op.String(), "end-drag"}, err
		},
		Want: "A@done",
	}, {
		Name:    "D",
		Summary: "create a task with an empty title",
		Steps: func(svc *app.Service, _ *loop.Manual) ([]string, error) {
			_, err := svc.CreateTask("", "desc")
			if !errors.Is(err, board.ErrInvalidInput) {
				return nil, fmt.Errorf("expected invalid input, got %v", err)
			}
			return []string{"create \"\" -> " + err.Error()}, nil
		},
		Want: "",
	}, {
		Name:    "E",
		Summary: "delete a task before its entry transition finishes",
		Steps: func(svc *app.Service, clock *loop.Manual) ([]string, error) {
			steps := []string{}
			it, err := svc.CreateTask("Buy milk", "")
			if err != nil {
				return steps, err
			}
			steps = append(steps, fmt.Sprintf("create %q -> %s (%s)", it.Title, it.ID, it.Tag))

			half := svc.Constants().EntryTransition / 2
			clock.Advance(half)
			if _, err := svc.DeleteTask(it.ID); err != nil {
				return steps, err
			}
			got, _ := svc.Store().FindByID(it.ID)
			steps = append(steps, fmt.Sprintf("after %s delete %s -> %s", half, it.ID, got.Tag))

			clock.Advance(svc.Constants().ExitTransition)
			if _, ok := svc.Store().FindByID(it.ID); ok {
				return steps, fmt.Errorf("%s still present after exit transition", it.ID)
			}
			steps = append(steps, fmt.Sprintf("after exit transition %s removed", it.ID))
			return steps, nil
		},
		Want: "",
	}}
}

// Run executes s against a fresh board with the given transition durations.
func (s Scenario) Run(entry, exit time.Duration) Outcome {
	clock := loop.NewManual()
	svc := app.New(clock, app.Options{
		EntryTransition: entry,
		ExitTransition:  exit,
		IDs:             lifecycle.NewSequential(0),
		Seed:            s.Seed,
	})

	out := Outcome{Name: s.Name, Summary: s.Summary, Want: s.Want}
	steps, err := s.Steps(svc, clock)
	out.Steps = steps
	if err != nil {
		out.Error = err.Error()
	}
	out.Sequence = svc.Snapshot()
	out.Got = Describe(out.Sequence)
	out.Passed = err == nil && out.Got == out.Want
	return out
}

// Describe renders a sequence as space separated id@lane pairs.
func Describe(seq board.Sequence) string {
	parts := make([]string, 0, len(seq))
	for _, it := range seq {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, " ")
}
