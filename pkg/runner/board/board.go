// Package board prints the starter board.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/lifecycle"
	"tableflip.dev/lanes/pkg/loop"
	"tableflip.dev/lanes/pkg/printers"
)

// Board renders the lanes of a freshly seeded board.
type Board struct {
	ShowID bool
	JSON   bool
	// Lane limits output to one lane when set.
	Lane lane.ID
	Seed bool
	Out  io.Writer
}

type laneJSON struct {
	ID    lane.ID  `json:"id"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

func (b *Board) Do(_ context.Context) error {
	out := b.Out
	if out == nil {
		out = color.Output
	}
	opts := app.Options{IDs: lifecycle.NewSequential(0)}
	if b.Seed {
		opts.Seed = app.SampleBoard()
		opts.IDs = app.SampleIDs()
	}
	svc := app.New(loop.NewManual(), opts)

	lanes := lane.All()
	if b.Lane != "" {
		lanes = []lane.ID{b.Lane}
	}

	if b.JSON {
		list := make([]laneJSON, 0, len(lanes))
		for _, l := range lanes {
			view := svc.LaneView(l)
			list = append(list, laneJSON{ID: l, Title: l.Title(), Items: view.IDs()})
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	pp := printers.New(out)
	pp.ShowID = b.ShowID
	pp.NewLine()
	for _, l := range lanes {
		pp.Lane(l, svc.LaneView(l))
	}
	return nil
}
