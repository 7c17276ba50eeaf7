// Package demo replays scripted board scenarios on a virtual clock and prints the
// resulting boards.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lanes/pkg/printers"
)

// Demo prints every scenario outcome.
type Demo struct {
	EntryTransition time.Duration
	ExitTransition  time.Duration
	JSON            bool
	Out             io.Writer
}

func (d *Demo) Do(ctx context.Context) error {
	out := d.Out
	if out == nil {
		out = color.Output
	}

	outcomes := make([]Outcome, 0, len(Scenarios()))
	for _, s := range Scenarios() {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcomes = append(outcomes, s.Run(d.EntryTransition, d.ExitTransition))
	}

	if d.JSON {
		b, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return failed(outcomes)
	}

	pp := printers.New(out)
	pp.ShowID = true
	for _, o := range outcomes {
		pp.Title(fmt.Sprintf("Scenario %s: %s", o.Name, o.Summary))
		for _, step := range o.Steps {
			_, _ = fmt.Fprintf(out, "  %s\n", step)
		}
		if o.Error != "" {
			_, _ = fmt.Fprintf(out, "  error: %s\n", o.Error)
		}
		pp.NewLine()
		pp.Board(o.Sequence.Lanes())
		status := "ok"
		if !o.Passed {
			status = fmt.Sprintf("FAILED: want %q got %q", o.Want, o.Got)
		}
		_, _ = fmt.Fprintf(out, "  => %s\n\n", status)
	}
	return failed(outcomes)
}

func failed(outcomes []Outcome) error {
	for _, o := range outcomes {
		if !o.Passed {
			return fmt.Errorf("scenario %s did not produce the expected board", o.Name)
		}
	}
	return nil
}
