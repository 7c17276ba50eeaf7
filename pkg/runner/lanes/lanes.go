// Package lanes provides CLI helpers to display the board constants.
package lanes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/printers"
)

// Lanes prints the lane order and the transition durations.
type Lanes struct {
	EntryTransition time.Duration
	ExitTransition  time.Duration
	JSON            bool
	Out             io.Writer
}

// Do renders the constants to Out.
func (k *Lanes) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}

	if k.JSON {
		data, err := json.MarshalIndent(map[string]any{
			"lanes":             lane.Metas(),
			"entryTransitionMs": k.EntryTransition.Milliseconds(),
			"exitTransitionMs":  k.ExitTransition.Milliseconds(),
		}, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	_, _ = fmt.Fprintln(out, "")
	printers.New(out).Constants(lane.Metas(), k.EntryTransition, k.ExitTransition)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
