package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

// PrettyPrint renders lanes as colored text.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Dragged marks the card being dragged, if any.
	Dragged string

	plain bool
}

var spacing = strings.Repeat(" ", len("card-00  "))

// New returns a printer for w. Color is turned off when w is not a terminal.
func New(w io.Writer) *PrettyPrint {
	if w == nil {
		w = color.Output
	}
	pp := &PrettyPrint{Out: w, plain: true}
	if f, ok := w.(*os.File); ok {
		pp.plain = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	if w == color.Output {
		pp.plain = color.NoColor
	}
	return pp
}

func (pp *PrettyPrint) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.plain {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// LaneColor is the accent used for a lane heading.
func LaneColor(l lane.ID) color.Attribute {
	switch l {
	case lane.Done:
		return color.FgGreen
	case lane.Pending:
		return color.FgYellow
	case lane.NotDone:
		return color.FgRed
	default:
		return color.Reset
	}
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := pp.color(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.Out, spacing)
	}
	_, _ = t.Fprintln(pp.Out, title)
}

func (pp *PrettyPrint) TitleWithCount(l lane.ID, count int) {
	t := pp.color(color.Bold, LaneColor(l))
	c := pp.color(color.Faint)

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.Out, spacing)
	}
	_, _ = t.Fprint(pp.Out, l.Title())
	_, _ = c.Fprintf(pp.Out, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Out, " card")
	default:
		_, _ = c.Fprintln(pp.Out, " cards")
	}
}

// Lane prints one lane heading followed by its cards in order.
func (pp *PrettyPrint) Lane(l lane.ID, items board.Sequence) {
	pp.TitleWithCount(l, len(items))
	if len(items) == 0 {
		f := pp.color(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.Out, spacing)
		}
		_, _ = f.Fprint(pp.Out, " empty\n\n")
		return
	}

	y := pp.color(color.FgHiYellow, color.Italic, color.Faint)
	for _, it := range items {
		if pp.ShowID {
			_, _ = y.Fprint(pp.Out, it.ID)
			if pad := len(spacing) - len(it.ID); pad > 0 {
				_, _ = fmt.Fprint(pp.Out, strings.Repeat(" ", pad))
			} else {
				_, _ = fmt.Fprint(pp.Out, " ")
			}
		}
		pp.card(it)
	}
	_, _ = fmt.Fprintln(pp.Out, "")
}

func (pp *PrettyPrint) card(it item.Item) {
	marker, style := "•", pp.color()
	switch {
	case it.ID == pp.Dragged && pp.Dragged != "":
		marker, style = "⇕", pp.color(color.Faint, color.Bold)
	case it.Entering():
		marker, style = "+", pp.color(color.FgCyan)
	case it.Exiting():
		marker, style = "×", pp.color(color.Faint, color.CrossedOut)
	}
	_, _ = style.Fprintf(pp.Out, "%s %s", marker, it.Title)
	if it.Description != "" {
		_, _ = pp.color(color.Faint).Fprintf(pp.Out, "  %s", it.Description)
	}
	_, _ = fmt.Fprintln(pp.Out, "")
}

// Board prints every lane in display order.
func (pp *PrettyPrint) Board(lanes map[lane.ID]board.Sequence) {
	for _, l := range lane.All() {
		pp.Lane(l, lanes[l])
	}
}
