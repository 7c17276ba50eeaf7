package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/lanes/pkg/lane"
)

// Constants renders the lane order and transition durations.
func (pp *PrettyPrint) Constants(metas []lane.Meta, entry, exit time.Duration) {
	bold := pp.color(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Pos"), bold.Sprint("Lane"), bold.Sprint("ID"))
	for _, m := range metas {
		tbl.AddRow(m.Position, pp.color(LaneColor(m.ID)).Sprint(m.Title), string(m.ID))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
	_, _ = fmt.Fprintln(pp.Out, "")

	dur := uitable.New()
	dur.Separator = "  "
	dur.AddRow(bold.Sprint("Entry transition"), entry.String())
	dur.AddRow(bold.Sprint("Exit transition"), exit.String())
	_, _ = fmt.Fprintln(pp.Out, dur)
}

// SessionRow is one line of the journal listing.
type SessionRow struct {
	ID      string
	Records int
	Started time.Time
	Updated time.Time
}

// Sessions renders the journal session listing.
func (pp *PrettyPrint) Sessions(rows []SessionRow) {
	if len(rows) == 0 {
		_, _ = pp.color(color.Faint, color.Italic).Fprintln(pp.Out, "no sessions recorded")
		return
	}
	bold := pp.color(color.Bold)
	y := pp.color(color.FgHiYellow, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Session"), bold.Sprint("Records"), bold.Sprint("Started"), bold.Sprint("Updated"))
	for _, r := range rows {
		tbl.AddRow(y.Sprint(r.ID), r.Records,
			r.Started.Local().Format(time.DateTime), r.Updated.Local().Format(time.DateTime))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}
