// Package journal lists and inspects recorded board sessions.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/printers"
	"tableflip.dev/lanes/pkg/store"
)

// Journal prints sessions, or the records of one session.
type Journal struct {
	Journal *store.Journal
	// Session selects a session; empty lists every session.
	Session string
	// All prints every record instead of the latest board only.
	All    bool
	Follow bool
	JSON   bool
	Out    io.Writer
}

func (j *Journal) Do(ctx context.Context) error {
	if j.Journal == nil {
		return errors.New("journal is not configured; set journal.enabled and journal.path")
	}
	if j.Out == nil {
		j.Out = color.Output
	}
	if j.Session == "" {
		return j.sessions(ctx)
	}
	if err := j.session(ctx); err != nil {
		return err
	}
	if !j.Follow {
		return nil
	}

	events, err := j.Journal.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		if ev.Session != j.Session {
			continue
		}
		rec, err := j.Journal.Latest(ctx, j.Session)
		if err != nil {
			return err
		}
		if err := j.print(rec); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) sessions(ctx context.Context) error {
	list := j.Journal.Sessions(ctx)
	if j.JSON {
		return j.json(list)
	}
	rows := make([]printers.SessionRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, printers.SessionRow{ID: s.ID, Records: s.Records, Started: s.Started, Updated: s.Updated})
	}
	printers.New(j.Out).Sessions(rows)
	return nil
}

func (j *Journal) session(ctx context.Context) error {
	if !j.All {
		rec, err := j.Journal.Latest(ctx, j.Session)
		if err != nil {
			return err
		}
		return j.print(rec)
	}
	records, err := j.Journal.Records(ctx, j.Session)
	if err != nil {
		return err
	}
	if j.JSON {
		return j.json(records)
	}
	for _, rec := range records {
		if err := j.print(rec); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) print(rec store.Record) error {
	if j.JSON {
		return j.json(rec)
	}
	pp := printers.New(j.Out)
	pp.ShowID = true
	pp.Title(fmt.Sprintf("#%d version %d at %s", rec.Seq, rec.Version, rec.At.Local().Format("15:04:05.000")))
	pp.Board(board.Sequence(rec.Items).Lanes())
	return nil
}

func (j *Journal) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(j.Out, string(data))
	return nil
}
