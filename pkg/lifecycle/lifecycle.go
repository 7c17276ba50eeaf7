// Package lifecycle creates and deletes board items with timed entry and exit
// transitions.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
)

const (
	// DefaultEntryTransition is the configured default for how long a new
	// item stays tagged entering.
	DefaultEntryTransition = 300 * time.Millisecond
	// DefaultExitTransition is how long a deleted item stays visible.
	DefaultExitTransition = 300 * time.Millisecond
)

// ErrEmptyTitle is returned by Create when the title is blank.
var ErrEmptyTitle = fmt.Errorf("lifecycle: title is required: %w", board.ErrInvalidInput)

// Scheduler runs fn after d on the same actor that calls the coordinator.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Options configure a Coordinator.
type Options struct {
	EntryTransition time.Duration
	ExitTransition  time.Duration
	IDs             IDGenerator
	Logger          log.FieldLogger
	Now             func() time.Time
}

// Coordinator owns item creation and deletion. Deferred callbacks re-check
// the board before acting because the item may have changed in between.
type Coordinator struct {
	store *board.Store
	sched Scheduler

	entry  time.Duration
	exit   time.Duration
	ids    IDGenerator
	logger log.FieldLogger
	now    func() time.Time
}

// New builds a coordinator over store.
func New(store *board.Store, sched Scheduler, opts Options) *Coordinator {
	// Zero means the transition completes on the next scheduler turn.
	if opts.EntryTransition < 0 {
		opts.EntryTransition = 0
	}
	if opts.ExitTransition < 0 {
		opts.ExitTransition = 0
	}
	if opts.IDs == nil {
		opts.IDs = NewSequential(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator{
		store:  store,
		sched:  sched,
		entry:  opts.EntryTransition,
		exit:   opts.ExitTransition,
		ids:    opts.IDs,
		logger: opts.Logger,
		now:    opts.Now,
	}
}

// EntryTransition reports the configured entry duration.
func (c *Coordinator) EntryTransition() time.Duration { return c.entry }

// ExitTransition reports the configured exit duration.
func (c *Coordinator) ExitTransition() time.Duration { return c.exit }

// Create appends a new entering item to the default lane.
func (c *Coordinator) Create(title, description string) (item.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return item.Item{}, ErrEmptyTitle
	}

	id := c.ids.Next(func(id string) bool {
		_, ok := c.store.FindByID(id)
		return ok
	})
	if _, exists := c.store.FindByID(id); exists {
		board.Invariant("lifecycle: generated id %q already on the board", id)
	}

	it := item.New(id, lane.Default, title, description)
	it.Tag = item.TagEntering
	it.Created = item.Timestamp{Time: c.now()}

	c.store.Replace(append(c.store.Snapshot(), it))
	c.logger.WithFields(log.Fields{"item": id, "lane": it.Lane}).Debug("created item")

	c.sched.AfterFunc(c.entry, func() { c.settle(id) })
	return it, nil
}

func (c *Coordinator) settle(id string) {
	seq := c.store.Snapshot()
	idx := seq.IndexOf(id)
	if idx < 0 || seq[idx].Tag != item.TagEntering {
		c.logger.WithField("item", id).Debug("entry transition skipped")
		return
	}
	seq[idx].Tag = item.TagNone
	c.store.Replace(seq)
}

// Delete marks the item exiting and removes it once the exit transition
// elapses. It reports whether a removal was scheduled; unknown ids and items
// that are already exiting are no-ops.
func (c *Coordinator) Delete(id string) (bool, error) {
	seq := c.store.Snapshot()
	idx := seq.IndexOf(id)
	if idx < 0 {
		c.logger.WithField("item", id).Debug("delete of unknown item ignored")
		return false, nil
	}
	if seq[idx].Exiting() {
		return false, nil
	}
	seq[idx].Tag = item.TagExiting
	c.store.Replace(seq)
	c.logger.WithField("item", id).Debug("item exiting")

	c.sched.AfterFunc(c.exit, func() { c.remove(id) })
	return true, nil
}

func (c *Coordinator) remove(id string) {
	it, ok := c.store.FindByID(id)
	if !ok || !it.Exiting() {
		return
	}
	c.store.Replace(c.store.Snapshot().Without(id))
	c.logger.WithField("item", id).Debug("item removed")
}
