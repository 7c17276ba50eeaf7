package app

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/lifecycle"
	"tableflip.dev/lanes/pkg/reorder"
)

// ErrNoDrag is returned when a drop arrives without an active drag session.
var ErrNoDrag = fmt.Errorf("app: no active drag: %w", board.ErrStaleReference)

// Options configure a Service.
type Options struct {
	EntryTransition time.Duration
	ExitTransition  time.Duration
	IDs             lifecycle.IDGenerator
	Logger          log.FieldLogger
	Seed            []item.Item
}

// Constants describes the values collaborators need to render the board.
type Constants struct {
	EntryTransition time.Duration `json:"entryTransition"`
	ExitTransition  time.Duration `json:"exitTransition"`
	Lanes           []lane.Meta   `json:"lanes"`
}

// Service is the single entry point collaborators use to drive the board.
// It wraps the store, the lifecycle coordinator and the drag session so UIs
// and servers share one set of rules. Service is not safe for concurrent use;
// callers serialize access through one actor.
type Service struct {
	store     *board.Store
	lifecycle *lifecycle.Coordinator
	drag      DragSession
	logger    log.FieldLogger
}

// New builds a Service whose deferred work runs through sched.
func New(sched lifecycle.Scheduler, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.New()
	}
	store := board.NewStore(opts.Seed...)
	return &Service{
		store: store,
		lifecycle: lifecycle.New(store, sched, lifecycle.Options{
			EntryTransition: opts.EntryTransition,
			ExitTransition:  opts.ExitTransition,
			IDs:             opts.IDs,
			Logger:          logger,
		}),
		logger: logger,
	}
}

// Store exposes the underlying item store for read access and change events.
func (s *Service) Store() *board.Store {
	return s.store
}

// Constants returns the transition durations and lane order.
func (s *Service) Constants() Constants {
	return Constants{
		EntryTransition: s.lifecycle.EntryTransition(),
		ExitTransition:  s.lifecycle.ExitTransition(),
		Lanes:           lane.Metas(),
	}
}

// StartDrag begins a drag of id, replacing any drag already in flight.
func (s *Service) StartDrag(id string) {
	if prev, ok := s.drag.Active(); ok && prev != id {
		s.logger.WithFields(log.Fields{"item": id, "previous": prev}).Debug("drag replaced")
	}
	s.drag.Start(id)
}

// Dragging reports the id being dragged, if any.
func (s *Service) Dragging() (string, bool) {
	return s.drag.Active()
}

// EndDrag clears the drag session whatever the drop outcome was.
func (s *Service) EndDrag() {
	s.drag.Clear()
}

// DropOnItem moves the dragged item before target within l.
func (s *Service) DropOnItem(target string, l lane.ID) (reorder.Result, error) {
	return s.drop(target, l)
}

// DropOnLane moves the dragged item to the end of l.
func (s *Service) DropOnLane(l lane.ID) (reorder.Result, error) {
	return s.drop("", l)
}

func (s *Service) drop(target string, l lane.ID) (reorder.Result, error) {
	current := s.store.Snapshot()
	dragged, ok := s.drag.Active()
	if !ok {
		return reorder.Result{Sequence: current}, ErrNoDrag
	}

	res, err := reorder.Move(current, reorder.Request{DraggedID: dragged, TargetID: target, Lane: l})
	fields := log.Fields{"item": dragged, "target": target, "lane": l}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("drop rejected")
		return res, err
	}
	if res.Changed() {
		s.store.Replace(res.Sequence)
	}
	s.logger.WithFields(fields).WithField("op", res.Op).Debug("drop applied")
	return res, nil
}

// CreateTask adds a task to the default lane.
func (s *Service) CreateTask(title, description string) (item.Item, error) {
	it, err := s.lifecycle.Create(title, description)
	if err != nil {
		if errors.Is(err, board.ErrInvalidInput) {
			s.logger.WithError(err).Debug("create rejected")
		}
		return it, err
	}
	return it, nil
}

// DeleteTask starts the exit transition for id. It reports whether a removal
// was scheduled.
func (s *Service) DeleteTask(id string) (bool, error) {
	return s.lifecycle.Delete(id)
}

// LaneView returns the ordered items of one lane.
func (s *Service) LaneView(l lane.ID) board.Sequence {
	return s.store.ProjectLane(l)
}

// Lanes returns every lane projected from the same snapshot.
func (s *Service) Lanes() map[lane.ID]board.Sequence {
	return s.store.Lanes()
}

// Snapshot returns the whole board in global order.
func (s *Service) Snapshot() board.Sequence {
	return s.store.Snapshot()
}
