package app

import (
	"fmt"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/reorder"
)

// Request is one of the discrete messages a collaborator can send: StartDrag,
// DropOnItem, DropOnLane, EndDrag, CreateTask or DeleteTask.
type Request interface {
	request()
	Describe() string
}

// StartDrag begins dragging ItemID.
type StartDrag struct{ ItemID string }

// DropOnItem drops the dragged item on TargetID inside Lane.
type DropOnItem struct {
	TargetID string
	Lane     lane.ID
}

// DropOnLane drops the dragged item on the empty area of Lane.
type DropOnLane struct{ Lane lane.ID }

// EndDrag clears the drag session.
type EndDrag struct{}

// CreateTask adds a task.
type CreateTask struct {
	Title       string
	Description string
}

// DeleteTask removes a task after its exit transition.
type DeleteTask struct{ ItemID string }

func (StartDrag) request()  {}
func (DropOnItem) request() {}
func (DropOnLane) request() {}
func (EndDrag) request()    {}
func (CreateTask) request() {}
func (DeleteTask) request() {}

// Describe implements the logging helper.
func (r StartDrag) Describe() string { return fmt.Sprintf(`start-drag item:%q`, r.ItemID) }

// Describe implements the logging helper.
func (r DropOnItem) Describe() string {
	return fmt.Sprintf(`drop-on-item target:%q lane:%q`, r.TargetID, r.Lane)
}

// Describe implements the logging helper.
func (r DropOnLane) Describe() string { return fmt.Sprintf(`drop-on-lane lane:%q`, r.Lane) }

// Describe implements the logging helper.
func (EndDrag) Describe() string { return "end-drag" }

// Describe implements the logging helper.
func (r CreateTask) Describe() string { return fmt.Sprintf(`create title:%q`, r.Title) }

// Describe implements the logging helper.
func (r DeleteTask) Describe() string { return fmt.Sprintf(`delete item:%q`, r.ItemID) }

// Response is the outcome of a Request. Snapshot is always the board after
// the request, whether or not it succeeded; Err names the failure.
type Response struct {
	Snapshot board.Sequence
	Op       reorder.Op
	Item     item.Item
	Changed  bool
	Err      error
}

// Dispatch applies one request and returns the resulting snapshot.
func (s *Service) Dispatch(req Request) Response {
	before := s.store.Version()
	var resp Response

	switch r := req.(type) {
	case StartDrag:
		s.StartDrag(r.ItemID)
	case DropOnItem:
		res, err := s.DropOnItem(r.TargetID, r.Lane)
		resp.Op, resp.Err = res.Op, err
	case DropOnLane:
		res, err := s.DropOnLane(r.Lane)
		resp.Op, resp.Err = res.Op, err
	case EndDrag:
		s.EndDrag()
	case CreateTask:
		resp.Item, resp.Err = s.CreateTask(r.Title, r.Description)
	case DeleteTask:
		_, resp.Err = s.DeleteTask(r.ItemID)
	default:
		resp.Err = fmt.Errorf("app: unsupported request %T: %w", req, board.ErrInvalidInput)
	}

	resp.Snapshot = s.store.Snapshot()
	resp.Changed = s.store.Version() != before
	return resp
}
