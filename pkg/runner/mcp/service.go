// Package mcp provides the Model Context Protocol server integration for lanes.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/loop"
)

// Service serializes board operations from concurrent MCP handlers onto a
// single loop.
type Service struct {
	board *app.Service
	loop  *loop.Loop
}

// ItemDTO is a transport-friendly projection of an item.
type ItemDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Lane        string `json:"lane"`
	State       string `json:"state"`
	Dragging    bool   `json:"dragging,omitempty"`
	CreatedISO  string `json:"created,omitempty"`
}

// LaneDTO is one lane in display order.
type LaneDTO struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Position int       `json:"position"`
	Count    int       `json:"count"`
	Items    []ItemDTO `json:"items"`
}

// BoardDTO is the whole board grouped by lane.
type BoardDTO struct {
	Version  uint64    `json:"version"`
	Dragging string    `json:"dragging,omitempty"`
	Lanes    []LaneDTO `json:"lanes"`
}

// ResultDTO reports the outcome of a mutation along with the board after it.
type ResultDTO struct {
	Op      string   `json:"op,omitempty"`
	Changed bool     `json:"changed"`
	Item    *ItemDTO `json:"item,omitempty"`
	Board   BoardDTO `json:"board"`
}

// NewService wraps svc; every call runs on l.
func NewService(svc *app.Service, l *loop.Loop) *Service {
	return &Service{board: svc, loop: l}
}

// ParseLane validates a lane argument.
func ParseLane(raw string) (lane.ID, error) {
	l, err := lane.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, board.ErrInvalidInput)
	}
	return l, nil
}

func (s *Service) dispatch(ctx context.Context, req app.Request) (ResultDTO, error) {
	var (
		resp     app.Response
		dragging string
		version  uint64
	)
	if err := s.loop.Do(ctx, func() {
		resp = s.board.Dispatch(req)
		dragging, _ = s.board.Dragging()
		version = s.board.Store().Version()
	}); err != nil {
		return ResultDTO{}, err
	}
	if resp.Err != nil {
		return ResultDTO{}, resp.Err
	}

	out := ResultDTO{
		Changed: resp.Changed,
		Board:   toBoardDTO(resp.Snapshot, dragging, version),
	}
	switch req.(type) {
	case app.DropOnItem, app.DropOnLane:
		out.Op = resp.Op.String()
	case app.CreateTask:
		dto := toItemDTO(resp.Item, dragging)
		out.Item = &dto
	}
	return out, nil
}

// StartDrag begins dragging id. Unknown ids are rejected so callers learn
// about typos before they drop.
func (s *Service) StartDrag(ctx context.Context, id string) (ResultDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ResultDTO{}, fmt.Errorf("id is required: %w", board.ErrInvalidInput)
	}
	if _, ok := s.board.Store().FindByID(id); !ok {
		return ResultDTO{}, fmt.Errorf("item %q not found: %w", id, board.ErrStaleReference)
	}
	return s.dispatch(ctx, app.StartDrag{ItemID: id})
}

// DropOnItem drops the dragged item before target within laneRaw.
func (s *Service) DropOnItem(ctx context.Context, target, laneRaw string) (ResultDTO, error) {
	l, err := ParseLane(laneRaw)
	if err != nil {
		return ResultDTO{}, err
	}
	return s.dispatch(ctx, app.DropOnItem{TargetID: strings.TrimSpace(target), Lane: l})
}

// DropOnLane drops the dragged item at the end of laneRaw.
func (s *Service) DropOnLane(ctx context.Context, laneRaw string) (ResultDTO, error) {
	l, err := ParseLane(laneRaw)
	if err != nil {
		return ResultDTO{}, err
	}
	return s.dispatch(ctx, app.DropOnLane{Lane: l})
}

// EndDrag clears the drag session.
func (s *Service) EndDrag(ctx context.Context) (ResultDTO, error) {
	return s.dispatch(ctx, app.EndDrag{})
}

// CreateTask adds a task to the default lane.
func (s *Service) CreateTask(ctx context.Context, title, description string) (ResultDTO, error) {
	return s.dispatch(ctx, app.CreateTask{Title: title, Description: description})
}

// DeleteTask starts the exit transition of id.
func (s *Service) DeleteTask(ctx context.Context, id string) (ResultDTO, error) {
	return s.dispatch(ctx, app.DeleteTask{ItemID: strings.TrimSpace(id)})
}

// LaneView returns one lane.
func (s *Service) LaneView(ctx context.Context, laneRaw string) (LaneDTO, error) {
	l, err := ParseLane(laneRaw)
	if err != nil {
		return LaneDTO{}, err
	}
	b, err := s.Board(ctx)
	if err != nil {
		return LaneDTO{}, err
	}
	return b.Lanes[l.Position()], nil
}

// Board returns the whole board.
func (s *Service) Board(ctx context.Context) (BoardDTO, error) {
	var (
		snap     board.Sequence
		dragging string
		version  uint64
	)
	if err := s.loop.Do(ctx, func() {
		snap = s.board.Snapshot()
		dragging, _ = s.board.Dragging()
		version = s.board.Store().Version()
	}); err != nil {
		return BoardDTO{}, err
	}
	return toBoardDTO(snap, dragging, version), nil
}

// Constants returns the lane order and transition durations.
func (s *Service) Constants() app.Constants {
	return s.board.Constants()
}

func toBoardDTO(seq board.Sequence, dragging string, version uint64) BoardDTO {
	out := BoardDTO{Version: version, Dragging: dragging}
	for _, meta := range lane.Metas() {
		items := seq.Lane(meta.ID)
		dto := LaneDTO{
			ID:       string(meta.ID),
			Title:    meta.Title,
			Position: meta.Position,
			Count:    len(items),
			Items:    make([]ItemDTO, 0, len(items)),
		}
		for _, it := range items {
			dto.Items = append(dto.Items, toItemDTO(it, dragging))
		}
		out.Lanes = append(out.Lanes, dto)
	}
	return out
}

func toItemDTO(it item.Item, dragging string) ItemDTO {
	dto := ItemDTO{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Lane:        string(it.Lane),
		State:       it.Tag.String(),
		Dragging:    dragging != "" && it.ID == dragging,
	}
	if !it.Created.IsZero() {
		dto.CreatedISO = it.Created.Format(time.RFC3339)
	}
	return dto
}

// IsUserError reports whether err is an expected condition the caller can fix.
func IsUserError(err error) bool {
	return errors.Is(err, board.ErrInvalidInput) || errors.Is(err, board.ErrStaleReference)
}
