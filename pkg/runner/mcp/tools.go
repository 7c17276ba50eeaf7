package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var laneEnum = mcp.Enum("done", "pending", "not-done")

func registerTools(srv *server.MCPServer, svc *Service) {
	registerStartDragTool(srv, svc)
	registerDropOnItemTool(srv, svc)
	registerDropOnLaneTool(srv, svc)
	registerEndDragTool(srv, svc)
	registerCreateTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerLaneViewTool(srv, svc)
	registerBoardTool(srv, svc)
}

func registerStartDragTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"start_drag",
		mcp.WithDescription("Pick up a card. Replaces any drag already in progress."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Identifier of the card to drag."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.StartDrag(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerDropOnItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"drop_on_item",
		mcp.WithDescription("Drop the dragged card onto another card. The dragged card lands before the target."),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Identifier of the card being dropped on."),
		),
		mcp.WithString("lane",
			mcp.Required(),
			mcp.Description("Lane the target card is shown in."),
			laneEnum,
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Target string `json:"target"`
			Lane   string `json:"lane"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		res, err := svc.DropOnItem(ctx, args.Target, args.Lane)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerDropOnLaneTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"drop_on_lane",
		mcp.WithDescription("Drop the dragged card on the empty area of a lane. It is appended to the lane."),
		mcp.WithString("lane",
			mcp.Required(),
			mcp.Description("Destination lane."),
			laneEnum,
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		l, err := request.RequireString("lane")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.DropOnLane(ctx, l)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerEndDragTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"end_drag",
		mcp.WithDescription("Release the dragged card."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.EndDrag(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a task in the Pending lane."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title; must not be blank."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		res, err := svc.CreateTask(ctx, args.Title, args.Description)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task. It fades out and is removed once the exit transition ends."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Identifier of the card to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.DeleteTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerLaneViewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"lane_view",
		mcp.WithDescription("List the cards of one lane in order."),
		mcp.WithString("lane",
			mcp.Required(),
			mcp.Description("Lane to list."),
			laneEnum,
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		l, err := request.RequireString("lane")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view, err := svc.LaneView(ctx, l)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerBoardTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"board",
		mcp.WithDescription("Show every lane and the card being dragged."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := svc.Board(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(b)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
