package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const laneURIPrefix = "lanes://lanes/"

func registerResources(srv *server.MCPServer, svc *Service) {
	registerBoardResource(srv, svc)
	registerConstantsResource(srv, svc)
	registerLaneTemplate(srv, svc)
}

func registerBoardResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"lanes://board",
		"Board",
		mcp.WithResourceDescription("Every lane with its cards in order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := svc.Board(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, b)
	})
}

func registerConstantsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"lanes://constants",
		"Board Constants",
		mcp.WithResourceDescription("Lane order and transition durations."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		c := svc.Constants()
		payload := map[string]any{
			"lanes":             c.Lanes,
			"entryTransitionMs": c.EntryTransition.Milliseconds(),
			"exitTransitionMs":  c.ExitTransition.Milliseconds(),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerLaneTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		laneURIPrefix+"{lane}",
		"Lane",
		mcp.WithTemplateDescription("Cards of a single lane in order."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		view, err := svc.LaneView(ctx, strings.TrimPrefix(request.Params.URI, laneURIPrefix))
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
