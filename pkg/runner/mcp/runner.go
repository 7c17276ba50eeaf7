package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/loop"
	"tableflip.dev/lanes/pkg/store"
)

// Runner coordinates MCP server startup. The server speaks stdio only.
type Runner struct {
	Options app.Options
	Journal *store.Journal
	Logger  log.FieldLogger
	Name    string
	Version string
}

// Do executes the runner until stdin closes or ctx is done.
func (r Runner) Do(ctx context.Context) error {
	srv, stop, err := r.Build(ctx)
	if err != nil {
		return err
	}
	defer stop()
	return server.ServeStdio(srv)
}

// Build assembles the server and starts the loop behind it. stop cancels the
// loop and any journal session.
func (r Runner) Build(ctx context.Context) (*server.MCPServer, func(), error) {
	if r.Options.IDs == nil {
		return nil, nil, errors.New("mcp runner requires an id generator")
	}
	name := r.Name
	if name == "" {
		name = "lanes"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New()
	}

	ctx, cancel := context.WithCancel(ctx)
	l := loop.New(logger)
	l.Start(ctx)

	opts := r.Options
	opts.Logger = logger
	board := app.New(l, opts)

	if r.Journal != nil {
		session := r.Journal.Begin()
		logger.WithField("session", session.ID()).Info("journal session started")
		go session.Follow(ctx, board.Store().Events())
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Drag, drop, create and delete cards on a three-lane task board (Done, Pending, Not Done). "+
			"Call start_drag, then drop_on_item or drop_on_lane, then end_drag."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(board, l)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv, cancel, nil
}
