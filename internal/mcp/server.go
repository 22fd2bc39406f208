// ABOUTME: MCP server setup for the sporttimer workout log.
// ABOUTME: Wraps the MCP server around the query engine and the timer session manager.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/sporttimer/internal/session"
	"github.com/harperreed/sporttimer/internal/workouts"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with engine access.
type Server struct {
	mcpServer *mcp.Server
	engine    *workouts.Engine
	searcher  *workouts.Searcher
	sessions  *session.Manager
}

// NewServer creates a new MCP server over engine. Timer tools use sessions.
func NewServer(engine *workouts.Engine, sessions *session.Manager) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sporttimer",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		engine:    engine,
		// Lookup only; nothing is ever submitted, so deliver is never called.
		searcher: workouts.NewSearcher(engine, func(workouts.Result) {}),
		sessions: sessions,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	defer s.searcher.Close()
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
