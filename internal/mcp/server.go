package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"lotomania/internal/assistant"
)

const (
	serverName    = "lotomania"
	serverVersion = "0.1.0"
)

// Server holds the state for the MCP server.
type Server struct {
	assistant *assistant.Assistant
	charts    bool
	mcp       *mcp.Server
}

// NewServer creates a new MCP server with every tool registered.
// charts toggles the Mermaid charts attached to analysis and check outputs.
func NewServer(a *assistant.Assistant, charts bool) (*Server, error) {
	s := &Server{
		assistant: a,
		charts:    charts,
		mcp:       mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Serve runs the protocol over stdio until the client disconnects or ctx ends.
// Stdout carries protocol frames only; logs go to stderr and the log file.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", serverVersion).Msg("MCP server listening on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}
