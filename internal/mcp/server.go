// Package mcp exposes the command router as a Model Context Protocol tool
// server. Every router command becomes one tool whose result is a single
// text content block.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"netacho/internal/commands"
	"netacho/internal/logging"
)

// ServerName is reported to clients during initialization.
const ServerName = "netacho"

// Server wraps the MCP SDK server.
type Server struct {
	MCPServer *sdkmcp.Server
	router    *commands.Router
}

// NewServer registers every router command as a tool.
func NewServer(router *commands.Router, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{router: router}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: ServerName, Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	for _, c := range s.router.Commands() {
		s.MCPServer.AddTool(&sdkmcp.Tool{
			Name:        c.Name,
			Description: c.Description,
			InputSchema: c.Schema(),
		}, s.handle(c.Name))
	}
}

// handle forwards a tool call to the router. Arguments are passed through
// undecoded; the router owns validation.
func (s *Server) handle(name string) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		logger := logging.New("mcp-session")
		res, err := s.router.Call(ctx, name, req.Params.Arguments)
		if err != nil {
			logger.Warn("tool call rejected", "tool", name, "error", err)
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		logger.Debug("tool call served", "tool", name, "bytes", len(res.Text))
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: res.Text}},
		}, nil
	}
}

// Run serves MCP over stdin/stdout until ctx is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
