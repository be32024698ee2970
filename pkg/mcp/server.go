package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// serverInstructions is surfaced to MCP clients during initialization so
// agents know what the tool surface covers.
const serverInstructions = "College application assistant tools: add colleges " +
	"to a student's list, research college facts and essay prompts, and " +
	"inspect application status. All tools except health require an " +
	"authenticated student token."

// Server wraps the mcp-go MCPServer with waypoint-engine patterns.
type Server struct {
	mcp    *server.MCPServer
	logger *zap.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(name, version string, logger *zap.Logger) *Server {
	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
		server.WithRecovery(),
	)

	return &Server{
		mcp:    mcpServer,
		logger: logger.Named("mcp"),
	}
}

// MCP returns the underlying MCPServer for tool registration.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// NewStreamableHTTPServer creates an HTTP transport server wrapping this MCP server.
// The HTTP mux handles routing to /mcp, so no endpoint path is configured here.
func (s *Server) NewStreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
	)
}

// RegisterTool is a convenience wrapper for registering a tool.
func (s *Server) RegisterTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.logger.Debug("Registering MCP tool", zap.String("tool", tool.Name))
	s.mcp.AddTool(tool, handler)
}
