// Package mcp exposes a loaded documentation site to coding agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/docshell/internal/site"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes documentation tools.
type Server struct {
	site *site.Site
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server over s.
func NewServer(s *site.Site) *Server {
	srv := &Server{site: s}

	srv.mcp = server.NewMCPServer(
		"docshell",
		Version,
		server.WithToolCapabilities(false),
	)

	srv.registerTools()

	return srv
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(pageNeighborsTool, s.handlePageNeighbors)
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(getNavTool, s.handleGetNav)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
