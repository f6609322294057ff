package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPraxisMCPServer creates a new MCP server with the Praxis validation
// tools and resources registered. The projectPath is the root directory of
// the project to validate.
func NewPraxisMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"praxis",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
