package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/a11yaudit/a11yaudit/internal/application"
)

// NewA11yMCPServer creates an MCP server exposing the report generated in
// reportDir through read-only tools and resources.
func NewA11yMCPServer(query *application.QueryService, reportDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"a11yaudit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, query, reportDir)
	registerResources(s, query, reportDir)

	return s
}
