package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// registerTools registers the report query tools on the given server.
func registerTools(s *server.MCPServer, query *application.QueryService, reportDir string) {
	// 1. a11y_summary
	s.AddTool(
		mcplib.NewTool("a11y_summary",
			mcplib.WithDescription("Returns the deduplicated accessibility summary of the last generated report as JSON"),
		),
		handleSummary(query, reportDir),
	)

	// 2. a11y_site_violations
	s.AddTool(
		mcplib.NewTool("a11y_site_violations",
			mcplib.WithDescription("Lists the deduplicated violations of one site, optionally filtered"),
			mcplib.WithString("site",
				mcplib.Required(),
				mcplib.Description("Site name as configured in the environment file"),
			),
			mcplib.WithString("impact", mcplib.Description("Only this impact: critical, serious, moderate or minor")),
			mcplib.WithString("browser", mcplib.Description("Only violations observed in this browser")),
			mcplib.WithString("tag", mcplib.Description("Only violations carrying this guideline tag, e.g. wcag2aa")),
			mcplib.WithString("page", mcplib.Description("Only violations on this page name or path")),
		),
		handleSiteViolations(query, reportDir),
	)

	// 3. a11y_browser_totals
	s.AddTool(
		mcplib.NewTool("a11y_browser_totals",
			mcplib.WithDescription("Returns per-browser violation totals (not deduplicated) and run durations"),
		),
		handleBrowserTotals(query, reportDir),
	)
}

func handleSummary(query *application.QueryService, reportDir string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ds, err := query.Dataset(reportDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(summaryView(ds))
	}
}

func handleSiteViolations(query *application.QueryService, reportDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		site, err := request.RequireString("site")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		filter := application.ViolationFilter{
			Impact:  request.GetString("impact", ""),
			Browser: request.GetString("browser", ""),
			Tag:     request.GetString("tag", ""),
			Page:    request.GetString("page", ""),
		}
		violations, err := query.SiteViolations(reportDir, site, filter)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(violations)
	}
}

func handleBrowserTotals(query *application.QueryService, reportDir string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ds, err := query.Dataset(reportDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(ds.Browsers)
	}
}

// summaryView drops the per-site violation lists to keep responses small.
func summaryView(ds *domain.Dataset) map[string]any {
	sites := make(map[string]domain.Summary, len(ds.Sites))
	for name, s := range ds.Sites {
		sites[name] = s.Summary
	}
	return map[string]any{
		"title":        ds.Title,
		"generatedAt":  ds.GeneratedAt,
		"commit":       ds.Commit,
		"summary":      ds.Global,
		"sites":        sites,
		"pagesScanned": ds.TotalPagesScanned(),
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
