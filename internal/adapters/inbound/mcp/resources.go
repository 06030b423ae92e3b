package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a11yaudit/a11yaudit/internal/application"
)

// registerResources registers the report resources on the given server.
func registerResources(s *server.MCPServer, query *application.QueryService, reportDir string) {
	// 1. a11y://summary - global summary of the last report
	s.AddResource(
		mcplib.NewResource(
			"a11y://summary",
			"Accessibility Summary",
			mcplib.WithResourceDescription("Deduplicated accessibility summary of the last generated report"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSummaryResource(query, reportDir),
	)

	// 2. a11y://sites/{site} - one site's summary and violations
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"a11y://sites/{site}",
			"Site Violations",
			mcplib.WithTemplateDescription("Deduplicated violations of one site"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleSiteResource(query, reportDir),
	)
}

func handleSummaryResource(query *application.QueryService, reportDir string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		ds, err := query.Dataset(reportDir)
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, summaryView(ds))
	}
}

func handleSiteResource(query *application.QueryService, reportDir string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		site := templateArg(request.Params.Arguments["site"])
		if site == "" {
			return nil, fmt.Errorf("site name is required")
		}

		violations, err := query.SiteViolations(reportDir, site, application.ViolationFilter{})
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, violations)
	}
}

// templateArg accepts both a plain string and the []string form URI
// template matching produces.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
