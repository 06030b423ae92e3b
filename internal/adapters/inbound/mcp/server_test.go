package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/a11yaudit/a11yaudit/internal/adapters/inbound/mcp"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/report"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func reportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := resultstore.New(dir, nil)

	result := domain.ScanResult{SiteName: "Acme", PageName: "Home", URL: "https://acme.test/",
		Violations: []domain.ViolationItem{
			{ID: "image-alt", Impact: domain.ImpactCritical, Nodes: []domain.AffectedNode{{Target: []string{"img"}}}},
			{ID: "color-contrast", Impact: domain.ImpactSerious, Nodes: []domain.AffectedNode{{Target: []string{"p"}}}},
		}}
	require.NoError(t, application.NewCollectService(store, nil).Record("webkit", []domain.ScanResult{result}, 0))

	svc := application.NewReportService(store, []domain.ReportRenderer{report.Snapshot{}}, nil, nil, nil)
	_, err := svc.Generate(application.ReportOptions{OutputDir: dir})
	require.NoError(t, err)
	return dir
}

func newServer(t *testing.T) *server.MCPServer {
	t.Helper()
	q := application.NewQueryService(report.NewSnapshotReader(), nil)
	return mcpadapter.NewA11yMCPServer(q, reportDir(t), "test")
}

// call sends one JSON-RPC request and returns the encoded response.
func call(t *testing.T, s *server.MCPServer, method string, params map[string]any) string {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp, err := json.Marshal(s.HandleMessage(context.Background(), msg))
	require.NoError(t, err)
	return string(resp)
}

func TestNewA11yMCPServer(t *testing.T) {
	q := application.NewQueryService(report.NewSnapshotReader(), nil)
	s := mcpadapter.NewA11yMCPServer(q, t.TempDir(), "test")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	q := application.NewQueryService(report.NewSnapshotReader(), nil)
	s := mcpadapter.NewA11yMCPServer(q, t.TempDir(), "test")

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"a11y_summary",
		"a11y_site_violations",
		"a11y_browser_totals",
	}
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestSummaryTool(t *testing.T) {
	out := call(t, newServer(t), "tools/call", map[string]any{"name": "a11y_summary"})
	assert.Contains(t, out, `totalViolations`)
	assert.Contains(t, out, `Acme`)
	assert.NotContains(t, out, `"isError":true`)
}

func TestSiteViolationsTool_Filters(t *testing.T) {
	s := newServer(t)

	out := call(t, s, "tools/call", map[string]any{
		"name":      "a11y_site_violations",
		"arguments": map[string]any{"site": "acme", "impact": "serious"},
	})
	assert.Contains(t, out, "color-contrast")
	assert.NotContains(t, out, "image-alt")
}

func TestSiteViolationsTool_UnknownSite(t *testing.T) {
	out := call(t, newServer(t), "tools/call", map[string]any{
		"name":      "a11y_site_violations",
		"arguments": map[string]any{"site": "Umbrella"},
	})
	assert.Contains(t, out, `"isError":true`)
	assert.Contains(t, out, "site not found")
}

func TestBrowserTotalsTool(t *testing.T) {
	out := call(t, newServer(t), "tools/call", map[string]any{"name": "a11y_browser_totals"})
	assert.Contains(t, out, "webkit")
	assert.Contains(t, out, "maxSingleBrowser")
}

func TestSummaryResource(t *testing.T) {
	out := call(t, newServer(t), "resources/read", map[string]any{"uri": "a11y://summary"})
	assert.Contains(t, out, "a11y://summary")
	assert.Contains(t, out, "criticalViolations")
}
