package tui_test

import (
	"errors"
	"testing"
	"time"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/tui"
	"github.com/a11yaudit/a11yaudit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleDataset() *domain.Dataset {
	acme := domain.SiteSummary{Summary: domain.Summary{
		TotalViolations:    4,
		CriticalViolations: 1,
		SeriousViolations:  2,
		MinorViolations:    1,
		UniqueRules:        []string{"image-alt", "label"},
	}}
	return &domain.Dataset{
		Title: "Storefront audit",
		Sites: map[string]domain.SiteSummary{"Acme": acme, "Globex": {}},
		Global: domain.GlobalSummary{
			Summary: acme.Summary,
			Sites:   []string{"Acme", "Globex"},
			WCAGBreakdownArray: []domain.TagCount{
				{Tag: "wcag2a", Count: 3},
				{Tag: "best-practice", Count: 1},
			},
		},
		Browsers: domain.BrowserStats{
			Totals:           map[string]int{"chromium": 4, "firefox": 3},
			Durations:        map[string]float64{"chromium": 12.5},
			MaxSingleBrowser: 4,
		},
		PagesScanned: map[string]int{"Acme": 3, "Globex": 2},
	}
}

func TestRenderSummary_ContainsTotals(t *testing.T) {
	output := tui.RenderSummary(sampleDataset())
	assert.Contains(t, output, "4 unique violations")
	assert.Contains(t, output, "2 sites · 5 pages · 2 rules")
}

func TestRenderSummary_ContainsSitesAndBrowsers(t *testing.T) {
	output := tui.RenderSummary(sampleDataset())
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "Globex")
	assert.Contains(t, output, "chromium")
	assert.Contains(t, output, "firefox")
	assert.Contains(t, output, "12.5s")
}

func TestRenderSummary_LabelsLegacyMetric(t *testing.T) {
	output := tui.RenderSummary(sampleDataset())
	assert.Contains(t, output, "legacy max single-browser total: 4")
}

func TestRenderSummary_ContainsGuidelineTags(t *testing.T) {
	output := tui.RenderSummary(sampleDataset())
	assert.Contains(t, output, "wcag2a")
	assert.Contains(t, output, "best-practice")
}

func TestRenderSummary_Empty(t *testing.T) {
	output := tui.RenderSummary(&domain.Dataset{})
	assert.Contains(t, output, "0 unique violations")
	assert.NotContains(t, output, "Violations per browser")
}

func TestRenderHistory(t *testing.T) {
	output := tui.RenderHistory([]domain.RunEntry{
		{Timestamp: "2026-03-01T10:00:00Z", CommitHash: "abcdef0123", Total: 20, Critical: 4},
		{Timestamp: "2026-03-02T10:00:00Z", Total: 12, Critical: 1},
	})
	assert.Contains(t, output, "2026-03-01")
	assert.Contains(t, output, "abcdef0")
	assert.Contains(t, output, "↓8")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No report history found.")
}

func TestRenderRun(t *testing.T) {
	output := tui.RenderRun(domain.RunReport{
		Browser:      "webkit",
		Environment:  "qa",
		Sites:        2,
		PagesAudited: 7,
		PagesFailed:  1,
		Violations:   9,
		Duration:     3 * time.Second,
		SiteErrors:   []*domain.SiteError{{Site: "Globex", Err: errors.New("login rejected")}},
	})
	assert.Contains(t, output, "webkit")
	assert.Contains(t, output, "9 violations · 2 sites · 7 pages")
	assert.Contains(t, output, "pages failed")
	assert.Contains(t, output, "Globex")
	assert.Contains(t, output, "login rejected")
}
