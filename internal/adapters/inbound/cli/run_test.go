package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func TestRunCmd_SingleSite(t *testing.T) {
	out := t.TempDir()

	stdout, err := execute(t, "run", "--project", fixtureDir, "--out", out, "--browser", "chromium", "--site", "Acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "5 violations · 1 sites · 2 pages")
	assert.Contains(t, stdout, "pages failed")
	assert.FileExists(t, filepath.Join(out, "browser-results", "chromium-results.json"))
}

func TestRunCmd_SiteErrorsFailTheCommand(t *testing.T) {
	t.Setenv("GLOBEX_USERNAME", "qa-bot")
	t.Setenv("GLOBEX_PASSWORD", "s3cret")
	out := t.TempDir()

	stdout, err := execute(t, "run", "--project", fixtureDir, "--out", out, "--browser", "firefox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Initech")
	assert.Contains(t, stdout, "Site errors")
	assert.FileExists(t, filepath.Join(out, "browser-results", "firefox-results.json"))
}

func TestRunCmd_PathRequiresSite(t *testing.T) {
	_, err := execute(t, "run", "--project", fixtureDir, "--out", t.TempDir(), "--browser", "chromium", "--path", "/")
	assert.ErrorIs(t, err, domain.ErrPathWithoutSite)
}

func TestRunCmd_BrowserIsRequired(t *testing.T) {
	_, err := execute(t, "run", "--project", fixtureDir)
	assert.Error(t, err)
}

func TestReportCmd_EndToEnd(t *testing.T) {
	out := t.TempDir()
	for _, browser := range []string{"chromium", "firefox"} {
		_, err := execute(t, "run", "--project", fixtureDir, "--out", out, "--browser", browser, "--site", "Acme")
		require.NoError(t, err)
	}

	stdout, err := execute(t, "report", "--project", fixtureDir, "--out", out, "--title", "Acme QA")
	require.NoError(t, err)
	assert.Contains(t, stdout, "5 unique violations")
	assert.Contains(t, stdout, "multi-browser-report.html")

	for _, f := range []string{
		"multi-browser-report.html",
		"accessibility-summary.csv",
		"accessibility-violations.csv",
		filepath.Join("data", "report-data.json"),
		filepath.Join("data", "metrics.prom"),
	} {
		assert.FileExists(t, filepath.Join(out, f))
	}

	stdout, err = execute(t, "summary", "--project", fixtureDir, "--out", out, "--json")
	require.NoError(t, err)
	var global domain.GlobalSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &global))
	assert.Equal(t, 5, global.TotalViolations)
	assert.Equal(t, []string{"chromium", "firefox"}, global.Browsers)

	stdout, err = execute(t, "summary", "--project", fixtureDir, "--out", out, "--history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report History")
}

func TestReportCmd_EmptyStoreProducesZeroReport(t *testing.T) {
	out := t.TempDir()

	_, err := execute(t, "report", "--project", fixtureDir, "--out", out, "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "accessibility-summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"TOTALS"`)
}

func TestReportCmd_MissingTemplateFailsButWritesTheRest(t *testing.T) {
	out := t.TempDir()

	_, err := execute(t, "report", "--project", fixtureDir, "--out", out, "--template", filepath.Join(out, "nope.tmpl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 5 renderers failed")
	assert.FileExists(t, filepath.Join(out, "accessibility-summary.csv"))
}

func TestSummaryCmd_NoReport(t *testing.T) {
	_, err := execute(t, "summary", "--project", fixtureDir, "--out", t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
