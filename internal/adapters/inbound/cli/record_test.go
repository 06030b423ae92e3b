package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

const recorded = `[
  {
    "siteName": "Acme",
    "pageName": "Home",
    "url": "https://acme.test/",
    "timestamp": "2026-10-18T09:30:00Z",
    "violations": [
      {"id": "image-alt", "impact": "critical", "tags": ["wcag2a"], "nodes": [{"target": ["img"]}]}
    ]
  }
]`

func TestRecordCmd(t *testing.T) {
	out := t.TempDir()
	file := filepath.Join(t.TempDir(), "webkit.json")
	require.NoError(t, os.WriteFile(file, []byte(recorded), 0644))

	stdout, err := execute(t, "record", "--project", fixtureDir, "--out", out, "--browser", "webkit", "--duration", "90s", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Recorded 1 results for webkit")

	runs, err := resultstore.New(out, nil).ReadAll()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "webkit", runs[0].Results[0].Browser)
	assert.InDelta(t, 90.0, runs[0].DurationSeconds, 0.001)
}

func TestRecordCmd_Directory(t *testing.T) {
	out := t.TempDir()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acme"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme", "home.json"), []byte(recorded), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme", "about.json"),
		[]byte(`{"siteName": "Acme", "pageName": "About", "url": "https://acme.test/about", "violations": []}`), 0644))

	stdout, err := execute(t, "record", "--project", fixtureDir, "--out", out, "--browser", "chromium", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Recorded 2 results for chromium")
}

func TestRecordCmd_RejectsResultWithoutSite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"pageName": "orphan", "url": "https://acme.test/"}`), 0644))

	_, err := execute(t, "record", "--project", fixtureDir, "--out", t.TempDir(), "--browser", "webkit", file)
	assert.ErrorIs(t, err, domain.ErrMalformedResult)
}

func TestRecordCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "record", "--project", fixtureDir, "--out", t.TempDir(), "--browser", "webkit", "nope.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCleanCmd(t *testing.T) {
	out := t.TempDir()
	for _, browser := range []string{"chromium", "webkit"} {
		_, err := execute(t, "run", "--project", fixtureDir, "--out", out, "--browser", browser, "--site", "Acme")
		require.NoError(t, err)
	}

	stdout, err := execute(t, "clean", "--project", fixtureDir, "--out", out, "webkit")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed webkit results")

	keys, err := resultstore.New(out, nil).Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"chromium"}, keys)

	_, err = execute(t, "clean", "--project", fixtureDir, "--out", out)
	require.NoError(t, err)
	keys, err = resultstore.New(out, nil).Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPublishCmd_RequiresBucket(t *testing.T) {
	t.Setenv("A11YAUDIT_S3_ENDPOINT", "")
	t.Setenv("A11YAUDIT_S3_BUCKET", "")

	_, err := execute(t, "publish", "--project", fixtureDir, "--out", t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint and a bucket")
}

func TestVersionCmd(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "a11yaudit dev")
}
