package application_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/config"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/pagelist"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/replay"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

const fixtureDir = "../../testdata/project"

var globexCreds = map[string]string{
	"GLOBEX_USERNAME": "qa-bot",
	"GLOBEX_PASSWORD": "s3cret",
}

func lookup(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

type harness struct {
	out   string
	store *resultstore.Store
	logs  *bytes.Buffer
	audit *application.AuditService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logs := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(logs, nil))
	out := t.TempDir()
	store := resultstore.New(out, logger)

	audit := application.NewAuditService(
		config.NewEnvLoader(filepath.Join(fixtureDir, "env"), filepath.Join(fixtureDir, "tests", "data")),
		pagelist.New(),
		replay.New(filepath.Join(fixtureDir, "axe-results"), logger),
		application.NewCollectService(store, logger),
		domain.DefaultTags,
		logger,
	).WithEnvLookup(lookup(globexCreds))

	return &harness{out: out, store: store, logs: logs, audit: audit}
}
