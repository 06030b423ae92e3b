package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func TestAuditService_Run(t *testing.T) {
	h := newHarness(t)

	report, err := h.audit.Run(context.Background(), domain.RunOptions{Browser: "chromium"})

	var siteErrs *domain.SiteErrors
	require.ErrorAs(t, err, &siteErrs)
	require.Len(t, siteErrs.Errors, 1)
	assert.Equal(t, "Initech", siteErrs.Errors[0].Site)

	assert.Equal(t, 3, report.Sites)
	assert.Equal(t, 3, report.PagesAudited)
	assert.Equal(t, 1, report.PagesFailed)
	assert.Equal(t, 6, report.Violations)
	assert.Equal(t, "qa", report.Environment)

	runs, err := h.store.ReadAll()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "chromium", runs[0].Browser)
	require.Len(t, runs[0].Results, 3)
	for _, r := range runs[0].Results {
		assert.Equal(t, "chromium", r.Browser)
	}

	assert.Contains(t, h.logs.String(), "page audit failed")
	assert.Contains(t, h.logs.String(), "quarantined violation")
}

func TestAuditService_SingleSiteAndPath(t *testing.T) {
	h := newHarness(t)

	report, err := h.audit.Run(context.Background(), domain.RunOptions{
		Browser:        "firefox",
		TargetSite:     "acme",
		SinglePagePath: "/account/order-history",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sites)
	assert.Equal(t, 1, report.PagesAudited)
	assert.Equal(t, 2, report.Violations)

	runs, err := h.store.ReadAll()
	require.NoError(t, err)
	require.Len(t, runs[0].Results, 1)
	assert.Equal(t, "Order History", runs[0].Results[0].PageName)
	assert.Equal(t, "https://qa.acme.test/account/order-history", runs[0].Results[0].URL)
}

func TestAuditService_TagSelection(t *testing.T) {
	h := newHarness(t)

	report, err := h.audit.Run(context.Background(), domain.RunOptions{
		Browser:    "webkit",
		TargetSite: "Acme",
		Tags:       []string{"wcag2aa"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Violations)
}

func TestAuditService_PathWithoutSiteIsFatal(t *testing.T) {
	h := newHarness(t)

	_, err := h.audit.Run(context.Background(), domain.RunOptions{Browser: "chromium", SinglePagePath: "/"})
	assert.ErrorIs(t, err, domain.ErrPathWithoutSite)

	keys, err := h.store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys, "nothing is recorded when configuration is invalid")
}

func TestAuditService_MissingCredentialsIsFatal(t *testing.T) {
	h := newHarness(t)
	h.audit.WithEnvLookup(lookup(nil))

	_, err := h.audit.Run(context.Background(), domain.RunOptions{Browser: "chromium"})
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "missing login configuration for site Globex")

	var siteErrs *domain.SiteErrors
	assert.False(t, errors.As(err, &siteErrs))
}

func TestAuditService_BypassLogin(t *testing.T) {
	h := newHarness(t)
	h.audit.WithEnvLookup(lookup(nil))

	report, err := h.audit.Run(context.Background(), domain.RunOptions{
		Browser:          "chromium",
		TargetSite:       "Globex",
		BypassLoginSites: []string{"Globex"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Violations)
}

func TestAuditService_UnknownSite(t *testing.T) {
	h := newHarness(t)

	_, err := h.audit.Run(context.Background(), domain.RunOptions{Browser: "chromium", TargetSite: "Umbrella"})
	assert.ErrorIs(t, err, domain.ErrNoSites)
}

func TestAuditService_UnknownEnvironment(t *testing.T) {
	h := newHarness(t)

	_, err := h.audit.Run(context.Background(), domain.RunOptions{Browser: "chromium", Environment: "prod"})
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestAuditService_CancelledContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.audit.Run(ctx, domain.RunOptions{Browser: "chromium", TargetSite: "Acme"})
	assert.ErrorIs(t, err, context.Canceled)
}
