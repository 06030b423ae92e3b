package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func TestViolationItemValidate(t *testing.T) {
	ok := domain.ViolationItem{ID: "image-alt", Nodes: []domain.AffectedNode{{Target: []string{"img"}}}}
	assert.NoError(t, ok.Validate())

	assert.ErrorIs(t, domain.ViolationItem{Nodes: ok.Nodes}.Validate(), domain.ErrMalformedResult)
	assert.ErrorIs(t, domain.ViolationItem{ID: "x"}.Validate(), domain.ErrMalformedResult)
	assert.ErrorIs(t, domain.ViolationItem{ID: "x", Nodes: []domain.AffectedNode{{}}}.Validate(), domain.ErrMalformedResult)
}

func TestScanResultValidate(t *testing.T) {
	assert.NoError(t, domain.ScanResult{SiteName: "Acme", URL: "https://acme.test/"}.Validate())
	assert.ErrorIs(t, domain.ScanResult{URL: "https://acme.test/"}.Validate(), domain.ErrMalformedResult)
	assert.ErrorIs(t, domain.ScanResult{SiteName: "Acme"}.Validate(), domain.ErrMalformedResult)
}

func TestValidViolations(t *testing.T) {
	r := domain.ScanResult{Violations: []domain.ViolationItem{
		{ID: "a", Nodes: []domain.AffectedNode{{Target: []string{"div"}}}},
		{ID: "b"},
	}}
	valid, errs := r.ValidViolations()
	require.Len(t, valid, 1)
	assert.Equal(t, "a", valid[0].ID)
	assert.Len(t, errs, 1)
}

func TestHasAnyTag(t *testing.T) {
	v := domain.ViolationItem{Tags: []string{"wcag2a", "cat.forms"}}
	assert.True(t, v.HasAnyTag([]string{"best-practice", "wcag2a"}))
	assert.False(t, v.HasAnyTag([]string{"wcag21aa"}))
}

func TestSiteErrors(t *testing.T) {
	var errs domain.SiteErrors
	assert.NoError(t, errs.ErrOrNil())

	errs.Add("Acme", domain.ErrNoSites)
	errs.Add("Globex", assert.AnError)

	err := errs.ErrOrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 site(s) failed")
	assert.ErrorIs(t, err, assert.AnError)

	var se *domain.SiteError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Acme", se.Site)
}
