package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func TestImpactRank(t *testing.T) {
	assert.Less(t, domain.ImpactCritical.Rank(), domain.ImpactMinor.Rank())
	assert.Equal(t, len(domain.ImpactLevels), domain.ImpactNone.Rank())
	assert.True(t, domain.ImpactSerious.Recognized())
	assert.False(t, domain.Impact("").Recognized())
}

func TestSummaryTagCounts(t *testing.T) {
	s := domain.Summary{WCAGBreakdown: map[string]int{"wcag2aa": 1, "wcag2a": 4, "best-practice": 1}}
	assert.Equal(t, []domain.TagCount{
		{Tag: "wcag2a", Count: 4},
		{Tag: "best-practice", Count: 1},
		{Tag: "wcag2aa", Count: 1},
	}, s.TagCounts())
}

func TestEnhancedViolationLabels(t *testing.T) {
	v := domain.EnhancedViolation{PageURL: "https://acme.test/account/orders?x=1"}
	assert.Equal(t, domain.UnknownBrowser, v.BrowserLabel())
	assert.Equal(t, "/account/orders", v.PagePath())

	v.Browsers = []string{"chromium", "webkit"}
	assert.Equal(t, "chromium, webkit", v.BrowserLabel())
}

func TestIsGuidelineTag(t *testing.T) {
	assert.True(t, domain.IsGuidelineTag("wcag143"))
	assert.True(t, domain.IsGuidelineTag("best-practice"))
	assert.False(t, domain.IsGuidelineTag("cat.color"))
}
