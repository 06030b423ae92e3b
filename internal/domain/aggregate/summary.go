package aggregate

import (
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// counter accumulates one Summary in a single pass.
type counter struct {
	s        domain.Summary
	rules    map[string]bool
	pages    map[string]bool
	browsers map[string]bool
}

func newCounter() *counter {
	return &counter{
		s:        domain.Summary{WCAGBreakdown: make(map[string]int)},
		rules:    make(map[string]bool),
		pages:    make(map[string]bool),
		browsers: make(map[string]bool),
	}
}

func (c *counter) add(v domain.EnhancedViolation) {
	c.s.TotalViolations++
	switch v.Impact {
	case domain.ImpactCritical:
		c.s.CriticalViolations++
	case domain.ImpactSerious:
		c.s.SeriousViolations++
	case domain.ImpactModerate:
		c.s.ModerateViolations++
	case domain.ImpactMinor:
		c.s.MinorViolations++
	}

	c.rules[v.ID] = true
	c.pages[v.PageURL] = true
	for _, b := range v.Browsers {
		c.browsers[b] = true
	}
	for _, tag := range v.Tags {
		if domain.IsGuidelineTag(tag) {
			c.s.WCAGBreakdown[tag]++
		}
	}
}

func (c *counter) summary() domain.Summary {
	s := c.s
	s.UniqueRules = sortedKeys(c.rules)
	s.UniquePages = sortedKeys(c.pages)
	s.Browsers = sortedKeys(c.browsers)
	return s
}

// SummarizeSite aggregates one site's deduplicated violations.
func SummarizeSite(violations []domain.EnhancedViolation) domain.SiteSummary {
	c := newCounter()
	for _, v := range violations {
		c.add(v)
	}
	if violations == nil {
		violations = []domain.EnhancedViolation{}
	}
	return domain.SiteSummary{Summary: c.summary(), Violations: violations}
}

// Summarize computes every site's summary and the global summary. The global
// counters are per-field sums of the site summaries, its sets are unions, and
// its guideline breakdown is the tag-wise sum of site breakdowns.
func Summarize(perSite map[string][]domain.EnhancedViolation) (map[string]domain.SiteSummary, domain.GlobalSummary) {
	sites := make(map[string]domain.SiteSummary, len(perSite))

	global := domain.Summary{WCAGBreakdown: make(map[string]int)}
	rules := make(map[string]bool)
	pages := make(map[string]bool)
	browsers := make(map[string]bool)

	names := SiteNames(perSite)
	for _, name := range names {
		ss := SummarizeSite(perSite[name])
		sites[name] = ss

		global.TotalViolations += ss.TotalViolations
		global.CriticalViolations += ss.CriticalViolations
		global.SeriousViolations += ss.SeriousViolations
		global.ModerateViolations += ss.ModerateViolations
		global.MinorViolations += ss.MinorViolations
		for tag, n := range ss.WCAGBreakdown {
			global.WCAGBreakdown[tag] += n
		}
		union(rules, ss.UniqueRules)
		union(pages, ss.UniquePages)
		union(browsers, ss.Browsers)
	}

	global.UniqueRules = sortedKeys(rules)
	global.UniquePages = sortedKeys(pages)
	global.Browsers = sortedKeys(browsers)

	return sites, domain.GlobalSummary{
		Summary:            global,
		Sites:              names,
		WCAGBreakdownArray: global.TagCounts(),
	}
}

func union(set map[string]bool, items []string) {
	for _, it := range items {
		set[it] = true
	}
}
