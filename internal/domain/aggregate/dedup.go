// Package aggregate merges per-browser scan results into deduplicated,
// per-site violation lists and derives summary statistics from them.
package aggregate

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// keySep separates dedup key fields; it cannot occur in selectors or URLs.
const keySep = "\x1f"

// DedupKey identifies "the same violation" across independent browser runs:
// site, rule, page URL and the ordered affected-node selectors.
func DedupKey(site string, v domain.ViolationItem, pageURL string) string {
	return strings.Join([]string{
		site,
		v.ID,
		pageURL,
		strings.Join(v.Selectors(), "|"),
	}, keySep)
}

// Dedupe groups results by site and collapses identical violations seen by
// several browsers into one EnhancedViolation whose Browsers is the sorted
// union. Output order within a site follows first occurrence in the input.
// Results without a browser tag still participate in key matching but add
// no browser. Violations that fail the structural contract are skipped.
func Dedupe(results []domain.ScanResult, logger *slog.Logger) map[string][]domain.EnhancedViolation {
	if logger == nil {
		logger = slog.Default()
	}

	out := make(map[string][]domain.EnhancedViolation)
	index := make(map[string]int) // dedup key -> position in out[site]
	browserSets := make(map[string]map[string]bool)

	for _, r := range results {
		if _, ok := out[r.SiteName]; !ok {
			out[r.SiteName] = []domain.EnhancedViolation{}
		}

		for _, v := range r.Violations {
			if err := v.Validate(); err != nil {
				logger.Warn("skipping malformed violation",
					"site", r.SiteName, "page", r.PageName, "browser", r.Browser, "error", err)
				continue
			}

			key := DedupKey(r.SiteName, v, r.URL)
			pos, seen := index[key]
			if !seen {
				out[r.SiteName] = append(out[r.SiteName], domain.EnhancedViolation{
					ViolationItem: v,
					SiteName:      r.SiteName,
					PageName:      r.PageName,
					PageURL:       r.URL,
				})
				pos = len(out[r.SiteName]) - 1
				index[key] = pos
				browserSets[key] = make(map[string]bool)
			}
			if r.Browser != "" {
				browserSets[key][r.Browser] = true
			}
		}
	}

	for key, set := range browserSets {
		site := strings.SplitN(key, keySep, 2)[0]
		out[site][index[key]].Browsers = sortedKeys(set)
	}
	return out
}

// Flatten returns every site's violations in site-name order.
func Flatten(perSite map[string][]domain.EnhancedViolation) []domain.EnhancedViolation {
	var all []domain.EnhancedViolation
	for _, site := range SiteNames(perSite) {
		all = append(all, perSite[site]...)
	}
	return all
}

// SiteNames returns the sites of a dedup result, sorted.
func SiteNames(perSite map[string][]domain.EnhancedViolation) []string {
	names := make([]string, 0, len(perSite))
	for name := range perSite {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
