package aggregate

import "github.com/a11yaudit/a11yaudit/internal/domain"

// BrowserTotals counts, per browser, every violation it surfaced in the raw
// results. Nothing is deduplicated across browsers: a violation seen by three
// browsers counts once for each. Untagged results count under "unknown".
// Entries without affected nodes are not counted, matching Dedupe.
func BrowserTotals(results []domain.ScanResult) map[string]int {
	totals := make(map[string]int)
	for _, r := range results {
		browser := r.Browser
		if browser == "" {
			browser = domain.UnknownBrowser
		}
		if _, ok := totals[browser]; !ok {
			totals[browser] = 0
		}
		for _, v := range r.Violations {
			if v.Validate() == nil {
				totals[browser]++
			}
		}
	}
	return totals
}

// BrowserStatsFor builds the per-browser operational metrics for a merged
// set of runs.
func BrowserStatsFor(runs []domain.BrowserRun) domain.BrowserStats {
	var results []domain.ScanResult
	durations := make(map[string]float64)
	for _, run := range runs {
		results = append(results, run.Results...)
		if run.Browser != "" && run.DurationSeconds > 0 {
			durations[run.Browser] = run.DurationSeconds
		}
	}

	totals := BrowserTotals(results)
	for _, run := range runs {
		if _, ok := totals[run.Browser]; !ok && run.Browser != "" {
			totals[run.Browser] = 0
		}
	}
	maxSingle := 0
	for _, n := range totals {
		if n > maxSingle {
			maxSingle = n
		}
	}
	return domain.BrowserStats{
		Totals:           totals,
		Durations:        durations,
		MaxSingleBrowser: maxSingle,
	}
}
