package domain

import (
	"sort"
	"strings"
	"time"
)

// Impact is the severity classification of a rule failure.
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactSerious  Impact = "serious"
	ImpactModerate Impact = "moderate"
	ImpactMinor    Impact = "minor"
	ImpactNone     Impact = "none"
)

// ImpactLevels lists the recognized severity buckets, most severe first.
var ImpactLevels = []Impact{ImpactCritical, ImpactSerious, ImpactModerate, ImpactMinor}

// Recognized reports whether the impact counts toward one of the four buckets.
func (i Impact) Recognized() bool {
	switch i {
	case ImpactCritical, ImpactSerious, ImpactModerate, ImpactMinor:
		return true
	}
	return false
}

// Rank orders impacts for sorting; unrecognized impacts sort last.
func (i Impact) Rank() int {
	for n, lvl := range ImpactLevels {
		if lvl == i {
			return n
		}
	}
	return len(ImpactLevels)
}

// UnknownBrowser labels results that were never tagged with a browser.
const UnknownBrowser = "unknown"

// AffectedNode is one DOM element a rule failed on.
type AffectedNode struct {
	Target         []string `json:"target"`
	FailureSummary string   `json:"failureSummary,omitempty"`
	HTML           string   `json:"html,omitempty"`
}

// Selector returns the target selector path for display and keying.
func (n AffectedNode) Selector() string {
	return strings.Join(n.Target, " ")
}

// ViolationItem is a single rule outcome reported by the audit engine.
type ViolationItem struct {
	ID          string         `json:"id"`
	Impact      Impact         `json:"impact"`
	Tags        []string       `json:"tags"`
	Description string         `json:"description"`
	Help        string         `json:"help,omitempty"`
	HelpURL     string         `json:"helpUrl,omitempty"`
	Nodes       []AffectedNode `json:"nodes"`
}

// Selectors returns every affected node's selector path, in order.
func (v ViolationItem) Selectors() []string {
	out := make([]string, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		out = append(out, n.Selector())
	}
	return out
}

// TestEngine identifies the rule engine that produced a result.
type TestEngine struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ScanResult is the audit outcome for one browser × site × page.
type ScanResult struct {
	SiteName     string          `json:"siteName"`
	PageName     string          `json:"pageName"`
	URL          string          `json:"url"`
	Browser      string          `json:"browser,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	TestEngine   TestEngine      `json:"testEngine"`
	Violations   []ViolationItem `json:"violations"`
	Passes       []ViolationItem `json:"passes,omitempty"`
	Incomplete   []ViolationItem `json:"incomplete,omitempty"`
	Inapplicable []ViolationItem `json:"inapplicable,omitempty"`
}

// BrowserRun is the persisted unit of the result store: everything one
// browser recorded in its most recent run.
type BrowserRun struct {
	Browser         string       `json:"browser"`
	RecordedAt      time.Time    `json:"recordedAt"`
	DurationSeconds float64      `json:"durationSeconds"`
	Results         []ScanResult `json:"results"`
}

// EnhancedViolation is a deduplicated violation annotated with where it was
// found and which browsers exhibited it.
type EnhancedViolation struct {
	ViolationItem
	SiteName string   `json:"siteName"`
	PageName string   `json:"pageName"`
	PageURL  string   `json:"pageUrl"`
	Browsers []string `json:"browsers"`
}

// BrowserLabel returns the browsers for display, or "unknown" when none were tagged.
func (v EnhancedViolation) BrowserLabel() string {
	if len(v.Browsers) == 0 {
		return UnknownBrowser
	}
	return strings.Join(v.Browsers, ", ")
}

// PagePath returns the path component of the page URL.
func (v EnhancedViolation) PagePath() string {
	return URLPath(v.PageURL)
}

// Summary holds the counters shared by per-site and global aggregates.
type Summary struct {
	TotalViolations    int            `json:"totalViolations"`
	CriticalViolations int            `json:"criticalViolations"`
	SeriousViolations  int            `json:"seriousViolations"`
	ModerateViolations int            `json:"moderateViolations"`
	MinorViolations    int            `json:"minorViolations"`
	UniqueRules        []string       `json:"uniqueRules"`
	UniquePages        []string       `json:"uniquePages"`
	WCAGBreakdown      map[string]int `json:"wcagBreakdown"`
	Browsers           []string       `json:"browsers"`
}

// CountFor returns the bucket counter for a recognized impact.
func (s Summary) CountFor(impact Impact) int {
	switch impact {
	case ImpactCritical:
		return s.CriticalViolations
	case ImpactSerious:
		return s.SeriousViolations
	case ImpactModerate:
		return s.ModerateViolations
	case ImpactMinor:
		return s.MinorViolations
	}
	return 0
}

// TagCount pairs a guideline tag with its frequency.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts returns the guideline breakdown sorted by count descending,
// ties broken alphabetically.
func (s Summary) TagCounts() []TagCount {
	out := make([]TagCount, 0, len(s.WCAGBreakdown))
	for tag, n := range s.WCAGBreakdown {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// SiteSummary aggregates one site's deduplicated violations.
type SiteSummary struct {
	Summary
	Violations []EnhancedViolation `json:"violations"`
}

// GlobalSummary aggregates every site.
type GlobalSummary struct {
	Summary
	Sites              []string   `json:"sites"`
	WCAGBreakdownArray []TagCount `json:"wcagBreakdownArray"`
}

// BrowserStats are the per-browser operational metrics computed from raw,
// non-deduplicated results.
type BrowserStats struct {
	Totals    map[string]int     `json:"totals"`
	Durations map[string]float64 `json:"durations,omitempty"`
	// MaxSingleBrowser is the legacy "unique violations" figure: the highest
	// single-browser total. The deduplicated global total is authoritative.
	MaxSingleBrowser int `json:"maxSingleBrowser"`
}

// Names returns the browsers with totals, sorted.
func (b BrowserStats) Names() []string {
	names := make([]string, 0, len(b.Totals))
	for name := range b.Totals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sum returns the non-deduplicated total across browsers.
func (b BrowserStats) Sum() int {
	total := 0
	for _, n := range b.Totals {
		total += n
	}
	return total
}

// RunEntry is one report generation recorded in history.
type RunEntry struct {
	Timestamp  string         `json:"timestamp"`
	RunID      string         `json:"run_id"`
	CommitHash string         `json:"commit_hash,omitempty"`
	Total      int            `json:"total"`
	Critical   int            `json:"critical"`
	Sites      int            `json:"sites"`
	Browsers   map[string]int `json:"browsers,omitempty"`
}
