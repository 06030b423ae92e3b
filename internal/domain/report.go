package domain

import (
	"context"
	"sort"
	"time"
)

// Dataset is the aggregated, read-only input every renderer consumes. Its JSON
// form is the structured snapshot written to data/report-data.json.
type Dataset struct {
	Title        string                 `json:"title"`
	GeneratedAt  time.Time              `json:"generatedAt"`
	RunID        string                 `json:"runId"`
	Commit       string                 `json:"commit,omitempty"`
	Sites        map[string]SiteSummary `json:"results"`
	Global       GlobalSummary          `json:"summary"`
	Browsers     BrowserStats           `json:"browsers"`
	PagesScanned map[string]int         `json:"pagesScanned"`
}

// SiteNames returns the site names in display order.
func (d *Dataset) SiteNames() []string {
	if len(d.Global.Sites) > 0 {
		return d.Global.Sites
	}
	names := make([]string, 0, len(d.Sites))
	for name := range d.Sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalPagesScanned sums the scanned-page counts of every site.
func (d *Dataset) TotalPagesScanned() int {
	total := 0
	for _, n := range d.PagesScanned {
		total += n
	}
	return total
}

// Violations returns every site's violations, sites in display order.
func (d *Dataset) Violations() []EnhancedViolation {
	var out []EnhancedViolation
	for _, name := range d.SiteNames() {
		out = append(out, d.Sites[name].Violations...)
	}
	return out
}

// ReportRenderer writes one output format from a dataset into dir and
// returns the path it wrote.
type ReportRenderer interface {
	Name() string
	Render(dir string, ds *Dataset) (string, error)
}

// SnapshotReader loads a previously written dataset from an output directory.
type SnapshotReader interface {
	Read(dir string) (*Dataset, error)
}

// Publisher uploads a generated report directory.
type Publisher interface {
	Publish(ctx context.Context, dir string) ([]string, error)
}

// RunReport describes one browser's audit run.
type RunReport struct {
	Browser      string        `json:"browser"`
	Environment  string        `json:"environment"`
	Sites        int           `json:"sites"`
	PagesAudited int           `json:"pagesAudited"`
	PagesFailed  int           `json:"pagesFailed"`
	Violations   int           `json:"violations"`
	Duration     time.Duration `json:"duration"`
	SiteErrors   []*SiteError  `json:"-"`
}
