package application

import (
	"fmt"
	"slices"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// QueryService answers questions about the last generated report by reading
// its snapshot. It backs the summary command, the HTTP API and the MCP tools.
type QueryService struct {
	snapshots domain.SnapshotReader
	history   domain.RunHistory
}

func NewQueryService(snapshots domain.SnapshotReader, history domain.RunHistory) *QueryService {
	return &QueryService{snapshots: snapshots, history: history}
}

// ViolationFilter narrows a site's violations. Empty fields match everything.
type ViolationFilter struct {
	Impact  string
	Browser string
	Tag     string
	Page    string
}

// Match reports whether v passes the filter.
func (f ViolationFilter) Match(v domain.EnhancedViolation) bool {
	if f.Impact != "" && !strings.EqualFold(string(v.Impact), f.Impact) {
		return false
	}
	if f.Browser != "" {
		browsers := v.Browsers
		if len(browsers) == 0 {
			browsers = []string{domain.UnknownBrowser}
		}
		if !slices.Contains(browsers, f.Browser) {
			return false
		}
	}
	if f.Tag != "" && !slices.Contains(v.Tags, f.Tag) {
		return false
	}
	if f.Page != "" && f.Page != v.PageName && f.Page != v.PagePath() {
		return false
	}
	return true
}

// Dataset loads the report snapshot from dir.
func (q *QueryService) Dataset(dir string) (*domain.Dataset, error) {
	ds, err := q.snapshots.Read(dir)
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}
	return ds, nil
}

// SiteViolations returns the violations of one site that pass the filter.
func (q *QueryService) SiteViolations(dir, site string, f ViolationFilter) ([]domain.EnhancedViolation, error) {
	ds, err := q.Dataset(dir)
	if err != nil {
		return nil, err
	}

	s, ok := ds.Sites[site]
	if !ok {
		for name, candidate := range ds.Sites {
			if strings.EqualFold(name, site) {
				s, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSiteNotFound, site)
	}

	out := make([]domain.EnhancedViolation, 0, len(s.Violations))
	for _, v := range s.Violations {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// History returns the recorded report generations, oldest first.
func (q *QueryService) History(dir string) ([]domain.RunEntry, error) {
	if q.history == nil {
		return nil, nil
	}
	return q.history.Load(dir)
}
