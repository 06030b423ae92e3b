// Package replay implements domain.Auditor over rule-engine output captured
// on disk, one JSON file per page.
package replay

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/axejson"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Auditor reads <root>/<site>/<page>.json for each audited page.
type Auditor struct {
	root   string
	logger *slog.Logger
}

// New creates a replay auditor rooted at the captured-results directory.
func New(root string, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{root: root, logger: logger}
}

// Open checks that captured output exists for the site.
func (a *Auditor) Open(ctx context.Context, site domain.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := a.siteDir(site)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening site session: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening site session: %s is not a directory", dir)
	}
	return nil
}

// Audit returns the captured result for page, keeping only rules that carry
// one of the selected tags.
func (a *Auditor) Audit(ctx context.Context, site domain.Site, page domain.Page, tags []string) (domain.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScanResult{}, err
	}

	pageURL, err := domain.ResolveURL(site.BaseURL, page.Path)
	if err != nil {
		return domain.ScanResult{}, err
	}

	path := a.PagePath(site, page)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("loading %s: %w", pageURL, err)
	}

	// Captured files may omit the injected identity fields.
	results, err := axejson.Decode(inject(data, site.Name, page.Name, pageURL), a.logger)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("auditing %s: %w", pageURL, err)
	}
	if len(results) != 1 {
		return domain.ScanResult{}, fmt.Errorf("auditing %s: expected one result, got %d", pageURL, len(results))
	}

	r := results[0]
	r.SiteName = site.Name
	r.PageName = page.Name
	r.URL = pageURL
	if len(tags) > 0 {
		r.Violations = filter(r.Violations, tags)
		r.Passes = filter(r.Passes, tags)
		r.Incomplete = filter(r.Incomplete, tags)
		r.Inapplicable = filter(r.Inapplicable, tags)
	}
	return r, nil
}

// PagePath returns the file a page's captured output is read from.
func (a *Auditor) PagePath(site domain.Site, page domain.Page) string {
	return filepath.Join(a.siteDir(site), Slug(page.Name)+".json")
}

func (a *Auditor) siteDir(site domain.Site) string {
	return filepath.Join(a.root, Slug(site.Name))
}

// Slug lowercases s and collapses every run of other characters to "-".
func Slug(s string) string {
	s = strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "index"
	}
	return s
}

func filter(items []domain.ViolationItem, tags []string) []domain.ViolationItem {
	if items == nil {
		return nil
	}
	out := make([]domain.ViolationItem, 0, len(items))
	for _, it := range items {
		if it.HasAnyTag(tags) {
			out = append(out, it)
		}
	}
	return out
}
