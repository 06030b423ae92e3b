package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/a11yaudit/a11yaudit/internal/domain"
	"github.com/a11yaudit/a11yaudit/internal/domain/aggregate"
)

const (
	SingleReportFile       = "report.html"
	MultiSiteReportFile    = "multi-site-report.html"
	MultiBrowserReportFile = "multi-browser-report.html"

	// VisibleElements is how many selectors a table row shows before "show more".
	VisibleElements = 3
)

//go:embed templates/report.html.tmpl
var defaultTemplate string

//go:embed templates/report.js
var filterScript string

//go:embed templates/report.css
var stylesheet string

// HTML renders the interactive, filterable report.
type HTML struct {
	// TemplatePath replaces the embedded template when set. A missing file
	// fails this renderer only.
	TemplatePath string
	// FileName overrides the name chosen from the browser and site counts.
	FileName   string
	NoisyLines []string
}

func (HTML) Name() string { return "html" }

// HTMLFileName picks the report name: report.html for one browser and one
// site, multi-site-report.html for one browser across sites, and
// multi-browser-report.html otherwise.
func HTMLFileName(ds *domain.Dataset) string {
	browsers := len(ds.Browsers.Totals)
	if browsers == 0 {
		browsers = len(ds.Global.Browsers)
	}
	switch {
	case browsers <= 1 && len(ds.Sites) <= 1:
		return SingleReportFile
	case browsers <= 1:
		return MultiSiteReportFile
	default:
		return MultiBrowserReportFile
	}
}

func (h HTML) Render(dir string, ds *domain.Dataset) (string, error) {
	tmpl, err := h.parse()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildView(ds, h.NoisyLines)); err != nil {
		return "", fmt.Errorf("executing html template: %w", err)
	}

	name := h.FileName
	if name == "" {
		name = HTMLFileName(ds)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

func (h HTML) parse() (*template.Template, error) {
	content := defaultTemplate
	if h.TemplatePath != "" {
		data, err := os.ReadFile(h.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("reading html template: %w", err)
		}
		content = string(data)
	}

	funcMap := sprig.FuncMap()
	funcMap["impactLabel"] = impactLabel
	funcMap["anchor"] = siteAnchor

	tmpl, err := template.New("report").Funcs(funcMap).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing html template: %w", err)
	}
	return tmpl, nil
}

var titleCaser = cases.Title(language.English)

func impactLabel(impact string) string {
	if impact == "" {
		return "Unknown"
	}
	return titleCaser.String(impact)
}

type htmlView struct {
	Title        string
	Dataset      *domain.Dataset
	PagesScanned int
	Filters      filterOptions
	Sites        []siteView
	Script       template.JS
	Style        template.CSS
}

type filterOptions struct {
	Sites    []string
	Browsers []string
	Pages    []string
	Impacts  []string
	Tags     []string
}

type siteView struct {
	Name         string
	PagesScanned int
	Summary      domain.SiteSummary
	Rows         []rowView
}

type rowView struct {
	Browsers    []string
	Page        string
	Path        string
	URL         string
	RuleID      string
	HelpURL     string
	Tags        []string
	Impact      string
	Description string
	Shown       []string
	Hidden      []string
	Fix         string
	Occurrences int
}

func buildView(ds *domain.Dataset, noisy []string) htmlView {
	v := htmlView{
		Title:        ds.Title,
		Dataset:      ds,
		PagesScanned: ds.TotalPagesScanned(),
		Script:       template.JS(filterScript),
		Style:        template.CSS(stylesheet),
	}
	if v.Title == "" {
		v.Title = domain.DefaultTitle
	}

	browsers := map[string]bool{}
	pages := map[string]bool{}
	tags := map[string]bool{}
	impacts := map[string]bool{}

	for _, name := range ds.SiteNames() {
		s := ds.Sites[name]
		sv := siteView{Name: name, PagesScanned: ds.PagesScanned[name], Summary: s}
		for _, ev := range s.Violations {
			row := rowView{
				Browsers:    ev.Browsers,
				Page:        ev.PageName,
				Path:        ev.PagePath(),
				URL:         ev.PageURL,
				RuleID:      ev.ID,
				HelpURL:     ev.HelpURL,
				Tags:        guidelineTags(ev.Tags),
				Impact:      string(ev.Impact),
				Description: ev.Description,
				Fix:         aggregate.FixSuggestion(ev.ViolationItem, noisy),
				Occurrences: len(ev.Nodes),
			}
			if len(row.Browsers) == 0 {
				row.Browsers = []string{domain.UnknownBrowser}
			}
			selectors := ev.Selectors()
			if len(selectors) > VisibleElements {
				row.Shown, row.Hidden = selectors[:VisibleElements], selectors[VisibleElements:]
			} else {
				row.Shown = selectors
			}

			for _, b := range row.Browsers {
				browsers[b] = true
			}
			for _, t := range row.Tags {
				tags[t] = true
			}
			pages[row.Page] = true
			impacts[row.Impact] = true
			sv.Rows = append(sv.Rows, row)
		}
		v.Sites = append(v.Sites, sv)
		v.Filters.Sites = append(v.Filters.Sites, name)
	}

	v.Filters.Browsers = sortedSet(browsers)
	v.Filters.Pages = sortedSet(pages)
	v.Filters.Tags = sortedSet(tags)
	for _, lvl := range domain.ImpactLevels {
		if impacts[string(lvl)] {
			v.Filters.Impacts = append(v.Filters.Impacts, string(lvl))
			delete(impacts, string(lvl))
		}
	}
	v.Filters.Impacts = append(v.Filters.Impacts, sortedSet(impacts)...)
	return v
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func siteAnchor(name string) string {
	return "site-" + strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
