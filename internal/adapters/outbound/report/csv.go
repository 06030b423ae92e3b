package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
	"github.com/a11yaudit/a11yaudit/internal/domain/aggregate"
)

const (
	SummaryCSVFile    = "accessibility-summary.csv"
	ViolationsCSVFile = "accessibility-violations.csv"

	// MaxCSVElements is how many selectors the violations export lists per row.
	MaxCSVElements = 10
)

// quotedWriter writes CSV records with every field quoted and embedded quotes
// doubled. encoding/csv only quotes fields that need it.
type quotedWriter struct {
	w   *bufio.Writer
	err error
}

func newQuotedWriter(w io.Writer) *quotedWriter {
	return &quotedWriter{w: bufio.NewWriter(w)}
}

func (q *quotedWriter) Write(fields ...string) {
	if q.err != nil {
		return
	}
	for i, f := range fields {
		if i > 0 {
			q.w.WriteByte(',')
		}
		q.w.WriteByte('"')
		q.w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		q.w.WriteByte('"')
	}
	_, q.err = q.w.WriteString("\r\n")
}

func (q *quotedWriter) Flush() error {
	if q.err != nil {
		return q.err
	}
	return q.w.Flush()
}

func writeCSVFile(path string, fill func(*quotedWriter)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := newQuotedWriter(f)
	fill(w)
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// SummaryCSV writes one row per site plus a TOTALS row.
type SummaryCSV struct{}

func (SummaryCSV) Name() string { return "csv-summary" }

func (SummaryCSV) Render(dir string, ds *domain.Dataset) (string, error) {
	path := filepath.Join(dir, SummaryCSVFile)
	err := writeCSVFile(path, func(w *quotedWriter) {
		w.Write("Site", "Pages Scanned", "Total Violations", "Critical", "Serious",
			"Moderate", "Minor", "Unique Rules", "Browsers")
		for _, name := range ds.SiteNames() {
			s := ds.Sites[name]
			w.Write(summaryRow(name, ds.PagesScanned[name], s.Summary)...)
		}
		w.Write(summaryRow("TOTALS", ds.TotalPagesScanned(), ds.Global.Summary)...)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", SummaryCSVFile, err)
	}
	return path, nil
}

func summaryRow(label string, pages int, s domain.Summary) []string {
	return []string{
		label,
		strconv.Itoa(pages),
		strconv.Itoa(s.TotalViolations),
		strconv.Itoa(s.CriticalViolations),
		strconv.Itoa(s.SeriousViolations),
		strconv.Itoa(s.ModerateViolations),
		strconv.Itoa(s.MinorViolations),
		strconv.Itoa(len(s.UniqueRules)),
		strings.Join(s.Browsers, ", "),
	}
}

// ViolationsCSV writes one row per deduplicated violation.
type ViolationsCSV struct {
	NoisyLines []string
}

func (ViolationsCSV) Name() string { return "csv-violations" }

func (r ViolationsCSV) Render(dir string, ds *domain.Dataset) (string, error) {
	path := filepath.Join(dir, ViolationsCSVFile)
	err := writeCSVFile(path, func(w *quotedWriter) {
		w.Write("Site", "Page", "URL", "Browsers", "Rule ID", "Impact", "WCAG Tags",
			"Description", "Elements", "Fix Suggestion")
		for _, v := range ds.Violations() {
			w.Write(
				v.SiteName,
				v.PageName,
				v.PageURL,
				v.BrowserLabel(),
				v.ID,
				string(v.Impact),
				strings.Join(guidelineTags(v.Tags), ", "),
				v.Description,
				aggregate.ElementSummary(v.Selectors(), MaxCSVElements),
				aggregate.FixSuggestion(v.ViolationItem, r.NoisyLines),
			)
		}
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", ViolationsCSVFile, err)
	}
	return path, nil
}

func guidelineTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if domain.IsGuidelineTag(t) {
			out = append(out, t)
		}
	}
	return out
}
