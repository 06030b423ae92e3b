package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// MetricsFile is the Prometheus textfile path relative to the output directory.
var MetricsFile = filepath.Join("data", "metrics.prom")

// Metrics writes the dataset's counters in Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
type Metrics struct{}

func (Metrics) Name() string { return "metrics" }

func (Metrics) Render(dir string, ds *domain.Dataset) (string, error) {
	registry := prometheus.NewRegistry()

	browserViolations := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "a11yaudit_browser_violations",
			Help: "Violations surfaced by each browser, not deduplicated across browsers",
		},
		[]string{"browser"},
	)
	browserDuration := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "a11yaudit_browser_run_duration_seconds",
			Help: "Duration of each browser's most recent recorded run",
		},
		[]string{"browser"},
	)
	siteViolations := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "a11yaudit_site_violations",
			Help: "Deduplicated violations per site and impact level",
		},
		[]string{"site", "impact"},
	)
	pagesScanned := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "a11yaudit_site_pages_scanned",
			Help: "Pages scanned per site",
		},
		[]string{"site"},
	)
	uniqueViolations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "a11yaudit_unique_violations",
		Help: "Deduplicated violations across every site and browser",
	})
	generated := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "a11yaudit_report_generated_timestamp_seconds",
		Help: "Unix time the report was generated",
	})

	collectors := []prometheus.Collector{
		browserViolations,
		browserDuration,
		siteViolations,
		pagesScanned,
		uniqueViolations,
		generated,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return "", err
		}
	}

	for browser, n := range ds.Browsers.Totals {
		browserViolations.WithLabelValues(browser).Set(float64(n))
	}
	for browser, secs := range ds.Browsers.Durations {
		browserDuration.WithLabelValues(browser).Set(secs)
	}
	for _, name := range ds.SiteNames() {
		s := ds.Sites[name]
		for _, impact := range domain.ImpactLevels {
			siteViolations.WithLabelValues(name, string(impact)).Set(float64(s.CountFor(impact)))
		}
		pagesScanned.WithLabelValues(name).Set(float64(ds.PagesScanned[name]))
	}
	uniqueViolations.Set(float64(ds.Global.TotalViolations))
	if !ds.GeneratedAt.IsZero() {
		generated.Set(float64(ds.GeneratedAt.Unix()))
	}

	path := filepath.Join(dir, MetricsFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return "", fmt.Errorf("writing metrics: %w", err)
	}
	return path, nil
}
