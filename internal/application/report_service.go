package application

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/a11yaudit/a11yaudit/internal/domain"
	"github.com/a11yaudit/a11yaudit/internal/domain/aggregate"
)

// ReportService orchestrates report generation:
// load every browser's results → dedupe → summarize → render each format.
type ReportService struct {
	store     domain.ResultStore
	renderers []domain.ReportRenderer
	history   domain.RunHistory
	commits   domain.CommitResolver
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

func NewReportService(
	store domain.ResultStore,
	renderers []domain.ReportRenderer,
	history domain.RunHistory,
	commits domain.CommitResolver,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:     store,
		renderers: renderers,
		history:   history,
		commits:   commits,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ReportOptions controls one generation.
type ReportOptions struct {
	OutputDir   string
	ProjectPath string
	Title       string
}

// ReportOutcome lists what a generation produced. Renderer failures are
// collected in Errors; they never abort the other renderers.
type ReportOutcome struct {
	Dataset *domain.Dataset
	Files   []string
	Errors  []error
}

// LoadAll returns every stored run and their results flattened in run order.
// Results without the identifying fields are dropped with a warning.
func (s *ReportService) LoadAll() ([]domain.ScanResult, []domain.BrowserRun, error) {
	runs, err := s.store.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading stored results: %w", err)
	}

	var results []domain.ScanResult
	for _, run := range runs {
		for _, r := range run.Results {
			if err := r.Validate(); err != nil {
				s.logger.Warn("skipping malformed result", "browser", run.Browser, "error", err)
				continue
			}
			results = append(results, r)
		}
	}
	return results, runs, nil
}

// Build aggregates the stored results into a dataset without writing anything.
func (s *ReportService) Build(opts ReportOptions) (*domain.Dataset, error) {
	results, runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	sites, global := aggregate.Summarize(aggregate.Dedupe(results, s.logger))
	ds := &domain.Dataset{
		Title:        opts.Title,
		GeneratedAt:  s.now().UTC(),
		RunID:        s.newID(),
		Sites:        sites,
		Global:       global,
		Browsers:     aggregate.BrowserStatsFor(runs),
		PagesScanned: pagesScanned(results),
	}
	if ds.Title == "" {
		ds.Title = domain.DefaultTitle
	}
	if s.commits != nil && opts.ProjectPath != "" {
		ds.Commit, _ = s.commits.CommitHash(opts.ProjectPath) // best-effort
	}
	return ds, nil
}

// Generate builds the dataset and runs every renderer against it.
func (s *ReportService) Generate(opts ReportOptions) (*ReportOutcome, error) {
	ds, err := s.Build(opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	out := &ReportOutcome{Dataset: ds}
	for _, r := range s.renderers {
		path, err := r.Render(opts.OutputDir, ds)
		if err != nil {
			s.logger.Error("renderer failed", "renderer", r.Name(), "error", err)
			out.Errors = append(out.Errors, fmt.Errorf("%s: %w", r.Name(), err))
			continue
		}
		s.logger.Debug("rendered", "renderer", r.Name(), "file", path)
		out.Files = append(out.Files, path)
	}

	if s.history != nil {
		entry := domain.RunEntry{
			Timestamp:  ds.GeneratedAt.Format(time.RFC3339),
			RunID:      ds.RunID,
			CommitHash: ds.Commit,
			Total:      ds.Global.TotalViolations,
			Critical:   ds.Global.CriticalViolations,
			Sites:      len(ds.Sites),
			Browsers:   ds.Browsers.Totals,
		}
		if err := s.history.Save(opts.OutputDir, entry); err != nil {
			s.logger.Warn("saving report history", "error", err)
		}
	}
	return out, nil
}

// Clean deletes the stored results of the named browsers, or of every
// browser when none are named. It returns the keys removed.
func (s *ReportService) Clean(browsers ...string) ([]string, error) {
	keys := browsers
	if len(keys) == 0 {
		var err error
		if keys, err = s.store.Keys(); err != nil {
			return nil, err
		}
	}

	removed := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := s.store.Delete(k); err != nil {
			return removed, fmt.Errorf("deleting %s results: %w", k, err)
		}
		removed = append(removed, k)
	}
	return removed, nil
}

func pagesScanned(results []domain.ScanResult) map[string]int {
	seen := make(map[string]map[string]bool)
	for _, r := range results {
		if seen[r.SiteName] == nil {
			seen[r.SiteName] = make(map[string]bool)
		}
		seen[r.SiteName][r.URL] = true
	}
	out := make(map[string]int, len(seen))
	for site, urls := range seen {
		out[site] = len(urls)
	}
	return out
}
