package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// AuditService drives one browser's run: sites in order, pages in order, one
// page at a time. Page failures are logged and skipped; site failures are
// collected and returned together once every site was attempted.
type AuditService struct {
	envLoader   domain.EnvironmentLoader
	pages       domain.PageListReader
	auditor     domain.Auditor
	collector   *CollectService
	defaultTags []string
	logger      *slog.Logger
	lookupEnv   func(string) string
}

func NewAuditService(
	envLoader domain.EnvironmentLoader,
	pages domain.PageListReader,
	auditor domain.Auditor,
	collector *CollectService,
	defaultTags []string,
	logger *slog.Logger,
) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{
		envLoader:   envLoader,
		pages:       pages,
		auditor:     auditor,
		collector:   collector,
		defaultTags: defaultTags,
		logger:      logger,
		lookupEnv:   os.Getenv,
	}
}

// WithEnvLookup replaces the credential lookup, os.Getenv by default.
func (s *AuditService) WithEnvLookup(fn func(string) string) *AuditService {
	s.lookupEnv = fn
	return s
}

// Run audits the selected sites and records the results for opts.Browser.
// Configuration errors abort before any page is audited. The returned error
// is a *domain.SiteErrors when only individual sites failed.
func (s *AuditService) Run(ctx context.Context, opts domain.RunOptions) (domain.RunReport, error) {
	start := time.Now()
	report := domain.RunReport{Browser: opts.Browser, Environment: opts.Environment}
	if report.Environment == "" {
		report.Environment = domain.DefaultEnvironment
	}

	// 1. Validate options
	if err := opts.Validate(); err != nil {
		return report, err
	}

	// 2. Resolve sites
	env, err := s.envLoader.Load(report.Environment)
	if err != nil {
		return report, fmt.Errorf("loading environment: %w", err)
	}
	sites, err := env.SelectSites(opts.TargetSite, opts, s.lookupEnv)
	if err != nil {
		return report, err
	}
	report.Sites = len(sites)
	tags := opts.EffectiveTags(s.defaultTags)

	// 3. Audit sequentially
	var (
		results  []domain.ScanResult
		siteErrs domain.SiteErrors
		runErr   error
	)
	for _, site := range sites {
		if runErr = ctx.Err(); runErr != nil {
			break
		}
		siteResults, err := s.auditSite(ctx, site, opts.SinglePagePath, tags, &report)
		results = append(results, siteResults...)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				runErr = err
				break
			}
			s.logger.Error("site failed", "site", site.Name, "error", err)
			siteErrs.Add(site.Name, err)
		}
	}

	// 4. Record what was collected, even for a partial run
	report.Duration = time.Since(start)
	if err := s.collector.Record(opts.Browser, results, report.Duration); err != nil {
		return report, err
	}
	for _, r := range results {
		report.Violations += len(r.Violations)
	}
	report.SiteErrors = siteErrs.Errors

	if runErr != nil {
		return report, runErr
	}
	return report, siteErrs.ErrOrNil()
}

func (s *AuditService) auditSite(ctx context.Context, site domain.Site, singlePath string, tags []string, report *domain.RunReport) ([]domain.ScanResult, error) {
	pages, err := s.sitePages(site, singlePath)
	if err != nil {
		return nil, err
	}
	if err := s.auditor.Open(ctx, site); err != nil {
		return nil, err
	}

	var results []domain.ScanResult
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r, err := s.auditor.Audit(ctx, site, page, tags)
		if err == nil {
			err = r.Validate()
		}
		if err != nil {
			report.PagesFailed++
			s.logger.Error("page audit failed", "site", site.Name, "page", page.Name, "path", page.Path, "error", err)
			continue
		}

		valid, bad := r.ValidViolations()
		for _, e := range bad {
			s.logger.Warn("skipping malformed violation", "site", site.Name, "page", page.Name, "error", e)
		}
		r.Violations = valid
		results = append(results, r)
		report.PagesAudited++
		s.logger.Info("page audited", "site", site.Name, "page", page.Name, "violations", len(valid))
	}
	return results, nil
}

func (s *AuditService) sitePages(site domain.Site, singlePath string) ([]domain.Page, error) {
	if singlePath != "" {
		return []domain.Page{{Name: domain.PageNameFromPath(singlePath), Path: singlePath}}, nil
	}
	pages, err := s.pages.Read(site.PathsCSVFile)
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}
	return pages, nil
}
