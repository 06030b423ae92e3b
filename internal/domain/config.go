package domain

import (
	"fmt"
	"strings"
)

// DefaultTags is the guideline-tag selection used when none is given.
var DefaultTags = []string{"wcag2a", "wcag2aa", "wcag21a", "wcag21aa", "best-practice"}

// GuidelinePrefixes are the tag prefixes counted in the guideline breakdown.
var GuidelinePrefixes = []string{"wcag", "best-practice"}

// IsGuidelineTag reports whether a tag belongs in the guideline breakdown.
func IsGuidelineTag(tag string) bool {
	for _, p := range GuidelinePrefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

// DefaultNoisyLines are failure-explanation lines stripped from fix suggestions.
var DefaultNoisyLines = []string{
	"Element has no title attribute",
	`Element's default semantics were not overridden with role="none" or role="presentation"`,
}

const (
	DefaultOutputDir   = "accessibility-reports"
	DefaultEnvDir      = "env"
	DefaultPagesDir    = "tests/data"
	DefaultRawDir      = "axe-results"
	DefaultEnvironment = "qa"
	DefaultTitle       = "Accessibility Audit Report"
)

// ProjectConfig holds project-level settings loaded from .a11yaudit.yaml.
type ProjectConfig struct {
	OutputDir    string   `yaml:"output_dir"    json:"output_dir,omitempty"`
	Tags         []string `yaml:"tags"          json:"tags,omitempty"`
	EnvDir       string   `yaml:"env_dir"       json:"env_dir,omitempty"`
	PagesDir     string   `yaml:"pages_dir"     json:"pages_dir,omitempty"`
	RawDir       string   `yaml:"raw_dir"       json:"raw_dir,omitempty"`
	HTMLTemplate string   `yaml:"html_template" json:"html_template,omitempty"`
	Title        string   `yaml:"title"         json:"title,omitempty"`
	NoisyLines   []string `yaml:"noisy_lines"   json:"noisy_lines,omitempty"`
}

// DefaultConfig returns the settings used when no project file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		OutputDir:  DefaultOutputDir,
		Tags:       append([]string(nil), DefaultTags...),
		EnvDir:     DefaultEnvDir,
		PagesDir:   DefaultPagesDir,
		RawDir:     DefaultRawDir,
		Title:      DefaultTitle,
		NoisyLines: append([]string(nil), DefaultNoisyLines...),
	}
}

// WithDefaults fills every unset field from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if len(c.Tags) == 0 {
		c.Tags = d.Tags
	}
	if c.EnvDir == "" {
		c.EnvDir = d.EnvDir
	}
	if c.PagesDir == "" {
		c.PagesDir = d.PagesDir
	}
	if c.RawDir == "" {
		c.RawDir = d.RawDir
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.NoisyLines == nil {
		c.NoisyLines = d.NoisyLines
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. tags must be non-blank and free of separators
	for i, t := range c.Tags {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("tags[%d] must not be empty", i)
		}
		if strings.ContainsAny(t, ", ") {
			return fmt.Errorf("tags[%d] = %q must be a single tag", i, t)
		}
	}

	// 2. output_dir must not point at the filesystem root
	if strings.TrimSpace(c.OutputDir) == "/" {
		return fmt.Errorf("output_dir must not be the filesystem root")
	}

	// 3. noisy_lines entries must be non-blank
	for i, l := range c.NoisyLines {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("noisy_lines[%d] must not be empty", i)
		}
	}

	return nil
}

// Site is one audited application.
type Site struct {
	Name          string `yaml:"name"           json:"name"`
	BaseURL       string `yaml:"base_url"       json:"baseUrl"`
	LoginURL      string `yaml:"login_url"      json:"loginUrl,omitempty"`
	PathsCSVFile  string `yaml:"paths_csv_file" json:"pathsCsvFile"`
	RequiresLogin bool   `yaml:"-"              json:"requiresLogin"`
	Username      string `yaml:"username"       json:"-"`
	Password      string `yaml:"password"       json:"-"`
}

// Environment is the parsed contents of one environment file.
type Environment struct {
	Name  string `yaml:"-"     json:"name"`
	Sites []Site `yaml:"sites" json:"sites"`
}

// RunOptions is the recognized configuration surface for an audit run.
type RunOptions struct {
	Browser          string
	Environment      string
	TargetSite       string
	SinglePagePath   string
	Tags             []string
	BypassLoginAll   bool
	BypassLoginSites []string
}

// Validate rejects invalid option combinations before any work starts.
func (o RunOptions) Validate() error {
	if o.SinglePagePath != "" && o.TargetSite == "" {
		return ErrPathWithoutSite
	}
	if strings.TrimSpace(o.Browser) == "" {
		return fmt.Errorf("%w: browser name is required", ErrConfig)
	}
	return nil
}

// BypassLogin reports whether login is skipped for the named site.
func (o RunOptions) BypassLogin(site string) bool {
	if o.BypassLoginAll {
		return true
	}
	for _, s := range o.BypassLoginSites {
		if strings.EqualFold(s, site) {
			return true
		}
	}
	return false
}

// EffectiveTags returns the run's tag selection, falling back to fallback.
func (o RunOptions) EffectiveTags(fallback []string) []string {
	if len(o.Tags) > 0 {
		return o.Tags
	}
	if len(fallback) > 0 {
		return fallback
	}
	return DefaultTags
}

// ParseTags splits a comma-separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// EnvPrefix returns the environment-variable prefix for a site, e.g. "ACME_PORTAL".
func (s Site) EnvPrefix() string {
	return strings.ToUpper(strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(s.Name))
}

// Resolve applies the login rules to a configured site: login is required when
// a login URL is set and not bypassed, and then credentials must be present.
// Blank credentials are looked up as <PREFIX>_USERNAME / <PREFIX>_PASSWORD.
func (s Site) Resolve(bypassLogin bool, lookupEnv func(string) string) (Site, error) {
	if s.Name == "" {
		return s, fmt.Errorf("%w: site with empty name", ErrConfig)
	}
	if s.BaseURL == "" || s.PathsCSVFile == "" {
		return s, fmt.Errorf("%w: missing configuration for site %s", ErrConfig, s.Name)
	}

	s.RequiresLogin = !bypassLogin && s.LoginURL != ""
	if !s.RequiresLogin {
		return s, nil
	}

	if s.Username == "" && lookupEnv != nil {
		s.Username = lookupEnv(s.EnvPrefix() + "_USERNAME")
	}
	if s.Password == "" && lookupEnv != nil {
		s.Password = lookupEnv(s.EnvPrefix() + "_PASSWORD")
	}
	if s.Username == "" || s.Password == "" {
		return s, fmt.Errorf("%w: missing login configuration for site %s", ErrConfig, s.Name)
	}
	return s, nil
}

// SelectSites resolves the environment's sites, narrowed to target when set.
func (e Environment) SelectSites(target string, opts RunOptions, lookupEnv func(string) string) ([]Site, error) {
	var sites []Site
	for _, s := range e.Sites {
		if target != "" && !strings.EqualFold(s.Name, target) {
			continue
		}
		resolved, err := s.Resolve(opts.BypassLogin(s.Name), lookupEnv)
		if err != nil {
			return nil, err
		}
		sites = append(sites, resolved)
	}
	if len(sites) == 0 {
		return nil, ErrNoSites
	}
	return sites, nil
}
