package domain

import "context"

// ResultStore persists one BrowserRun per browser key. Writes overwrite;
// nothing is merged at write time.
type ResultStore interface {
	Write(key string, run BrowserRun) error
	ReadAll() ([]BrowserRun, error)
	Keys() ([]string, error)
	Delete(key string) error
}

// Auditor is the external audit capability: it prepares a site session and
// returns the rule engine's result for one loaded page.
type Auditor interface {
	Open(ctx context.Context, site Site) error
	Audit(ctx context.Context, site Site, page Page, tags []string) (ScanResult, error)
}

// EnvironmentLoader reads the site list for a named environment.
type EnvironmentLoader interface {
	Load(env string) (Environment, error)
}

// PageListReader reads a site's page list.
type PageListReader interface {
	Read(path string) ([]Page, error)
}

// ConfigLoader reads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// RunHistory stores report generations.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}

// CommitResolver returns the current source revision, if any.
type CommitResolver interface {
	CommitHash(projectPath string) (string, error)
}
