package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
	"gopkg.in/yaml.v3"
)

// EnvLoader implements domain.EnvironmentLoader by reading <dir>/<env>.yaml.
// Relative page-list paths are resolved against pagesDir.
type EnvLoader struct {
	dir      string
	pagesDir string
}

// NewEnvLoader creates an EnvLoader for the given environment and page-list directories.
func NewEnvLoader(dir, pagesDir string) *EnvLoader {
	return &EnvLoader{dir: dir, pagesDir: pagesDir}
}

// Load reads the site list for env. A missing file is a configuration error.
func (l *EnvLoader) Load(env string) (domain.Environment, error) {
	if env == "" {
		env = domain.DefaultEnvironment
	}
	if strings.ContainsAny(env, `/\`) {
		return domain.Environment{}, fmt.Errorf("%w: invalid environment name %q", domain.ErrConfig, env)
	}

	path := filepath.Join(l.dir, env+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Environment{}, fmt.Errorf("%w: environment file %s not found", domain.ErrConfig, path)
		}
		return domain.Environment{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var parsed domain.Environment
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return domain.Environment{}, fmt.Errorf("%w: parsing %s: %v", domain.ErrConfig, path, err)
	}
	parsed.Name = env

	for i, s := range parsed.Sites {
		if s.PathsCSVFile != "" && !filepath.IsAbs(s.PathsCSVFile) && l.pagesDir != "" {
			parsed.Sites[i].PathsCSVFile = filepath.Join(l.pagesDir, s.PathsCSVFile)
		}
	}
	return parsed, nil
}
