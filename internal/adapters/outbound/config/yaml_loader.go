package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a11yaudit/a11yaudit/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".a11yaudit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .a11yaudit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .a11yaudit.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before filling defaults so typos in the raw input surface.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("%w: invalid %s: %v", domain.ErrConfig, FileName, err)
	}

	cfg = cfg.WithDefaults()
	if cfg.HTMLTemplate != "" && !filepath.IsAbs(cfg.HTMLTemplate) {
		cfg.HTMLTemplate = filepath.Join(projectPath, cfg.HTMLTemplate)
	}
	return cfg, nil
}
