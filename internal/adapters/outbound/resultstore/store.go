package resultstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

const (
	dirName    = "browser-results"
	fileSuffix = "-results.json"
)

var unsafeKey = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store is a file-based implementation of domain.ResultStore. Each browser
// owns one file under <root>/browser-results; writing replaces it.
type Store struct {
	root   string
	logger *slog.Logger
}

// New creates a store rooted at the report output directory.
func New(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: root, logger: logger}
}

// Dir returns the directory holding the per-browser files.
func (s *Store) Dir() string {
	return filepath.Join(s.root, dirName)
}

// Write replaces the stored run for key, creating directories as needed.
func (s *Store) Write(key string, run domain.BrowserRun) error {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return fmt.Errorf("creating result dir: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s results: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s results: %w", key, err)
	}
	return os.Rename(tmp, path)
}

// ReadAll loads every stored run in key order. Files that cannot be parsed
// are skipped with a warning so one corrupt browser does not block the report.
func (s *Store) ReadAll() ([]domain.BrowserRun, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}

	runs := make([]domain.BrowserRun, 0, len(keys))
	for _, key := range keys {
		path := s.path(key)
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable result file", "file", path, "error", err)
			continue
		}

		var run domain.BrowserRun
		if err := json.Unmarshal(data, &run); err != nil {
			s.logger.Warn("skipping corrupt result file", "file", path, "error", err)
			continue
		}
		if run.Browser == "" {
			run.Browser = key
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Keys lists the stored browser keys, sorted. A missing directory holds no keys.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing result dir: %w", err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileSuffix))
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the stored run for key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.Dir(), SanitizeKey(key)+fileSuffix)
}

// SanitizeKey maps a browser name onto a safe file-name stem.
func SanitizeKey(key string) string {
	key = unsafeKey.ReplaceAllString(strings.TrimSpace(key), "_")
	if key == "" || key == "." || key == ".." {
		return domain.UnknownBrowser
	}
	return key
}
