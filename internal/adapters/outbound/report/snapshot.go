package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// SnapshotFile is the structured snapshot path relative to the output directory.
var SnapshotFile = filepath.Join("data", "report-data.json")

// Snapshot writes the dataset verbatim as JSON.
type Snapshot struct{}

func (Snapshot) Name() string { return "snapshot" }

func (Snapshot) Render(dir string, ds *domain.Dataset) (string, error) {
	path := filepath.Join(dir, SnapshotFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	return path, f.Close()
}

// SnapshotReader implements domain.SnapshotReader.
type SnapshotReader struct{}

func NewSnapshotReader() *SnapshotReader { return &SnapshotReader{} }

// Read loads data/report-data.json from dir.
func (SnapshotReader) Read(dir string) (*domain.Dataset, error) {
	path := filepath.Join(dir, SnapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &ds, nil
}
