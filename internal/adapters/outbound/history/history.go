package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

const historyFile = "data/history.json"

// FileHistory implements domain.RunHistory using JSON file storage under the
// report output directory.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(outputDir string, entry domain.RunEntry) error {
	entries, err := h.Load(outputDir)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(outputDir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(outputDir string) ([]domain.RunEntry, error) {
	fp := filepath.Join(outputDir, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
