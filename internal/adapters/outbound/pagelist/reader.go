package pagelist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// CSVReader implements domain.PageListReader for "name,path" files.
type CSVReader struct{}

// New creates a CSVReader.
func New() *CSVReader { return &CSVReader{} }

// Read parses a page list. The header row must name both columns; rows with a
// blank path are skipped and a blank name is derived from the path.
func (r *CSVReader) Read(path string) ([]domain.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page list: %w", err)
	}
	defer f.Close()

	pages, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading page list %s: %w", path, err)
	}
	return pages, nil
}

// Parse reads a page list from r.
func Parse(r io.Reader) ([]domain.Page, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	nameCol, pathCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			nameCol = i
		case "path":
			pathCol = i
		}
	}
	if nameCol < 0 || pathCol < 0 {
		return nil, fmt.Errorf("header must contain name and path columns, got %v", header)
	}

	var pages []domain.Page
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		p := domain.Page{Name: field(rec, nameCol), Path: field(rec, pathCol)}
		if p.Path == "" {
			continue
		}
		if p.Name == "" {
			p.Name = domain.PageNameFromPath(p.Path)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
