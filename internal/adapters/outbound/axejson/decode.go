// Package axejson decodes raw rule-engine output into validated scan results.
package axejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

type rawNode struct {
	Target         []json.RawMessage `json:"target"`
	FailureSummary string            `json:"failureSummary"`
	HTML           string            `json:"html"`
}

type rawItem struct {
	ID          string    `json:"id"`
	Impact      *string   `json:"impact"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Help        string    `json:"help"`
	HelpURL     string    `json:"helpUrl"`
	Nodes       []rawNode `json:"nodes"`
}

type rawResult struct {
	SiteName     string            `json:"siteName"`
	PageName     string            `json:"pageName"`
	URL          string            `json:"url"`
	PageURL      string            `json:"pageUrl"`
	Browser      string            `json:"browser"`
	Timestamp    string            `json:"timestamp"`
	TestEngine   domain.TestEngine `json:"testEngine"`
	Violations   []rawItem         `json:"violations"`
	Passes       []rawItem         `json:"passes"`
	Incomplete   []rawItem         `json:"incomplete"`
	Inapplicable []rawItem         `json:"inapplicable"`
}

// Decode parses one result object or an array of them. Results missing their
// identifying fields are rejected; violation entries that break the contract
// are dropped and logged so the rest of the page survives.
func Decode(data []byte, logger *slog.Logger) ([]domain.ScanResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var raws []rawResult
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("%w: empty input", domain.ErrMalformedResult)
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResult, err)
		}
	default:
		var one rawResult
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResult, err)
		}
		raws = []rawResult{one}
	}

	results := make([]domain.ScanResult, 0, len(raws))
	for i, raw := range raws {
		r, err := convert(raw)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		valid, bad := r.ValidViolations()
		for _, e := range bad {
			logger.Warn("quarantined violation", "site", r.SiteName, "page", r.PageName, "error", e)
		}
		r.Violations = valid
		results = append(results, r)
	}
	return results, nil
}

func convert(raw rawResult) (domain.ScanResult, error) {
	r := domain.ScanResult{
		SiteName:   strings.TrimSpace(raw.SiteName),
		PageName:   strings.TrimSpace(raw.PageName),
		URL:        raw.URL,
		Browser:    strings.TrimSpace(raw.Browser),
		TestEngine: raw.TestEngine,
	}
	if r.URL == "" {
		r.URL = raw.PageURL
	}
	if raw.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
		if err != nil {
			return r, fmt.Errorf("%w: timestamp %q: %v", domain.ErrMalformedResult, raw.Timestamp, err)
		}
		r.Timestamp = ts
	}
	if err := r.Validate(); err != nil {
		return r, err
	}

	r.Violations = convertItems(raw.Violations)
	r.Passes = convertItems(raw.Passes)
	r.Incomplete = convertItems(raw.Incomplete)
	r.Inapplicable = convertItems(raw.Inapplicable)
	return r, nil
}

func convertItems(raws []rawItem) []domain.ViolationItem {
	if raws == nil {
		return nil
	}
	items := make([]domain.ViolationItem, 0, len(raws))
	for _, ri := range raws {
		item := domain.ViolationItem{
			ID:          ri.ID,
			Tags:        ri.Tags,
			Description: ri.Description,
			Help:        ri.Help,
			HelpURL:     ri.HelpURL,
		}
		if ri.Impact != nil {
			item.Impact = domain.Impact(*ri.Impact)
		}
		for _, rn := range ri.Nodes {
			item.Nodes = append(item.Nodes, domain.AffectedNode{
				Target:         targets(rn.Target),
				FailureSummary: rn.FailureSummary,
				HTML:           rn.HTML,
			})
		}
		items = append(items, item)
	}
	return items
}

// targets flattens axe selectors. Frame and shadow-root paths arrive as
// nested arrays and are joined with " >>> ".
func targets(raw []json.RawMessage) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		var s string
		if err := json.Unmarshal(t, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var path []string
		if err := json.Unmarshal(t, &path); err == nil && len(path) > 0 {
			out = append(out, strings.Join(path, " >>> "))
		}
	}
	return out
}
