package aggregate

import (
	"strconv"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// leadIns are the boilerplate first lines of axe failure summaries.
var leadIns = []string{
	"Fix any of the following:",
	"Fix all of the following:",
	"Fix the following:",
}

// FixSuggestion derives a remediation hint from the first affected node's
// failure explanation, dropping the boilerplate lead-in and noisy lines.
func FixSuggestion(v domain.ViolationItem, noisy []string) string {
	if len(v.Nodes) == 0 {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(v.Nodes[0].FailureSummary, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isLeadIn(line) || isNoisy(line, noisy) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isLeadIn(line string) bool {
	for _, l := range leadIns {
		if strings.EqualFold(line, l) {
			return true
		}
	}
	return false
}

func isNoisy(line string, noisy []string) bool {
	for _, n := range noisy {
		if line == n {
			return true
		}
	}
	return false
}

// ElementSummary lists at most limit selectors, joined with ", ", followed by
// " ... (N more)" when the list was truncated.
func ElementSummary(selectors []string, limit int) string {
	if limit <= 0 || len(selectors) <= limit {
		return strings.Join(selectors, ", ")
	}
	return strings.Join(selectors[:limit], ", ") +
		" ... (" + strconv.Itoa(len(selectors)-limit) + " more)"
}
