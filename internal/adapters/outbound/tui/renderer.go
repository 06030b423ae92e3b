package tui

import (
	"fmt"
	"strings"

	"github.com/a11yaudit/a11yaudit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	impactColors = map[domain.Impact]lipgloss.Color{
		domain.ImpactCritical: danger,
		domain.ImpactSerious:  lipgloss.Color("#FB923C"), // orange
		domain.ImpactModerate: warning,
		domain.ImpactMinor:    info,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderSummary formats an aggregated report for terminal output.
func RenderSummary(ds *domain.Dataset) string {
	var b strings.Builder
	g := ds.Global

	// ── Header ──
	title := headerStyle.Render("a11yaudit")
	subtitle := dimStyle.Render(ds.Title)
	total := lipgloss.NewStyle().
		Bold(true).
		Foreground(totalColor(g.Summary)).
		Render(fmt.Sprintf("%d unique violations", g.TotalViolations))
	scope := dimStyle.Render(fmt.Sprintf("%d sites · %d pages · %d rules",
		len(ds.SiteNames()), ds.TotalPagesScanned(), len(g.UniqueRules)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + total + "\n" + scope))
	b.WriteString("\n\n")

	// ── Impact ──
	b.WriteString("  " + titleStyle.Render("Impact") + "\n")
	for _, impact := range domain.ImpactLevels {
		renderImpactLine(&b, impact, g.CountFor(impact), g.TotalViolations)
	}

	// ── Sites ──
	b.WriteString("\n  " + titleStyle.Render("Sites") + "\n")
	for _, name := range ds.SiteNames() {
		s := ds.Sites[name]
		icon := passStyle.Render("●")
		if s.CriticalViolations > 0 {
			icon = failStyle.Render("●")
		} else if s.TotalViolations > 0 {
			icon = lipgloss.NewStyle().Foreground(warning).Render("●")
		}
		detail := dimStyle.Render(fmt.Sprintf("%d pages  %d critical  %d serious",
			ds.PagesScanned[name], s.CriticalViolations, s.SeriousViolations))
		fmt.Fprintf(&b, "    %s %s %4d  %s\n", icon, nameStyle.Render(padRight(name, 28)), s.TotalViolations, detail)
	}

	// ── Browsers ──
	if len(ds.Browsers.Totals) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Violations per browser") + "\n")
		for _, name := range ds.Browsers.Names() {
			line := fmt.Sprintf("    %s %4d", padRight(name, 30), ds.Browsers.Totals[name])
			if d, ok := ds.Browsers.Durations[name]; ok && d > 0 {
				line += "  " + faintStyle.Render(fmt.Sprintf("%.1fs", d))
			}
			b.WriteString(line + "\n")
		}
		fmt.Fprintf(&b, "    %s\n", faintStyle.Render(fmt.Sprintf(
			"legacy max single-browser total: %d (not deduplicated)", ds.Browsers.MaxSingleBrowser)))
	}

	// ── Guidelines ──
	if tags := g.WCAGBreakdownArray; len(tags) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Top guideline tags") + "\n")
		for i, tc := range tags {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "    %s %4d\n", padRight(tc.Tag, 30), tc.Count)
		}
	}

	b.WriteString("\n  " + separatorLine + "\n")
	return b.String()
}

func renderImpactLine(b *strings.Builder, impact domain.Impact, n, total int) {
	label := lipgloss.NewStyle().Foreground(impactColor(impact)).Render(padRight(string(impact), 10))
	fmt.Fprintf(b, "    %s %s %4d\n", label, coloredBar(impact, n, total, 30), n)
}

func coloredBar(impact domain.Impact, n, total, width int) string {
	filled := 0
	if total > 0 {
		filled = max(0, min(n*width/total, width))
	}
	if n > 0 && filled == 0 {
		filled = 1
	}
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(impactColor(impact)).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func impactColor(impact domain.Impact) lipgloss.Color {
	if c, ok := impactColors[impact]; ok {
		return c
	}
	return fg
}

func totalColor(s domain.Summary) lipgloss.Color {
	switch {
	case s.TotalViolations == 0:
		return success
	case s.CriticalViolations > 0:
		return danger
	default:
		return warning
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats report history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No report history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Report History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			fmt.Sprintf("%4d total", e.Total),
			failStyle.Render(fmt.Sprintf("%3d critical", e.Critical)),
		)

		// Fewer violations is an improvement.
		if i > 0 {
			diff := e.Total - entries[i-1].Total
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
