package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// RenderRun renders the outcome of one browser's audit run.
func RenderRun(r domain.RunReport) string {
	var b strings.Builder

	header := titleStyle.Render(r.Browser) + "  " + dimStyle.Render(r.Environment)
	counts := fmt.Sprintf("%d violations · %d sites · %d pages", r.Violations, r.Sites, r.PagesAudited)
	b.WriteString(boxStyle.Render(header + "\n" + counts))
	b.WriteString("\n")

	if r.PagesFailed > 0 {
		fmt.Fprintf(&b, "\n  %s %s\n",
			errorTagStyle.Render("pages failed"),
			dimStyle.Render(fmt.Sprintf("(%d) see log for details", r.PagesFailed)))
	}

	if len(r.SiteErrors) > 0 {
		fmt.Fprintf(&b, "\n  %s %s\n",
			errorTagStyle.Render("Site errors"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(r.SiteErrors))))
		for _, se := range r.SiteErrors {
			fmt.Fprintf(&b, "    %s %s  %s\n", failStyle.Render("●"), se.Site, faintStyle.Render(se.Err.Error()))
		}
	}

	fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf("completed in %s", r.Duration.Round(100*time.Millisecond))))
	return b.String()
}
