package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/gitinfo"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/history"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/report"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/tui"
	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func newReportCmd(g *globalOptions) *cobra.Command {
	var (
		outDir   string
		title    string
		template string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Merge every browser's results and render the reports",
		Long: "Deduplicate the results recorded for all browsers and write the HTML report, " +
			"the summary and violations CSVs, the JSON snapshot and a metrics textfile.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := g.load()
			if err != nil {
				return err
			}
			dir := outputDir(cfg, outDir)
			if title == "" {
				title = cfg.Title
			}
			if template == "" {
				template = cfg.HTMLTemplate
			}

			renderers := []domain.ReportRenderer{
				report.HTML{TemplatePath: template, NoisyLines: cfg.NoisyLines},
				report.SummaryCSV{},
				report.ViolationsCSV{NoisyLines: cfg.NoisyLines},
				report.Snapshot{},
				report.Metrics{},
			}
			svc := application.NewReportService(
				resultstore.New(dir, g.logger),
				renderers,
				history.New(),
				gitinfo.New(),
				g.logger,
			)

			out, err := svc.Generate(application.ReportOptions{OutputDir: dir, ProjectPath: root, Title: title})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprint(w, tui.RenderSummary(out.Dataset))
			}
			for _, f := range out.Files {
				fmt.Fprintf(w, "wrote %s\n", f)
			}
			if len(out.Errors) > 0 {
				return fmt.Errorf("%d of %d renderers failed: %w", len(out.Errors), len(renderers), errors.Join(out.Errors...))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Report directory (default from project config)")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().StringVar(&template, "template", "", "Custom HTML template file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only list the written files")

	return cmd
}
