package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/config"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/pagelist"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/replay"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/tui"
	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func newRunCmd(g *globalOptions) *cobra.Command {
	var (
		opts   domain.RunOptions
		tags   string
		outDir string
		rawDir string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Audit the configured sites for one browser",
		Long: "Audit every page of the selected sites, one at a time, and record the " +
			"results for the browser. Captured rule-engine output is read from the raw directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			opts.Tags = domain.ParseTags(tags)
			if rawDir == "" {
				rawDir = cfg.RawDir
			}

			store := resultstore.New(outputDir(cfg, outDir), g.logger)
			svc := application.NewAuditService(
				config.NewEnvLoader(cfg.EnvDir, cfg.PagesDir),
				pagelist.New(),
				replay.New(rawDir, g.logger),
				application.NewCollectService(store, g.logger),
				cfg.Tags,
				g.logger,
			)

			report, err := svc.Run(cmd.Context(), opts)
			if err != nil && report.Sites == 0 {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(report))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Browser, "browser", "", "Browser the results are recorded for (required)")
	f.StringVar(&opts.Environment, "env", domain.DefaultEnvironment, "Environment file to load from the env directory")
	f.StringVar(&opts.TargetSite, "site", "", "Audit only this site")
	f.StringVar(&opts.SinglePagePath, "path", "", "Audit only this page path (requires --site)")
	f.StringVar(&tags, "tags", "", "Comma-separated guideline tags (default from project config)")
	f.BoolVar(&opts.BypassLoginAll, "bypass-login", false, "Skip login for every site")
	f.StringArrayVar(&opts.BypassLoginSites, "bypass-login-site", nil, "Skip login for this site (repeatable)")
	f.StringVar(&outDir, "out", "", "Report directory (default from project config)")
	f.StringVar(&rawDir, "raw", "", "Directory of captured rule-engine output (default from project config)")
	_ = cmd.MarkFlagRequired("browser")

	return cmd
}
