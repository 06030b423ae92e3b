package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/config"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	project string
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "a11yaudit",
		Short: "Merge accessibility scans into one report",
		Long: "a11yaudit audits the pages of every configured site, merges the results " +
			"recorded for each browser, and renders HTML, CSV and JSON reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	cmd.PersistentFlags().StringVar(&g.project, "project", ".", "Project root containing "+config.FileName)
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd(g))
	cmd.AddCommand(newRecordCmd(g))
	cmd.AddCommand(newReportCmd(g))
	cmd.AddCommand(newSummaryCmd(g))
	cmd.AddCommand(newCleanCmd(g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newServeCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	cmd.AddCommand(newPublishCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI; an interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// load reads the project configuration and makes its directories absolute.
func (g *globalOptions) load() (domain.ProjectConfig, string, error) {
	root, err := filepath.Abs(g.project)
	if err != nil {
		return domain.ProjectConfig{}, "", err
	}
	cfg, err := config.New().Load(root)
	if err != nil {
		return domain.ProjectConfig{}, "", err
	}
	cfg.OutputDir = under(root, cfg.OutputDir)
	cfg.EnvDir = under(root, cfg.EnvDir)
	cfg.PagesDir = under(root, cfg.PagesDir)
	cfg.RawDir = under(root, cfg.RawDir)
	return cfg, root, nil
}

// outputDir returns override when set, else the configured output directory.
func outputDir(cfg domain.ProjectConfig, override string) string {
	if override != "" {
		return override
	}
	return cfg.OutputDir
}

func under(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
