package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/axejson"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/scanner"
	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

func newRecordCmd(g *globalOptions) *cobra.Command {
	var (
		browser  string
		outDir   string
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "record <results.json|dir>...",
		Short: "Record scan results produced elsewhere for one browser",
		Long: "Read rule-engine result files (one object or an array of objects each) " +
			"and store them as the browser's results, replacing what it recorded before. " +
			"Directories are searched for *.json files.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}

			files, err := scanner.New().Scan(args)
			if err != nil {
				return fmt.Errorf("finding result files: %w", err)
			}

			var results []domain.ScanResult
			for _, file := range files {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading %s: %w", file, err)
				}
				decoded, err := axejson.Decode(data, g.logger)
				if err != nil {
					return fmt.Errorf("decoding %s: %w", file, err)
				}
				results = append(results, decoded...)
			}

			store := resultstore.New(outputDir(cfg, outDir), g.logger)
			if err := application.NewCollectService(store, g.logger).Record(browser, results, duration); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d results for %s\n", len(results), browser)
			return nil
		},
	}

	cmd.Flags().StringVar(&browser, "browser", "", "Browser the results belong to (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "Report directory (default from project config)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Wall time of the browser run")
	_ = cmd.MarkFlagRequired("browser")

	return cmd
}
