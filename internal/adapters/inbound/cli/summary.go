package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/history"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/report"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/tui"
	"github.com/a11yaudit/a11yaudit/internal/application"
)

func newSummaryCmd(g *globalOptions) *cobra.Command {
	var (
		outDir      string
		jsonOutput  bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary of the last generated report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			dir := outputDir(cfg, outDir)
			q := application.NewQueryService(report.NewSnapshotReader(), history.New())

			if showHistory {
				entries, err := q.History(dir)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			ds, err := q.Dataset(dir)
			if err != nil {
				return err
			}
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ds.Global)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(ds))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Report directory (default from project config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the global summary as JSON")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show report history")

	return cmd
}
