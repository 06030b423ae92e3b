package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/resultstore"
	"github.com/a11yaudit/a11yaudit/internal/application"
)

func newCleanCmd(g *globalOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "clean [browser...]",
		Short: "Delete recorded browser results",
		Long:  "Delete the results recorded for the named browsers, or for every browser when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			store := resultstore.New(outputDir(cfg, outDir), g.logger)
			removed, err := application.NewReportService(store, nil, nil, nil, g.logger).Clean(args...)
			for _, k := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s results\n", k)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Report directory (default from project config)")
	return cmd
}
