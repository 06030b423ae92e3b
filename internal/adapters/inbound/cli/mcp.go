package cli

import (
	mcpadapter "github.com/a11yaudit/a11yaudit/internal/adapters/inbound/mcp"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/history"
	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/report"
	"github.com/a11yaudit/a11yaudit/internal/application"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the a11yaudit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globalOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the a11yaudit MCP server (stdio)",
		Long:  "Start the MCP server using stdio transport. This allows AI assistants to query the last generated report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			q := application.NewQueryService(report.NewSnapshotReader(), history.New())
			s := mcpadapter.NewA11yMCPServer(q, outputDir(cfg, outDir), version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Report directory (default from project config)")
	return cmd
}
