package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	warmcp "github.com/ajitpratap0/warfeed/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  war_summary  totals, top planets, faction split, campaigns and attacks
  war_sectors  sectors of a war with their planets
  war_time     the war clock
  news_feed    latest news entries, newest first
  lookup_name  resolve a planet, faction or sector id

Upstream failures are returned as per-call tool errors.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			lang, err := language()
			if err != nil {
				return err
			}
			warID, err := resolveWarID()
			if err != nil {
				return err
			}

			srv := warmcp.NewServer(newClient(logger), names, warmcp.Defaults{
				WarID:      warID,
				Language:   lang,
				TopPlanets: cfg.API.TopPlanets,
			}, logger)

			// mcp-go takes a standard log.Logger for its own errors.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: warfeed MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
