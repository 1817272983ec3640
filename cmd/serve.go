/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// serve.go implements the "sitefix serve" command for MCP server
// operation.
//
// Unlike other commands that run and exit, serve blocks indefinitely
// handling MCP requests over stdio.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/sitefix/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM
integration. Exposes the pages and flatten engines as tools, dry-run by
default.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve()
}
