// Package mcp implements the Model Context Protocol server, exposing
// sitefix's rewrite engines to LLMs. An agent walking a human through a
// site migration can preview and apply path fixes through a
// standardised protocol instead of shelling out.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/sitefix/internal/version"
)

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other
// MCP clients.
//
// Design: both rewrite tools default to dry-run; the LLM must pass
// apply=true to modify files. An agent should always preview first, and
// defaulting to the safe mode means a forgotten parameter reports
// instead of rewrites.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := server.NewMCPServer(
		"sitefix",
		version.Short(),
		server.WithToolCapabilities(true),
	)

	registerTools(s)

	slog.Info("sitefix MCP server ready", "version", version.Short(), "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// registerTools exposes the rewrite engines and guide as MCP tools.
func registerTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("sitefix_pages",
			mcp.WithDescription("Normalise root-absolute paths to /<repo>/... for a site served from a GitHub Pages subpath. Dry-run unless apply=true."),
			mcp.WithString("root", mcp.Required(), mcp.Description("Site root directory to scan")),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Target repository name used to build the /<repo> prefix")),
			mcp.WithString("ext", mcp.Description("Comma-separated extension allow-list (default: .html,.css)")),
			mcp.WithString("legacy", mcp.Description("Legacy repository-name segment to strip/replace (default: Cyb3Raya)")),
			mcp.WithBoolean("apply", mcp.Description("If true, rewrite files; otherwise report only (default: false)")),
			mcp.WithBoolean("backup", mcp.Description("Write .bak sidecars before rewriting (default: true)")),
		),
		pagesTool,
	)

	s.AddTool(
		mcp.NewTool("sitefix_flatten",
			mcp.WithDescription("Strip legacy repository prefixes (replace /<prefix>/ with /) across a site's text files, for moves to a custom domain root. Dry-run unless apply=true."),
			mcp.WithString("root", mcp.Required(), mcp.Description("Site root directory to scan")),
			mcp.WithString("prefixes", mcp.Required(), mcp.Description("Comma-separated prefixes to strip, applied in order (e.g. /Cyb3Raya-Blog/,/Cyb3Raya/)")),
			mcp.WithBoolean("apply", mcp.Description("If true, rewrite files; otherwise report only (default: false)")),
			mcp.WithBoolean("backup", mcp.Description("Write .bak sidecars before rewriting (default: true)")),
		),
		flattenTool,
	)

	s.AddTool(
		mcp.NewTool("sitefix_guide",
			mcp.WithDescription("Read the sitefix usage guide"),
			mcp.WithString("topic", mcp.Description("Guide page: pages, flatten, or empty for the overview")),
		),
		guideTool,
	)
}
