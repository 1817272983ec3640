// tools.go implements the MCP tool handlers for the rewrite engines.
//
// Handlers capture the per-file report lines in a buffer and return
// them with the run totals, so the LLM sees the same output a human
// operator would. Parameter extraction is permissive: optional
// parameters fall back to defaults rather than failing the tool call,
// because LLMs frequently omit optionals.

package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/sitefix/guide"
	"github.com/jpl-au/sitefix/internal/flatten"
	"github.com/jpl-au/sitefix/internal/log"
	"github.com/jpl-au/sitefix/internal/pathfix"
	"github.com/jpl-au/sitefix/internal/rewrite"
	"github.com/jpl-au/sitefix/internal/walker"
)

// pagesTool handles sitefix_pages tool calls.
func pagesTool(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError("root is required"), nil //nolint:nilerr
	}
	repo, err := req.RequireString("repo")
	if err != nil {
		return mcp.NewToolResultError("repo is required"), nil //nolint:nilerr
	}
	repo = strings.Trim(repo, "/")

	fixer := pathfix.New(repo)
	if legacy := getString(req, "legacy", ""); legacy != "" {
		fixer.Legacy = strings.Trim(legacy, "/")
	}

	exts := splitList(getString(req, "ext", ".html,.css"))
	dryRun := !getBool(req, "apply", false)

	var report strings.Builder
	opts := walker.Options{
		Extensions:  exts,
		Decode:      walker.SkipInvalid,
		DryRun:      dryRun,
		Backup:      getBool(req, "backup", true),
		SkipBackups: true,
		OnChange: func(path string, count int, _, _ string) {
			fmt.Fprintf(&report, "%s -> %d fixes\n", path, count)
		},
		OnSkip: func(path string) {
			fmt.Fprintf(&report, "[skip] non-utf8: %s\n", path)
		},
	}

	res, err := runEngine(root, rewrite.New(fixer), opts)

	log.Event("mcp:pages", "rewrite").
		Root(root).
		DryRun(dryRun).
		Files(res.Changed).
		Replacements(res.Replacements).
		Detail("repo", repo).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultText(&report, res, dryRun), nil
}

// flattenTool handles sitefix_flatten tool calls.
func flattenTool(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError("root is required"), nil //nolint:nilerr
	}
	prefixes := splitList(getString(req, "prefixes", ""))
	if len(prefixes) == 0 {
		return mcp.NewToolResultError("prefixes is required"), nil
	}

	dryRun := !getBool(req, "apply", false)

	var report strings.Builder
	opts := walker.Options{
		Extensions:  walker.DefaultTextExtensions,
		ExcludeDirs: walker.DefaultExcludeDirs,
		Decode:      walker.Latin1Fallback,
		DryRun:      dryRun,
		Backup:      getBool(req, "backup", true),
		OnChange: func(path string, count int, _, _ string) {
			fmt.Fprintf(&report, "%s (replacements: %d)\n", path, count)
		},
	}

	res, err := runEngine(root, flatten.New(prefixes), opts)

	log.Event("mcp:flatten", "flatten").
		Root(root).
		DryRun(dryRun).
		Files(res.Changed).
		Replacements(res.Replacements).
		Detail("prefixes", prefixes).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultText(&report, res, dryRun), nil
}

// guideTool handles sitefix_guide tool calls.
func guideTool(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "guide").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return mcp.NewToolResultError(fmt.Sprintf("guide %q not found. Available: %s", topic, strings.Join(topics, ", "))), nil
	}
	return mcp.NewToolResultText(content), nil
}

// runEngine validates the root and runs the walker.
func runEngine(root string, tr walker.Transformer, opts walker.Options) (walker.Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return walker.Result{}, fmt.Errorf("root %s: %w", root, err)
	}
	if !info.IsDir() {
		return walker.Result{}, fmt.Errorf("root %s: not a directory", root)
	}
	return walker.Run(root, tr, opts)
}

// resultText assembles the per-file report and totals for the LLM.
func resultText(report *strings.Builder, res walker.Result, dryRun bool) *mcp.CallToolResult {
	mode := "changed"
	if dryRun {
		mode = "would change (dry-run; pass apply=true to write)"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"%sFiles scanned: %d, files %s: %d, total replacements: %d",
		report.String(), res.Scanned, mode, res.Changed, res.Replacements,
	))
}

// getString extracts a string parameter, returning def if the parameter
// is missing or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map.
// JSON booleans decode as Go bool values, so a type assertion suffices.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
