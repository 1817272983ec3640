/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// history.go implements the "sitefix history" command for viewing the
// audit log of past runs.
//
// Design: the log answers "when did I last rewrite this tree, and did
// it change anything?" after the terminal scrollback is gone. Output is
// newest first; -n bounds how far back to look.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/sitefix/internal/log"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recent sitefix runs",
		Long: `Display the audit log of recent sitefix runs, newest first.

Every pages and flatten run (CLI or MCP) is recorded with its root
directory, dry-run status and totals.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runHistory,
	}
	c.Flags().IntP("limit", "n", 20, "Limit number of runs shown")
	return c
}

func runHistory(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt("limit")
	if limit <= 0 {
		return PrintJSONError(fmt.Errorf("limit must be > 0, got %d", limit))
	}

	entries, err := log.Recent(limit)
	if err != nil {
		return PrintJSONError(fmt.Errorf("history: %w", err))
	}

	if JSON() {
		return PrintJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	for _, e := range entries {
		when := time.Unix(e.Start, 0).Format("2006-01-02 15:04:05")
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		mode := ""
		if e.DryRun {
			mode = " (dry-run)"
		}
		fmt.Fprintf(out, "%s  %-12s %-8s%s  files: %d  replacements: %d  %s\n",
			when, e.Source, status, mode, e.Files, e.Replacements, e.Root)
		if e.Error != "" {
			fmt.Fprintf(out, "           error: %s\n", e.Error)
		}
	}
	return nil
}
