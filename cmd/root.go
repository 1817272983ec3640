/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: both engines are plain subcommands - there is no shared store
// or service to initialise, so no PersistentPreRunE machinery is
// needed. Execute opens the audit log for the lifetime of the process
// and maps usage-class errors (bad root, missing prefixes) to exit
// code 2, everything else to 1.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/sitefix/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "sitefix",
	Short: "Fix root-absolute paths in a relocated static site",
	Long: `Rewrites root-absolute resource paths (href/src/action attributes and
CSS url() tokens) after moving a static site between a GitHub Pages
subpath and a custom domain root.

Use "pages" when moving onto a /<repo> subpath, "flatten" when moving
off one. Both support --dry-run previews and .bak sidecar backups.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

// usageError marks configuration errors that exit with code 2, matching
// conventional argument-parser behaviour.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// usageErrorf builds a usageError from a format string.
func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and exits 2 for usage
// errors or 1 for any other failure.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()
	if err != nil {
		log.Close()
		var ue usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.AddCommand(
		newPagesCmd(),
		newFlattenCmd(),
		newConfigCmd(),
		newHistoryCmd(),
		newGuideCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
}
