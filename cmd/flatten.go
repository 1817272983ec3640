/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flatten.go implements the "sitefix flatten" command: stripping legacy
// repository prefixes after a move to a custom domain root.
//
// Design: unlike pages, missing configuration here exits with code 2
// (usageError) because flatten has no safe default - running it with no
// prefixes would silently do nothing, and running it against a mistyped
// root would scan the wrong tree.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/sitefix/internal/config"
	"github.com/jpl-au/sitefix/internal/flatten"
	"github.com/jpl-au/sitefix/internal/log"
	"github.com/jpl-au/sitefix/internal/walker"
)

func newFlattenCmd() *cobra.Command {
	var (
		root     string
		prefixes []string
		dryRun   bool
		noBackup bool
		showDiff bool
	)

	c := &cobra.Command{
		Use:   "flatten",
		Short: "Strip legacy repository prefixes for a custom domain",
		Long: `Replace one or more legacy path prefixes with "/" across the site's
text files, for deployments that moved from
https://username.github.io/REPO/ to a custom domain root.

Example fixes:
  /Cyb3Raya-Blog/CSS/style.css  -> /CSS/style.css
  /Cyb3Raya/HTML/blog.html      -> /HTML/blog.html

Prefixes apply in the order given; replacement is a literal
whole-text substitution, not scoped to attributes. Preview with
--dry-run --diff before applying.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return PrintJSONError(err)
			}

			if len(prefixes) == 0 {
				prefixes = cfg.Flatten.Prefixes
			}

			if root == "" {
				return usageErrorf("root directory is required (--root)")
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return usageErrorf("resolving root: %v", err)
			}
			if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
				return usageErrorf("root path does not exist or is not a directory: %s", absRoot)
			}
			if len(prefixes) == 0 {
				return usageErrorf("you must provide at least one --prefix to remove\nExample: --prefix \"/Cyb3Raya-Blog/\"")
			}

			exclude := cfg.Flatten.Exclude
			if len(exclude) == 0 {
				exclude = walker.DefaultExcludeDirs
			}

			opts := walker.Options{
				Extensions:  walker.DefaultTextExtensions,
				ExcludeDirs: exclude,
				Decode:      walker.Latin1Fallback,
				DryRun:      dryRun,
				Backup:      !noBackup && cfg.BackupEnabled(),
				OnChange: func(p string, count int, before, after string) {
					if JSON() {
						return
					}
					if dryRun {
						fmt.Fprintf(out, "Would change: %s (replacements: %d)\n", p, count)
						if showDiff {
							printDiff(out, p, before, after)
						}
					} else {
						fmt.Fprintf(out, "Changed: %s (replacements: %d)\n", p, count)
					}
				},
			}

			res, err := walker.Run(absRoot, flatten.New(prefixes), opts)

			log.Event("cli:flatten", "flatten").
				Root(absRoot).
				DryRun(dryRun).
				Files(res.Changed).
				Replacements(res.Replacements).
				Detail("prefixes", prefixes).
				Write(err)

			if err != nil {
				return PrintJSONError(err)
			}

			if !JSON() {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, "Summary")
				fmt.Fprintf(out, "Root: %s\n", absRoot)
				fmt.Fprintf(out, "Prefixes removed: %v\n", prefixes)
				fmt.Fprintf(out, "Files scanned: %d\n", res.Scanned)
				fmt.Fprintf(out, "Files skipped (non-text ext): %d\n", res.Skipped)
				fmt.Fprintf(out, "Files changed: %d\n", res.Changed)
				fmt.Fprintf(out, "Total replacements: %d\n", res.Replacements)
				if dryRun {
					fmt.Fprintln(out, "")
					fmt.Fprintln(out, "Dry-run mode: no files were modified.")
				}
			}
			return PrintJSON(res)
		},
	}

	c.Flags().StringVar(&root, "root", "", "Root directory of your site/project")
	c.Flags().StringArrayVar(&prefixes, "prefix", nil, "Bad prefix to remove (repeatable), e.g. /Cyb3Raya-Blog/")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change, but do not modify files")
	c.Flags().BoolVar(&noBackup, "no-backup", false, "Do not create .bak files (not recommended)")
	c.Flags().BoolVar(&showDiff, "diff", false, "With --dry-run, show a unified diff per file")

	return c
}
