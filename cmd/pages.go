/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// pages.go implements the "sitefix pages" command: repo-prefix
// normalisation for a site served from a GitHub Pages subpath.
//
// Design: flag defaults cascade from config (pages.repo, pages.legacy,
// pages.extensions, backup) so a site checked out with a local
// .sitefix/config.yaml can run a bare "sitefix pages". Explicit flags
// always win.

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/sitefix/internal/config"
	"github.com/jpl-au/sitefix/internal/log"
	"github.com/jpl-au/sitefix/internal/pathfix"
	"github.com/jpl-au/sitefix/internal/rewrite"
	"github.com/jpl-au/sitefix/internal/walker"
)

func newPagesCmd() *cobra.Command {
	var (
		root     string
		repo     string
		ext      string
		legacy   string
		dryRun   bool
		noBackup bool
		showDiff bool
	)

	c := &cobra.Command{
		Use:   "pages",
		Short: "Normalise root-absolute paths to /<repo>/...",
		Long: `Normalise root-absolute paths in href/src/action attributes and CSS
url() tokens to the /<repo> prefix GitHub Pages serves the site under.

Also repairs two legacy mistakes: an old repository-name prefix
(/Cyb3Raya/...) is replaced with /<repo>/..., and an accidental double
prefix (/<repo>/Cyb3Raya/...) is collapsed. External URLs, fragments
and script/mail/phone URIs are never touched.

Changed files get a .bak sidecar unless --no-backup is given; an
existing sidecar is never overwritten.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return PrintJSONError(err)
			}

			if repo == "" {
				repo = cfg.Pages.Repo
			}
			if repo == "" {
				return PrintJSONError(fmt.Errorf("repo is required (--repo or pages.repo in config)"))
			}
			repo = strings.Trim(repo, "/")

			if legacy == "" {
				legacy = cfg.Pages.Legacy
			}
			if legacy == "" {
				legacy = pathfix.DefaultLegacy
			}

			exts := splitExtList(ext)
			if !c.Flags().Changed("ext") && len(cfg.Pages.Extensions) > 0 {
				exts = cfg.Pages.Extensions
			}

			absRoot, err := filepath.Abs(root)
			if err != nil {
				return PrintJSONError(fmt.Errorf("resolving root: %w", err))
			}

			opts := walker.Options{
				Extensions:  exts,
				Decode:      walker.SkipInvalid,
				DryRun:      dryRun,
				Backup:      !noBackup && cfg.BackupEnabled(),
				SkipBackups: true,
				OnChange: func(p string, count int, before, after string) {
					if JSON() {
						return
					}
					tag := "[updated]"
					if dryRun {
						tag = "[dry-run]"
					}
					fmt.Fprintf(out, "%s %s -> %d fixes\n", tag, p, count)
					if dryRun && showDiff {
						printDiff(out, p, before, after)
					}
				},
				OnSkip: func(p string) {
					if !JSON() {
						fmt.Fprintf(out, "[skip] non-utf8: %s\n", p)
					}
				},
			}

			fixer := pathfix.Fixer{Repo: repo, Legacy: strings.Trim(legacy, "/")}
			res, err := walker.Run(absRoot, rewrite.New(fixer), opts)

			log.Event("cli:pages", "rewrite").
				Root(absRoot).
				DryRun(dryRun).
				Files(res.Changed).
				Replacements(res.Replacements).
				Detail("repo", repo).
				Write(err)

			if err != nil {
				return PrintJSONError(err)
			}

			if !JSON() {
				fmt.Fprintf(out, "\nDone. Files changed: %d, total fixes: %d\n", res.Changed, res.Replacements)
				if dryRun {
					fmt.Fprintln(out, "Dry-run only: no files were modified.")
				}
			}
			return PrintJSON(res)
		},
	}

	c.Flags().StringVar(&root, "root", ".", "Project root directory")
	c.Flags().StringVar(&repo, "repo", "", "GitHub repo name, e.g. Cyb3Raya-Blog")
	c.Flags().StringVar(&ext, "ext", ".html,.css", "Comma-separated extensions to process")
	c.Flags().StringVar(&legacy, "legacy", "", "Legacy repository-name segment to strip/replace (default: Cyb3Raya)")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes only")
	c.Flags().BoolVar(&noBackup, "no-backup", false, "Disable .bak backups")
	c.Flags().BoolVar(&showDiff, "diff", false, "With --dry-run, show a unified diff per file")

	return c
}

// splitExtList parses a comma-separated extension list, dropping empty
// entries.
func splitExtList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
