// Package walker drives file processing for both rewrite engines: it
// enumerates candidate files under a root, feeds each file's text
// through a pluggable transform, and handles backups and rewriting.
//
// The engines themselves are pure text transforms; all I/O lives here.
// Files are processed one at a time with no cross-file state beyond the
// running totals in Result. File-system errors other than a decode
// failure propagate and terminate the run - the tool is operator-run,
// so a failed run is investigated and re-invoked rather than papered
// over.
package walker

import (
	"errors"
	"fmt"

	"github.com/jpl-au/sitefix/internal/progress"
)

// BackupSuffix is appended to a file's name to form its backup sidecar.
const BackupSuffix = ".bak"

// DefaultTextExtensions lists the file suffixes treated as text by the
// flatten engine. Anything else is skipped as presumed binary.
var DefaultTextExtensions = []string{
	".html", ".htm",
	".css",
	".js", ".mjs",
	".json", ".xml", ".txt",
	".md",
	".yml", ".yaml",
	".svg",
}

// DefaultExcludeDirs lists directory names never descended into.
var DefaultExcludeDirs = []string{
	".git", "node_modules", ".venv", "venv", "__pycache__", "dist", "build",
}

// Transformer produces updated text and a change count from input text.
// Implementations must be pure: same input, same output, no I/O.
type Transformer interface {
	Transform(text string) (string, int)
}

// DecodePolicy selects how a file that is not valid UTF-8 is handled.
type DecodePolicy int

const (
	// SkipInvalid reports the file and leaves it untouched.
	SkipInvalid DecodePolicy = iota
	// Latin1Fallback re-decodes the file as ISO-8859-1, trading
	// possible mojibake for forward progress. The rewritten file is
	// always written back as UTF-8.
	Latin1Fallback
)

// Options configures a walker run.
type Options struct {
	Extensions  []string     // file-name suffix allow-list; required
	ExcludeDirs []string     // directory names to prune from the walk
	Decode      DecodePolicy // non-UTF-8 handling
	DryRun      bool         // report only, write nothing
	Backup      bool         // write a .bak sidecar before rewriting
	SkipBackups bool         // do not reprocess *.bak files

	// OnChange is called after each changed file is handled (written,
	// or merely counted under DryRun) with the pre- and post-transform
	// text. Optional.
	OnChange func(path string, count int, before, after string)
	// OnSkip is called for each file skipped because it could not be
	// decoded. Optional.
	OnSkip func(path string)
}

// Result accumulates run totals across files.
type Result struct {
	Scanned      int `json:"scanned"`      // files read and transformed
	Skipped      int `json:"skipped"`      // files filtered out by extension
	Changed      int `json:"changed"`      // files with a nonzero change count
	Replacements int `json:"replacements"` // total replacements across files
}

// Run enumerates files under root and applies tr to each.
//
// Enumeration order is the lexical order of filepath.WalkDir. Each file
// transitions read -> (unchanged | changed-and-written |
// changed-but-dry-run-reported) before the next file is touched; a
// backup sidecar, when enabled, is written before the rewrite and an
// existing sidecar is never overwritten.
func Run(root string, tr Transformer, opts Options) (Result, error) {
	var result Result

	files, skipped, err := scan(root, opts)
	if err != nil {
		return result, err
	}
	result.Skipped = skipped

	prog := progress.New("Rewriting", len(files))
	defer prog.Done()

	for _, p := range files {
		prog.Increment()

		original, err := readText(p, opts.Decode)
		if err != nil {
			if errors.Is(err, ErrNotUTF8) {
				if opts.OnSkip != nil {
					opts.OnSkip(p)
				}
				prog.Print()
				continue
			}
			return result, fmt.Errorf("reading %s: %w", p, err)
		}
		result.Scanned++

		updated, count := tr.Transform(original)
		if count == 0 || updated == original {
			prog.Print()
			continue
		}

		result.Changed++
		result.Replacements += count

		if !opts.DryRun {
			if opts.Backup {
				if err := writeBackup(p, original); err != nil {
					return result, fmt.Errorf("backing up %s: %w", p, err)
				}
			}
			if err := writeText(p, updated); err != nil {
				return result, fmt.Errorf("writing %s: %w", p, err)
			}
		}

		if opts.OnChange != nil {
			opts.OnChange(p, count, original, updated)
		}
		prog.Print()
	}

	return result, nil
}
