// walker_scan.go implements candidate-file enumeration for walker runs.
//
// Separated from walker.go to isolate the directory traversal and
// filtering rules from the per-file processing loop. filepath.WalkDir
// visits entries in lexical order, which gives deterministic output
// across runs.

package walker

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// scan returns the candidate files under root in lexical order, along
// with the number of files skipped by the extension filter.
func scan(root string, opts Options) ([]string, int, error) {
	var files []string
	skipped := 0

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && excludedDir(d.Name(), opts.ExcludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if opts.SkipBackups && strings.HasSuffix(name, BackupSuffix) {
			return nil
		}
		if !matchExt(name, opts.Extensions) {
			skipped++
			return nil
		}
		files = append(files, p)
		return nil
	})

	return files, skipped, err
}

// matchExt reports whether name ends with one of the allowed suffixes.
// Comparison is case-insensitive so STYLE.CSS is still a stylesheet.
func matchExt(name string, exts []string) bool {
	low := strings.ToLower(name)
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if strings.HasSuffix(low, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// excludedDir reports whether a directory name is in the exclusion
// list. Matching is case-insensitive.
func excludedDir(name string, exclude []string) bool {
	for _, e := range exclude {
		if strings.EqualFold(name, e) {
			return true
		}
	}
	return false
}
