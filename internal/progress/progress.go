// Package progress provides a CLI progress counter for walker runs.
// Output goes to stderr to keep stdout clean for piping, and TTY
// detection ensures nothing is emitted into redirected output.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// minItems is the minimum number of files before showing progress.
// Rewriting a handful of files finishes before progress would help.
const minItems = 50

// Progress tracks and displays how far through a run the walker is.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, updates are suppressed entirely.
func New(label string, total int) *Progress {
	return &Progress{
		w:     os.Stderr,
		label: label,
		total: total,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Increment advances the counter by one file.
func (p *Progress) Increment() {
	p.current++
}

// Print rewrites the progress line in place. No-op off-TTY or for
// small runs.
func (p *Progress) Print() {
	if p.total < minItems || !p.isTTY {
		return
	}

	pct := 0
	if p.total > 0 {
		pct = (p.current * 100) / p.total
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the progress line to make way for the summary.
func (p *Progress) Done() {
	if p.total < minItems || !p.isTTY {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", "                                        ")
}
