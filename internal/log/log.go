// Package log provides centralised audit logging for sitefix runs.
// Entries are stored in ~/.sitefix/log/sitefix-log.db and track every
// CLI command and MCP tool invocation across sites, so an operator can
// answer "when did I last rewrite this tree, and did it change
// anything?" long after the terminal scrollback is gone.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("cli:pages", "rewrite").
//		Root(root).
//		DryRun(opts.DryRun).
//		Files(res.Changed).
//		Replacements(res.Replacements).
//		Write(err)
//
// The source parameter follows the format "cli:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single run record.
type Entry struct {
	Source string // e.g., "cli:pages", "mcp:flatten"
	Action string // verb: rewrite, flatten, config, guide
	Root   string // root directory the run operated on
	DryRun bool   // whether the run was report-only

	// Totals - populated after the run completes
	Files        int // files changed
	Replacements int // total replacements

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether the run succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional run-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call
// [Builder.Write] to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for a run.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Root sets the directory the run operated on. Also derives the
// project identifier recorded with the entry.
func (b *Builder) Root(root string) *Builder {
	b.entry.Root = root
	return b
}

// DryRun marks the entry as a report-only run.
func (b *Builder) DryRun(dry bool) *Builder {
	b.entry.DryRun = dry
	return b
}

// Files sets the number of files the run changed.
func (b *Builder) Files(n int) *Builder {
	b.entry.Files = n
	return b
}

// Replacements sets the total replacement count for the run.
func (b *Builder) Replacements(n int) *Builder {
	b.entry.Replacements = n
	return b
}

// Detail adds a key-value pair to the entry's detail map, for
// run-specific data that doesn't fit standard fields: the repo name,
// the prefix list, the extension filter. Can be called multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful; otherwise it is
// logged as failed with the error message. This is the standard way to
// complete an entry after a run.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them
// (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}

	global = &Logger{db: db}
	return nil
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns the most recent n entries, newest first.
// Returns nil without error if the logger is not initialised.
func Recent(n int) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, nil
	}
	return l.recent(n)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
