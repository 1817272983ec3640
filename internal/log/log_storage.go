// log_storage.go implements SQLite-based persistent audit logging.
//
// Separated from log.go to isolate database concerns. The main log.go
// provides the fluent API for building entries, while this file handles
// persistence and queries. Using SQLite enables cross-site history
// queries and structured filtering that plain text logs cannot provide.
// The project field uses a hash of the run root to enable aggregation
// while preserving privacy.
//
// Design: Errors during logging are silently ignored (best-effort).
// A rewrite run should succeed even if we can't record it.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db *sql.DB
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, action, root, dry_run,
		                 files, replacements, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, hash(e.Root), e.Source, e.Action,
		nilIfEmpty(e.Root), boolToDB(e.DryRun),
		e.Files, e.Replacements,
		boolToDB(e.Success), nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		// Best-effort logging: don't break the run, but report failure
		_, _ = fmt.Fprintf(os.Stderr, "sitefix: audit log write failed: %v\n", err)
	}
}

func (l *Logger) recent(n int) ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT start, end, source, action,
		       COALESCE(root, ''), dry_run, files, replacements,
		       success, COALESCE(error, '')
		FROM log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var dry, success int
		if err := rows.Scan(&e.Start, &e.End, &e.Source, &e.Action,
			&e.Root, &dry, &e.Files, &e.Replacements,
			&success, &e.Error); err != nil {
			return nil, err
		}
		e.DryRun = dry == 1
		e.Success = success == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home cannot be determined.
		// This allows logging to work in unusual environments
		// (containers, etc.) rather than silently failing.
		return filepath.Join(".sitefix", "log", "sitefix-log.db")
	}
	return filepath.Join(home, ".sitefix", "log", "sitefix-log.db")
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPathFunc()
}

// openDB opens (creating if needed) the log database.
func openDB() (*sql.DB, error) {
	p := dbPathFunc()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// hash creates a project identifier from the run root, enabling
// cross-site log queries while preserving privacy.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		// Should never happen with nil key, but don't silently ignore
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			start        INTEGER NOT NULL,
			end          INTEGER NOT NULL,
			project      TEXT NOT NULL,
			source       TEXT NOT NULL,
			action       TEXT NOT NULL,
			root         TEXT,
			dry_run      INTEGER NOT NULL DEFAULT 0,
			files        INTEGER NOT NULL DEFAULT 0,
			replacements INTEGER NOT NULL DEFAULT 0,
			success      INTEGER NOT NULL,
			error        TEXT,
			detail       TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

// boolToDB converts a bool to the integer form stored in SQLite.
func boolToDB(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nilIfEmpty returns nil for empty strings, reducing NULL checks in
// queries.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
