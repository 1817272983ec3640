// walker_fs.go provides the file I/O for walker runs: decoding reads,
// backup sidecar creation, and UTF-8 writes.
//
// Separated from walker.go to isolate low-level file handling from the
// run loop. Reads honour the per-engine decode policy; writes are
// always UTF-8, which is what web projects overwhelmingly use.

package walker

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNotUTF8 is returned by readText under SkipInvalid when a file is
// not valid UTF-8.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// readText reads a file as UTF-8, applying the decode policy when the
// content is not valid UTF-8.
func readText(path string, policy DecodePolicy) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	if policy == Latin1Fallback {
		// Every byte sequence is valid ISO-8859-1, so this cannot fail.
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}

	return "", ErrNotUTF8
}

// writeText overwrites path with content encoded as UTF-8.
func writeText(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// writeBackup writes the original content to the backup sidecar.
// An existing sidecar is left untouched so the first-ever original
// survives repeated runs.
func writeBackup(path, content string) error {
	bak := path + BackupSuffix
	if _, err := os.Stat(bak); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(bak, []byte(content), 0644)
}
