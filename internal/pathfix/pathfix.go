// Package pathfix classifies and corrects root-absolute resource paths
// for a site served from a GitHub Pages repository subpath.
//
// A path is either external (scheme-qualified URL, protocol-relative
// reference, fragment, or a mail/phone/script URI) and left untouched,
// or root-absolute and normalised to live under "/<repo>". Two legacy
// mistakes are corrected along the way: an old repository-name prefix
// ("/<legacy>/...") is replaced with the current one, and an accidental
// double prefix ("/<repo>/<legacy>/...") is collapsed.
//
// Normalise is idempotent: applying it to its own output is a no-op.
package pathfix

import "strings"

// DefaultLegacy is the historical repository-name segment that predates
// the current repo name. Overridable via Fixer.Legacy for sites with a
// different history.
const DefaultLegacy = "Cyb3Raya"

// externalPrefixes mark references that point outside the site tree or
// are not paths at all. Matched case-insensitively.
var externalPrefixes = []string{
	"http://",
	"https://",
	"mailto:",
	"tel:",
	"data:",
	"javascript:",
	"//",
	"#",
}

// Fixer normalises root-absolute paths to the "/<repo>" prefix.
// Matching of the repo prefix is case-sensitive, exactly as written by
// the caller; no casing normalisation is applied.
type Fixer struct {
	Repo   string // target repository name, used verbatim
	Legacy string // legacy repository-name segment to strip/replace
}

// New returns a Fixer for the given repository name with the default
// legacy segment.
func New(repo string) Fixer {
	return Fixer{Repo: repo, Legacy: DefaultLegacy}
}

// External reports whether p is an external reference that must never
// be rewritten. Leading/trailing whitespace is ignored for the check.
func (f Fixer) External(p string) bool {
	low := strings.ToLower(strings.TrimSpace(p))
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(low, prefix) {
			return true
		}
	}
	return false
}

// Normalise returns the corrected form of p, or p itself when no change
// is needed. Only strings that start with "/" (after trimming
// whitespace) are candidates; everything else is returned byte-for-byte
// unchanged.
func (f Fixer) Normalise(p string) string {
	trimmed := strings.TrimSpace(p)
	if !strings.HasPrefix(trimmed, "/") {
		return p // not root-absolute, leave it alone
	}
	if f.External(trimmed) {
		return p
	}

	good := "/" + f.Repo
	if trimmed == good || strings.HasPrefix(trimmed, good+"/") {
		// Already correctly prefixed; collapse an accidental
		// /<repo>/<legacy> double prefix.
		doubled := good + "/" + f.Legacy
		if trimmed == doubled {
			return good
		}
		if strings.HasPrefix(trimmed, doubled+"/") {
			return good + trimmed[len(doubled):]
		}
		return trimmed
	}

	// Old prefix: /<legacy>/... becomes /<repo>/...
	old := "/" + f.Legacy
	if trimmed == old || strings.HasPrefix(trimmed, old+"/") {
		remainder := trimmed[len(old):]
		if remainder == "" {
			remainder = "/"
		}
		return good + remainder
	}

	// Any other root-absolute path, e.g. /CSS/style.css.
	return good + trimmed
}
