// Package rewrite locates path-bearing substrings in markup and
// stylesheet text and applies pathfix normalisation to each.
//
// Two syntactic shapes are recognised: quoted attribute values after
// href=, src= or action=, and CSS url(...) tokens with optional quotes.
// The surrounding syntax (attribute name, quotes, url wrapper) is
// preserved verbatim; only the path between the delimiters changes.
// This is deliberate pattern matching, not HTML or CSS parsing.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/jpl-au/sitefix/internal/pathfix"
)

// Compiled once at startup; both matchers are stateless.
var (
	attrPattern = regexp.MustCompile(`(?i)\b((?:href|src|action)\s*=\s*["'])([^"']*)(["'])`)
	cssPattern  = regexp.MustCompile(`(?i)\b(url\(\s*["']?)([^)"']*)(["']?\s*\))`)
)

// Rewriter applies pathfix normalisation to path-bearing substrings.
type Rewriter struct {
	fixer pathfix.Fixer
}

// New returns a Rewriter backed by the given Fixer.
func New(f pathfix.Fixer) Rewriter {
	return Rewriter{fixer: f}
}

// Transform rewrites all attribute and url() paths in text and returns
// the updated text with the number of changed paths.
//
// The attribute pass runs first, then the url pass over the already
// updated text. A path sitting in both syntactic positions can be
// visited twice; the second visit is a no-op because Normalise is
// idempotent.
func (r Rewriter) Transform(text string) (string, int) {
	count := 0

	repl := func(pattern *regexp.Regexp, s string) string {
		return pattern.ReplaceAllStringFunc(s, func(m string) string {
			sub := pattern.FindStringSubmatch(m)
			old := sub[2]
			updated := old
			if strings.HasPrefix(strings.TrimSpace(old), "/") {
				updated = r.fixer.Normalise(old)
			}
			if updated != old {
				count++
			}
			return sub[1] + updated + sub[3]
		})
	}

	out := repl(attrPattern, text)
	out = repl(cssPattern, out)
	return out, count
}
