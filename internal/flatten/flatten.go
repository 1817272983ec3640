// Package flatten strips legacy repository prefixes from site text for
// deployments that moved from a GitHub Pages subpath to a custom domain
// root.
//
// Unlike the pages rewriter this engine is deliberately crude: each
// prefix is replaced anywhere in the text, not only inside attribute or
// url() positions. That catches references in inline scripts, JSON and
// plain prose at the cost of possible false positives, which is the
// right trade for a one-shot migration run over a site the operator can
// inspect afterwards.
package flatten

import "strings"

// NormalisePrefix ensures a prefix is slash-delimited on both ends, so
// "Cyb3Raya-Blog" and "/Cyb3Raya-Blog/" both strip the same segment.
func NormalisePrefix(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p = p + "/"
	}
	return p
}

// Stripper replaces each configured prefix with a single "/".
//
// Prefixes apply in the order supplied: a later prefix searches text
// already modified by earlier ones. When prefixes overlap the result
// depends on that order; choosing it is the caller's responsibility.
type Stripper struct {
	Prefixes []string
}

// New returns a Stripper for the given prefixes.
func New(prefixes []string) Stripper {
	return Stripper{Prefixes: prefixes}
}

// Transform replaces every occurrence of each prefix with "/" and
// returns the updated text with the total replacement count.
//
// Counts are taken against the pre-replacement text for each prefix.
// Occurrence counting is non-overlapping, so pathological
// self-overlapping prefixes may under-report; the replacement itself is
// unaffected.
func (s Stripper) Transform(text string) (string, int) {
	total := 0
	for _, prefix := range s.Prefixes {
		if prefix == "" {
			continue
		}
		p := NormalisePrefix(prefix)
		total += strings.Count(text, p)
		text = strings.ReplaceAll(text, p, "/")
	}
	return text, total
}
