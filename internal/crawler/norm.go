package crawler

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL into its deduplication key.
//
// The key is scheme+host+path with the query and fragment dropped and the
// path rewritten to carry exactly one trailing slash. Two URLs that differ
// only in fragment, query string, or the presence of a single trailing
// slash normalize to the same key.
//
// Normalize is a pure function and never fails: input that does not parse
// yields a best-effort key rather than an error, so a malformed link can
// still be deduplicated consistently.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Best effort: drop everything after the first query or
		// fragment marker and enforce the trailing slash.
		key := rawURL
		if i := strings.IndexAny(key, "?#"); i >= 0 {
			key = key[:i]
		}
		return strings.TrimRight(key, "/") + "/"
	}

	path := strings.TrimRight(u.Path, "/") + "/"

	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	b.WriteString(u.Host)
	b.WriteString(path)
	return b.String()
}
