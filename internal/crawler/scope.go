package crawler

import (
	"net/url"
	"strings"
)

// blockedExtensions are path extensions that are never crawled.
// The match is case-sensitive on the raw extension token: this is a
// deliberately coarse heuristic, not MIME-type aware. A path with no
// extension, or an uppercase spelling, passes through.
var blockedExtensions = map[string]bool{
	"png": true,
	"jpg": true,
	"pdf": true,
	"css": true,
	"js":  true,
}

// InScope reports whether a discovered link should ever be fetched.
//
// A link is in scope only when its host exactly matches siteHost, it does
// not start with any of the ignored prefixes, and its apparent file
// extension is not blocked. The check applies to discovered outbound
// links; the seed URL is never filtered.
func InScope(rawURL, siteHost string, ignoredPrefixes []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		// A link that cannot be parsed cannot be fetched either.
		return false
	}

	if u.Host != siteHost {
		return false
	}

	for _, prefix := range ignoredPrefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return false
		}
	}

	return !blockedExtensions[extensionToken(u.Path)]
}

// extensionToken returns the text after the last dot in the path.
// When the path has no dot the whole path comes back, which never matches
// a blocked extension.
func extensionToken(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
