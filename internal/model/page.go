package model

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// PageRecord holds the extracted content of one crawled page.
//
// Design decision: We keep the exact URL that was fetched rather than the
// normalized deduplication key because:
//  1. Classification is a substring test on the raw URL spelling
//  2. The index document links back to the spelling users will recognize
//  3. Normalization is a crawler concern, not a content concern
type PageRecord struct {
	// SourceURL is the exact URL that was fetched, not normalized.
	SourceURL string `json:"source_url"`

	// StorageKey is the filesystem-safe filename derived from the URL path.
	// Two distinct paths can sanitize to the same key; the later write
	// overwrites the earlier one. This is a known limitation.
	StorageKey string `json:"storage_key"`

	// Title is the extracted document title, or the storage key when the
	// page has no <title> element.
	Title string `json:"title"`

	// Description is the page's meta description, or empty.
	Description string `json:"description,omitempty"`

	// Body is the markdown conversion of the page's content root,
	// prefixed with a title header. Empty when the page has no
	// resolvable content root.
	Body string `json:"-"`
}

// coreKeywords mark a page as core documentation when any of them
// appears in the lowercased source URL.
var coreKeywords = []string{"doc", "guide", "api", "help"}

// IsCore reports whether the record belongs in the "Core Documentation"
// section of the index. Classification is a case-insensitive substring
// test on the raw source URL, nothing smarter.
func (r PageRecord) IsCore() bool {
	u := strings.ToLower(r.SourceURL)
	for _, kw := range coreKeywords {
		if strings.Contains(u, kw) {
			return true
		}
	}
	return false
}

// CrawlResult accumulates the outcome of one crawl run.
// It is owned by a single pipeline execution; steps mutate it in sequence
// on one goroutine, so no locking is needed. Independent runs each get
// their own CrawlResult and can coexist in one process.
type CrawlResult struct {
	// SeedURL is the URL the crawl started from, exactly as given.
	SeedURL string `json:"seed_url"`

	// SiteHost is the host component of the seed URL. Only links on this
	// host are crawled.
	SiteHost string `json:"site_host"`

	// BaseURL is the seed URL with any trailing slash removed. Index
	// bullets link to BaseURL + "/" + StorageKey.
	BaseURL string `json:"base_url"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Records are the successfully processed pages in crawl order.
	Records []PageRecord `json:"records"`

	// Failed lists URLs whose fetch failed. They produced no record and
	// their outbound links were never discovered.
	Failed []string `json:"failed,omitempty"`
}

// NewCrawlResult creates a CrawlResult for the given seed URL.
// The site host is taken from the seed; a seed that does not parse keeps
// an empty host, which makes every discovered link out of scope and
// limits the run to the seed itself.
func NewCrawlResult(seedURL string) *CrawlResult {
	host := ""
	if u, err := url.Parse(seedURL); err == nil {
		host = u.Host
	}
	return &CrawlResult{
		SeedURL:   seedURL,
		SiteHost:  host,
		BaseURL:   strings.TrimRight(seedURL, "/"),
		StartedAt: time.Now(),
		Records:   make([]PageRecord, 0),
	}
}

// nonKeyChars matches every character that may not appear in a storage key.
var nonKeyChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// StorageKey derives the filesystem-safe markdown filename for a URL.
// The key is built from the URL path only: leading and trailing slashes
// are trimmed, every other character outside [a-zA-Z0-9-] becomes a
// hyphen, and trailing hyphens or underscores are stripped before the
// ".md" suffix. An empty path maps to "index.md".
func StorageKey(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	path = strings.Trim(path, "/")
	if path == "" {
		return "index.md"
	}

	key := nonKeyChars.ReplaceAllString(path, "-")
	key = strings.TrimRight(key, "-_")
	return key + ".md"
}
