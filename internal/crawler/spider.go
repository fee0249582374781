package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/llms-txt/generator/internal/extract"
	"github.com/llms-txt/generator/internal/model"
)

// Spider walks a single site depth-first and collects a PageRecord per
// successfully processed page.
//
// Design decision: We call it "Spider" rather than "Crawler" because:
//  1. "Spider" is the traditional term for web crawlers
//  2. Distinguishes the component from the package name
//  3. Clearer in code: crawler.NewSpider() vs crawler.NewCrawler()
//
// A Spider carries configuration only. All mutable traversal state (the
// visited set and work stack) lives in the crawl run itself, so one
// process can drive several independent crawls at once, each on its own
// goroutine.
type Spider struct {
	// fetcher retrieves pages and enforces the inter-request delay.
	fetcher *Fetcher

	// ignorePrefixes are URL prefixes never followed.
	ignorePrefixes []string

	// maxPages caps the number of recorded pages. Zero means no cap:
	// traversal is bounded only by scope filtering and the finite
	// reachable link graph.
	maxPages int

	// robots optionally vetoes fetches per robots.txt. Nil allows all.
	robots *RobotsGate

	// logger for structured logging.
	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithIgnorePrefixes sets URL prefixes that are never followed.
func WithIgnorePrefixes(prefixes []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePrefixes = prefixes
	}
}

// WithMaxPages caps the number of pages recorded per crawl.
// Zero (the default) means unlimited.
func WithMaxPages(n int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = n
	}
}

// WithRobotsGate makes the spider honor robots.txt disallow rules.
func WithRobotsGate(gate *RobotsGate) SpiderOption {
	return func(s *Spider) {
		s.robots = gate
	}
}

// WithSpiderLogger sets a custom logger for the spider.
func WithSpiderLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider that fetches through the given Fetcher.
func NewSpider(fetcher *Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher: fetcher,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// crawlState is the run-scoped mutable state of one traversal.
// It is owned by a single Crawl invocation and touched by one goroutine
// only, which is what makes the check-then-mark on visited safe without
// locking.
type crawlState struct {
	// visited holds normalized URL keys. A key is added at most once,
	// and always before the fetch is attempted, so a slow or failing
	// fetch cannot cause the same URL to be scheduled twice.
	visited map[string]bool

	// stack is the depth-first work list of raw (non-normalized) URLs.
	stack []string
}

// Crawl traverses the site starting at result.SeedURL and appends a
// record per processed page to result.Records, in crawl order.
//
// Traversal is depth-first, following links in the order they appear in
// each page's markup. A page whose fetch fails is marked permanently
// visited, produces no record, and is never parsed for links; the crawl
// continues with the rest of the graph. Only context cancellation stops
// a run early.
func (s *Spider) Crawl(ctx context.Context, result *model.CrawlResult) error {
	seed, err := url.Parse(result.SeedURL)
	if err != nil {
		return fmt.Errorf("invalid seed URL: %w", err)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return fmt.Errorf("invalid seed URL %q: scheme must be http or https", result.SeedURL)
	}

	state := &crawlState{
		visited: make(map[string]bool),
		stack:   []string{seed.String()},
	}

	for len(state.stack) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.maxPages > 0 && len(result.Records) >= s.maxPages {
			s.logger.Debug("page cap reached", "maxPages", s.maxPages)
			break
		}

		// Pop the most recently pushed URL: depth-first order.
		raw := state.stack[len(state.stack)-1]
		state.stack = state.stack[:len(state.stack)-1]

		key := Normalize(raw)
		if state.visited[key] {
			continue
		}
		// Mark before the fetch so re-discovery of this URL from
		// another parent can never schedule it again.
		state.visited[key] = true

		if !s.robots.Allowed(raw) {
			s.logger.Debug("blocked by robots.txt", "url", raw)
			continue
		}

		body, err := s.fetcher.Fetch(ctx, raw)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Failed pages produce no record and their links are
			// never discovered. The crawl itself goes on.
			s.logger.Warn("fetch failed", "url", raw, "error", err)
			result.Failed = append(result.Failed, raw)
			continue
		}

		s.record(result, raw, body)
		s.discover(state, result.SiteHost, raw, body)
	}

	return nil
}

// record extracts the page content and appends a PageRecord.
func (s *Spider) record(result *model.CrawlResult, pageURL string, body []byte) {
	content := extract.Extract(body, pageURL)

	storageKey := model.StorageKey(pageURL)
	title := content.Title
	if title == "" {
		title = storageKey
	}

	result.Records = append(result.Records, model.PageRecord{
		SourceURL:   pageURL,
		StorageKey:  storageKey,
		Title:       title,
		Description: content.Description,
		Body:        content.Body,
	})

	s.logger.Debug("page recorded",
		"url", pageURL,
		"storageKey", storageKey,
		"total", len(result.Records),
	)
}

// discover resolves the page's outbound links and pushes the in-scope,
// unseen ones onto the work stack. Links are pushed in reverse so that
// the first link in the document is the next one popped, matching the
// order a recursive walk would visit them in.
func (s *Spider) discover(state *crawlState, siteHost, pageURL string, body []byte) {
	links := ParseLinks(body, pageURL)

	for i := len(links) - 1; i >= 0; i-- {
		link := links[i]
		if !InScope(link, siteHost, s.ignorePrefixes) {
			continue
		}
		if state.visited[Normalize(link)] {
			continue
		}
		state.stack = append(state.stack, link)
	}
}
