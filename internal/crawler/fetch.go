package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// ErrBadStatus is returned by Fetch when the server answers with a
// non-2xx status code. Callers treat it like any other fetch failure:
// skip the page and keep crawling.
var ErrBadStatus = errors.New("non-success status")

// Fetcher retrieves pages over HTTP with a politeness delay.
//
// Design decision: We require an external *http.Client rather than
// building one because:
//  1. The per-request timeout is a run-level setting owned by the caller
//  2. Tests can inject httptest clients
//  3. Consistent with how the spider itself is assembled
type Fetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// userAgent identifies the crawler in request headers.
	userAgent string

	// headers are extra request headers, e.g. site-specific cookies.
	headers map[string]string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// limiter spaces out requests. The initial token is drained at
	// construction so the first fetch waits the full interval like
	// every later one.
	limiter *rate.Limiter
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeaders sets extra request headers sent with every fetch.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// DefaultMaxBodySize limits response bodies to a size that covers any
// realistic documentation page while preventing memory exhaustion.
const DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

// DefaultUserAgent identifies the generator in HTTP requests. A
// descriptive User-Agent lets site operators recognize the traffic.
const DefaultUserAgent = "llmsgen/1.0 (+https://github.com/llms-txt/generator)"

// NewFetcher creates a Fetcher that waits delay before every request,
// including the first one. A zero delay disables the wait entirely.
func NewFetcher(client *http.Client, delay time.Duration, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		limiter:     rate.NewLimiter(rate.Every(delay), 1),
	}

	for _, opt := range opts {
		opt(f)
	}

	// Spend the token the limiter starts with, so the seed fetch is
	// delayed like every other fetch.
	if delay > 0 {
		f.limiter.Allow()
	}

	return f
}

// Fetch retrieves a single URL and returns the decoded response body.
// The body is transcoded to UTF-8 based on the Content-Type header when
// necessary. Any transport error or non-2xx status is a failure; no
// retries are performed.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, pageURL, resp.StatusCode)
	}

	var body io.Reader = io.LimitReader(resp.Body, f.maxBodySize)

	// Decode legacy charsets to UTF-8; on sniffing failure fall back to
	// the raw bytes.
	if decoded, cerr := charset.NewReader(body, resp.Header.Get("Content-Type")); cerr == nil {
		body = decoded
	}

	return io.ReadAll(body)
}
