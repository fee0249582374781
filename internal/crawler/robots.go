package crawler

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// RobotsGate answers whether the site's robots.txt permits fetching a
// path. The gate is optional: crawls run without one unless the user asks
// for robots.txt compliance.
type RobotsGate struct {
	// group holds the rule group matching our User-Agent.
	group *robotstxt.Group
}

// NewRobotsGate fetches and parses robots.txt for the seed URL's host.
//
// Per the robots.txt convention a missing file (4xx) allows everything
// and a server error (5xx) disallows everything; the temoto/robotstxt
// status handling encodes both. A transport error is treated as a
// missing file so an unreachable robots.txt never blocks the crawl that
// was explicitly requested.
func NewRobotsGate(ctx context.Context, client *http.Client, seedURL, userAgent string) (*RobotsGate, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, err
	}

	robotsURL := seed.Scheme + "://" + seed.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		data := &robotstxt.RobotsData{}
		return &RobotsGate{group: data.FindGroup(userAgent)}, nil //nolint:nilerr // Unreachable robots.txt allows all
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, DefaultMaxBodySize))
	if err != nil {
		return nil, err
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, err
	}

	return &RobotsGate{group: data.FindGroup(userAgent)}, nil
}

// Allowed reports whether the gate permits fetching the given URL.
// A nil gate permits everything.
func (g *RobotsGate) Allowed(rawURL string) bool {
	if g == nil || g.group == nil {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return g.group.Test(path)
}
