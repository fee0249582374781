package extract

import (
	"strings"
	"testing"
)

// TestExtract tests title, description, and body extraction.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, description, and body markdown", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<title>  Getting Started  </title>
			<meta name="description" content="How to begin.">
		</head><body>
			<main><h2>Install</h2><p>Run the installer.</p></main>
		</body></html>`

		res := Extract([]byte(html), "https://example.com/start")

		if res.Title != "Getting Started" {
			t.Errorf("expected trimmed title, got %q", res.Title)
		}
		if res.Description != "How to begin." {
			t.Errorf("expected description, got %q", res.Description)
		}
		if !strings.HasPrefix(res.Body, "# Getting Started\n\n") {
			t.Errorf("expected body to start with title header, got %q", res.Body)
		}
		if !strings.Contains(res.Body, "Install") || !strings.Contains(res.Body, "Run the installer.") {
			t.Errorf("expected converted content in body, got %q", res.Body)
		}
	})

	t.Run("removes nav header footer script and style", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body>
			<nav>NAVLINKS</nav>
			<header>SITEHEADER</header>
			<main><p>Actual content.</p></main>
			<footer>COPYRIGHT</footer>
			<script>var tracking = 1;</script>
			<style>.x { color: red }</style>
		</body></html>`

		res := Extract([]byte(html), "https://example.com/")

		for _, noise := range []string{"NAVLINKS", "SITEHEADER", "COPYRIGHT", "tracking", "color: red"} {
			if strings.Contains(res.Body, noise) {
				t.Errorf("body should not contain noise %q:\n%s", noise, res.Body)
			}
		}
		if !strings.Contains(res.Body, "Actual content.") {
			t.Errorf("body should keep main content, got %q", res.Body)
		}
	})

	t.Run("prefers main over body", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>Outside main.</p>
			<main><p>Inside main.</p></main>
		</body></html>`

		res := Extract([]byte(html), "https://example.com/")

		if !strings.Contains(res.Body, "Inside main.") {
			t.Errorf("expected main content, got %q", res.Body)
		}
		if strings.Contains(res.Body, "Outside main.") {
			t.Errorf("body text outside <main> should be ignored, got %q", res.Body)
		}
	})

	t.Run("falls back to body when no main exists", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Plain body content.</p></body></html>`

		res := Extract([]byte(html), "https://example.com/")

		if !strings.Contains(res.Body, "Plain body content.") {
			t.Errorf("expected body fallback, got %q", res.Body)
		}
	})

	t.Run("missing title falls back to URL in the header", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Content.</p></body></html>`

		res := Extract([]byte(html), "https://example.com/page")

		if res.Title != "" {
			t.Errorf("expected empty title, got %q", res.Title)
		}
		if !strings.HasPrefix(res.Body, "# https://example.com/page\n\n") {
			t.Errorf("expected URL header fallback, got %q", res.Body)
		}
	})

	t.Run("missing description is empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body><p>x</p></body></html>`

		if res := Extract([]byte(html), "https://example.com/"); res.Description != "" {
			t.Errorf("expected empty description, got %q", res.Description)
		}
	})

	t.Run("degrades to empty values instead of failing", func(t *testing.T) {
		t.Parallel()

		res := Extract([]byte{0x00, 0xff, 0xfe}, "https://example.com/")

		// Whatever the parser makes of the bytes, extraction must not
		// panic and the zero values must be usable.
		if res.Title != "" && res.Description != "" && res.Body != "" {
			t.Log("parser salvaged something from garbage input; acceptable")
		}
	})
}
