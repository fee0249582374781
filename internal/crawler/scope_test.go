package crawler

import "testing"

// TestInScope tests host matching, prefix exclusion, and the extension
// blocklist.
func TestInScope(t *testing.T) {
	t.Parallel()

	const host = "example.com"

	tests := []struct {
		name     string
		url      string
		ignored  []string
		want     bool
	}{
		{
			name: "same host page",
			url:  "https://example.com/docs/intro",
			want: true,
		},
		{
			name: "different host rejected regardless of path",
			url:  "https://other.com/docs/intro",
			want: false,
		},
		{
			name: "subdomain is a different host",
			url:  "https://www.example.com/",
			want: false,
		},
		{
			name:    "ignored prefix rejected",
			url:     "https://example.com/admin/users",
			ignored: []string{"https://example.com/admin"},
			want:    false,
		},
		{
			name:    "non-matching prefix passes",
			url:     "https://example.com/docs",
			ignored: []string{"https://example.com/admin"},
			want:    true,
		},
		{
			name: "png rejected",
			url:  "https://example.com/logo.png",
			want: false,
		},
		{
			name: "jpg rejected",
			url:  "https://example.com/photo.jpg",
			want: false,
		},
		{
			name: "pdf rejected",
			url:  "https://example.com/manual.pdf",
			want: false,
		},
		{
			name: "css rejected",
			url:  "https://example.com/style.css",
			want: false,
		},
		{
			name: "js rejected",
			url:  "https://example.com/app.js",
			want: false,
		},
		{
			name: "html accepted",
			url:  "https://example.com/page.html",
			want: true,
		},
		{
			name: "no extension accepted",
			url:  "https://example.com/docs/getting-started",
			want: true,
		},
		{
			name: "uppercase extension passes the case-sensitive check",
			url:  "https://example.com/photo.JPG",
			want: true,
		},
		{
			name: "malformed URL rejected",
			url:  "http://exa\x7fmple.com/x",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InScope(tt.url, host, tt.ignored); got != tt.want {
				t.Errorf("InScope(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
