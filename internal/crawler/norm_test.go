package crawler

import "testing"

// TestNormalizeEquivalence asserts that URLs differing only in fragment,
// query string, or trailing slash normalize to the same key.
func TestNormalizeEquivalence(t *testing.T) {
	t.Parallel()

	groups := [][]string{
		{
			"https://example.com/docs",
			"https://example.com/docs/",
			"https://example.com/docs#install",
			"https://example.com/docs?ref=home",
			"https://example.com/docs/?ref=home#install",
		},
		{
			"https://example.com",
			"https://example.com/",
			"https://example.com/#top",
			"https://example.com/?utm_source=x",
		},
	}

	for _, group := range groups {
		want := Normalize(group[0])
		for _, u := range group[1:] {
			if got := Normalize(u); got != want {
				t.Errorf("Normalize(%q) = %q, want %q (same as %q)", u, got, want, group[0])
			}
		}
	}
}

// TestNormalize tests the shape of individual keys.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "strips query and fragment",
			url:  "https://example.com/a/b?q=1#frag",
			want: "https://example.com/a/b/",
		},
		{
			name: "root gets single trailing slash",
			url:  "https://example.com",
			want: "https://example.com/",
		},
		{
			name: "multiple trailing slashes collapse",
			url:  "https://example.com/a///",
			want: "https://example.com/a/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.url); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestNormalizeMalformed asserts that unparseable input still yields a
// stable best-effort key instead of failing.
func TestNormalizeMalformed(t *testing.T) {
	t.Parallel()

	malformed := "http://exa\x7fmple.com/page?x=1#y"
	first := Normalize(malformed)
	second := Normalize(malformed)

	if first != second {
		t.Errorf("normalization is not stable: %q vs %q", first, second)
	}
	if first == "" {
		t.Error("expected a best-effort key for malformed input, got empty string")
	}
}
