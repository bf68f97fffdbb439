package citation

import (
	"testing"
)

func TestDomainMatches(t *testing.T) {
	tests := []struct {
		name   string
		cited  string
		target string
		want   bool
	}{
		{"exact", "https://example.com/post", "example.com", true},
		{"subdomain", "https://blog.example.com/post", "example.com", true},
		{"www stripped", "https://www.example.com", "example.com", true},
		{"www target", "https://example.com", "www.example.com", true},
		{"case insensitive", "https://Blog.Example.COM/x", "example.com", true},
		{"suffix but not subdomain", "https://notexample.com", "example.com", false},
		{"different domain", "https://other.org", "example.com", false},
		{"empty target", "https://example.com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DomainMatches(tt.cited, tt.target); got != tt.want {
				t.Errorf("DomainMatches(%q, %q) = %v, want %v", tt.cited, tt.target, got, tt.want)
			}
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.Example.com/path?q=1", "example.com"},
		{"example.com", "example.com"},
		{"WWW.EXAMPLE.COM", "example.com"},
		{"https://sub.example.com", "sub.example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeDomain(tt.in); got != tt.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildQueries(t *testing.T) {
	t.Run("fallback without keywords", func(t *testing.T) {
		got := buildQueries("example.com", nil)
		if len(got) != 1 || got[0] != "what is example.com" {
			t.Errorf("expected generic domain query, got %v", got)
		}
	})

	t.Run("capped with many keywords", func(t *testing.T) {
		got := buildQueries("example.com", []string{"alpha", "beta", "gamma", "delta"})
		if len(got) != maxQueries {
			t.Errorf("expected %d queries, got %d", maxQueries, len(got))
		}
		if got[0] != "what is alpha" {
			t.Errorf("unexpected first query %q", got[0])
		}
	})
}

func TestExtractURLs(t *testing.T) {
	text := `See https://a.com/x and (https://b.org/y) plus "https://c.net".`
	got := extractURLs(text)
	want := []string{"https://a.com/x", "https://b.org/y", "https://c.net"}
	if len(got) != len(want) {
		t.Fatalf("expected %d urls, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
