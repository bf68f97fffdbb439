package citation

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"aiVisibilityGO/internal/models"
)

// QueryResult is one query's citation outcome from a source.
type QueryResult struct {
	Cited     bool
	Citations []string
}

// Source is one platform's citation query capability. Configured reports
// whether the source has credentials; the checker skips unconfigured
// sources. CostPerQuery is the USD spend one Query call accrues.
type Source interface {
	Platform() models.Platform
	Configured() bool
	CostPerQuery() float64
	Query(ctx context.Context, domain, query string) (QueryResult, error)
}

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>)\]]+`)

// extractURLs pulls every URL out of free-form response text.
func extractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// NormalizeDomain reduces a URL or bare domain to a lower-cased hostname
// without a leading www.
func NormalizeDomain(raw string) string {
	host := raw
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// DomainMatches reports whether a cited URL belongs to the target domain:
// exact hostname match or any subdomain of it, case-insensitive, www
// stripped on both sides.
func DomainMatches(citedURL, targetDomain string) bool {
	target := NormalizeDomain(targetDomain)
	if target == "" {
		return false
	}
	host := NormalizeDomain(citedURL)
	return host == target || strings.HasSuffix(host, "."+target)
}

// matchingCitations filters URLs down to the ones on the target domain.
func matchingCitations(urls []string, targetDomain string) []string {
	var out []string
	for _, u := range urls {
		if DomainMatches(u, targetDomain) {
			out = append(out, u)
		}
	}
	return out
}

const maxQueries = 5

var queryTemplates = []string{
	"what is %s",
	"tell me about %s",
}

// buildQueries derives the query set from content keywords, falling back
// to a single generic domain query when no keywords were extracted.
func buildQueries(domain string, keywords []string) []string {
	if len(keywords) == 0 {
		return []string{fmt.Sprintf("what is %s", domain)}
	}
	var out []string
	for _, kw := range keywords {
		for _, tpl := range queryTemplates {
			out = append(out, fmt.Sprintf(tpl, kw))
			if len(out) == maxQueries {
				return out
			}
		}
	}
	return out
}
