package citation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"aiVisibilityGO/internal/models"
)

const braveSearchURL = "https://api.search.brave.com/res/v1/web/search"

// braveWebResponse is the subset of the Brave web-search response this
// source reads. Decoding into typed structs keeps malformed payloads at
// the boundary as ordinary decode errors.
type braveWebResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

type braveResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// braveSource approximates Google AI Overview visibility through Brave web
// search: a domain appearing in the organic results for a query is treated
// as a citation. It is the free proxy signal; no AI Overview API exists.
type braveSource struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	costPerQuery float64
}

func NewBraveSource(apiKey string, timeout time.Duration) Source {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &braveSource{
		apiKey:       apiKey,
		client:       &http.Client{Timeout: timeout},
		costPerQuery: 0.002,
	}
}

func (s *braveSource) Platform() models.Platform { return models.PlatformGoogleAIO }
func (s *braveSource) Configured() bool          { return s.apiKey != "" }
func (s *braveSource) CostPerQuery() float64     { return s.costPerQuery }

func (s *braveSource) Query(ctx context.Context, domain, query string) (QueryResult, error) {
	endpoint := fmt.Sprintf("%s?q=%s&count=10", s.searchURL(), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return QueryResult{}, fmt.Errorf("brave search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return QueryResult{}, fmt.Errorf("brave search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return QueryResult{}, fmt.Errorf("brave search: unexpected status %d", resp.StatusCode)
	}

	var body braveWebResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return QueryResult{}, fmt.Errorf("brave search: decode response: %w", err)
	}

	var cites []string
	for _, r := range body.Web.Results {
		if DomainMatches(r.URL, domain) {
			cites = append(cites, r.URL)
		}
	}
	return QueryResult{Cited: len(cites) > 0, Citations: cites}, nil
}

// searchURL exists so tests can point the source at a local server.
func (s *braveSource) searchURL() string {
	if s.baseURL != "" {
		return s.baseURL
	}
	return braveSearchURL
}
