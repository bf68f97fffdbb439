package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"aiVisibilityGO/internal/models"
)

const maxBodyBytes = 5 << 20

// Fetcher downloads a page and builds the ContentInput the engine analyzes.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

func New(logger *slog.Logger, timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if userAgent == "" {
		userAgent = "AIVisibilityBot/1.0"
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch GETs the URL and extracts title, meta description, headings in
// document order, visible text and publication timestamps. The raw HTML is
// passed through for schema detection downstream.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*models.ContentInput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pageURL, err)
	}
	f.logger.Debug("page fetched", "url", pageURL, "bytes", len(body), "duration", time.Since(start))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	input := &models.ContentInput{
		URL:             pageURL,
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		RawHTML:         string(body),
		MetaDescription: doc.Find(`meta[name="description"]`).AttrOr("content", ""),
		Headings:        extractHeadings(doc),
		RawText:         extractText(doc),
		PublishedAt:     metaTime(doc, "article:published_time"),
		LastModified:    metaTime(doc, "article:modified_time"),
	}
	return input, nil
}

func extractHeadings(doc *goquery.Document) []models.Heading {
	var out []models.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		name := goquery.NodeName(s)
		out = append(out, models.Heading{Level: int(name[1] - '0'), Text: text})
	})
	return out
}

// extractText joins block elements with blank lines so paragraph structure
// survives into the plain text the engine sees.
func extractText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}

	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return strings.TrimSpace(body.Text())
}

func metaTime(doc *goquery.Document, property string) *time.Time {
	content, ok := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(content))
	if err != nil {
		return nil
	}
	return &t
}
