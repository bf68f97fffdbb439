package engine

import (
	"fmt"
	"strings"
	"testing"

	"aiVisibilityGO/internal/models"
)

func TestExtractScenario(t *testing.T) {
	input := &models.ContentInput{
		URL:     "https://acme.io",
		Title:   "X",
		RawText: "Acme Corp is a company. It was founded in 2010. According to experts, Acme grew 40% last year.",
	}

	f := Extract(input)

	if !f.Structure.HasStatistics {
		t.Error("expected HasStatistics=true for text containing 40%")
	}
	if !f.Structure.HasExpertAttribution {
		t.Error("expected HasExpertAttribution=true for text containing 'according to'")
	}
	if f.DaysSinceUpdate != nil {
		t.Error("expected nil DaysSinceUpdate with no dates")
	}

	var acme *models.Entity
	for i := range f.Entities {
		if f.Entities[i].Name == "Acme Corp" {
			acme = &f.Entities[i]
		}
	}
	if acme == nil {
		t.Fatalf("expected entity 'Acme Corp', got %+v", f.Entities)
	}
	if acme.ContextQuality != 80 {
		t.Errorf("expected context quality 80 for defining phrase, got %d", acme.ContextQuality)
	}
	if acme.Type != models.EntityOrganization {
		t.Errorf("expected organization type, got %s", acme.Type)
	}
}

func TestExtractEntityCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "Widget%d is a product used by many teams. ", i)
	}
	f := Extract(&models.ContentInput{URL: "https://example.com", Title: "t", RawText: b.String()})

	if len(f.Entities) > 50 {
		t.Errorf("expected at most 50 entities, got %d", len(f.Entities))
	}
}

func TestExtractNoQuotableSentences(t *testing.T) {
	f := Extract(&models.ContentInput{
		URL:     "https://example.com",
		Title:   "t",
		RawText: "Short. Tiny. No.",
	})
	if len(f.QuotableSnippets) != 0 {
		t.Errorf("expected no snippets for short sentences, got %d", len(f.QuotableSnippets))
	}
}

func TestExtractEmptyInput(t *testing.T) {
	f := Extract(&models.ContentInput{URL: "", Title: "", RawText: ""})
	if f.WordCount != 0 || f.SentenceCount != 0 || f.ParagraphCount != 0 {
		t.Errorf("expected zeroed counts for empty input, got %+v", f)
	}
	if f.Structure.HeadingHierarchy != models.RatingPoor {
		t.Errorf("expected poor heading hierarchy with no headings, got %s", f.Structure.HeadingHierarchy)
	}
}

func TestExtractSnippetClassification(t *testing.T) {
	text := "The market grew by 25% in the last fiscal year according to analysts everywhere. " +
		"A load balancer is a device that distributes network traffic across multiple servers evenly. " +
		"First you should install the dependencies before running any of the build commands at all."
	f := Extract(&models.ContentInput{URL: "https://example.com", Title: "t", RawText: text})

	kinds := make(map[models.SnippetKind]bool)
	for _, s := range f.QuotableSnippets {
		kinds[s.Kind] = true
	}
	if !kinds[models.SnippetStatistic] {
		t.Error("expected a statistic snippet")
	}
	if !kinds[models.SnippetDefinition] {
		t.Error("expected a definition snippet")
	}
	if !kinds[models.SnippetStep] {
		t.Error("expected a step snippet")
	}
	for _, s := range f.QuotableSnippets {
		if s.Quotability < 60 || s.Quotability > 100 {
			t.Errorf("snippet quotability %d outside kept range", s.Quotability)
		}
	}
}

func TestExtractSchemaDetection(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"FAQPage"}</script>
		<script type="application/ld+json">{"@type":"Article"}</script>
		<meta property="og:title" content="t">
		<meta name="twitter:card" content="summary">
	</head><body></body></html>`

	f := Extract(&models.ContentInput{URL: "https://example.com", Title: "t", RawText: "Body text here.", RawHTML: html})

	if !f.Schema.FAQPage {
		t.Error("expected FAQPage schema detected")
	}
	if !f.Schema.Article {
		t.Error("expected Article schema detected")
	}
	if !f.Schema.OpenGraph {
		t.Error("expected Open Graph markers detected")
	}
	if !f.Schema.TwitterCard {
		t.Error("expected Twitter card markers detected")
	}
	if f.Schema.HowTo {
		t.Error("did not expect HowTo schema")
	}
}

func TestExtractExternalLinks(t *testing.T) {
	text := "See https://other.com/a and https://www.example.com/self and https://third.org/b for details."
	f := Extract(&models.ContentInput{URL: "https://example.com/post", Title: "t", RawText: text})

	if f.ExternalLinks != 2 {
		t.Errorf("expected 2 external links, got %d", f.ExternalLinks)
	}
}

func TestExtractAmbiguousLeads(t *testing.T) {
	text := "Acme builds rockets. It sells them worldwide. They are expensive. Rockets are fun."
	f := Extract(&models.ContentInput{URL: "https://example.com", Title: "t", RawText: text})

	if f.AmbiguousLeads != 2 {
		t.Errorf("expected 2 ambiguous leads, got %d", f.AmbiguousLeads)
	}
}
