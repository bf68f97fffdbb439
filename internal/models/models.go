package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Platform identifies an AI search surface that can cite content.
type Platform string

const (
	PlatformGoogleAIO   Platform = "google_aio"
	PlatformChatGPT     Platform = "chatgpt"
	PlatformPerplexity  Platform = "perplexity"
	PlatformBingCopilot Platform = "bing_copilot"
	PlatformClaude      Platform = "claude"
)

// AllPlatforms lists every platform with an analyzer, in report order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformGoogleAIO,
		PlatformChatGPT,
		PlatformPerplexity,
		PlatformBingCopilot,
		PlatformClaude,
	}
}

// Heading is one document heading, levels 1 through 6.
type Heading struct {
	Level int    `json:"level" bson:"level"`
	Text  string `json:"text" bson:"text"`
}

// ContentInput is the unit of analysis. It is treated as immutable: the
// engine never writes to it, and the same input always produces the same
// report. Only URL, Title and RawText are required; every other field has a
// documented neutral default.
type ContentInput struct {
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	RawText         string     `json:"raw_text"`
	RawHTML         string     `json:"raw_html,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	Headings        []Heading  `json:"headings,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	LastModified    *time.Time `json:"last_modified,omitempty"`
	// WordCount is derived from RawText by whitespace tokenization when zero.
	WordCount int `json:"word_count,omitempty"`
	// ExistingSchemas lists schema.org @type names the caller already knows
	// are on the page, merged with whatever the HTML scan detects.
	ExistingSchemas []string `json:"existing_schemas,omitempty"`
}

// EntityType is a coarse heuristic classification of an extracted entity.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityProduct      EntityType = "product"
	EntityConcept      EntityType = "concept"
	EntityLocation     EntityType = "location"
	EntityEvent        EntityType = "event"
	EntityTechnology   EntityType = "technology"
	EntityOther        EntityType = "other"
)

// Entity is a named entity found by capitalized-phrase matching.
type Entity struct {
	Name     string     `json:"name" bson:"name"`
	Type     EntityType `json:"type" bson:"type"`
	Mentions int        `json:"mentions" bson:"mentions"`
	// ContextQuality is 0-100: 80 when the entity appears in a defining
	// phrase, otherwise stepped by mention frequency.
	ContextQuality int `json:"context_quality" bson:"context_quality"`
}

// SnippetKind classifies a quotable sentence.
type SnippetKind string

const (
	SnippetDefinition SnippetKind = "definition"
	SnippetFact       SnippetKind = "fact"
	SnippetStatistic  SnippetKind = "statistic"
	SnippetStep       SnippetKind = "step"
	SnippetAnswer     SnippetKind = "answer"
	SnippetKeyPoint   SnippetKind = "key_point"
)

// QuotableSnippet is a sentence likely to be lifted verbatim into an AI
// answer. Offset is the byte offset of the sentence in RawText.
type QuotableSnippet struct {
	Text        string      `json:"text" bson:"text"`
	Kind        SnippetKind `json:"kind" bson:"kind"`
	Offset      int         `json:"offset" bson:"offset"`
	Quotability int         `json:"quotability" bson:"quotability"`
}

// StructureRating is an ordinal quality bucket.
type StructureRating string

const (
	RatingPoor StructureRating = "poor"
	RatingFair StructureRating = "fair"
	RatingGood StructureRating = "good"
)

// ContentStructure holds boolean structure signals plus ordinal ratings.
type ContentStructure struct {
	HasDirectAnswer      bool            `json:"has_direct_answer" bson:"has_direct_answer"`
	HasKeyTakeaways      bool            `json:"has_key_takeaways" bson:"has_key_takeaways"`
	HasFAQSection        bool            `json:"has_faq_section" bson:"has_faq_section"`
	HasHowToSection      bool            `json:"has_how_to_section" bson:"has_how_to_section"`
	HasStepByStep        bool            `json:"has_step_by_step" bson:"has_step_by_step"`
	HasExpertAttribution bool            `json:"has_expert_attribution" bson:"has_expert_attribution"`
	HasStatistics        bool            `json:"has_statistics" bson:"has_statistics"`
	HasDefinitions       bool            `json:"has_definitions" bson:"has_definitions"`
	HeadingHierarchy     StructureRating `json:"heading_hierarchy" bson:"heading_hierarchy"`
	ParagraphStructure   StructureRating `json:"paragraph_structure" bson:"paragraph_structure"`
}

// SchemaPresence records structured-data markers detected on the page.
type SchemaPresence struct {
	Article     bool `json:"article" bson:"article"`
	FAQPage     bool `json:"faq_page" bson:"faq_page"`
	HowTo       bool `json:"how_to" bson:"how_to"`
	Other       bool `json:"other" bson:"other"`
	OpenGraph   bool `json:"open_graph" bson:"open_graph"`
	TwitterCard bool `json:"twitter_card" bson:"twitter_card"`
}

// StructuralFeatures is everything the extractor derives from one
// ContentInput. Computed once per analysis, read-only afterwards.
type StructuralFeatures struct {
	Entities         []Entity          `json:"entities" bson:"entities"`
	QuotableSnippets []QuotableSnippet `json:"quotable_snippets" bson:"quotable_snippets"`
	Structure        ContentStructure  `json:"structure" bson:"structure"`
	Schema           SchemaPresence    `json:"schema" bson:"schema"`

	WordCount          int  `json:"word_count" bson:"word_count"`
	SentenceCount      int  `json:"sentence_count" bson:"sentence_count"`
	ParagraphCount     int  `json:"paragraph_count" bson:"paragraph_count"`
	AvgParagraphWords  int  `json:"avg_paragraph_words" bson:"avg_paragraph_words"`
	FirstParagraphLen  int  `json:"first_paragraph_len" bson:"first_paragraph_len"`
	FirstSentenceLen   int  `json:"first_sentence_len" bson:"first_sentence_len"`
	ExternalLinks      int  `json:"external_links" bson:"external_links"`
	CredentialKeywords bool `json:"credential_keywords" bson:"credential_keywords"`

	// TransitionDensity is transition-led sentences over total sentences;
	// AmbiguousLeads counts sentences opening with an unresolved pronoun.
	TransitionDensity float64 `json:"transition_density" bson:"transition_density"`
	AmbiguousLeads    int     `json:"ambiguous_leads" bson:"ambiguous_leads"`

	// DaysSinceUpdate is nil when the input carries no dates.
	DaysSinceUpdate *int `json:"days_since_update,omitempty" bson:"days_since_update,omitempty"`
}

// ScoreFactor is one weighted component of a platform score. Weights within
// a factor set need not sum to 1; composition normalizes by total weight.
type ScoreFactor struct {
	Name        string  `json:"name" bson:"name"`
	Score       int     `json:"score" bson:"score"`
	Weight      float64 `json:"weight" bson:"weight"`
	Description string  `json:"description" bson:"description"`
}

// Priority orders recommendations.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns a sortable rank, lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Recommendation is one prioritized improvement suggestion.
type Recommendation struct {
	Priority    Priority `json:"priority" bson:"priority"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Impact      string   `json:"impact" bson:"impact"`
	AutoFixable bool     `json:"auto_fixable" bson:"auto_fixable"`
	ActionCode  string   `json:"action_code,omitempty" bson:"action_code,omitempty"`
}

// CitationCheckResult is the outcome of real citation queries against one
// platform's API. Score is round(100 * QueriesCited / QueriesTested).
type CitationCheckResult struct {
	Platform      Platform `json:"platform" bson:"platform"`
	IsCited       bool     `json:"is_cited" bson:"is_cited"`
	Citations     []string `json:"citations,omitempty" bson:"citations,omitempty"`
	Confidence    string   `json:"confidence" bson:"confidence"`
	QueriesTested int      `json:"queries_tested" bson:"queries_tested"`
	QueriesCited  int      `json:"queries_cited" bson:"queries_cited"`
	Score         int      `json:"score" bson:"score"`
}

// PlatformScore is one analyzer's verdict. RealCheck is true when the score
// came from a citation check rather than the heuristic factor model.
type PlatformScore struct {
	Platform        Platform             `json:"platform" bson:"platform"`
	Score           int                  `json:"score" bson:"score"`
	RealCheck       bool                 `json:"real_check" bson:"real_check"`
	Factors         []ScoreFactor        `json:"factors" bson:"factors"`
	Recommendations []Recommendation     `json:"recommendations" bson:"recommendations"`
	Citation        *CitationCheckResult `json:"citation,omitempty" bson:"citation,omitempty"`
}

// VisibilityReport is the engine's top-level output. Created fresh on every
// Analyze call; persistence is the repository's concern, not the engine's.
type VisibilityReport struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	URL             string              `json:"url" bson:"url"`
	CombinedScore   int                 `json:"combined_score" bson:"combined_score"`
	Platforms       []PlatformScore     `json:"platforms" bson:"platforms"`
	Features        *StructuralFeatures `json:"features" bson:"features"`
	Recommendations []Recommendation    `json:"recommendations" bson:"recommendations"`
	SpendUSD        float64             `json:"spend_usd" bson:"spend_usd"`
	APIKey          string              `json:"api_key,omitempty" bson:"api_key,omitempty"`
	AnalyzedAt      time.Time           `json:"analyzed_at" bson:"analyzed_at"`
	DurationMs      int64               `json:"duration_ms" bson:"duration_ms"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
}

// Stats summarizes stored reports for the admin endpoint.
type Stats struct {
	TotalReports     int       `json:"total_reports" bson:"total_reports"`
	UniqueURLs       int       `json:"unique_urls" bson:"unique_urls"`
	ReportsLast24h   int       `json:"reports_last_24h" bson:"reports_last_24h"`
	AvgCombinedScore float64   `json:"avg_combined_score" bson:"avg_combined_score"`
	LastUpdated      time.Time `json:"last_updated" bson:"last_updated"`
}
