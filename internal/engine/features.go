package engine

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"aiVisibilityGO/internal/models"
)

const (
	maxEntities        = 50
	maxSnippets        = 20
	minSnippetScore    = 60
	minSentenceChars   = 20
	minSnippetWords    = 10
	maxSnippetWords    = 50
	directAnswerMinLen = 100
	directAnswerMaxLen = 500
)

var (
	entityRe    = regexp.MustCompile(`[A-Z][A-Za-z0-9'&.-]*(?: [A-Z][A-Za-z0-9'&.-]*)*`)
	statisticRe = regexp.MustCompile(`(?i)([0-9]+(\.[0-9]+)?\s*(%|percent)|\$[0-9]|[0-9]+(\.[0-9]+)?\s*(million|billion))`)
	stepLeadRe  = regexp.MustCompile(`^[0-9]+[.)]`)
	numberedRe  = regexp.MustCompile(`(?m)^\s*[0-9]+[.)]\s`)
	blankLineRe = regexp.MustCompile(`\n[ \t\r]*\n`)
	textURLRe   = regexp.MustCompile(`https?://[^\s"'<>)]+`)
	hrefRe      = regexp.MustCompile(`(?i)href="(https?://[^"]+)"`)
	schemaTypeRe = regexp.MustCompile(`(?i)"@type"\s*:\s*"([a-z]+)"`)
)

// entityStopwords are capitalized words that open sentences far more often
// than they name anything.
var entityStopwords = map[string]bool{
	"the": true, "this": true, "it": true, "they": true, "these": true,
	"those": true, "a": true, "an": true, "in": true, "on": true, "at": true,
	"by": true, "for": true, "to": true, "from": true, "with": true,
	"as": true, "if": true, "but": true, "and": true, "or": true, "we": true,
	"you": true, "i": true, "he": true, "she": true, "our": true, "my": true,
	"your": true, "their": true, "its": true, "his": true, "her": true,
	"according": true, "however": true, "therefore": true, "also": true,
	"some": true, "many": true, "most": true, "after": true, "before": true,
	"when": true, "while": true, "what": true, "why": true, "how": true,
	"where": true, "who": true, "which": true, "here": true, "there": true,
	"not": true, "no": true, "yes": true, "so": true, "then": true,
	"now": true, "first": true, "second": true, "next": true,
	"finally": true, "during": true, "since": true, "although": true,
	"because": true, "each": true, "every": true, "both": true, "one": true,
}

var orgSuffixes = map[string]bool{
	"inc": true, "inc.": true, "corp": true, "corp.": true, "llc": true,
	"ltd": true, "ltd.": true, "company": true, "foundation": true,
	"university": true, "institute": true, "agency": true, "group": true,
}

var techWords = map[string]bool{
	"ai": true, "api": true, "software": true, "cloud": true,
	"platform": true, "app": true, "engine": true, "framework": true,
}

var transitionWords = []string{
	"however", "therefore", "moreover", "furthermore", "consequently",
	"additionally", "in addition", "as a result", "for example",
	"in contrast", "similarly", "meanwhile", "finally", "first", "second",
	"next", "then",
}

var ambiguousLeads = []string{"it ", "they ", "this ", "these ", "that ", "those "}

type sentence struct {
	text   string
	offset int
	delim  byte
}

// Extract derives StructuralFeatures from one ContentInput. It is a total
// function: missing optional fields get neutral defaults and no input can
// make it fail.
func Extract(input *models.ContentInput) *models.StructuralFeatures {
	text := input.RawText
	lower := strings.ToLower(text)

	f := &models.StructuralFeatures{}

	f.WordCount = input.WordCount
	if f.WordCount == 0 {
		f.WordCount = len(strings.Fields(text))
	}

	sentences := splitSentences(text)
	f.SentenceCount = len(sentences)
	if len(sentences) > 0 {
		f.FirstSentenceLen = len(sentences[0].text)
	}

	paragraphs := splitParagraphs(text)
	f.ParagraphCount = len(paragraphs)
	if len(paragraphs) > 0 {
		f.FirstParagraphLen = len(paragraphs[0])
		total := 0
		for _, p := range paragraphs {
			total += len(strings.Fields(p))
		}
		f.AvgParagraphWords = total / len(paragraphs)
	}

	f.Entities = extractEntities(text)
	f.QuotableSnippets = extractSnippets(sentences)
	f.Structure = extractStructure(input, lower, f)
	f.Schema = detectSchema(input)
	f.ExternalLinks = countExternalLinks(input)
	f.CredentialKeywords = containsAny(lower,
		"phd", "ph.d", "certified", "licensed", "years of experience",
		"professor", "researcher")

	f.TransitionDensity = transitionDensity(sentences)
	f.AmbiguousLeads = countAmbiguousLeads(sentences)
	f.DaysSinceUpdate = daysSinceUpdate(input)

	return f
}

// splitSentences splits on . ! ? while tracking byte offsets and the
// terminating delimiter of each sentence.
func splitSentences(text string) []sentence {
	var out []sentence
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		raw := text[start:i]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			out = append(out, sentence{
				text:   trimmed,
				offset: start + strings.Index(raw, trimmed[:1]),
				delim:  c,
			})
		}
		start = i + 1
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, sentence{text: rest, offset: start + strings.Index(text[start:], rest[:1])})
	}
	return out
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range blankLineRe.Split(text, -1) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// extractEntities finds capitalized phrases, dedupes case-insensitively
// keeping the first-seen casing, ranks by mention count and caps the result.
// Intentionally low-fidelity: string heuristics, not NER.
func extractEntities(text string) []models.Entity {
	type tally struct {
		display  string
		count    int
		firstIdx int
	}
	counts := make(map[string]*tally)

	for _, loc := range entityRe.FindAllStringIndex(text, -1) {
		name := strings.Trim(text[loc[0]:loc[1]], ".,&'-")
		if len(name) < 2 {
			continue
		}
		if !strings.Contains(name, " ") && entityStopwords[strings.ToLower(name)] {
			continue
		}
		key := strings.ToLower(name)
		if t, ok := counts[key]; ok {
			t.count++
		} else {
			counts[key] = &tally{display: name, count: 1, firstIdx: loc[0]}
		}
	}

	tallies := make([]*tally, 0, len(counts))
	for _, t := range counts {
		tallies = append(tallies, t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].count != tallies[j].count {
			return tallies[i].count > tallies[j].count
		}
		return tallies[i].firstIdx < tallies[j].firstIdx
	})
	if len(tallies) > maxEntities {
		tallies = tallies[:maxEntities]
	}

	entities := make([]models.Entity, 0, len(tallies))
	for _, t := range tallies {
		entities = append(entities, models.Entity{
			Name:           t.display,
			Type:           inferEntityType(t.display),
			Mentions:       t.count,
			ContextQuality: contextQuality(text, t.display, t.count),
		})
	}
	return entities
}

func inferEntityType(name string) models.EntityType {
	fields := strings.Fields(strings.ToLower(name))
	for _, w := range fields {
		if orgSuffixes[w] {
			return models.EntityOrganization
		}
	}
	for _, w := range fields {
		if techWords[w] {
			return models.EntityTechnology
		}
	}
	last := fields[len(fields)-1]
	if last == "conference" || last == "summit" || last == "expo" {
		return models.EntityEvent
	}
	switch fields[0] {
	case "dr", "dr.", "mr", "mr.", "mrs", "mrs.", "prof", "prof.":
		return models.EntityPerson
	}
	return models.EntityOther
}

// contextQuality is 80 for entities in a defining phrase, else stepped by
// raw mention frequency.
func contextQuality(text, name string, mentions int) int {
	if strings.Contains(text, name+" is") ||
		strings.Contains(text, name+", which") ||
		strings.Contains(text, name+" refers") {
		return 80
	}
	switch {
	case mentions >= 5:
		return 70
	case mentions >= 3:
		return 60
	default:
		return 50
	}
}

// extractSnippets keeps sentences in the quotable length band, classifies
// them by ordered pattern checks and keeps the ones scoring at least 60, in
// document order.
func extractSnippets(sentences []sentence) []models.QuotableSnippet {
	var out []models.QuotableSnippet
	for _, s := range sentences {
		if len(s.text) < minSentenceChars {
			continue
		}
		words := len(strings.Fields(s.text))
		if words < minSnippetWords || words > maxSnippetWords {
			continue
		}
		kind := classifySnippet(s)
		score := quotability(s.text, kind, words)
		if score < minSnippetScore {
			continue
		}
		out = append(out, models.QuotableSnippet{
			Text:        s.text,
			Kind:        kind,
			Offset:      s.offset,
			Quotability: score,
		})
		if len(out) == maxSnippets {
			break
		}
	}
	return out
}

// classifySnippet applies ordered checks: statistics first, then definition
// phrases, step markers, key-point keywords, question mark, fact fallback.
func classifySnippet(s sentence) models.SnippetKind {
	lower := strings.ToLower(s.text)
	switch {
	case statisticRe.MatchString(s.text):
		return models.SnippetStatistic
	case containsAny(lower, " is a ", " is the ", " is defined as ", " refers to ", " means "):
		return models.SnippetDefinition
	case stepLeadRe.MatchString(lower) ||
		strings.HasPrefix(lower, "first") || strings.HasPrefix(lower, "then ") ||
		strings.HasPrefix(lower, "next ") || strings.HasPrefix(lower, "finally") ||
		strings.HasPrefix(lower, "step "):
		return models.SnippetStep
	case containsAny(lower, "important", "key ", "essential", "critical", "remember", "crucial"):
		return models.SnippetKeyPoint
	case s.delim == '?':
		return models.SnippetAnswer
	default:
		return models.SnippetFact
	}
}

func quotability(text string, kind models.SnippetKind, words int) int {
	score := 50
	switch kind {
	case models.SnippetStatistic, models.SnippetDefinition:
		score += 20
	case models.SnippetStep, models.SnippetKeyPoint:
		score += 15
	case models.SnippetAnswer:
		score += 10
	default:
		score += 5
	}
	if words >= 15 && words <= 30 {
		score += 15
	} else if words >= 10 && words <= 40 {
		score += 10
	}
	if strings.ContainsAny(text, "0123456789") {
		score += 10
	}
	if containsAny(strings.ToLower(text), "according to", "expert", "research", "study") {
		score += 10
	}
	return clamp(score)
}

func extractStructure(input *models.ContentInput, lower string, f *models.StructuralFeatures) models.ContentStructure {
	cs := models.ContentStructure{
		HasDirectAnswer: f.FirstParagraphLen >= directAnswerMinLen &&
			f.FirstParagraphLen <= directAnswerMaxLen,
		HasKeyTakeaways: containsAny(lower, "key takeaway", "key points", "tl;dr", "in summary"),
		HasFAQSection:   containsAny(lower, "faq", "frequently asked"),
		HasHowToSection: strings.Contains(lower, "how to"),
		HasStepByStep: containsAny(lower, "step 1", "step-by-step", "step by step") ||
			numberedRe.MatchString(input.RawText),
		HasExpertAttribution: containsAny(lower, "according to", "expert", "professor", "dr. "),
		HasStatistics:        statisticRe.MatchString(input.RawText),
		HasDefinitions:       containsAny(lower, " is a ", " is the ", " is defined as ", " refers to ", " means "),
		HeadingHierarchy:     rateHeadings(input.Headings),
		ParagraphStructure:   rateParagraphs(f.ParagraphCount, f.AvgParagraphWords),
	}
	return cs
}

func rateHeadings(headings []models.Heading) models.StructureRating {
	if len(headings) == 0 {
		return models.RatingPoor
	}
	h1, h2 := 0, 0
	for _, h := range headings {
		switch h.Level {
		case 1:
			h1++
		case 2:
			h2++
		}
	}
	if len(headings) >= 3 && h1 >= 1 && h2 >= 1 {
		return models.RatingGood
	}
	return models.RatingFair
}

func rateParagraphs(count, avgWords int) models.StructureRating {
	if count == 0 {
		return models.RatingPoor
	}
	switch {
	case avgWords >= 30 && avgWords <= 150:
		return models.RatingGood
	case avgWords >= 15 && avgWords <= 250:
		return models.RatingFair
	default:
		return models.RatingPoor
	}
}

// detectSchema is a deliberate substring scan over the raw HTML, not an
// HTML or JSON parse: the only consumer is presence detection.
func detectSchema(input *models.ContentInput) models.SchemaPresence {
	var sp models.SchemaPresence
	lower := strings.ToLower(input.RawHTML)

	types := make(map[string]bool)
	if strings.Contains(lower, "application/ld+json") {
		for _, m := range schemaTypeRe.FindAllStringSubmatch(input.RawHTML, -1) {
			types[strings.ToLower(m[1])] = true
		}
	}
	for _, t := range input.ExistingSchemas {
		types[strings.ToLower(t)] = true
	}

	for t := range types {
		switch t {
		case "article", "newsarticle", "blogposting":
			sp.Article = true
		case "faqpage":
			sp.FAQPage = true
		case "howto":
			sp.HowTo = true
		case "product", "organization", "person", "breadcrumblist":
			sp.Other = true
		}
	}
	sp.OpenGraph = strings.Contains(lower, `property="og:`)
	sp.TwitterCard = strings.Contains(lower, `name="twitter:`)
	return sp
}

// countExternalLinks counts distinct URLs in the text and HTML whose host
// differs from the input's own host.
func countExternalLinks(input *models.ContentInput) int {
	ownHost := normalizeHost(input.URL)
	seen := make(map[string]bool)

	consider := func(raw string) {
		if seen[raw] {
			return
		}
		seen[raw] = true
	}
	for _, m := range textURLRe.FindAllString(input.RawText, -1) {
		consider(m)
	}
	for _, m := range hrefRe.FindAllStringSubmatch(input.RawHTML, -1) {
		consider(m[1])
	}

	count := 0
	for raw := range seen {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue
		}
		if normalized := stripWWW(strings.ToLower(u.Hostname())); normalized != ownHost {
			count++
		}
	}
	return count
}

func normalizeHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return stripWWW(strings.ToLower(rawURL))
	}
	return stripWWW(strings.ToLower(u.Hostname()))
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

func transitionDensity(sentences []sentence) float64 {
	if len(sentences) == 0 {
		return 0
	}
	led := 0
	for _, s := range sentences {
		lower := strings.ToLower(s.text)
		for _, t := range transitionWords {
			if strings.HasPrefix(lower, t) {
				led++
				break
			}
		}
	}
	return float64(led) / float64(len(sentences))
}

// countAmbiguousLeads counts sentences after the first that open with a
// pronoun whose referent lives in a previous sentence.
func countAmbiguousLeads(sentences []sentence) int {
	count := 0
	for i, s := range sentences {
		if i == 0 {
			continue
		}
		lower := strings.ToLower(s.text) + " "
		for _, lead := range ambiguousLeads {
			if strings.HasPrefix(lower, lead) {
				count++
				break
			}
		}
	}
	return count
}

func daysSinceUpdate(input *models.ContentInput) *int {
	t := input.LastModified
	if t == nil {
		t = input.PublishedAt
	}
	if t == nil {
		return nil
	}
	days := int(time.Since(*t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
