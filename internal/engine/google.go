package engine

import (
	"aiVisibilityGO/internal/models"
)

// googleAnalyzer models AI Overviews: answer structure and E-E-A-T carry
// the most weight, and the direct-answer test is a first-sentence length
// check rather than a paragraph window.
type googleAnalyzer struct{}

func (a *googleAnalyzer) Platform() models.Platform { return models.PlatformGoogleAIO }

func (a *googleAnalyzer) Analyze(input *models.ContentInput, f *models.StructuralFeatures) models.PlatformScore {
	directAnswer := f.FirstSentenceLen > 50

	factors := []models.ScoreFactor{
		factor("answer_structure", answerStructureScore(f, directAnswer), 0.25,
			"Direct answers, FAQ and step-by-step sections AI Overviews can lift"),
		factor("schema_markup", schemaScore(f.Schema, 25, 30, 25), 0.20,
			"Structured data Google parses for Overview sourcing"),
		factor("eeat_signals", authorityScore(f), 0.20,
			"Experience, expertise, authority and trust markers"),
		factor("entity_density", entityDensityScore(len(f.Entities), f.WordCount), 0.15,
			"Named-entity coverage per 1000 words"),
		factor("quotability", quotabilityScore(f, 25), 0.10,
			"Self-contained passages suited for Overview snippets"),
		factor("freshness", freshnessScore(f.DaysSinceUpdate), 0.10,
			"Days since the content was published or updated"),
	}

	return models.PlatformScore{
		Platform:        a.Platform(),
		Score:           composeScore(factors),
		Factors:         factors,
		Recommendations: recommendationsForFactors(factors),
	}
}
