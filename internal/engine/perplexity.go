package engine

import (
	"aiVisibilityGO/internal/models"
)

// perplexityAnalyzer models Perplexity's sourcing behavior: it cites fresh,
// well-attributed pages far more readily than evergreen unsourced ones.
type perplexityAnalyzer struct{}

func (a *perplexityAnalyzer) Platform() models.Platform { return models.PlatformPerplexity }

func (a *perplexityAnalyzer) Analyze(input *models.ContentInput, f *models.StructuralFeatures) models.PlatformScore {
	factors := []models.ScoreFactor{
		factor("freshness", freshnessScore(f.DaysSinceUpdate), 0.25,
			"Days since the content was published or updated"),
		factor("authority", authorityScore(f), 0.20,
			"Attribution, credentials and outbound sourcing"),
		factor("quotability", quotabilityScore(f, 25), 0.15,
			"Self-contained passages suited for cited answers"),
		factor("answer_structure", answerStructureScore(f, f.Structure.HasDirectAnswer), 0.15,
			"Question-and-answer shape of the content"),
		factor("entity_density", entityDensityScore(len(f.Entities), f.WordCount), 0.15,
			"Named-entity coverage per 1000 words"),
		factor("schema_markup", schemaScore(f.Schema, 25, 25, 25), 0.10,
			"Structured data presence"),
	}

	return models.PlatformScore{
		Platform:        a.Platform(),
		Score:           composeScore(factors),
		Factors:         factors,
		Recommendations: recommendationsForFactors(factors),
	}
}
