package engine

import (
	"aiVisibilityGO/internal/models"
)

// bingAnalyzer models Bing Copilot: the heaviest schema weighting of any
// platform and a tighter direct-answer window of 80 to 300 characters.
type bingAnalyzer struct{}

const (
	bingDirectAnswerMin = 80
	bingDirectAnswerMax = 300
)

func (a *bingAnalyzer) Platform() models.Platform { return models.PlatformBingCopilot }

func (a *bingAnalyzer) Analyze(input *models.ContentInput, f *models.StructuralFeatures) models.PlatformScore {
	directAnswer := f.FirstParagraphLen >= bingDirectAnswerMin &&
		f.FirstParagraphLen <= bingDirectAnswerMax

	factors := []models.ScoreFactor{
		factor("schema_markup", schemaScore(f.Schema, 30, 25, 30), 0.25,
			"Structured data, Bing's strongest machine-readable signal"),
		factor("entity_clarity", entityDensityScore(len(f.Entities), f.WordCount), 0.20,
			"Explicitly named subjects per 1000 words"),
		factor("answer_structure", answerStructureScore(f, directAnswer), 0.20,
			"Concise opening answer within Copilot's snippet window"),
		factor("quotability", quotabilityScore(f, 25), 0.15,
			"Self-contained passages suited for Copilot answers"),
		factor("freshness", freshnessScore(f.DaysSinceUpdate), 0.10,
			"Days since the content was published or updated"),
		factor("authority", authorityScore(f), 0.10,
			"Attribution, credentials and outbound sourcing"),
	}

	return models.PlatformScore{
		Platform:        a.Platform(),
		Score:           composeScore(factors),
		Factors:         factors,
		Recommendations: recommendationsForFactors(factors),
	}
}
