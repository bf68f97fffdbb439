package engine

import (
	"aiVisibilityGO/internal/models"
)

// Analyzer scores one platform from the shared structural features. All
// implementations are pure and safe to run concurrently over the same
// snapshot.
type Analyzer interface {
	Platform() models.Platform
	Analyze(input *models.ContentInput, features *models.StructuralFeatures) models.PlatformScore
}

// DefaultAnalyzers returns one analyzer per supported platform, in report
// order.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		&googleAnalyzer{},
		&chatGPTAnalyzer{},
		&perplexityAnalyzer{},
		&bingAnalyzer{},
		&claudeAnalyzer{},
	}
}

func factor(name string, score int, weight float64, desc string) models.ScoreFactor {
	return models.ScoreFactor{Name: name, Score: score, Weight: weight, Description: desc}
}
