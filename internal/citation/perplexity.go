package citation

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"aiVisibilityGO/internal/models"
)

const perplexityBaseURL = "https://api.perplexity.ai"

// NewPerplexitySource builds the Perplexity citation source. Perplexity
// exposes an OpenAI-compatible API, so this is the chat source pointed at
// its endpoint with the sonar model.
func NewPerplexitySource(apiKey, model string) Source {
	if model == "" {
		model = "sonar"
	}
	return &chatSource{
		platform: models.PlatformPerplexity,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(perplexityBaseURL),
		),
		model:        model,
		costPerQuery: 0.005,
		configured:   apiKey != "",
	}
}
