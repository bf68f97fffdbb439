package citation

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"aiVisibilityGO/internal/models"
)

// chatSource checks citations through an OpenAI-compatible chat API: it
// asks the model the query and scans the answer text for URLs on the
// target domain. One implementation serves both ChatGPT and Perplexity,
// which speaks the same wire protocol behind a different base URL.
type chatSource struct {
	platform     models.Platform
	client       openai.Client
	model        string
	costPerQuery float64
	configured   bool
}

// NewChatGPTSource builds the ChatGPT citation source. An empty apiKey
// yields an unconfigured source the checker will skip.
func NewChatGPTSource(apiKey, model string) Source {
	if model == "" {
		model = "gpt-4o-search-preview"
	}
	return &chatSource{
		platform:     models.PlatformChatGPT,
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:        model,
		costPerQuery: 0.01,
		configured:   apiKey != "",
	}
}

func (s *chatSource) Platform() models.Platform { return s.platform }
func (s *chatSource) Configured() bool          { return s.configured }
func (s *chatSource) CostPerQuery() float64     { return s.costPerQuery }

func (s *chatSource) Query(ctx context.Context, domain, query string) (QueryResult, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Answer the question and include source URLs for any facts you cite."),
			openai.UserMessage(query),
		},
		MaxTokens: openai.Int(1024),
	})
	if err != nil {
		return QueryResult{}, fmt.Errorf("%s chat completion: %w", s.platform, err)
	}
	if len(resp.Choices) == 0 {
		return QueryResult{}, fmt.Errorf("%s chat completion: empty choices", s.platform)
	}

	cites := matchingCitations(extractURLs(resp.Choices[0].Message.Content), domain)
	return QueryResult{Cited: len(cites) > 0, Citations: cites}, nil
}
