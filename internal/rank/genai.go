package rank

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// genaiEngine ranks lemmas using Google's Gemini embedding API, trimmed to
// the single-text Embed path Select needs.
type genaiEngine struct {
	client   *genai.Client
	model    string
	taskType string
	logger   *zap.Logger
}

func newGenAIEngine(apiKey, model, taskType string, logger *zap.Logger) (*genaiEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("rank: genai provider requires an API key")
	}
	if model == "" {
		model = "gemini-embedding-001"
	}
	if taskType == "" {
		taskType = "RETRIEVAL_QUERY"
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("rank: creating genai client: %w", err)
	}
	return &genaiEngine{client: client, model: model, taskType: taskType, logger: logger}, nil
}

func (e *genaiEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	dim := int32(e.Dimensions())
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	})
	if err != nil {
		e.logger.Warn("rank: genai embed failed", zap.Error(err))
		return nil, fmt.Errorf("rank: genai embed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("rank: genai returned no embeddings")
	}
	return result.Embeddings[0].Values, nil
}

func (e *genaiEngine) Dimensions() int { return 3072 }
func (e *genaiEngine) Name() string    { return fmt.Sprintf("genai:%s", e.model) }
