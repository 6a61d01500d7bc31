package retrieval

import (
	"context"
	"fmt"

	"docchat-be/pkg/embedding"
)

// ProviderEmbedder adapts an embedding.EmbeddingProvider to the
// engine's QueryEmbedder.
type ProviderEmbedder struct {
	provider embedding.EmbeddingProvider
}

func NewProviderEmbedder(provider embedding.EmbeddingProvider) *ProviderEmbedder {
	return &ProviderEmbedder{provider: provider}
}

func (p *ProviderEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding provider returned an empty vector")
	}
	return resp.Embedding.Values, nil
}
