package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"docchat-be/internal/constant"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/llm"

	"github.com/google/uuid"
)

// maxQueryVariants bounds multi_query paraphrase generation.
const maxQueryVariants = 3

// Engine gathers document evidence for a session. All retrieval is
// scoped to the session's own chunks; an empty index yields an empty
// slice, never an error.
type Engine struct {
	embedder QueryEmbedder
	provider llm.LLMProvider
}

// QueryEmbedder is the slice of the embedding provider the engine
// needs: one query string in, one vector out.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

func NewEngine(embedder QueryEmbedder, provider llm.LLMProvider) *Engine {
	return &Engine{
		embedder: embedder,
		provider: provider,
	}
}

// Retrieve runs the given strategy and returns scored chunks, best
// first. Ties are already broken by the repository's ordering
// (document order, then chunk position).
func (e *Engine) Retrieve(
	ctx context.Context,
	chunkRepo contract.DocumentChunkRepository,
	sessionId uuid.UUID,
	query string,
	strategy Strategy,
	k int,
	history []llm.Message,
) ([]*contract.ScoredDocumentChunk, error) {
	if k <= 0 {
		k = constant.DefaultTopK
	}

	switch strategy {
	case StrategyNaive, StrategyChunking:
		// chunking differs from naive only at index time (session
		// chunk configuration); the query path is identical.
		return e.retrieveSimilar(ctx, chunkRepo, sessionId, query, k)
	case StrategyContextual:
		return e.retrieveContextual(ctx, chunkRepo, sessionId, query, k, history)
	case StrategyMultiQuery:
		return e.retrieveMultiQuery(ctx, chunkRepo, sessionId, query, k)
	default:
		return nil, fmt.Errorf("unknown retrieval strategy %q", strategy)
	}
}

func (e *Engine) retrieveSimilar(
	ctx context.Context,
	chunkRepo contract.DocumentChunkRepository,
	sessionId uuid.UUID,
	query string,
	k int,
) ([]*contract.ScoredDocumentChunk, error) {
	vector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return chunkRepo.SearchSimilarWithScore(ctx, vector, k, sessionId, 0)
}

func (e *Engine) retrieveContextual(
	ctx context.Context,
	chunkRepo contract.DocumentChunkRepository,
	sessionId uuid.UUID,
	query string,
	k int,
	history []llm.Message,
) ([]*contract.ScoredDocumentChunk, error) {
	augmented := query
	if len(history) > 0 {
		var sb strings.Builder
		for _, msg := range history {
			sb.WriteString(msg.Role)
			sb.WriteString(": ")
			sb.WriteString(msg.Content)
			sb.WriteString("\n")
		}
		sb.WriteString(query)
		augmented = sb.String()
	}

	return e.retrieveSimilar(ctx, chunkRepo, sessionId, augmented, k)
}

func (e *Engine) retrieveMultiQuery(
	ctx context.Context,
	chunkRepo contract.DocumentChunkRepository,
	sessionId uuid.UUID,
	query string,
	k int,
) ([]*contract.ScoredDocumentChunk, error) {
	variants := e.paraphraseQuery(ctx, query)

	// The original query always participates.
	queries := append([]string{query}, variants...)

	// Union per-variant top-k, dedupe by chunk id keeping the best
	// score. Max, not sum: reappearing in several variants is not
	// itself evidence of relevance.
	best := make(map[uuid.UUID]*contract.ScoredDocumentChunk)
	for _, q := range queries {
		scored, err := e.retrieveSimilar(ctx, chunkRepo, sessionId, q, k)
		if err != nil {
			return nil, err
		}
		for _, sc := range scored {
			existing, seen := best[sc.Chunk.Id]
			if !seen || sc.Similarity > existing.Similarity {
				best[sc.Chunk.Id] = sc
			}
		}
	}

	merged := make([]*contract.ScoredDocumentChunk, 0, len(best))
	for _, sc := range best {
		merged = append(merged, sc)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Similarity != merged[j].Similarity {
			return merged[i].Similarity > merged[j].Similarity
		}
		if merged[i].Chunk.DocumentId != merged[j].Chunk.DocumentId {
			return merged[i].Chunk.DocumentId.String() < merged[j].Chunk.DocumentId.String()
		}
		return merged[i].Chunk.ChunkIndex < merged[j].Chunk.ChunkIndex
	})

	if len(merged) > k {
		merged = merged[:k]
	}
	return merged, nil
}

// paraphraseQuery asks the model for alternative phrasings. Failures
// fall back to the original query alone.
func (e *Engine) paraphraseQuery(ctx context.Context, query string) []string {
	prompt := fmt.Sprintf(
		"Rewrite the following question in %d different ways that preserve its meaning. "+
			"Answer with one rewrite per line and nothing else.\n\nQuestion: %s",
		maxQueryVariants, query,
	)

	response, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err != nil {
		return nil
	}

	var variants []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		if line == "" || strings.EqualFold(line, query) {
			continue
		}
		variants = append(variants, line)
		if len(variants) >= maxQueryVariants {
			break
		}
	}
	return variants
}
