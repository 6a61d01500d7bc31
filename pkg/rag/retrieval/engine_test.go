package retrieval

import (
	"context"
	"errors"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	queries []string
	err     error
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, text)
	return []float32{float32(len(f.queries)), 0, 0}, nil
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return f.response, f.err
}

func newTestEngine(embedder QueryEmbedder, paraphrases string) *Engine {
	return NewEngine(embedder, &fakeLLM{response: paraphrases})
}

func newTestEngineErr(embedder QueryEmbedder, err error) *Engine {
	return NewEngine(embedder, &fakeLLM{err: err})
}

type fakeChunkRepo struct {
	contract.DocumentChunkRepository

	searches  int
	sessions  []uuid.UUID
	limits    []int
	resultSet [][]*contract.ScoredDocumentChunk
	err       error
}

func (f *fakeChunkRepo) SearchSimilarWithScore(_ context.Context, _ []float32, limit int, sessionId uuid.UUID, _ float64) ([]*contract.ScoredDocumentChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sessions = append(f.sessions, sessionId)
	f.limits = append(f.limits, limit)

	idx := f.searches
	f.searches++
	if idx < len(f.resultSet) {
		return f.resultSet[idx], nil
	}
	return nil, nil
}

func scored(docId uuid.UUID, chunkIndex int, similarity float64) *contract.ScoredDocumentChunk {
	return &contract.ScoredDocumentChunk{
		Chunk: &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: docId,
			ChunkIndex: chunkIndex,
			Content:    "chunk",
		},
		Similarity: similarity,
	}
}

func TestRetrieveNaiveReturnsRepositoryOrder(t *testing.T) {
	sessionId := uuid.New()
	docId := uuid.New()
	results := []*contract.ScoredDocumentChunk{
		scored(docId, 0, 0.91),
		scored(docId, 1, 0.85),
	}
	repo := &fakeChunkRepo{resultSet: [][]*contract.ScoredDocumentChunk{results}}
	engine := newTestEngine(&fakeEmbedder{}, "")

	got, err := engine.Retrieve(context.Background(), repo, sessionId, "what is chapter one about", StrategyNaive, 5, nil)

	assert.NoError(t, err)
	assert.Equal(t, results, got)
	assert.Equal(t, []uuid.UUID{sessionId}, repo.sessions)
	assert.Equal(t, []int{5}, repo.limits)
}

func TestRetrieveDefaultsKWhenUnset(t *testing.T) {
	repo := &fakeChunkRepo{}
	engine := newTestEngine(&fakeEmbedder{}, "")

	_, err := engine.Retrieve(context.Background(), repo, uuid.New(), "query", StrategyNaive, 0, nil)

	assert.NoError(t, err)
	assert.Equal(t, []int{5}, repo.limits)
}

func TestRetrieveEmptyIndexYieldsEmptyNotError(t *testing.T) {
	repo := &fakeChunkRepo{}
	engine := newTestEngine(&fakeEmbedder{}, "")

	got, err := engine.Retrieve(context.Background(), repo, uuid.New(), "anything", StrategyChunking, 3, nil)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveUnknownStrategyFails(t *testing.T) {
	engine := newTestEngine(&fakeEmbedder{}, "")

	_, err := engine.Retrieve(context.Background(), &fakeChunkRepo{}, uuid.New(), "q", Strategy("reranking"), 3, nil)

	assert.Error(t, err)
}

func TestRetrieveEmbeddingFailurePropagates(t *testing.T) {
	engine := newTestEngine(&fakeEmbedder{err: errors.New("embedding backend down")}, "")

	_, err := engine.Retrieve(context.Background(), &fakeChunkRepo{}, uuid.New(), "q", StrategyNaive, 3, nil)

	assert.ErrorContains(t, err, "embed query")
}

func TestRetrieveContextualPrependsHistory(t *testing.T) {
	embedder := &fakeEmbedder{}
	engine := newTestEngine(embedder, "")
	repo := &fakeChunkRepo{}

	_, err := engine.Retrieve(context.Background(), repo, uuid.New(), "and the second one?", StrategyContextual, 3, []llm.Message{
		{Role: "user", Content: "summarize chapter one"},
		{Role: "assistant", Content: "chapter one covers the setup"},
	})

	assert.NoError(t, err)
	if assert.Len(t, embedder.queries, 1) {
		assert.Contains(t, embedder.queries[0], "user: summarize chapter one")
		assert.Contains(t, embedder.queries[0], "assistant: chapter one covers the setup")
		assert.Contains(t, embedder.queries[0], "and the second one?")
	}
}

func TestRetrieveMultiQueryDedupesByMaxScore(t *testing.T) {
	sessionId := uuid.New()
	docId := uuid.New()

	shared := scored(docId, 0, 0.60)
	sharedAgain := &contract.ScoredDocumentChunk{Chunk: shared.Chunk, Similarity: 0.88}
	other := scored(docId, 1, 0.75)

	repo := &fakeChunkRepo{resultSet: [][]*contract.ScoredDocumentChunk{
		{shared},             // original query
		{sharedAgain, other}, // paraphrase
	}}
	engine := newTestEngine(&fakeEmbedder{}, "How does the system chunk documents?")

	got, err := engine.Retrieve(context.Background(), repo, sessionId, "explain chunking", StrategyMultiQuery, 5, nil)

	assert.NoError(t, err)
	if assert.Len(t, got, 2) {
		// The shared chunk appears once, with its best score first.
		assert.Equal(t, shared.Chunk.Id, got[0].Chunk.Id)
		assert.Equal(t, 0.88, got[0].Similarity)
		assert.Equal(t, other.Chunk.Id, got[1].Chunk.Id)
	}
}

func TestRetrieveMultiQueryCapsResultAtK(t *testing.T) {
	docId := uuid.New()
	repo := &fakeChunkRepo{resultSet: [][]*contract.ScoredDocumentChunk{
		{scored(docId, 0, 0.9), scored(docId, 1, 0.8)},
		{scored(docId, 2, 0.7), scored(docId, 3, 0.6)},
	}}
	engine := newTestEngine(&fakeEmbedder{}, "variant")

	got, err := engine.Retrieve(context.Background(), repo, uuid.New(), "q", StrategyMultiQuery, 2, nil)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 0.9, got[0].Similarity)
	assert.Equal(t, 0.8, got[1].Similarity)
}

func TestRetrieveMultiQueryParaphraseFailureFallsBackToOriginal(t *testing.T) {
	repo := &fakeChunkRepo{resultSet: [][]*contract.ScoredDocumentChunk{
		{scored(uuid.New(), 0, 0.9)},
	}}
	engine := newTestEngineErr(&fakeEmbedder{}, errors.New("model offline"))

	got, err := engine.Retrieve(context.Background(), repo, uuid.New(), "q", StrategyMultiQuery, 5, nil)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, repo.searches)
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"naive", "chunking", "contextual", "multi_query"} {
		s, err := ParseStrategy(name)
		assert.NoError(t, err)
		assert.Equal(t, name, string(s))
	}

	_, err := ParseStrategy("hyde")
	assert.Error(t, err)
}
