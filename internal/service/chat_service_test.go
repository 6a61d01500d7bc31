package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/pkg/rag/compose"
	"docchat-be/pkg/rag/retrieval"
	"docchat-be/pkg/websearch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeSearchClient struct {
	calls   int
	results []websearch.Result
	err     error
}

func (f *fakeSearchClient) Search(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
	f.calls++
	return f.results, f.err
}

func newSearchTestService(client websearch.Client) *chatService {
	return &chatService{
		searchClient:     client,
		logger:           noopLogger{},
		searchEnabled:    true,
		searchMaxResults: 5,
		actionTimeout:    time.Second,
	}
}

func TestGatherSearchEvidenceDisabledSessionNeverSearches(t *testing.T) {
	client := &fakeSearchClient{}
	svc := newSearchTestService(client)

	session := &entity.Session{Id: uuid.New(), InternetSearchEnabled: false}
	evidence := svc.gatherSearchEvidence(context.Background(), session, &dto.SendMessageRequest{
		Message: "what's the latest news today?",
	})

	assert.Equal(t, compose.SourceEmpty, evidence.Status)
	assert.Equal(t, 0, client.calls)
}

func TestGatherSearchEvidenceTriggeredByCurrencySignals(t *testing.T) {
	client := &fakeSearchClient{results: []websearch.Result{{Title: "headline"}}}
	svc := newSearchTestService(client)

	session := &entity.Session{Id: uuid.New(), InternetSearchEnabled: true}
	evidence := svc.gatherSearchEvidence(context.Background(), session, &dto.SendMessageRequest{
		Message: "what's the latest news today?",
	})

	assert.Equal(t, compose.SourceOK, evidence.Status)
	assert.Equal(t, 1, client.calls)
}

func TestGatherSearchEvidenceSkipsGeneralKnowledgeQuestions(t *testing.T) {
	client := &fakeSearchClient{}
	svc := newSearchTestService(client)

	session := &entity.Session{Id: uuid.New(), InternetSearchEnabled: true}
	evidence := svc.gatherSearchEvidence(context.Background(), session, &dto.SendMessageRequest{
		Message: "what is the capital of France?",
	})

	assert.Equal(t, compose.SourceEmpty, evidence.Status)
	assert.Equal(t, 0, client.calls)
}

func TestGatherSearchEvidencePreferInternetFirstOverridesHeuristic(t *testing.T) {
	client := &fakeSearchClient{results: []websearch.Result{{Title: "headline"}}}
	svc := newSearchTestService(client)

	session := &entity.Session{Id: uuid.New(), InternetSearchEnabled: true}
	evidence := svc.gatherSearchEvidence(context.Background(), session, &dto.SendMessageRequest{
		Message:             "what is the capital of France?",
		PreferInternetFirst: true,
	})

	assert.Equal(t, compose.SourceOK, evidence.Status)
	assert.Equal(t, 1, client.calls)
}

func TestGatherSearchEvidenceFailureDegrades(t *testing.T) {
	client := &fakeSearchClient{err: errors.New("provider unreachable")}
	svc := newSearchTestService(client)

	session := &entity.Session{Id: uuid.New(), InternetSearchEnabled: true}
	evidence := svc.gatherSearchEvidence(context.Background(), session, &dto.SendMessageRequest{
		Message: "latest news please",
	})

	assert.Equal(t, compose.SourceFailed, evidence.Status)
	assert.Error(t, evidence.Err)
}

func TestResolveStrategyRequestOverridesSession(t *testing.T) {
	svc := &chatService{}
	session := &entity.Session{RetrievalStrategy: "contextual"}

	strategy, k, err := svc.resolveStrategy(session, &dto.SendMessageRequest{
		RagConfig: &dto.RagConfigDTO{Strategy: "multi_query", K: 10},
	})

	assert.NoError(t, err)
	assert.Equal(t, retrieval.StrategyMultiQuery, strategy)
	assert.Equal(t, 10, k)
}

func TestResolveStrategyDefaults(t *testing.T) {
	svc := &chatService{}
	session := &entity.Session{RetrievalStrategy: "naive"}

	strategy, k, err := svc.resolveStrategy(session, &dto.SendMessageRequest{})

	assert.NoError(t, err)
	assert.Equal(t, retrieval.StrategyNaive, strategy)
	assert.Equal(t, 5, k)
}

func TestResolveStrategyRejectsUnknown(t *testing.T) {
	svc := &chatService{}
	session := &entity.Session{RetrievalStrategy: "reranking"}

	_, _, err := svc.resolveStrategy(session, &dto.SendMessageRequest{})

	assert.Error(t, err)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 80))
	assert.Equal(t, "héllo", truncateRunes("héllo wörld", 5))
}
