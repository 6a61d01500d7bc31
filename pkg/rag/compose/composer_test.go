package compose

import (
	"context"
	"errors"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/websearch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
	messages []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	f.messages = messages
	return f.response, f.err
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func documentEvidence() DocumentEvidence {
	return DocumentEvidence{
		Status: SourceOK,
		Chunks: []*contract.ScoredDocumentChunk{
			{
				Chunk:      &entity.DocumentChunk{Id: uuid.New(), Content: "the contract expires in March"},
				Similarity: 0.9,
			},
		},
	}
}

func TestComposeSingleCompletionWithHistory(t *testing.T) {
	provider := &fakeLLM{response: "It expires in March."}
	composer := NewComposer(provider)

	out, err := composer.Compose(context.Background(), &Input{
		Query: "when does the contract expire?",
		History: []llm.Message{
			{Role: "user", Content: "I uploaded our contract"},
			{Role: "assistant", Content: "Got it."},
		},
		Documents: documentEvidence(),
		Tool:      ToolEvidence{Status: SourceEmpty},
		Search:    SearchEvidence{Status: SourceEmpty},
	})

	assert.NoError(t, err)
	assert.Equal(t, "It expires in March.", out.Answer)
	assert.Equal(t, 1, provider.calls)
	if assert.Len(t, provider.messages, 3) {
		assert.Equal(t, "I uploaded our contract", provider.messages[0].Content)
		assert.Equal(t, "user", provider.messages[2].Role)
		assert.Contains(t, provider.messages[2].Content, "the contract expires in March")
		assert.Contains(t, provider.messages[2].Content, "when does the contract expire?")
	}
}

func TestComposeProvenance(t *testing.T) {
	cases := []struct {
		name     string
		input    Input
		expected string
	}{
		{
			name: "documents only",
			input: Input{
				Documents: documentEvidence(),
				Tool:      ToolEvidence{Status: SourceEmpty},
				Search:    SearchEvidence{Status: SourceEmpty},
			},
			expected: "document",
		},
		{
			name: "tool only",
			input: Input{
				Documents: DocumentEvidence{Status: SourceEmpty},
				Tool:      ToolEvidence{Status: SourceOK, ToolName: "weather", Result: "22C"},
				Search:    SearchEvidence{Status: SourceEmpty},
			},
			expected: "tool",
		},
		{
			name: "search only",
			input: Input{
				Documents: DocumentEvidence{Status: SourceEmpty},
				Tool:      ToolEvidence{Status: SourceEmpty},
				Search: SearchEvidence{
					Status:  SourceOK,
					Results: []websearch.Result{{Title: "headline", URL: "https://example.com"}},
				},
			},
			expected: "search",
		},
		{
			name: "tool and documents",
			input: Input{
				Documents: documentEvidence(),
				Tool:      ToolEvidence{Status: SourceOK, ToolName: "weather", Result: "22C"},
				Search:    SearchEvidence{Status: SourceEmpty},
			},
			expected: "mixed",
		},
		{
			name: "nothing contributed",
			input: Input{
				Documents: DocumentEvidence{Status: SourceEmpty},
				Tool:      ToolEvidence{Status: SourceEmpty},
				Search:    SearchEvidence{Status: SourceFailed, Err: errors.New("offline")},
			},
			expected: "none",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			composer := NewComposer(&fakeLLM{response: "answer"})
			in := tc.input
			in.Query = "question"

			out, err := composer.Compose(context.Background(), &in)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, out.Provenance)
		})
	}
}

func TestComposeAnnotatesFailedSources(t *testing.T) {
	provider := &fakeLLM{response: "partial answer"}
	composer := NewComposer(provider)

	out, err := composer.Compose(context.Background(), &Input{
		Query:     "what changed?",
		Documents: DocumentEvidence{Status: SourceFailed, Err: errors.New("db timeout")},
		Tool:      ToolEvidence{Status: SourceFailed, ToolName: "weather", Err: errors.New("status 502")},
		Search:    SearchEvidence{Status: SourceFailed, Err: errors.New("unreachable")},
	})

	assert.NoError(t, err)
	assert.Equal(t, "none", out.Provenance)
	prompt := provider.messages[len(provider.messages)-1].Content
	assert.Contains(t, prompt, "document retrieval failed")
	assert.Contains(t, prompt, `tool "weather" failed`)
	assert.Contains(t, prompt, "internet search was unavailable")
}

func TestComposeCompletionFailureFailsTurn(t *testing.T) {
	composer := NewComposer(&fakeLLM{err: errors.New("model offline")})

	_, err := composer.Compose(context.Background(), &Input{Query: "q"})

	assert.ErrorContains(t, err, "completion failed")
}

func TestComposeCancelledContextSkipsCompletion(t *testing.T) {
	provider := &fakeLLM{response: "never"}
	composer := NewComposer(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := composer.Compose(ctx, &Input{Query: "q"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.calls)
}
