package prompt

import (
	"strings"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/websearch"

	"github.com/stretchr/testify/assert"
)

func TestBuildEvidenceOrdering(t *testing.T) {
	built := NewEvidenceBuilder("what's the temperature trend?").
		WithToolResult("weather", "22C and sunny").
		WithSearchResults([]websearch.Result{
			{Title: "Forecast", URL: "https://example.com/forecast", Snippet: "Warm week ahead"},
		}).
		WithDocumentChunks([]*contract.ScoredDocumentChunk{
			{Chunk: &entity.DocumentChunk{Content: "Historical averages hover around 18C"}, Similarity: 0.8},
		}).
		Build()

	toolPos := strings.Index(built, "<tool_result>")
	searchPos := strings.Index(built, "<internet_search_results>")
	docPos := strings.Index(built, "<document_evidence>")
	queryPos := strings.Index(built, "<user_question>")

	assert.True(t, toolPos >= 0 && searchPos > toolPos, "tool evidence must precede search evidence")
	assert.True(t, docPos > searchPos, "search evidence must precede document evidence")
	assert.True(t, queryPos > docPos, "the question comes last")

	assert.Contains(t, built, "22C and sunny")
	assert.Contains(t, built, "Source: https://example.com/forecast")
	assert.Contains(t, built, "[Excerpt 1]")
	assert.Contains(t, built, "what's the temperature trend?")
}

func TestBuildOmitsEmptyBlocks(t *testing.T) {
	built := NewEvidenceBuilder("hello").Build()

	assert.NotContains(t, built, "<tool_result>")
	assert.NotContains(t, built, "<internet_search_results>")
	assert.NotContains(t, built, "<document_evidence>")
	assert.NotContains(t, built, "<unavailable_sources>")
	assert.Contains(t, built, "<task>")
	assert.Contains(t, built, "<guidelines>")
}

func TestBuildFailureNotes(t *testing.T) {
	built := NewEvidenceBuilder("q").
		WithFailureNote("internet search was unavailable").
		Build()

	assert.Contains(t, built, "<unavailable_sources>")
	assert.Contains(t, built, "- internet search was unavailable")
}
