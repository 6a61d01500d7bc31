package prompt

import (
	"fmt"
	"strings"

	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/websearch"
)

// EvidenceBuilder assembles the single composition prompt for a chat
// turn. Evidence blocks appear in priority order: tool result, then
// internet search, then document evidence. Failed sources are noted so
// the model can acknowledge missing information instead of guessing.
type EvidenceBuilder struct {
	query        string
	toolName     string
	toolResult   string
	searchHits   []websearch.Result
	chunks       []*contract.ScoredDocumentChunk
	failureNotes []string
}

func NewEvidenceBuilder(query string) *EvidenceBuilder {
	return &EvidenceBuilder{
		query: query,
	}
}

func (b *EvidenceBuilder) WithToolResult(toolName, result string) *EvidenceBuilder {
	b.toolName = toolName
	b.toolResult = result
	return b
}

func (b *EvidenceBuilder) WithSearchResults(hits []websearch.Result) *EvidenceBuilder {
	b.searchHits = hits
	return b
}

func (b *EvidenceBuilder) WithDocumentChunks(chunks []*contract.ScoredDocumentChunk) *EvidenceBuilder {
	b.chunks = chunks
	return b
}

func (b *EvidenceBuilder) WithFailureNote(note string) *EvidenceBuilder {
	b.failureNotes = append(b.failureNotes, note)
	return b
}

func (b *EvidenceBuilder) Build() string {
	var prompt strings.Builder

	b.writeToolResult(&prompt)
	b.writeSearchResults(&prompt)
	b.writeDocumentEvidence(&prompt)
	b.writeFailureNotes(&prompt)
	b.writeTask(&prompt)
	b.writeGuidelines(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *EvidenceBuilder) writeToolResult(prompt *strings.Builder) {
	if b.toolResult == "" {
		return
	}

	prompt.WriteString("<tool_result>\n")
	prompt.WriteString(fmt.Sprintf("Tool %q returned:\n", b.toolName))
	prompt.WriteString(b.toolResult)
	prompt.WriteString("\n</tool_result>\n\n")
}

func (b *EvidenceBuilder) writeSearchResults(prompt *strings.Builder) {
	if len(b.searchHits) == 0 {
		return
	}

	prompt.WriteString("<internet_search_results>\n")
	for i, hit := range b.searchHits {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, hit.Title))
		if hit.Snippet != "" {
			prompt.WriteString(fmt.Sprintf("   %s\n", hit.Snippet))
		}
		if hit.URL != "" {
			prompt.WriteString(fmt.Sprintf("   Source: %s\n", hit.URL))
		}
	}
	prompt.WriteString("</internet_search_results>\n\n")
}

func (b *EvidenceBuilder) writeDocumentEvidence(prompt *strings.Builder) {
	if len(b.chunks) == 0 {
		return
	}

	prompt.WriteString("<document_evidence>\n")
	for i, sc := range b.chunks {
		prompt.WriteString(fmt.Sprintf("[Excerpt %d]\n", i+1))
		prompt.WriteString(sc.Chunk.Content)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("</document_evidence>\n\n")
}

func (b *EvidenceBuilder) writeFailureNotes(prompt *strings.Builder) {
	if len(b.failureNotes) == 0 {
		return
	}

	prompt.WriteString("<unavailable_sources>\n")
	for _, note := range b.failureNotes {
		prompt.WriteString("- ")
		prompt.WriteString(note)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</unavailable_sources>\n\n")
}

func (b *EvidenceBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are an assistant answering questions about the user's uploaded documents.\n")
	prompt.WriteString("Answer the user's question using the evidence provided above.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *EvidenceBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Prefer tool results over search results, and search results over document excerpts, when they conflict\n")
	prompt.WriteString("2. Base your answer on the evidence provided; do not invent facts\n")
	prompt.WriteString("3. If a source is listed as unavailable, acknowledge the gap when it matters for the answer\n")
	prompt.WriteString("4. If no evidence covers the question, answer from general knowledge and say that you are doing so\n")
	prompt.WriteString("5. Be clear and well-organized in your presentation\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *EvidenceBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Now provide your complete response:")
}
