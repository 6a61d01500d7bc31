package compose

import (
	"context"
	"fmt"

	"docchat-be/internal/constant"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/rag/prompt"
	"docchat-be/pkg/websearch"
)

// SourceStatus tracks the outcome of one evidence source. A failed
// source annotates the prompt instead of failing the turn.
type SourceStatus string

const (
	SourceOK     SourceStatus = "ok"
	SourceEmpty  SourceStatus = "empty"
	SourceFailed SourceStatus = "failed"
)

type DocumentEvidence struct {
	Status SourceStatus
	Chunks []*contract.ScoredDocumentChunk
	Err    error
}

type ToolEvidence struct {
	Status   SourceStatus
	ToolName string
	Result   string
	Err      error
}

type SearchEvidence struct {
	Status  SourceStatus
	Results []websearch.Result
	Err     error
}

// Input is everything the composer needs for one turn.
type Input struct {
	Query     string
	History   []llm.Message
	Documents DocumentEvidence
	Tool      ToolEvidence
	Search    SearchEvidence
}

// Output is the assistant reply plus its provenance tag.
type Output struct {
	Answer     string
	Provenance string
}

// Composer issues exactly one completion per turn. A model failure
// fails the whole turn; evidence-source failures do not.
type Composer struct {
	provider llm.LLMProvider
}

func NewComposer(provider llm.LLMProvider) *Composer {
	return &Composer{
		provider: provider,
	}
}

func (c *Composer) Compose(ctx context.Context, in *Input, opts ...llm.Option) (*Output, error) {
	builder := prompt.NewEvidenceBuilder(in.Query)

	if in.Tool.Status == SourceOK {
		builder.WithToolResult(in.Tool.ToolName, in.Tool.Result)
	}
	if in.Search.Status == SourceOK {
		builder.WithSearchResults(in.Search.Results)
	}
	if in.Documents.Status == SourceOK {
		builder.WithDocumentChunks(in.Documents.Chunks)
	}

	if in.Tool.Status == SourceFailed {
		builder.WithFailureNote(fmt.Sprintf("tool %q failed: %v", in.Tool.ToolName, in.Tool.Err))
	}
	if in.Search.Status == SourceFailed {
		builder.WithFailureNote("internet search was unavailable")
	}
	if in.Documents.Status == SourceFailed {
		builder.WithFailureNote("document retrieval failed")
	}

	// The client may have gone away while evidence was gathered; do
	// not spend a completion on a dead request.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(in.History)+1)
	messages = append(messages, in.History...)
	messages = append(messages, llm.Message{
		Role:    "user",
		Content: builder.Build(),
	})

	answer, err := c.provider.Chat(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &Output{
		Answer:     answer,
		Provenance: c.provenance(in),
	}, nil
}

// provenance reports which sources actually contributed evidence.
func (c *Composer) provenance(in *Input) string {
	contributed := []string{}
	if in.Tool.Status == SourceOK {
		contributed = append(contributed, constant.ProvenanceTool)
	}
	if in.Search.Status == SourceOK {
		contributed = append(contributed, constant.ProvenanceSearch)
	}
	if in.Documents.Status == SourceOK && len(in.Documents.Chunks) > 0 {
		contributed = append(contributed, constant.ProvenanceDocument)
	}

	switch len(contributed) {
	case 0:
		return constant.ProvenanceNone
	case 1:
		return contributed[0]
	default:
		return constant.ProvenanceMixed
	}
}
