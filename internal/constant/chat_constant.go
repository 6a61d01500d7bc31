package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"

	// Provenance tags recorded on assistant messages
	ProvenanceDocument = "document"
	ProvenanceTool     = "tool"
	ProvenanceSearch   = "search"
	ProvenanceMixed    = "mixed"
	ProvenanceNone     = "none"

	// Tool types
	ToolTypeAPI      = "api"
	ToolTypeFunction = "function"

	// Session defaults
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5

	// Budget (in characters) for conversation history injected into
	// contextual retrieval and composer prompts. Oldest messages are
	// dropped first when the budget is exceeded.
	DefaultHistoryBudget = 4000

	// Tool HTTP responses are cut to this length before entering the
	// prompt; the full body is never persisted.
	ToolResultMaxChars = 2000

	// Ollama Configuration
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.1:8b"
)
