package retrieval

import "fmt"

// Strategy selects how document evidence is gathered for a chat turn.
// The set is closed: Retrieve switches exhaustively and rejects
// anything Parse did not produce.
type Strategy string

const (
	StrategyNaive      Strategy = "naive"
	StrategyChunking   Strategy = "chunking"
	StrategyContextual Strategy = "contextual"
	StrategyMultiQuery Strategy = "multi_query"
)

// ParseStrategy validates a raw strategy string.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyNaive, StrategyChunking, StrategyContextual, StrategyMultiQuery:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown retrieval strategy %q", s)
	}
}

func (s Strategy) Valid() bool {
	_, err := ParseStrategy(string(s))
	return err == nil
}

// Description is surfaced by the strategies listing endpoint.
func (s Strategy) Description() string {
	switch s {
	case StrategyNaive:
		return "Single similarity query against the session index, top-k by score."
	case StrategyChunking:
		return "Same query mechanics as naive over the session's chunk_size/chunk_overlap configuration."
	case StrategyContextual:
		return "Prepends recent conversation history to the query before embedding."
	case StrategyMultiQuery:
		return "Retrieves for LLM-paraphrased query variants and merges by best score."
	default:
		return ""
	}
}

// All lists the supported strategies in a stable order.
func All() []Strategy {
	return []Strategy{StrategyNaive, StrategyChunking, StrategyContextual, StrategyMultiQuery}
}
