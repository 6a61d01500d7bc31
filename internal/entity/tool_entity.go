package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a session-scoped capability: an HTTP API endpoint or an
// in-process function binding. The api/function invariants (api needs
// ApiUrl, function needs FunctionName) are enforced at registration
// and again at invocation time.
type Tool struct {
	Id               uuid.UUID
	SessionId        uuid.UUID
	Name             string
	ToolType         string // api | function
	ApiUrl           string
	HttpMethod       string
	FunctionName     string
	Description      string
	ParamsDocstring  string
	ReturnsDocstring string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
