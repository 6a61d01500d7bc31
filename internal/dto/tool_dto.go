package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateToolRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	ToolType         string `json:"tool_type" validate:"required,oneof=api function"`
	ApiUrl           string `json:"api_url,omitempty" validate:"omitempty,url"`
	HttpMethod       string `json:"http_method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE get post put patch delete"`
	FunctionName     string `json:"function_name,omitempty" validate:"omitempty,max=100"`
	Description      string `json:"description,omitempty"`
	ParamsDocstring  string `json:"params_docstring,omitempty"`
	ReturnsDocstring string `json:"returns_docstring,omitempty"`
}

type UpdateToolRequest struct {
	Id               uuid.UUID `json:"-"`
	Name             *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	ApiUrl           *string   `json:"api_url,omitempty" validate:"omitempty,url"`
	HttpMethod       *string   `json:"http_method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE get post put patch delete"`
	FunctionName     *string   `json:"function_name,omitempty" validate:"omitempty,max=100"`
	Description      *string   `json:"description,omitempty"`
	ParamsDocstring  *string   `json:"params_docstring,omitempty"`
	ReturnsDocstring *string   `json:"returns_docstring,omitempty"`
}

type ToolResponse struct {
	Id               uuid.UUID  `json:"id"`
	SessionId        uuid.UUID  `json:"session_id"`
	Name             string     `json:"name"`
	ToolType         string     `json:"tool_type"`
	ApiUrl           string     `json:"api_url,omitempty"`
	HttpMethod       string     `json:"http_method,omitempty"`
	FunctionName     string     `json:"function_name,omitempty"`
	Description      string     `json:"description,omitempty"`
	ParamsDocstring  string     `json:"params_docstring,omitempty"`
	ReturnsDocstring string     `json:"returns_docstring,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}
