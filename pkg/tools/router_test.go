package tools

import (
	"context"
	"errors"
	"testing"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func weatherTool() *entity.Tool {
	return &entity.Tool{
		Id:          uuid.New(),
		Name:        "weather",
		ToolType:    constant.ToolTypeAPI,
		ApiUrl:      "https://api.example.com/weather",
		HttpMethod:  "GET",
		Description: "Current weather for a city",
	}
}

func TestRouteExplicitInvocation(t *testing.T) {
	provider := &fakeLLM{}
	router := NewRouter(provider)

	inv, err := router.Route(context.Background(), `run weather with {"city": "Paris"}`, []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	if assert.NotNil(t, inv) {
		assert.Equal(t, "weather", inv.Tool.Name)
		assert.Equal(t, "Paris", inv.Args["city"])
	}
	// Explicit commands never consult the model.
	assert.Equal(t, 0, provider.calls)
}

func TestRouteExplicitUnknownToolYieldsNoInvocation(t *testing.T) {
	router := NewRouter(&fakeLLM{})

	inv, err := router.Route(context.Background(), `run unknown_tool with {}`, []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestRouteExplicitToolNameIsCaseSensitive(t *testing.T) {
	router := NewRouter(&fakeLLM{})

	inv, err := router.Route(context.Background(), `run Weather with {"city": "Paris"}`, []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestRouteExplicitMalformedArgs(t *testing.T) {
	router := NewRouter(&fakeLLM{})

	inv, err := router.Route(context.Background(), `run weather with {"city": }`, []*entity.Tool{weatherTool()})

	assert.Nil(t, inv)
	var parseErr *constant.ToolArgumentParseError
	if assert.ErrorAs(t, err, &parseErr) {
		assert.Equal(t, "weather", parseErr.ToolName)
	}
}

func TestRouteNoRegisteredTools(t *testing.T) {
	provider := &fakeLLM{}
	router := NewRouter(provider)

	inv, err := router.Route(context.Background(), "what's the weather in Paris?", nil)

	assert.NoError(t, err)
	assert.Nil(t, inv)
	assert.Equal(t, 0, provider.calls)
}

func TestRouteSelectionPicksTool(t *testing.T) {
	provider := &fakeLLM{response: `{"tool": "weather", "args": {"city": "Paris"}}`}
	router := NewRouter(provider)

	inv, err := router.Route(context.Background(), "what's the weather in Paris?", []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	if assert.NotNil(t, inv) {
		assert.Equal(t, "weather", inv.Tool.Name)
		assert.Equal(t, "Paris", inv.Args["city"])
	}
}

func TestRouteSelectionStripsMarkdownFences(t *testing.T) {
	provider := &fakeLLM{response: "```json\n{\"tool\": \"weather\", \"args\": {}}\n```"}
	router := NewRouter(provider)

	inv, err := router.Route(context.Background(), "how warm is it outside", []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	if assert.NotNil(t, inv) {
		assert.Equal(t, "weather", inv.Tool.Name)
		assert.NotNil(t, inv.Args)
	}
}

func TestRouteSelectionNoTool(t *testing.T) {
	router := NewRouter(&fakeLLM{response: "NO_TOOL"})

	inv, err := router.Route(context.Background(), "tell me a joke", []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestRouteSelectionFailureDegradesToNoTool(t *testing.T) {
	router := NewRouter(&fakeLLM{err: errors.New("model offline")})

	inv, err := router.Route(context.Background(), "what's the weather in Paris?", []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestRouteSelectionGarbageDegradesToNoTool(t *testing.T) {
	router := NewRouter(&fakeLLM{response: "I think you want the weather tool maybe?"})

	inv, err := router.Route(context.Background(), "hmm", []*entity.Tool{weatherTool()})

	assert.NoError(t, err)
	assert.Nil(t, inv)
}
