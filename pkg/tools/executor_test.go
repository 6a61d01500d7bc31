package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func apiTool(apiURL, method string) *entity.Tool {
	return &entity.Tool{
		Id:         uuid.New(),
		Name:       "remote",
		ToolType:   constant.ToolTypeAPI,
		ApiUrl:     apiURL,
		HttpMethod: method,
	}
}

func TestExecuteGetSendsArgsAsQueryParams(t *testing.T) {
	var gotQuery, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("pong"))
	}))
	defer server.Close()

	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	result, err := executor.Execute(context.Background(), &Invocation{
		Tool: apiTool(server.URL, "GET"),
		Args: map[string]interface{}{"q": "ping"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "pong", result)
	assert.Equal(t, "ping", gotQuery)
	assert.Empty(t, gotBody)
}

func TestExecutePostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte("created"))
	}))
	defer server.Close()

	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	result, err := executor.Execute(context.Background(), &Invocation{
		Tool: apiTool(server.URL, "POST"),
		Args: map[string]interface{}{"city": "Paris"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "created", result)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Paris", gotPayload["city"])
}

func TestExecuteDeleteSendsArgsAsJSONBody(t *testing.T) {
	var gotQuery, gotContentType string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte("deleted"))
	}))
	defer server.Close()

	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	result, err := executor.Execute(context.Background(), &Invocation{
		Tool: apiTool(server.URL, "DELETE"),
		Args: map[string]interface{}{"q": "ping"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "deleted", result)
	assert.Empty(t, gotQuery)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ping", gotPayload["q"])
}

func TestExecutePostWithoutArgsOmitsBody(t *testing.T) {
	var gotContentType string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	result, err := executor.Execute(context.Background(), &Invocation{
		Tool: apiTool(server.URL, "POST"),
		Args: map[string]interface{}{},
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Empty(t, gotContentType)
	assert.Empty(t, gotBody)
}

func TestExecuteTruncatesLongResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", constant.ToolResultMaxChars+500)))
	}))
	defer server.Close()

	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	result, err := executor.Execute(context.Background(), &Invocation{
		Tool: apiTool(server.URL, "GET"),
		Args: map[string]interface{}{},
	})

	assert.NoError(t, err)
	assert.Len(t, result, constant.ToolResultMaxChars)
}

func TestExecuteNon2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	_, err := executor.Execute(context.Background(), &Invocation{
		Tool: apiTool(server.URL, "GET"),
		Args: map[string]interface{}{},
	})

	var execErr *constant.ToolExecutionError
	if assert.ErrorAs(t, err, &execErr) {
		assert.Equal(t, "remote", execErr.ToolName)
		assert.Contains(t, execErr.Error(), "500")
	}
}

func TestExecuteFunctionTool(t *testing.T) {
	registry := NewFunctionRegistry()
	err := registry.Register("uppercase", func(_ context.Context, args map[string]interface{}) (string, error) {
		return strings.ToUpper(args["text"].(string)), nil
	})
	assert.NoError(t, err)

	executor := NewExecutor(registry, time.Second)
	result, err := executor.Execute(context.Background(), &Invocation{
		Tool: &entity.Tool{
			Id:           uuid.New(),
			Name:         "shout",
			ToolType:     constant.ToolTypeFunction,
			FunctionName: "uppercase",
		},
		Args: map[string]interface{}{"text": "hello"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "HELLO", result)
}

func TestExecuteFunctionToolUnregistered(t *testing.T) {
	executor := NewExecutor(NewFunctionRegistry(), time.Second)
	_, err := executor.Execute(context.Background(), &Invocation{
		Tool: &entity.Tool{
			Id:           uuid.New(),
			Name:         "shout",
			ToolType:     constant.ToolTypeFunction,
			FunctionName: "uppercase",
		},
		Args: map[string]interface{}{},
	})

	var execErr *constant.ToolExecutionError
	assert.ErrorAs(t, err, &execErr)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewFunctionRegistry()
	handler := func(context.Context, map[string]interface{}) (string, error) { return "", nil }

	assert.NoError(t, registry.Register("echo", handler))
	assert.Error(t, registry.Register("echo", handler))
	assert.Equal(t, []string{"echo"}, registry.Names())
}
