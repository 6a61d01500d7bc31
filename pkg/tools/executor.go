package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docchat-be/internal/constant"
)

// Executor runs resolved tool invocations. API tools become HTTP
// calls; function tools dispatch into the registry.
type Executor struct {
	httpClient *http.Client
	registry   *FunctionRegistry
	maxChars   int
}

func NewExecutor(registry *FunctionRegistry, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Executor{
		httpClient: &http.Client{Timeout: timeout},
		registry:   registry,
		maxChars:   constant.ToolResultMaxChars,
	}
}

// Execute runs the invocation and returns the textual result that will
// be fed to the composer. Results are truncated; the full response
// body is never persisted.
func (e *Executor) Execute(ctx context.Context, inv *Invocation) (string, error) {
	switch inv.Tool.ToolType {
	case constant.ToolTypeAPI:
		return e.executeAPI(ctx, inv)
	case constant.ToolTypeFunction:
		return e.executeFunction(ctx, inv)
	default:
		return "", &constant.ToolExecutionError{
			ToolName: inv.Tool.Name,
			Err:      fmt.Errorf("unknown tool type %q", inv.Tool.ToolType),
		}
	}
}

func (e *Executor) executeAPI(ctx context.Context, inv *Invocation) (string, error) {
	tool := inv.Tool
	if tool.ApiUrl == "" {
		return "", &constant.ToolExecutionError{
			ToolName: tool.Name,
			Err:      fmt.Errorf("api tool has no url configured"),
		}
	}

	method := strings.ToUpper(tool.HttpMethod)
	if method == "" {
		method = http.MethodGet
	}

	var req *http.Request
	var err error

	switch {
	case method == http.MethodGet:
		// GET carries arguments as query parameters.
		endpoint, buildErr := appendQueryParams(tool.ApiUrl, inv.Args)
		if buildErr != nil {
			return "", &constant.ToolExecutionError{ToolName: tool.Name, Err: buildErr}
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	case len(inv.Args) > 0:
		// Every other method ships arguments as a JSON body.
		body, marshalErr := json.Marshal(inv.Args)
		if marshalErr != nil {
			return "", &constant.ToolExecutionError{ToolName: tool.Name, Err: marshalErr}
		}
		req, err = http.NewRequestWithContext(ctx, method, tool.ApiUrl, bytes.NewBuffer(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	default:
		req, err = http.NewRequestWithContext(ctx, method, tool.ApiUrl, nil)
	}
	if err != nil {
		return "", &constant.ToolExecutionError{ToolName: tool.Name, Err: err}
	}
	req.Header.Set("Accept", "application/json, text/plain")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", &constant.ToolExecutionError{ToolName: tool.Name, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &constant.ToolExecutionError{ToolName: tool.Name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &constant.ToolExecutionError{
			ToolName: tool.Name,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(bodyBytes), 200)),
		}
	}

	return truncate(string(bodyBytes), e.maxChars), nil
}

func (e *Executor) executeFunction(ctx context.Context, inv *Invocation) (string, error) {
	tool := inv.Tool
	if tool.FunctionName == "" {
		return "", &constant.ToolExecutionError{
			ToolName: tool.Name,
			Err:      fmt.Errorf("function tool has no function name configured"),
		}
	}

	fn, ok := e.registry.Get(tool.FunctionName)
	if !ok {
		return "", &constant.ToolExecutionError{
			ToolName: tool.Name,
			Err:      fmt.Errorf("function %q is not registered in this deployment", tool.FunctionName),
		}
	}

	result, err := fn(ctx, inv.Args)
	if err != nil {
		return "", &constant.ToolExecutionError{ToolName: tool.Name, Err: err}
	}

	return truncate(result, e.maxChars), nil
}

func appendQueryParams(rawURL string, args map[string]interface{}) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for key, value := range args {
		q.Set(key, fmt.Sprintf("%v", value))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
