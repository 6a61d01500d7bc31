package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/pkg/llm"
)

// noToolSentinel is what the selection model answers when no
// registered tool fits the message.
const noToolSentinel = "NO_TOOL"

// explicitInvocationPattern matches commands of the form
// "run <tool> with {...json...}".
var explicitInvocationPattern = regexp.MustCompile(`(?is)^run\s+(\S+)\s+with\s+(\{.*\})\s*$`)

// Invocation is a resolved tool call ready for the executor.
type Invocation struct {
	Tool *entity.Tool
	Args map[string]interface{}
}

// Router decides whether a message invokes a tool. Explicit "run X
// with {...}" commands bypass the model entirely; everything else goes
// through LLM catalog selection with a NO_TOOL escape hatch.
type Router struct {
	provider llm.LLMProvider
}

func NewRouter(provider llm.LLMProvider) *Router {
	return &Router{
		provider: provider,
	}
}

// Route resolves a message against the session's registered tools.
// Returns (nil, nil) when no tool applies.
func (r *Router) Route(ctx context.Context, message string, registered []*entity.Tool) (*Invocation, error) {
	if len(registered) == 0 {
		return nil, nil
	}

	if m := explicitInvocationPattern.FindStringSubmatch(message); m != nil {
		return r.routeExplicit(m[1], m[2], registered)
	}

	return r.routeBySelection(ctx, message, registered)
}

func (r *Router) routeExplicit(toolName, rawArgs string, registered []*entity.Tool) (*Invocation, error) {
	tool := findTool(registered, toolName)
	if tool == nil {
		// Unknown name resolves to no invocation; the turn proceeds
		// without tool evidence.
		return nil, nil
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return nil, &constant.ToolArgumentParseError{
			ToolName: toolName,
			Err:      err,
		}
	}

	return &Invocation{Tool: tool, Args: args}, nil
}

// routeBySelection asks the model to pick a tool from the catalog.
// Any parse failure or unknown answer is treated as "no tool": auto
// selection must never break a chat turn.
func (r *Router) routeBySelection(ctx context.Context, message string, registered []*entity.Tool) (*Invocation, error) {
	prompt := buildSelectionPrompt(message, registered)

	response, err := r.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, nil
	}

	response = strings.TrimSpace(response)
	if response == "" || strings.Contains(response, noToolSentinel) {
		return nil, nil
	}

	var selection struct {
		Tool string                 `json:"tool"`
		Args map[string]interface{} `json:"args"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(response)), &selection); err != nil {
		return nil, nil
	}
	if selection.Tool == "" || selection.Tool == noToolSentinel {
		return nil, nil
	}

	tool := findTool(registered, selection.Tool)
	if tool == nil {
		return nil, nil
	}
	if selection.Args == nil {
		selection.Args = map[string]interface{}{}
	}

	return &Invocation{Tool: tool, Args: selection.Args}, nil
}

func buildSelectionPrompt(message string, registered []*entity.Tool) string {
	var sb strings.Builder

	sb.WriteString("You decide whether a user message requires calling one of the tools below.\n\n")
	sb.WriteString("<tools>\n")
	for _, t := range registered {
		sb.WriteString(fmt.Sprintf("- name: %s\n", t.Name))
		if t.Description != "" {
			sb.WriteString(fmt.Sprintf("  description: %s\n", t.Description))
		}
		if t.ParamsDocstring != "" {
			sb.WriteString(fmt.Sprintf("  parameters: %s\n", t.ParamsDocstring))
		}
		if t.ReturnsDocstring != "" {
			sb.WriteString(fmt.Sprintf("  returns: %s\n", t.ReturnsDocstring))
		}
	}
	sb.WriteString("</tools>\n\n")
	sb.WriteString("<user_message>\n")
	sb.WriteString(message)
	sb.WriteString("\n</user_message>\n\n")
	sb.WriteString("If exactly one tool clearly applies, answer with a single JSON object:\n")
	sb.WriteString(`{"tool": "<name>", "args": {<arguments inferred from the message>}}` + "\n")
	sb.WriteString("If no tool applies, answer with exactly: " + noToolSentinel + "\n")
	sb.WriteString("Answer with the JSON object or " + noToolSentinel + ", nothing else.")

	return sb.String()
}

func findTool(registered []*entity.Tool, name string) *entity.Tool {
	for _, t := range registered {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// extractJSONObject trims model chatter (markdown fences, prose)
// around the first top-level JSON object.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
