package history

import (
	"strings"
	"testing"

	"docchat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestTruncateKeepsEverythingWithinBudget(t *testing.T) {
	messages := []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
	}

	got := Truncate(messages, 100)

	assert.Equal(t, messages, got)
}

func TestTruncateDropsOldestFirst(t *testing.T) {
	messages := []llm.Message{
		{Role: "user", Content: strings.Repeat("a", 50)},
		{Role: "assistant", Content: strings.Repeat("b", 50)},
		{Role: "user", Content: strings.Repeat("c", 50)},
	}

	got := Truncate(messages, 110)

	if assert.Len(t, got, 2) {
		assert.Equal(t, messages[1], got[0])
		assert.Equal(t, messages[2], got[1])
	}
}

func TestTruncateNeverSplitsAMessage(t *testing.T) {
	messages := []llm.Message{
		{Role: "user", Content: strings.Repeat("a", 200)},
	}

	got := Truncate(messages, 100)

	assert.Empty(t, got)
}

func TestTruncateZeroBudget(t *testing.T) {
	messages := []llm.Message{{Role: "user", Content: "hello"}}

	assert.Nil(t, Truncate(messages, 0))
	assert.Nil(t, Truncate(messages, -1))
}
