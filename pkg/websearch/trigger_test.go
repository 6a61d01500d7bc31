package websearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSearchTriggers(t *testing.T) {
	triggered := []string{
		"what's the latest news on the election?",
		"current weather in Jakarta",
		"what is the stock price of AAPL today",
		"what's happening in France right now",
		"best laptops in 2026",
	}
	for _, msg := range triggered {
		assert.True(t, ShouldSearch(msg), "expected search trigger: %q", msg)
	}
}

func TestShouldSearchIgnoresGeneralQuestions(t *testing.T) {
	ignored := []string{
		"What is the capital of France?",
		"summarize the second chapter",
		"explain how the chunk overlap works",
		"compare the two uploaded PDFs",
	}
	for _, msg := range ignored {
		assert.False(t, ShouldSearch(msg), "expected no search trigger: %q", msg)
	}
}
