package websearch

import (
	"regexp"
	"strings"
)

// Keyword and pattern heuristics for deciding when a question needs
// fresh information the document index cannot hold. Cheap and
// deterministic on purpose: no model call happens before retrieval.
var searchKeywords = []string{
	"latest",
	"news",
	"today",
	"current",
	"recent",
	"right now",
	"this week",
	"this month",
	"this year",
	"weather",
	"forecast",
	"stock price",
	"exchange rate",
	"live score",
	"breaking",
	"happening now",
	"search the web",
	"search online",
	"look up online",
	"google",
}

var searchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what('s| is) happening`),
	regexp.MustCompile(`(?i)what('s| is) the (latest|current|newest)`),
	regexp.MustCompile(`(?i)(current|today'?s?) (date|time|weather|news|price)`),
	regexp.MustCompile(`(?i)who (won|is winning)`),
	regexp.MustCompile(`(?i)price of .+ (today|now)`),
	regexp.MustCompile(`(?i)\bin (202[4-9]|20[3-9][0-9])\b`),
}

// ShouldSearch reports whether a user message looks like it needs
// internet evidence.
func ShouldSearch(message string) bool {
	lower := strings.ToLower(message)

	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	for _, pattern := range searchPatterns {
		if pattern.MatchString(message) {
			return true
		}
	}

	return false
}
