package ai

import (
	"log"
	"unicode/utf8"
)

// TruncateToLimit caps content that must fit in a single prompt. The cut
// never splits a multi-byte rune.
func TruncateToLimit(content string, maxChars int) string {
	if len(content) <= maxChars {
		return content
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	log.Printf("[AI] Truncating content from %d to %d chars (~%d tokens)",
		len(content), cut, EstimateTokens(content[:cut]))
	return content[:cut] + "\n...[truncated]"
}

// EstimateTokens provides a rough token count (4 chars ≈ 1 token)
func EstimateTokens(content string) int {
	return len(content) / 4
}
