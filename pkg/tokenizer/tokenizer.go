// Package tokenizer estimates LLM token counts for prompt budgeting.
package tokenizer

import (
	"strings"
)

// EstimateTokens provides a rough token count estimate.
// It blends a word-based (~1.3 tokens/word) and a char-based (~4 chars/token)
// estimate.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	chars := len(text)

	wordEstimate := int(float64(words) * 1.3)
	charEstimate := chars / 4

	return (wordEstimate + charEstimate) / 2
}

// TruncateToTokenBudget shortens text to roughly fit budget tokens, cutting
// at a word boundary when one is close. The cut counts runes, so localized
// text is never split inside a character.
func TruncateToTokenBudget(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if EstimateTokens(text) <= budget {
		return text
	}

	runes := []rune(text)
	maxRunes := budget * 4
	if maxRunes >= len(runes) {
		return text
	}

	truncated := string(runes[:maxRunes])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

// FitItems returns the longest prefix of items whose combined estimate,
// plus sepTokens per item, stays within budget. Items are never split.
func FitItems(items []string, budget, sepTokens int) []string {
	if budget <= 0 || len(items) == 0 {
		return nil
	}

	used := 0
	for i, item := range items {
		cost := EstimateTokens(item) + sepTokens
		if used+cost > budget {
			return items[:i]
		}
		used += cost
	}
	return items
}
