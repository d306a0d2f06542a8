package dom

import (
	"strings"
)

// NormalizeWhitespace collapses runs of whitespace into a single space and
// trims the result.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// classTokens splits a class attribute value into unique tokens, keeping
// first-seen order.
func classTokens(value string) []string {
	fields := strings.Fields(value)
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}

// normalizedAttributes are compared after whitespace normalization.
var normalizedAttributes = map[string]bool{
	"class": true,
	"style": true,
}

func attributeValue(name, value string) string {
	if normalizedAttributes[strings.ToLower(name)] {
		return NormalizeWhitespace(value)
	}
	return value
}
