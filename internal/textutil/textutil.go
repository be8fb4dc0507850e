// Package textutil parses observation sequences typed or piped by users.
package textutil

import (
	"regexp"
	"strings"
)

// symbolRe matches one symbol: anything but separators, brackets and quotes.
var symbolRe = regexp.MustCompile(`[^,;\s\[\]"']+`)

// SplitSymbols extracts observation symbols from free text.
//
// Symbols may be separated by commas, semicolons or whitespace, so
// "sunny rainy", "sunny,rainy", `["sunny", "rainy"]` and "['sunny', 'rainy']"
// all yield the same two symbols. Case is preserved.
func SplitSymbols(text string) []string {
	return symbolRe.FindAllString(text, -1)
}

// JoinStates renders a hidden-state path for human output.
func JoinStates(states []string) string {
	return strings.Join(states, " -> ")
}
