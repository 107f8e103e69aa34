// Package format holds the display helpers layouts call: word-budget
// summaries, article dates and canonical source URLs.
package format

import "strings"

// DefaultShortDescriptionWords is the word budget used when none is configured.
const DefaultShortDescriptionWords = 20

const ellipsis = "..."

// ShortDescription truncates content to maxLength words, splitting on
// single spaces, and appends an ellipsis when anything was cut. Content
// within budget is returned unchanged.
func ShortDescription(content string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	words := strings.Split(content, " ")
	if len(words) <= maxLength {
		return content
	}
	return strings.Join(words[:maxLength], " ") + ellipsis
}
