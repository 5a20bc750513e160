package text

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n\s*`)
	lineBreak      = regexp.MustCompile(`\n\s*`)
)

// Normalize collapses runs of whitespace while keeping line and paragraph breaks.
func Normalize(text string) string {
	text = strings.TrimSpace(text)

	// \a marks breaks while spaces are collapsed
	text = strings.ReplaceAll(text, "\a", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	text = paragraphBreak.ReplaceAllString(text, "\a\a")
	text = lineBreak.ReplaceAllString(text, "\a")

	text = strings.Join(strings.Fields(text), " ")

	text = strings.ReplaceAll(text, "\a", "\n")

	return strings.TrimSpace(text)
}

// Prepare turns user input into text suitable for speech synthesis.
func Prepare(text string) string {
	if IsMarkdown(text) {
		return PlainText(text)
	}

	return Normalize(text)
}
