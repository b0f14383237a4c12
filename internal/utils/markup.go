package utils

import (
	"regexp"
	"strings"
)

var (
	// markupTag matches a single HTML tag, non-greedy so adjacent tags are removed separately.
	markupTag = regexp.MustCompile(`<.*?>`)
	blockEnd  = regexp.MustCompile(`(?i)</(p|div|li|h[1-6]|blockquote|pre)\s*>`)
	lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// StripMarkup replaces every HTML tag with a space so words on either side of a
// tag stay separate.
func StripMarkup(html string) string {
	return markupTag.ReplaceAllString(html, " ")
}

// CountWords counts whitespace-separated tokens after markup removal.
func CountWords(html string) int {
	return len(strings.Fields(StripMarkup(html)))
}

// PlainText strips markup and collapses whitespace. Closing block tags and
// blank lines separate paragraphs with a blank line; <br> and single newlines
// are kept as line breaks.
func PlainText(html string) string {
	html = blockEnd.ReplaceAllString(html, "\n\n")
	html = lineBreak.ReplaceAllString(html, "\n")

	var paragraphs []string
	for _, block := range strings.Split(StripMarkup(html), "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if l := strings.Join(strings.Fields(line), " "); l != "" {
				lines = append(lines, l)
			}
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
