package blogservice

import (
	"regexp"
	"strings"
)

// elements whose content is executable or restyles the page; removed with their content
var unsafeBlockPattern = regexp.MustCompile(`(?is)<\s*(script|style|iframe)\b[^>]*>.*?<\s*/\s*(script|style|iframe)\s*>`)

// sanitizeMarkdown cleans a body posted from the editor form before it is stored. Browsers submit
// textarea content with CRLF line breaks.
func sanitizeMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	return unsafeBlockPattern.ReplaceAllString(markdown, "")
}
