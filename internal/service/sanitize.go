package service

import (
	"regexp"
	"strings"
)

// fencePattern matches a Markdown code fence: a bare triple backtick, one
// followed by a json tag, or one followed by any language tag ending the line.
var fencePattern = regexp.MustCompile("```(?:[A-Za-z][A-Za-z0-9_+-]*[ \\t]*(?:\\r?\\n|$)|(?i:json))?")

// SanitizeResponse strips code fence markers from raw backend text and trims
// the result. Removal runs to a fixed point so the function is idempotent.
func SanitizeResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for {
		next := strings.TrimSpace(fencePattern.ReplaceAllString(cleaned, ""))
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}
