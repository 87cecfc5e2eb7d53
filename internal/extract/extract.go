// ABOUTME: Text extraction from uploaded documents with fail-soft semantics
// ABOUTME: Supports pdf (page-indexed), docx, doc, and txt sources
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Extractor converts source documents into cleaned plain text. Every
// extraction error (missing file, corrupt format, decode failure) yields an
// empty result rather than an error: upstream processing treats "no content
// produced" as a soft failure.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether the given extension (without dot, lower-cased)
// has a registered extractor.
func Supported(ext string) bool {
	switch ext {
	case "pdf", "docx", "doc", "txt":
		return true
	}
	return false
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanText normalizes extracted text: strips markup tags, drops
// non-printable characters (keeping newline, tab, and space), collapses
// whitespace runs to single spaces, and trims the ends.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = tagPattern.ReplaceAllString(text, "")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			sb.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}
