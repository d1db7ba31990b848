package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Other vertical separators treated as line breaks
	verticalSeparators = regexp.MustCompile("[\v\f\u0085\u2028\u2029]")
)

// TextPreprocessor defines the contract for text preprocessing.
type TextPreprocessor interface {
	PreprocessText(ctx context.Context, content string) string
}

// PlainTextPreprocessor prepares raw text for sanitizing.
type PlainTextPreprocessor struct{}

// PreprocessText normalizes line endings and Unicode forms so that the
// sanitizer sees one representation per character.
func (p *PlainTextPreprocessor) PreprocessText(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = composeUnicode(content)
	content = foldWidth(content)
	content = expandTabs(content)
	return content
}

// normalizeLineEndings converts \r\n, \r and other vertical separators to \n.
func normalizeLineEndings(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return verticalSeparators.ReplaceAllString(content, "\n")
}

// composeUnicode applies NFC so a decomposed "e + accent" becomes one rune.
func composeUnicode(content string) string {
	return norm.NFC.String(content)
}

// foldWidth maps full-width ASCII variants (e.g. "Ａ") to their narrow form.
func foldWidth(content string) string {
	return width.Fold.String(content)
}

// expandTabs replaces tabs with a single space.
func expandTabs(content string) string {
	return strings.ReplaceAll(content, "\t", " ")
}
