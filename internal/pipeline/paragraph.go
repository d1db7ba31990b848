package pipeline

import (
	"strings"
	"unicode"
)

// SplitParagraphs partitions text into paragraphs. Runs of blank lines end
// the current paragraph and are recorded as its trailing blank count,
// capped at MaxEmptyLines, or zero when empty lines are not preserved.
// Blank lines before the first paragraph become an empty paragraph when
// empty lines are preserved.
func SplitParagraphs(text string, cfg Config) []Paragraph {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}

	var paragraphs []Paragraph
	var current []string
	blankRun := 0

	flush := func() {
		// A leading blank run with no text yet becomes an empty paragraph.
		if len(current) == 0 && len(paragraphs) > 0 {
			return
		}
		trailing := blankCount(blankRun, cfg)
		if len(current) == 0 && trailing == 0 {
			return
		}
		paragraphs = append(paragraphs, Paragraph{Lines: current, TrailingBlanks: trailing})
		current = nil
	}

	for _, line := range lines {
		if isBlank(line) {
			blankRun++
			continue
		}
		if blankRun > 0 {
			flush()
			blankRun = 0
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

// blankCount applies the empty-line policy to a run of n blank lines.
func blankCount(n int, cfg Config) int {
	if !cfg.PreserveEmptyLines {
		return 0
	}
	if n > cfg.MaxEmptyLines {
		return cfg.MaxEmptyLines
	}
	return n
}

// splitLines splits on newlines. A single trailing newline terminates the
// last line instead of opening a new one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// isBlank reports whether line holds only whitespace.
func isBlank(line string) bool {
	return strings.TrimFunc(line, unicode.IsSpace) == ""
}
