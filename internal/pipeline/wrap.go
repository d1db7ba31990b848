package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// hyphen closes every piece of a word split across lines.
const hyphen = "-"

// WrapParagraphs reflows paragraphs into lines of at most MaxLineLength
// runes, laying out paragraph boundaries according to cfg.Style.
func WrapParagraphs(paragraphs []Paragraph, cfg Config) []WrappedLine {
	if cfg.NormalizeWhitespace {
		paragraphs = normalizeParagraphs(paragraphs)
	}

	switch cfg.Style {
	case StyleSingleSpace:
		return wrapSingleSpace(paragraphs, cfg)
	case StyleNoBreaks:
		return wrapNoBreaks(paragraphs, cfg)
	case StyleIndentFirst:
		return wrapIndentFirst(paragraphs, cfg)
	default:
		return wrapPreserveBreaks(paragraphs, cfg)
	}
}

// wrapPreserveBreaks wraps every source line on its own and turns trailing
// blank counts into blank lines.
func wrapPreserveBreaks(paragraphs []Paragraph, cfg Config) []WrappedLine {
	var out []WrappedLine
	for i, p := range paragraphs {
		var block []WrappedLine
		for _, line := range p.Lines {
			block = append(block, wrapText(line, 0, cfg)...)
		}
		out = append(out, markParagraph(block, i)...)
		out = appendBlanks(out, p.TrailingBlanks, i)
	}
	return out
}

// wrapSingleSpace reflows each paragraph and puts exactly one blank line
// between consecutive paragraphs.
func wrapSingleSpace(paragraphs []Paragraph, cfg Config) []WrappedLine {
	var out []WrappedLine
	emitted := false
	for i, p := range paragraphs {
		if p.IsEmpty() {
			continue
		}
		if emitted {
			out = appendBlanks(out, 1, i-1)
		}
		out = append(out, markParagraph(wrapText(joinLines(p.Lines), 0, cfg), i)...)
		emitted = true
	}
	return out
}

// wrapNoBreaks flows all paragraphs into one block.
func wrapNoBreaks(paragraphs []Paragraph, cfg Config) []WrappedLine {
	var parts []string
	for _, p := range paragraphs {
		if !p.IsEmpty() {
			parts = append(parts, joinLines(p.Lines))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return markParagraph(wrapText(strings.Join(parts, " "), 0, cfg), 0)
}

// wrapIndentFirst reflows each paragraph and indents its first line.
func wrapIndentFirst(paragraphs []Paragraph, cfg Config) []WrappedLine {
	var out []WrappedLine
	for i, p := range paragraphs {
		if p.IsEmpty() {
			continue
		}
		out = append(out, markParagraph(wrapText(joinLines(p.Lines), cfg.IndentSpaces, cfg), i)...)
	}
	return out
}

// wrapText greedily wraps one run of text. The first line is prefixed with
// indent spaces, which count against its budget.
func wrapText(text string, indent int, cfg Config) []WrappedLine {
	tokens := tokenize(text, cfg.NormalizeWhitespace)
	if len(tokens) == 0 {
		return nil
	}

	w := &wrapper{max: cfg.MaxLineLength, indent: indent, hyphenate: cfg.Hyphenate}
	for _, tok := range tokens {
		w.add(tok)
	}
	w.flush()
	return w.lines
}

// wrapper holds the state of one greedy wrap.
type wrapper struct {
	max       int
	indent    int
	hyphenate bool

	lines  []WrappedLine
	cur    []string
	curLen int
}

// capacity returns the rune budget of the line being filled.
func (w *wrapper) capacity() int {
	if len(w.lines) == 0 {
		return w.max - w.indent
	}
	return w.max
}

// add places one word, starting a new line when it does not fit.
func (w *wrapper) add(word string) {
	n := utf8.RuneCountInString(word)

	if len(w.cur) > 0 {
		if w.curLen+1+n <= w.capacity() {
			w.cur = append(w.cur, word)
			w.curLen += 1 + n
			return
		}
		w.flush()
	}

	// Extra spaces never open a wrapped line.
	if word == "" && len(w.lines) > 0 {
		return
	}

	if n <= w.capacity() {
		w.cur = []string{word}
		w.curLen = n
		return
	}

	if !w.hyphenate {
		w.emit(word, LineOverflow)
		return
	}
	w.splitWord(word)
}

// splitWord cuts an over-long word into hyphenated pieces. The remainder
// that fits stays on the current line so following words can join it.
func (w *wrapper) splitWord(word string) {
	runes := []rune(word)
	for len(runes) > w.capacity() {
		piece := w.capacity() - utf8.RuneCountInString(hyphen)
		if piece < 1 && len(w.lines) == 0 && w.indent > 0 {
			// The indent leaves no room for a rune and a hyphen.
			w.indent = 0
			continue
		}
		if piece < 1 {
			piece = 1
		}
		w.emit(string(runes[:piece])+hyphen, LineText)
		runes = runes[piece:]
	}
	w.cur = []string{string(runes)}
	w.curLen = len(runes)
}

// flush emits the words gathered so far as one line.
func (w *wrapper) flush() {
	if len(w.cur) == 0 {
		return
	}
	text := strings.Join(w.cur, " ")
	w.cur = nil
	w.curLen = 0
	if strings.TrimSpace(text) == "" {
		return
	}
	w.emit(text, LineText)
}

// emit appends a finished line, indenting the first one.
func (w *wrapper) emit(text string, kind LineKind) {
	if len(w.lines) == 0 && w.indent > 0 {
		text = strings.Repeat(" ", w.indent) + text
	}
	w.lines = append(w.lines, WrappedLine{Text: text, Kind: kind})
}

// tokenize splits text into words. Without normalization, words are split
// on single spaces so that extra spaces survive as empty words.
func tokenize(text string, normalized bool) []string {
	if normalized {
		return strings.Fields(text)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, " ")
}

// PrependDateline lays out dateline as a paragraph of its own, unindented,
// and separates it from body with one blank line whatever the style. Body
// paragraph indices shift by one.
func PrependDateline(dateline string, body []WrappedLine, cfg Config) []WrappedLine {
	text := strings.ReplaceAll(dateline, "\n", " ")
	if cfg.NormalizeWhitespace {
		text = NormalizeWhitespace(text)
	}
	head := markParagraph(wrapText(text, 0, cfg), 0)
	if len(head) == 0 {
		return body
	}
	if len(body) == 0 {
		return head
	}

	out := make([]WrappedLine, 0, len(head)+1+len(body))
	out = append(out, head...)
	out = appendBlanks(out, 1, 0)
	for _, l := range body {
		l.Paragraph++
		out = append(out, l)
	}
	return out
}

// markParagraph tags a paragraph's lines with its index and boundaries.
func markParagraph(lines []WrappedLine, paragraph int) []WrappedLine {
	for i := range lines {
		lines[i].Paragraph = paragraph
	}
	if len(lines) > 0 {
		lines[0].First = true
		lines[len(lines)-1].Last = true
	}
	return lines
}

// appendBlanks adds n blank lines attributed to paragraph.
func appendBlanks(lines []WrappedLine, n, paragraph int) []WrappedLine {
	for range n {
		lines = append(lines, WrappedLine{Kind: LineBlank, Paragraph: paragraph})
	}
	return lines
}

// joinLines joins a paragraph's source lines for reflowing.
func joinLines(lines []string) string {
	return strings.Join(lines, " ")
}

// normalizeParagraphs collapses horizontal whitespace in every line.
// It runs before any width is measured.
func normalizeParagraphs(paragraphs []Paragraph) []Paragraph {
	out := make([]Paragraph, len(paragraphs))
	for i, p := range paragraphs {
		lines := make([]string, len(p.Lines))
		for j, line := range p.Lines {
			lines[j] = NormalizeWhitespace(line)
		}
		out[i] = Paragraph{Lines: lines, TrailingBlanks: p.TrailingBlanks}
	}
	return out
}

// NormalizeWhitespace trims s and collapses runs of horizontal whitespace
// into single spaces. Newlines are kept.
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	lineStart := true
	for _, r := range s {
		if r != '\n' && unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && !lineStart && r != '\n' {
			b.WriteByte(' ')
		}
		space = false
		lineStart = r == '\n'
		b.WriteRune(r)
	}
	return b.String()
}
