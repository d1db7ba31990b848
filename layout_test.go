package handscript

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func lineTexts(lines []WrappedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func allStyles() []ParagraphStyle {
	return []ParagraphStyle{StylePreserveBreaks, StyleSingleSpace, StyleNoBreaks, StyleIndentFirst}
}

func TestLayout_EmptyTextHasNoPages(t *testing.T) {
	t.Parallel()

	for _, style := range allStyles() {
		for _, preserve := range []bool{false, true} {
			cfg := DefaultProcessingConfig()
			cfg.ParagraphStyle = style
			cfg.PreserveEmptyLines = preserve

			doc, err := Layout("", DefaultAlphabet(), cfg)
			if err != nil {
				t.Fatalf("%s: Layout(\"\") error = %v", style, err)
			}
			if len(doc.Pages) != 0 || doc.LineCount() != 0 {
				t.Errorf("%s/%v: Layout(\"\") has %d pages", style, preserve, len(doc.Pages))
			}
		}
	}
}

func TestLayout_HelloWorld(t *testing.T) {
	t.Parallel()

	doc, err := Layout("Hello\n\nWorld", DefaultAlphabet(), DefaultProcessingConfig())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	got := strings.Join(lineTexts(doc.Lines()), "|")
	if got != "Hello||World" {
		t.Errorf("lines = %q, want %q", got, "Hello||World")
	}
}

func TestLayout_InvalidConfigFailsFast(t *testing.T) {
	t.Parallel()

	cfg := DefaultProcessingConfig()
	cfg.LinesPerPage = 0

	doc, err := Layout("anything", DefaultAlphabet(), cfg)
	if !errors.Is(err, ErrInvalidLinesPerPage) {
		t.Errorf("Layout() error = %v, want ErrInvalidLinesPerPage", err)
	}
	if doc != nil {
		t.Error("Layout() returned a document for an invalid config")
	}
}

func TestLayout_Properties(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Short note.",
		"Dear friend,\r\n\r\nIt has been a long time since we last wrote. The garden is full of tomatoes this year, more than we can eat.\r\n\r\n\r\n\r\nYours, M.",
		strings.Repeat("a", 200),
		"tabs\tand  spaces   everywhere\n\n\n\n\nand blank runs",
		"café naïve ＡＢＣ — unicode input",
		strings.Repeat("word ", 300),
	}

	for _, style := range allStyles() {
		for _, maxLen := range []int{8, 20, 60} {
			cfg := DefaultProcessingConfig()
			cfg.ParagraphStyle = style
			cfg.MaxLineLength = maxLen
			cfg.LinesPerPage = 7

			for _, input := range inputs {
				doc, err := Layout(input, DefaultAlphabet(), cfg)
				if err != nil {
					t.Fatalf("Layout() error = %v", err)
				}
				alphabet := DefaultAlphabet()
				for _, p := range doc.Pages {
					if len(p.Lines) == 0 || len(p.Lines) > cfg.LinesPerPage {
						t.Errorf("%s/%d: page %d has %d lines", style, maxLen, p.Number, len(p.Lines))
					}
					for _, l := range p.Lines {
						if n := utf8.RuneCountInString(l.Text); n > maxLen {
							t.Errorf("%s/%d: line %q has %d runes", style, maxLen, l.Text, n)
						}
						for _, r := range l.Text {
							if !alphabet.Contains(r) {
								t.Errorf("%s/%d: line %q contains %q", style, maxLen, l.Text, r)
							}
						}
					}
				}
			}
		}
	}
}

func TestDocument_NilSafe(t *testing.T) {
	t.Parallel()

	var doc *Document
	if doc.Lines() != nil || doc.LineCount() != 0 {
		t.Error("nil Document should have no lines")
	}
}

func TestChunkDocument(t *testing.T) {
	t.Parallel()

	doc, err := Layout("one two three four\n\nfive", DefaultAlphabet(), DefaultProcessingConfig())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	chunks, err := ChunkDocument(doc, ChunkConfig{Strategy: ChunkFixed, MaxWords: 3})
	if err != nil {
		t.Fatalf("ChunkDocument() error = %v", err)
	}

	if len(chunks) != doc.LineCount() {
		t.Fatalf("got %d chunk lists, want one per line (%d)", len(chunks), doc.LineCount())
	}
	if len(chunks[0]) != 2 || chunks[0][0].Text != "one two three" || chunks[0][1].Text != "four" {
		t.Errorf("first line chunks = %+v", chunks[0])
	}
	if chunks[1] != nil {
		t.Errorf("blank line chunks = %+v, want nil", chunks[1])
	}
	if len(chunks[2]) != 1 || chunks[2][0].Line != 2 {
		t.Errorf("third line chunks = %+v", chunks[2])
	}
}

func TestChunkDocument_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := ChunkDocument(&Document{}, ChunkConfig{Strategy: ChunkFixed})
	if !errors.Is(err, ErrInvalidChunkSize) {
		t.Errorf("ChunkDocument() error = %v, want ErrInvalidChunkSize", err)
	}
}
