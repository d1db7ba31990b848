package handscript

import (
	"context"

	"github.com/alnah/go-handscript/internal/pipeline"
)

// Document is the paginated result of the text pipeline.
type Document struct {
	Pages []Page
}

// Lines returns every line of the document in reading order.
func (d *Document) Lines() []WrappedLine {
	if d == nil {
		return nil
	}
	var n int
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	lines := make([]WrappedLine, 0, n)
	for _, p := range d.Pages {
		lines = append(lines, p.Lines...)
	}
	return lines
}

// LineCount returns the number of lines across all pages.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	var n int
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Layout runs preprocessing, sanitizing, paragraph splitting, wrapping and
// pagination over text. It fails only when cfg is invalid; empty text
// yields a document with no pages.
func Layout(text string, alphabet Alphabet, cfg ProcessingConfig) (*Document, error) {
	return layout(context.Background(), &pipeline.PlainTextPreprocessor{}, text, "", alphabet, cfg)
}

// LayoutWithDateline is Layout with dateline written as the first line of
// the document, followed by one blank line. The dateline is never indented
// or merged into the body, whatever the paragraph style.
func LayoutWithDateline(text, dateline string, alphabet Alphabet, cfg ProcessingConfig) (*Document, error) {
	return layout(context.Background(), &pipeline.PlainTextPreprocessor{}, text, dateline, alphabet, cfg)
}

func layout(ctx context.Context, pre pipeline.TextPreprocessor, text, dateline string, alphabet Alphabet, cfg ProcessingConfig) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pcfg := cfg.toPipeline()
	text = pre.PreprocessText(ctx, text)
	text = pipeline.Sanitize(text, alphabet)
	paragraphs := pipeline.SplitParagraphs(text, pcfg)
	lines := pipeline.WrapParagraphs(paragraphs, pcfg)

	if dateline != "" {
		dateline = pipeline.Sanitize(pre.PreprocessText(ctx, dateline), alphabet)
		lines = pipeline.PrependDateline(dateline, lines, pcfg)
	}

	return &Document{Pages: pipeline.Paginate(lines, pcfg)}, nil
}

// ChunkDocument splits every line of doc into engine-sized chunks. The outer
// slice is indexed by line in reading order; blank lines get a nil entry.
func ChunkDocument(doc *Document, cfg ChunkConfig) ([][]Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pcfg := cfg.toPipeline()
	lines := doc.Lines()
	chunks := make([][]Chunk, len(lines))
	for i, line := range lines {
		if line.IsBlank() {
			continue
		}
		chunks[i] = pipeline.ChunkLine(line.Text, i, pcfg)
	}
	return chunks, nil
}
