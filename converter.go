package handscript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-handscript/internal/assets"
	"github.com/alnah/go-handscript/internal/dateutil"
	"github.com/alnah/go-handscript/internal/logger"
	"github.com/alnah/go-handscript/internal/pipeline"
	"github.com/alnah/go-handscript/internal/svg"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TextPreprocessor = (*pipeline.PlainTextPreprocessor)(nil)
	_ pipeline.TextExtractor    = (*pipeline.GoldmarkExtractor)(nil)
	_ pdfConverter              = (*rodConverter)(nil)
	_ pdfRenderer               = (*rodRenderer)(nil)
)

// Converter turns text into handwritten SVG pages and, optionally, a PDF.
// Create with NewConverter, call Convert, and Close when done. A Converter
// handles one conversion at a time; use ConverterPool for parallel work.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	preprocessor      pipeline.TextPreprocessor
	extractor         pipeline.TextExtractor
	engine            StrokeGenerator
	alphabet          Alphabet
	logger            Logger
	pdfConverter      pdfConverter
	now               func() time.Time

	mu        sync.Mutex
	renderers map[string]*paperRenderer
}

// paperRenderer pairs the page and sheet renderers of one paper and ink.
type paperRenderer struct {
	page  *svg.Renderer
	sheet *svg.SheetRenderer
}

// NewConverter creates a Converter with default configuration.
// Returns ErrInvalidAssetPath if WithAssetPath points at an unusable directory.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.PlainTextPreprocessor{},
		extractor:    pipeline.NewGoldmarkExtractor(),
		engine:       NewPreviewEngine(),
		alphabet:     DefaultAlphabet(),
		logger:       logger.Nop(),
		now:          time.Now,
		renderers:    make(map[string]*paperRenderer),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	// The browser itself starts on the first PDF request.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert lays out input.Text, generates strokes for every chunk, and
// renders one SVG per page. Context cancellation is checked between lines.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	proc, chunking, render := input.resolved()
	if err := c.validateInput(input, proc, chunking, render); err != nil {
		return nil, err
	}

	dateline, err := c.dateline(input.Dateline)
	if err != nil {
		return nil, err
	}

	text := input.Text
	if input.Format == FormatMarkdown {
		text, err = c.extractor.ToText(ctx, text)
		if err != nil {
			return nil, err
		}
	}
	doc, err := layout(ctx, c.preprocessor, text, dateline, c.alphabet, proc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks, err := ChunkDocument(doc, chunking)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{Document: doc, Chunks: chunks}
	if len(doc.Pages) == 0 {
		res.Elapsed = time.Since(start)
		return res, nil
	}

	paper, err := c.paper(render.Template, render.Style)
	if err != nil {
		return nil, err
	}

	settings := render.toSVG()
	lineIndex := 0
	for _, page := range doc.Pages {
		svgPage := svg.Page{Number: page.Number, Lines: make([]svg.Line, len(page.Lines))}
		for i := range page.Lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			strokes, err := c.strokeLine(ctx, chunks[lineIndex], input.Style, input.Bias)
			if err != nil {
				return nil, fmt.Errorf("page %d line %d: %w", page.Number, i+1, err)
			}
			svgPage.Lines[i] = svg.Line{Chunks: strokes, Indent: leadingSpaces(page.Lines[i].Text, chunks[lineIndex])}
			lineIndex++
		}

		out, err := paper.page.Render(svgPage, settings)
		if err != nil {
			return nil, err
		}
		res.Pages = append(res.Pages, RenderedPage{Number: page.Number, SVG: out})
		c.logger.Debug("rendered page", "page", page.Number, "lines", len(page.Lines))
	}

	if input.PDF {
		res.PDF, err = c.exportPDF(ctx, paper, input.Title, render, res.Pages)
		if err != nil {
			return nil, err
		}
	}

	res.Elapsed = time.Since(start)
	c.logger.Debug("converted document", "pages", len(res.Pages), "lines", doc.LineCount(), "elapsed", res.Elapsed)
	return res, nil
}

// dateline resolves the optional first line, such as "today:long".
func (c *Converter) dateline(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	line, err := dateutil.Dateline(value, c.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDateline, err)
	}
	return line, nil
}

// strokeLine asks the engine for every chunk of one line, in order.
func (c *Converter) strokeLine(ctx context.Context, chunks []Chunk, style int, bias float64) ([][]Point, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	strokes := make([][]Point, len(chunks))
	for i, chunk := range chunks {
		points, err := c.engine.Generate(ctx, StrokeRequest{Text: chunk.Text, Style: style, Bias: bias})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: chunk %q: %v", ErrStrokeGeneration, chunk.Text, err)
		}
		if len(points) == 0 {
			return nil, fmt.Errorf("%w: chunk %q", ErrEmptyStrokes, chunk.Text)
		}
		strokes[i] = points
	}
	return strokes, nil
}

// leadingSpaces counts the blanks ahead of a line's first chunk.
func leadingSpaces(text string, chunks []Chunk) int {
	if len(chunks) == 0 {
		return 0
	}
	return utf8.RuneCountInString(text[:chunks[0].Start])
}

// exportPDF wraps the rendered pages into a sheet and prints it.
func (c *Converter) exportPDF(ctx context.Context, paper *paperRenderer, title string, render RenderSettings, pages []RenderedPage) ([]byte, error) {
	svgs := make([][]byte, len(pages))
	for i, p := range pages {
		svgs[i] = p.SVG
	}

	sheet, err := paper.sheet.Render(title, render.Width, render.Height, svgs)
	if err != nil {
		return nil, err
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, string(sheet), &pdfOptions{Width: render.Width, Height: render.Height})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.logger.Debug("exported PDF", "pages", len(pages), "bytes", len(pdf))
	return pdf, nil
}

// paper loads and caches the renderers for a paper and ink pair.
func (c *Converter) paper(template, style string) (*paperRenderer, error) {
	key := template + "/" + style

	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.renderers[key]; ok {
		return r, nil
	}

	ts, err := c.assetLoader.LoadTemplateSet(template)
	if err != nil {
		return nil, fmt.Errorf("loading paper %q: %w", template, convertAssetError(err))
	}
	css, err := c.assetLoader.LoadStyle(style)
	if err != nil {
		return nil, fmt.Errorf("loading ink %q: %w", style, convertAssetError(err))
	}

	page, err := svg.NewRenderer(ts.Page, css)
	if err != nil {
		return nil, fmt.Errorf("paper %q page template: %w", template, err)
	}
	sheet, err := svg.NewSheetRenderer(ts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("paper %q sheet template: %w", template, err)
	}

	r := &paperRenderer{page: page, sheet: sheet}
	c.renderers[key] = r
	return r, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks every config before any work starts.
//
// Library users build Input by hand; CLI input was already checked at config
// load time. Both paths converge here.
func (c *Converter) validateInput(input Input, proc ProcessingConfig, chunking ChunkConfig, render RenderSettings) error {
	switch input.Format {
	case "", FormatText, FormatMarkdown:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidInputFormat, input.Format)
	}
	if err := proc.Validate(); err != nil {
		return err
	}
	if err := chunking.Validate(); err != nil {
		return err
	}
	if err := render.Validate(); err != nil {
		return err
	}
	if !render.FitsLines(proc.LinesPerPage) {
		return fmt.Errorf("%w: %d lines of %v on a %v page with top margin %v",
			ErrPageOverflow, proc.LinesPerPage, render.LineHeight, render.Height, render.MarginTop)
	}
	return ValidateHandwriting(input.Style, input.Bias)
}
