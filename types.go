package handscript

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alnah/go-handscript/internal/pipeline"
	"github.com/alnah/go-handscript/internal/svg"
)

// ParagraphStyle selects how paragraph boundaries appear in the output.
type ParagraphStyle = pipeline.ParagraphStyle

// Paragraph styles.
const (
	StylePreserveBreaks = pipeline.StylePreserveBreaks
	StyleSingleSpace    = pipeline.StyleSingleSpace
	StyleNoBreaks       = pipeline.StyleNoBreaks
	StyleIndentFirst    = pipeline.StyleIndentFirst
)

// ChunkStrategy selects how a line is split into engine requests.
type ChunkStrategy = pipeline.ChunkStrategy

// Chunk strategies.
const (
	ChunkFixed    = pipeline.ChunkFixed
	ChunkBalanced = pipeline.ChunkBalanced
	ChunkWidth    = pipeline.ChunkWidth
)

// Pipeline value types.
type (
	Alphabet    = pipeline.Alphabet
	WrappedLine = pipeline.WrappedLine
	LineKind    = pipeline.LineKind
	Page        = pipeline.Page
	Chunk       = pipeline.Chunk
)

// Line kinds.
const (
	LineText     = pipeline.LineText
	LineBlank    = pipeline.LineBlank
	LineOverflow = pipeline.LineOverflow
)

// NewAlphabet builds an alphabet from the runes of chars.
// Space and newline are always allowed.
func NewAlphabet(chars string) Alphabet { return pipeline.NewAlphabet(chars) }

// DefaultAlphabet returns the character set of the bundled handwriting model.
func DefaultAlphabet() Alphabet { return pipeline.DefaultAlphabet() }

// Processing defaults.
const (
	DefaultMaxLineLength = 60
	DefaultLinesPerPage  = 24
	DefaultIndentSpaces  = 4
	DefaultMaxEmptyLines = 2
)

// ProcessingConfig controls sanitizing, wrapping and pagination.
// A config is a value: copy it to change it.
type ProcessingConfig struct {
	MaxLineLength       int            `json:"max_line_length"`
	LinesPerPage        int            `json:"lines_per_page"`
	ParagraphStyle      ParagraphStyle `json:"paragraph_style"`
	IndentSpaces        int            `json:"indent_spaces"`
	PreserveEmptyLines  bool           `json:"preserve_empty_lines"`
	MaxEmptyLines       int            `json:"max_empty_lines"`
	Hyphenate           bool           `json:"hyphenate"`
	NormalizeWhitespace bool           `json:"normalize_whitespace"`
	AvoidOrphans        bool           `json:"avoid_orphans"`
}

// DefaultProcessingConfig returns the configuration used when none is given.
func DefaultProcessingConfig() ProcessingConfig {
	return ProcessingConfig{
		MaxLineLength:       DefaultMaxLineLength,
		LinesPerPage:        DefaultLinesPerPage,
		ParagraphStyle:      StylePreserveBreaks,
		IndentSpaces:        DefaultIndentSpaces,
		PreserveEmptyLines:  true,
		MaxEmptyLines:       DefaultMaxEmptyLines,
		Hyphenate:           true,
		NormalizeWhitespace: true,
	}
}

// Validate checks every field before any text is processed.
func (c ProcessingConfig) Validate() error {
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidLineLength, c.MaxLineLength)
	}
	if c.Hyphenate && c.MaxLineLength < 2 {
		return fmt.Errorf("%w: %d (hyphenation needs at least 2)", ErrInvalidLineLength, c.MaxLineLength)
	}
	if c.LinesPerPage <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidLinesPerPage, c.LinesPerPage)
	}
	if !IsValidParagraphStyle(c.ParagraphStyle) {
		return fmt.Errorf("%w: %q", ErrInvalidParagraphStyle, c.ParagraphStyle)
	}
	if c.IndentSpaces < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidIndent, c.IndentSpaces)
	}
	if c.ParagraphStyle == StyleIndentFirst && c.IndentSpaces >= c.MaxLineLength {
		return fmt.Errorf("%w: %d (must be below max line length %d)", ErrInvalidIndent, c.IndentSpaces, c.MaxLineLength)
	}
	if c.ParagraphStyle == StyleIndentFirst && c.Hyphenate && c.IndentSpaces > c.MaxLineLength-2 {
		return fmt.Errorf("%w: %d (hyphenation needs room for a letter and a hyphen within max line length %d)", ErrInvalidIndent, c.IndentSpaces, c.MaxLineLength)
	}
	if c.MaxEmptyLines < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidMaxEmptyLines, c.MaxEmptyLines)
	}
	return nil
}

func (c ProcessingConfig) toPipeline() pipeline.Config {
	return pipeline.Config{
		MaxLineLength:       c.MaxLineLength,
		LinesPerPage:        c.LinesPerPage,
		Style:               c.ParagraphStyle,
		IndentSpaces:        c.IndentSpaces,
		PreserveEmptyLines:  c.PreserveEmptyLines,
		MaxEmptyLines:       c.MaxEmptyLines,
		Hyphenate:           c.Hyphenate,
		NormalizeWhitespace: c.NormalizeWhitespace,
		AvoidOrphans:        c.AvoidOrphans,
	}
}

// IsValidParagraphStyle reports whether s names a known paragraph style.
func IsValidParagraphStyle(s ParagraphStyle) bool {
	switch s {
	case StylePreserveBreaks, StyleSingleSpace, StyleNoBreaks, StyleIndentFirst:
		return true
	}
	return false
}

// Chunking defaults.
const (
	DefaultChunkWords = 6
	DefaultChunkRunes = 40
)

// ChunkConfig controls how lines are split for the stroke engine.
type ChunkConfig struct {
	Strategy ChunkStrategy `json:"strategy"`
	MaxWords int           `json:"max_words"`
	MaxRunes int           `json:"max_runes"`
}

// DefaultChunkConfig returns balanced chunks of at most six words.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Strategy: ChunkBalanced,
		MaxWords: DefaultChunkWords,
		MaxRunes: DefaultChunkRunes,
	}
}

// Validate checks the strategy and its size limits.
func (c ChunkConfig) Validate() error {
	switch c.Strategy {
	case ChunkFixed, ChunkBalanced, ChunkWidth:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidChunkStrategy, c.Strategy)
	}
	if c.MaxWords <= 0 {
		return fmt.Errorf("%w: max words %d (must be positive)", ErrInvalidChunkSize, c.MaxWords)
	}
	if c.MaxRunes < 0 || (c.Strategy == ChunkWidth && c.MaxRunes == 0) {
		return fmt.Errorf("%w: max runes %d", ErrInvalidChunkSize, c.MaxRunes)
	}
	return nil
}

func (c ChunkConfig) toPipeline() pipeline.ChunkConfig {
	return pipeline.ChunkConfig{Strategy: c.Strategy, MaxWords: c.MaxWords, MaxRunes: c.MaxRunes}
}

// Handwriting style bounds. Style ids index the priming samples of the
// stroke model; bias sharpens sampling as it grows.
const (
	MinStyle    = 0
	MaxStyle    = 12
	MinBias     = 0.0
	MaxBias     = 10.0
	DefaultBias = 0.75
)

// ValidateHandwriting checks a style id and bias pair.
func ValidateHandwriting(style int, bias float64) error {
	if style < MinStyle || style > MaxStyle {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidStyle, style, MinStyle, MaxStyle)
	}
	if math.IsNaN(bias) || bias < MinBias || bias > MaxBias {
		return fmt.Errorf("%w: %v (must be between %.1f and %.1f)", ErrInvalidBias, bias, MinBias, MaxBias)
	}
	return nil
}

// Render defaults, in CSS pixels (96 per inch). The default page is US Letter.
const (
	DefaultPageWidth   = 816
	DefaultPageHeight  = 1056
	DefaultMarginLeft  = 64
	DefaultMarginTop   = 48
	DefaultLineHeight  = 40
	DefaultScale       = 1.0
	DefaultWordGap     = 10
	DefaultInkColor    = "#1b2a6b"
	DefaultStrokeWidth = 1.6
	DefaultPaper       = "plain"
	DefaultInk         = "ballpoint"
)

// RenderSettings controls page geometry and ink for SVG output.
// Template names a paper template set; Style names an ink style.
type RenderSettings struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	MarginLeft  float64 `json:"margin_left"`
	MarginTop   float64 `json:"margin_top"`
	LineHeight  float64 `json:"line_height"`
	Scale       float64 `json:"scale"`
	WordGap     float64 `json:"word_gap"`
	InkColor    string  `json:"ink_color"`
	StrokeWidth float64 `json:"stroke_width"`
	Template    string  `json:"template"`
	Style       string  `json:"style"`
}

// DefaultRenderSettings returns a US Letter page with ballpoint ink.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Width:       DefaultPageWidth,
		Height:      DefaultPageHeight,
		MarginLeft:  DefaultMarginLeft,
		MarginTop:   DefaultMarginTop,
		LineHeight:  DefaultLineHeight,
		Scale:       DefaultScale,
		WordGap:     DefaultWordGap,
		InkColor:    DefaultInkColor,
		StrokeWidth: DefaultStrokeWidth,
		Template:    DefaultPaper,
		Style:       DefaultInk,
	}
}

// Validate checks geometry and ink. Asset names are checked when loaded.
func (r RenderSettings) Validate() error {
	if !(r.Width > 0) || !(r.Height > 0) {
		return fmt.Errorf("%w: %vx%v (must be positive)", ErrInvalidPageSize, r.Width, r.Height)
	}
	if r.MarginLeft < 0 || r.MarginTop < 0 || 2*r.MarginLeft >= r.Width || r.MarginTop >= r.Height {
		return fmt.Errorf("%w: left %v top %v on a %vx%v page", ErrInvalidMargin, r.MarginLeft, r.MarginTop, r.Width, r.Height)
	}
	if !(r.LineHeight > 0) {
		return fmt.Errorf("%w: %v (must be positive)", ErrInvalidLineHeight, r.LineHeight)
	}
	if !(r.Scale > 0) {
		return fmt.Errorf("%w: %v (must be positive)", ErrInvalidScale, r.Scale)
	}
	if r.WordGap < 0 {
		return fmt.Errorf("%w: %v (must not be negative)", ErrInvalidWordGap, r.WordGap)
	}
	if err := svg.ValidateColor(r.InkColor); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidInkColor, r.InkColor)
	}
	if !(r.StrokeWidth > 0) {
		return fmt.Errorf("%w: %v (must be positive)", ErrInvalidStrokeWidth, r.StrokeWidth)
	}
	return nil
}

// FitsLines reports whether n lines fit between the top margin and the
// bottom edge of the page.
func (r RenderSettings) FitsLines(n int) bool {
	return r.MarginTop+float64(n)*r.LineHeight <= r.Height
}

func (r RenderSettings) toSVG() svg.Settings {
	return svg.Settings{
		Width:       r.Width,
		Height:      r.Height,
		MarginLeft:  r.MarginLeft,
		MarginTop:   r.MarginTop,
		LineHeight:  r.LineHeight,
		Scale:       r.Scale,
		WordGap:     r.WordGap,
		InkColor:    r.InkColor,
		StrokeWidth: r.StrokeWidth,
	}
}

// InputFormat tells the converter how to read Input.Text.
type InputFormat string

// Input formats.
const (
	FormatText     InputFormat = "text"
	FormatMarkdown InputFormat = "markdown"
)

// ParseInputFormat accepts "text", "markdown" or "md"; empty means text.
func ParseInputFormat(s string) (InputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInputFormat, s)
}

// Input is one conversion request. Nil configs use their defaults.
type Input struct {
	Text       string
	Format     InputFormat
	Title      string
	Processing *ProcessingConfig
	Chunking   *ChunkConfig
	Render     *RenderSettings
	Style      int
	Bias       float64
	PDF        bool
	// Dateline, when set, becomes the first paragraph. "today" and
	// "today:FORMAT" resolve to the current date; other text is kept as is.
	Dateline string
}

// resolved returns copies of the configs with defaults filled in.
func (in Input) resolved() (ProcessingConfig, ChunkConfig, RenderSettings) {
	proc := DefaultProcessingConfig()
	if in.Processing != nil {
		proc = *in.Processing
	}
	chunk := DefaultChunkConfig()
	if in.Chunking != nil {
		chunk = *in.Chunking
	}
	render := DefaultRenderSettings()
	if in.Render != nil {
		render = *in.Render
	}
	return proc, chunk, render
}

// RenderedPage is one finished SVG page.
type RenderedPage struct {
	Number int
	SVG    []byte
}

// ConvertResult holds everything a conversion produced.
// PDF is nil unless Input.PDF was set and the document has pages.
type ConvertResult struct {
	Document *Document
	Chunks   [][]Chunk
	Pages    []RenderedPage
	PDF      []byte
	Elapsed  time.Duration
}
