package pipeline

// ParagraphStyle controls how paragraph boundaries are laid out.
type ParagraphStyle string

// Paragraph styles.
const (
	StylePreserveBreaks ParagraphStyle = "preserve_breaks"
	StyleSingleSpace    ParagraphStyle = "single_space"
	StyleNoBreaks       ParagraphStyle = "no_breaks"
	StyleIndentFirst    ParagraphStyle = "indent_first"
)

// Config is the immutable layout configuration shared by all stages.
type Config struct {
	MaxLineLength       int
	LinesPerPage        int
	Style               ParagraphStyle
	IndentSpaces        int
	PreserveEmptyLines  bool
	MaxEmptyLines       int
	Hyphenate           bool
	NormalizeWhitespace bool
	AvoidOrphans        bool
}

// Paragraph is a run of non-blank source lines plus the number of blank
// lines that followed it. A paragraph with no lines stands for blank lines
// at the very start of the input.
type Paragraph struct {
	Lines          []string
	TrailingBlanks int
}

// IsEmpty reports whether the paragraph carries no text.
func (p Paragraph) IsEmpty() bool {
	return len(p.Lines) == 0
}

// LineKind tags a wrapped line.
type LineKind int

const (
	// LineText is a regular line within the length limit.
	LineText LineKind = iota
	// LineBlank is an empty line kept from the source or inserted as a
	// paragraph separator.
	LineBlank
	// LineOverflow holds a single word longer than the limit, emitted whole
	// because hyphenation is disabled.
	LineOverflow
)

// String returns a human-readable representation of the line kind.
func (k LineKind) String() string {
	switch k {
	case LineText:
		return "text"
	case LineBlank:
		return "blank"
	case LineOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// WrappedLine is one output line in reading order.
type WrappedLine struct {
	Text string
	Kind LineKind
	// Paragraph is the index of the source paragraph the line belongs to.
	// Separator lines carry the index of the paragraph they follow.
	Paragraph int
	// First and Last mark the first and last text lines of a paragraph.
	First bool
	Last  bool
}

// IsBlank reports whether the line is empty.
func (l WrappedLine) IsBlank() bool {
	return l.Kind == LineBlank
}

// Page is an ordered group of lines rendered on one sheet.
type Page struct {
	Number int
	Lines  []WrappedLine
}

// ChunkStrategy selects how a line is cut into word groups.
type ChunkStrategy string

// Chunk strategies.
const (
	ChunkFixed    ChunkStrategy = "fixed"
	ChunkBalanced ChunkStrategy = "balanced"
	ChunkWidth    ChunkStrategy = "width"
)

// ChunkConfig bounds the chunks handed to the stroke engine.
type ChunkConfig struct {
	Strategy ChunkStrategy
	MaxWords int
	// MaxRunes is the width budget of the width strategy. Ignored otherwise.
	MaxRunes int
}

// Chunk is a word group cut from a line. Text equals the line's bytes
// between Start and End.
type Chunk struct {
	Line  int
	Index int
	Text  string
	Start int
	End   int
	Words int
}
