package handscript

import (
	"errors"
	"fmt"

	"github.com/alnah/go-handscript/internal/pipeline"
	"github.com/alnah/go-handscript/internal/svg"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Processing and chunking validation errors.
var (
	ErrInvalidLineLength     = fmt.Errorf("%w: max line length", ErrInvalidConfig)
	ErrInvalidLinesPerPage   = fmt.Errorf("%w: lines per page", ErrInvalidConfig)
	ErrInvalidParagraphStyle = fmt.Errorf("%w: paragraph style", ErrInvalidConfig)
	ErrInvalidIndent         = fmt.Errorf("%w: indent spaces", ErrInvalidConfig)
	ErrInvalidMaxEmptyLines  = fmt.Errorf("%w: max empty lines", ErrInvalidConfig)
	ErrInvalidChunkStrategy  = fmt.Errorf("%w: chunk strategy", ErrInvalidConfig)
	ErrInvalidChunkSize      = fmt.Errorf("%w: chunk size", ErrInvalidConfig)
	ErrInvalidInputFormat    = fmt.Errorf("%w: input format", ErrInvalidConfig)
	ErrInvalidDateline       = fmt.Errorf("%w: dateline", ErrInvalidConfig)
)

// Handwriting and render validation errors.
var (
	ErrInvalidStyle       = fmt.Errorf("%w: handwriting style", ErrInvalidConfig)
	ErrInvalidBias        = fmt.Errorf("%w: bias", ErrInvalidConfig)
	ErrInvalidPageSize    = fmt.Errorf("%w: page size", ErrInvalidConfig)
	ErrInvalidMargin      = fmt.Errorf("%w: margin", ErrInvalidConfig)
	ErrInvalidLineHeight  = fmt.Errorf("%w: line height", ErrInvalidConfig)
	ErrInvalidScale       = fmt.Errorf("%w: scale", ErrInvalidConfig)
	ErrInvalidWordGap     = fmt.Errorf("%w: word gap", ErrInvalidConfig)
	ErrInvalidInkColor    = fmt.Errorf("%w: ink color", ErrInvalidConfig)
	ErrInvalidStrokeWidth = fmt.Errorf("%w: stroke width", ErrInvalidConfig)
	ErrPageOverflow       = fmt.Errorf("%w: lines do not fit the page height", ErrInvalidConfig)
)

// Conversion errors.
var (
	ErrStrokeGeneration   = errors.New("stroke generation failed")
	ErrEmptyStrokes       = errors.New("stroke engine returned no points")
	ErrMarkdownExtraction = pipeline.ErrMarkdownExtraction
	ErrSVGRender          = svg.ErrRender
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrPoolClosed         = errors.New("converter pool is closed")
)

// Asset loading errors.
var (
	ErrStyleNotFound         = errors.New("ink style not found")
	ErrTemplateSetNotFound   = errors.New("paper template set not found")
	ErrIncompleteTemplateSet = errors.New("paper template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
