package handscript

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/alnah/go-handscript/internal/svg"
)

// Point is one pen sample in engine units. Y grows upward from the
// baseline at 0; PenUp marks the last point of a stroke.
type Point = svg.Point

// StrokeRequest asks the engine to write one chunk of text.
type StrokeRequest struct {
	Text  string
	Style int
	Bias  float64
}

// StrokeGenerator turns text into pen strokes. Implementations wrap the
// handwriting model; they must honour ctx cancellation.
type StrokeGenerator interface {
	Generate(ctx context.Context, req StrokeRequest) ([]Point, error)
}

// StrokeGeneratorFunc adapts a function to StrokeGenerator.
type StrokeGeneratorFunc func(ctx context.Context, req StrokeRequest) ([]Point, error)

// Generate calls f.
func (f StrokeGeneratorFunc) Generate(ctx context.Context, req StrokeRequest) ([]Point, error) {
	return f(ctx, req)
}

// Preview glyph metrics in engine units.
const (
	previewAdvance   = 10.0
	previewXHeight   = 8.0
	previewAscender  = 14.0
	previewDescender = -5.0
)

// PreviewEngine draws one slanted stroke per glyph. Output is deterministic
// for a given request, which makes it suitable for layout previews and tests.
type PreviewEngine struct{}

// NewPreviewEngine creates a PreviewEngine.
func NewPreviewEngine() *PreviewEngine {
	return &PreviewEngine{}
}

// Generate implements StrokeGenerator.
func (e *PreviewEngine) Generate(ctx context.Context, req StrokeRequest) ([]Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Higher bias writes neater, so the jitter shrinks.
	jitterScale := 1 / (1 + req.Bias)

	var points []Point
	x := 0.0
	for i, r := range req.Text {
		if r == ' ' {
			x += previewAdvance
			continue
		}

		top, bottom := glyphExtent(r)
		jitter := float64((int(r)*7+req.Style*3+i)%5) / 10 * jitterScale * previewAdvance / 4
		if strings.ContainsRune(".,:;'\"", r) {
			points = append(points,
				Point{X: x + 0.3*previewAdvance, Y: top},
				Point{X: x + 0.2*previewAdvance, Y: top - 1.5, PenUp: true},
			)
			x += previewAdvance / 2
			continue
		}
		points = append(points,
			Point{X: x, Y: bottom},
			Point{X: x + 0.35*previewAdvance + jitter, Y: top},
			Point{X: x + 0.7*previewAdvance, Y: bottom, PenUp: true},
		)
		x += previewAdvance
	}
	return points, nil
}

// glyphExtent returns the top and bottom of a preview glyph.
func glyphExtent(r rune) (top, bottom float64) {
	switch {
	case strings.ContainsRune(".,", r):
		return 1.5, 0
	case strings.ContainsRune(":;'\"", r):
		return previewXHeight, 0
	case unicode.IsUpper(r), unicode.IsDigit(r), strings.ContainsRune("bdfhklt!?()#", r):
		return previewAscender, 0
	case strings.ContainsRune("gjpqy", r):
		return previewXHeight, previewDescender
	default:
		return previewXHeight, 0
	}
}

// SerialEngine lets one request at a time through to the wrapped generator.
type SerialEngine struct {
	mu   sync.Mutex
	next StrokeGenerator
}

// NewSerialEngine wraps next.
func NewSerialEngine(next StrokeGenerator) *SerialEngine {
	return &SerialEngine{next: next}
}

// Generate implements StrokeGenerator.
func (e *SerialEngine) Generate(ctx context.Context, req StrokeRequest) ([]Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.next.Generate(ctx, req)
}

// Compile-time interface checks.
var (
	_ StrokeGenerator = (*PreviewEngine)(nil)
	_ StrokeGenerator = (*SerialEngine)(nil)
	_ StrokeGenerator = StrokeGeneratorFunc(nil)
)
