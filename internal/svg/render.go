package svg

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

// Settings controls page geometry and ink. Lengths are in SVG user units
// (CSS pixels) except WordGap, which is in engine units.
type Settings struct {
	Width       float64
	Height      float64
	MarginLeft  float64
	MarginTop   float64
	LineHeight  float64
	Scale       float64
	WordGap     float64
	InkColor    string
	StrokeWidth float64
}

// Baseline returns the y coordinate of line i (0-based) on a page.
func (s Settings) Baseline(i int) float64 {
	return s.MarginTop + float64(i+1)*s.LineHeight
}

// pathView is one drawn line in the page template.
type pathView struct {
	Line int
	D    string
}

// pageView is the data passed to page templates.
type pageView struct {
	Number      int
	Width       float64
	Height      float64
	MarginLeft  float64
	InkColor    string
	StrokeWidth float64
	CSS         string
	Paths       []pathView
	Baselines   []float64
	Columns     []float64
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z]{1,32})$`)

// ValidateColor accepts #rgb, #rrggbb and plain CSS color keywords.
func ValidateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return nil
}

// Renderer renders pages through a parsed paper template.
type Renderer struct {
	page *template.Template
	css  string
}

var funcs = template.FuncMap{"num": formatNumber}

// NewRenderer parses the SVG page template and keeps the ink CSS.
func NewRenderer(pageTemplate, css string) (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(funcs).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Renderer{page: tmpl, css: css}, nil
}

// Render draws one page.
func (r *Renderer) Render(page Page, s Settings) ([]byte, error) {
	if err := ValidateColor(s.InkColor); err != nil {
		return nil, err
	}

	view := pageView{
		Number:      page.Number,
		Width:       s.Width,
		Height:      s.Height,
		MarginLeft:  s.MarginLeft,
		InkColor:    s.InkColor,
		StrokeWidth: s.StrokeWidth,
		CSS:         r.css,
		Baselines:   rules(s),
		Columns:     columns(s),
	}

	for i, line := range page.Lines {
		if line.IsBlank() {
			continue
		}
		points := line.Assemble(s.WordGap)
		view.Paths = append(view.Paths, pathView{
			Line: i,
			D:    PathData(points, s, s.Baseline(i)),
		})
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrRender, page.Number, err)
	}
	return buf.Bytes(), nil
}

// PathData converts assembled points into an SVG path on the given
// baseline. x = 0 sits on the left margin, so an indent survives; points
// left of it are moved right. Lines wider than the writable area shrink to
// fit.
func PathData(points []Point, s Settings, baseline float64) string {
	if len(points) == 0 {
		return ""
	}

	scale := s.Scale
	minX, maxX := Bounds(points)
	minX = math.Min(minX, 0)
	if avail := s.Width - 2*s.MarginLeft; avail > 0 && (maxX-minX)*scale > avail {
		scale = avail / (maxX - minX)
	}

	var b strings.Builder
	penDown := false
	for _, p := range points {
		x := s.MarginLeft + (p.X-minX)*scale
		y := baseline - p.Y*scale
		if penDown {
			b.WriteString(" L")
		} else {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('M')
		}
		b.WriteString(formatNumber(x))
		b.WriteByte(',')
		b.WriteString(formatNumber(y))
		penDown = !p.PenUp
	}
	return b.String()
}

func rules(s Settings) []float64 {
	if s.LineHeight <= 0 {
		return nil
	}
	var ys []float64
	for i := 0; s.Baseline(i) < s.Height; i++ {
		ys = append(ys, s.Baseline(i))
	}
	return ys
}

func columns(s Settings) []float64 {
	if s.LineHeight <= 0 {
		return nil
	}
	var xs []float64
	for x := s.MarginLeft; x < s.Width; x += s.LineHeight {
		xs = append(xs, x)
	}
	return xs
}

// formatNumber prints v with at most two decimals.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
