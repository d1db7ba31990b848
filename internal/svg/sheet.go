package svg

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
)

type sheetView struct {
	Title  string
	Width  int
	Height int
	Pages  []template.HTML
}

// SheetRenderer wraps rendered SVG pages into one printable HTML document.
type SheetRenderer struct {
	tmpl *template.Template
}

// NewSheetRenderer parses the HTML sheet template.
func NewSheetRenderer(sheetTemplate string) (*SheetRenderer, error) {
	tmpl, err := template.New("sheet").Parse(sheetTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &SheetRenderer{tmpl: tmpl}, nil
}

// Render builds the sheet. Every page must come from Renderer.Render.
func (r *SheetRenderer) Render(title string, width, height float64, pages [][]byte) ([]byte, error) {
	view := sheetView{
		Title:  title,
		Width:  int(math.Ceil(width)),
		Height: int(math.Ceil(height)),
		Pages:  make([]template.HTML, len(pages)),
	}
	for i, p := range pages {
		view.Pages[i] = template.HTML(p) // #nosec G203 -- pages are produced by Renderer
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("%w: sheet: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
