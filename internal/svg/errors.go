package svg

import "errors"

// Sentinel errors for SVG rendering.
var (
	ErrTemplateParse = errors.New("failed to parse template")
	ErrRender        = errors.New("failed to render page")
	ErrInvalidColor  = errors.New("invalid ink color")
)
