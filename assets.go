package handscript

import (
	"errors"

	"github.com/alnah/go-handscript/internal/assets"
)

// AssetLoader defines the contract for loading ink styles and paper
// templates. Implement it to serve assets from another backend.
type AssetLoader interface {
	// LoadStyle loads an ink CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads a paper by name.
	// Returns ErrTemplateSetNotFound if the paper doesn't exist.
	// Returns ErrIncompleteTemplateSet if a required template is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the templates of one paper: an SVG page template
// (text/template) and an HTML sheet template (html/template) for PDF export.
type TemplateSet struct {
	Name  string
	Page  string
	Sheet string
}

// NewTemplateSet creates a TemplateSet from template contents.
func NewTemplateSet(name, page, sheet string) *TemplateSet {
	return &TemplateSet{Name: name, Page: page, Sheet: sheet}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only built-in assets.
// If basePath is set, its assets take precedence with fallback to built-ins.
//
// The basePath directory should contain:
//   - styles/{name}.css for ink styles
//   - templates/{name}/page.svg and sheet.html for papers
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{internal: resolver}, nil
}

// BuiltinStyles lists the names of the embedded ink styles.
func BuiltinStyles() []string { return assets.ListStyles() }

// BuiltinPapers lists the names of the embedded papers.
func BuiltinPapers() []string { return assets.ListTemplateSets() }

// WithAssetLoader serves ink styles and papers from loader.
// It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		if loader != nil {
			c.publicAssetLoader = loader
		}
	}
}

// assetLoaderAdapter exposes an internal loader through the public API.
type assetLoaderAdapter struct {
	internal assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.internal.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.internal.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &TemplateSet{Name: ts.Name, Page: ts.Page, Sheet: ts.Sheet}, nil
}

// publicToInternalAdapter lets the converter use a public AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{Name: ts.Name, Page: ts.Page, Sheet: ts.Sheet}, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// under errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
