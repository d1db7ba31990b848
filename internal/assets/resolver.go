package assets

import (
	"errors"
)

// AssetResolver looks up inks and papers in a user asset directory first
// and falls back to the embedded set. Only "not found" falls through: a
// malformed custom paper is reported, not silently replaced.
type AssetResolver struct {
	layers []AssetLoader // custom directory (if any), then embedded
}

// NewAssetResolver returns a resolver over the embedded assets, layered
// under customBasePath when it is non-empty. An unusable customBasePath is
// an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the CSS of the named ink.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return firstFound(r.layers, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplateSet returns the named paper.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return firstFound(r.layers, func(l AssetLoader) (*TemplateSet, error) {
		return l.LoadTemplateSet(name)
	})
}

// HasCustomLoader reports whether a user asset directory is layered in.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

// firstFound asks each layer in turn and stops at the first answer that is
// not a "not found" error.
func firstFound[T any](layers []AssetLoader, load func(AssetLoader) (T, error)) (T, error) {
	var zero T
	var err error
	for _, l := range layers {
		var v T
		v, err = load(l)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateSetNotFound) {
			return zero, err
		}
	}
	return zero, err
}

var _ AssetLoader = (*AssetResolver)(nil)
