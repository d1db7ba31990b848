package assets

// AssetLoader defines the contract for loading ink styles and paper templates.
type AssetLoader interface {
	// LoadStyle loads an ink CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads a paper template set by directory name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if page.svg or sheet.html is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
