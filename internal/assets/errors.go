package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound         = errors.New("ink style not found")
	ErrTemplateSetNotFound   = errors.New("paper template set not found")
	ErrIncompleteTemplateSet = errors.New("paper template set missing required template")

	// ErrInvalidAssetName indicates the asset name contains path separators,
	// dots, or other characters that could escape the asset directory.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid asset base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected")
)
