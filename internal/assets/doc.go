// Package assets provides ink styles and paper templates for handwriting pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in inks and papers (go:embed)
//	    ├── FilesystemLoader  - user assets from a directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css        # ink style (ballpoint, pencil, fountain, marker)
//	└── templates/
//	    └── {name}/
//	        ├── page.svg      # one handwritten page (text/template)
//	        └── sheet.html    # printable sheet wrapping all pages (html/template)
//
// Built-in papers are plain, ruled and grid.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
