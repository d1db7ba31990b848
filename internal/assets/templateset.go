package assets

// TemplateSet holds the templates that draw one kind of paper.
// Page renders a single SVG page; Sheet wraps rendered pages into the
// printable HTML document used for PDF export.
type TemplateSet struct {
	Name  string // Identifier (name or directory path)
	Page  string // SVG page template
	Sheet string // HTML sheet template
}

// Template file names inside a template set directory.
const (
	PageTemplateFile  = "page.svg"
	SheetTemplateFile = "sheet.html"
)

// DefaultTemplateSetName is the name of the built-in paper.
const DefaultTemplateSetName = "plain"

// DefaultStyleName is the name of the built-in ink style.
const DefaultStyleName = "ballpoint"
