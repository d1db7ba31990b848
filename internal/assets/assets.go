package assets

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an ink style by name using the default embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplateSet loads a paper template set by name using the default
// embedded loader.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}

// ListStyles returns the names of the embedded ink styles, sorted.
func ListStyles() []string {
	return defaultLoader.listStyles()
}

// ListTemplateSets returns the names of the embedded paper template sets, sorted.
func ListTemplateSets() []string {
	return defaultLoader.listTemplateSets()
}
