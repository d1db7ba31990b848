package preset

import (
	"fmt"

	"github.com/alnah/go-handscript/internal/config"
	"github.com/alnah/go-handscript/internal/yamlutil"
)

// document is the YAML form of a preset. Sections share the keys of the
// config file.
type document struct {
	Name        string                  `yaml:"name"`
	Handwriting handwriting             `yaml:"handwriting"`
	Processing  config.ProcessingConfig `yaml:"processing"`
	Chunking    config.ChunkingConfig   `yaml:"chunking"`
	Page        config.PageConfig       `yaml:"page"`
	Ink         config.InkConfig        `yaml:"ink"`
}

type handwriting struct {
	Style int     `yaml:"style"`
	Bias  float64 `yaml:"bias"`
}

// Export encodes p as YAML.
func Export(p Preset) ([]byte, error) {
	cfg := config.DefaultConfig()
	cfg.Apply(p.Processing, p.Chunking, p.Render)

	doc := document{
		Name:        p.Name,
		Handwriting: handwriting{Style: p.Style, Bias: p.Bias},
		Processing:  cfg.Processing,
		Chunking:    cfg.Chunking,
		Page:        cfg.Page,
		Ink:         cfg.Ink,
	}
	return yamlutil.Marshal(doc)
}

// Import decodes and validates a YAML preset. Sections absent from data
// keep their defaults.
func Import(data []byte) (Preset, error) {
	return ImportAs(data, "")
}

// ImportAs is Import with the preset renamed to name, unless name is empty.
func ImportAs(data []byte, name string) (Preset, error) {
	cfg := config.DefaultConfig()
	doc := document{
		Handwriting: handwriting{Style: cfg.Handwriting.Style, Bias: cfg.Handwriting.Bias},
		Processing:  cfg.Processing,
		Chunking:    cfg.Chunking,
		Page:        cfg.Page,
		Ink:         cfg.Ink,
	}
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		return Preset{}, fmt.Errorf("decoding preset: %w", err)
	}

	cfg.Processing = doc.Processing
	cfg.Chunking = doc.Chunking
	cfg.Page = doc.Page
	cfg.Ink = doc.Ink

	if name != "" {
		doc.Name = name
	}
	p := Preset{
		Name:       doc.Name,
		Style:      doc.Handwriting.Style,
		Bias:       doc.Handwriting.Bias,
		Processing: cfg.ProcessingSettings(),
		Chunking:   cfg.ChunkSettings(),
		Render:     cfg.RenderSettings(),
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}
