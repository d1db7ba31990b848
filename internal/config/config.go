package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/dateutil"
	"github.com/alnah/go-handscript/internal/logger"
	"github.com/alnah/go-handscript/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidWorkers  = errors.New("workers must not be negative")
	ErrInvalidEngine   = errors.New("invalid stroke engine")
)

// Field length limits.
const (
	MaxAssetNameLength = 64   // paper and ink names
	MaxColorLength     = 32   // "#1b2a6b" or a color keyword
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxArgLength       = 1024 // one engine command argument
	MaxDatelineLength  = 200
)

// Stroke engines selectable from config.
const (
	EnginePreview = "preview"
	EngineCommand = "command"
)

// Named page sizes in CSS pixels (96 per inch).
var pageSizes = map[string][2]float64{
	"letter": {816, 1056},
	"legal":  {816, 1344},
	"a4":     {794, 1123},
	"a5":     {559, 794},
}

// PageSize returns the dimensions of a named page size.
func PageSize(name string) (width, height float64, ok bool) {
	size, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	return size[0], size[1], ok
}

// Config holds all configuration for handwriting generation.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Processing  ProcessingConfig  `yaml:"processing"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Handwriting HandwritingConfig `yaml:"handwriting"`
	Page        PageConfig        `yaml:"page"`
	Ink         InkConfig         `yaml:"ink"`
	Assets      AssetsConfig      `yaml:"assets"`
	Log         LogConfig         `yaml:"log"`
	Presets     PresetsConfig     `yaml:"presets"`
	Workers     int               `yaml:"workers"` // 0 = derive from CPU count
}

// InputConfig defines input source options.
type InputConfig struct {
	Format     string `yaml:"format"`     // "text" or "markdown" (default: by file extension)
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Dateline   string `yaml:"dateline"`   // "today", "today:FORMAT" or literal text
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	PDF        bool   `yaml:"pdf"`        // Also export a PDF sheet
}

// ProcessingConfig mirrors handscript.ProcessingConfig.
type ProcessingConfig struct {
	LineLength          int    `yaml:"lineLength"`
	LinesPerPage        int    `yaml:"linesPerPage"`
	ParagraphStyle      string `yaml:"paragraphStyle"`
	IndentSpaces        int    `yaml:"indentSpaces"`
	PreserveEmptyLines  bool   `yaml:"preserveEmptyLines"`
	MaxEmptyLines       int    `yaml:"maxEmptyLines"`
	Hyphenate           bool   `yaml:"hyphenate"`
	NormalizeWhitespace bool   `yaml:"normalizeWhitespace"`
	AvoidOrphans        bool   `yaml:"avoidOrphans"`
}

// ChunkingConfig mirrors handscript.ChunkConfig.
type ChunkingConfig struct {
	Strategy string `yaml:"strategy"` // "fixed", "balanced", "width"
	MaxWords int    `yaml:"maxWords"`
	MaxChars int    `yaml:"maxChars"` // width budget for the "width" strategy
}

// HandwritingConfig selects the stroke engine and its sampling parameters.
type HandwritingConfig struct {
	Style   int      `yaml:"style"`   // 0-12
	Bias    float64  `yaml:"bias"`    // 0-10
	Engine  string   `yaml:"engine"`  // "preview" (default) or "command"
	Command []string `yaml:"command"` // argv of the external engine
}

// PageConfig defines page geometry. Size sets Width and Height unless they
// are given explicitly.
type PageConfig struct {
	Size       string  `yaml:"size"` // "letter", "legal", "a4", "a5"
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	MarginLeft float64 `yaml:"marginLeft"`
	MarginTop  float64 `yaml:"marginTop"`
	LineHeight float64 `yaml:"lineHeight"`
	Scale      float64 `yaml:"scale"`
	WordGap    float64 `yaml:"wordGap"`
	Paper      string  `yaml:"paper"` // template set name
}

// InkConfig defines the ink style and stroke appearance.
type InkConfig struct {
	Style       string  `yaml:"style"` // ink CSS name
	Color       string  `yaml:"color"`
	StrokeWidth float64 `yaml:"strokeWidth"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // Empty = CLI default
	JSON  bool   `yaml:"json"`
}

// PresetsConfig locates the preset database.
type PresetsConfig struct {
	Path string `yaml:"path"` // Empty = user config directory
}

// DefaultConfig returns the library defaults expressed as a config file.
func DefaultConfig() *Config {
	cfg := &Config{
		Handwriting: HandwritingConfig{
			Bias:   handscript.DefaultBias,
			Engine: EnginePreview,
		},
	}
	cfg.Apply(handscript.DefaultProcessingConfig(), handscript.DefaultChunkConfig(), handscript.DefaultRenderSettings())
	return cfg
}

// Apply overwrites the processing, chunking, page and ink sections with
// library settings. Page.Size is cleared since Width and Height are explicit.
func (c *Config) Apply(proc handscript.ProcessingConfig, chunk handscript.ChunkConfig, render handscript.RenderSettings) {
	c.Processing = ProcessingConfig{
		LineLength:          proc.MaxLineLength,
		LinesPerPage:        proc.LinesPerPage,
		ParagraphStyle:      string(proc.ParagraphStyle),
		IndentSpaces:        proc.IndentSpaces,
		PreserveEmptyLines:  proc.PreserveEmptyLines,
		MaxEmptyLines:       proc.MaxEmptyLines,
		Hyphenate:           proc.Hyphenate,
		NormalizeWhitespace: proc.NormalizeWhitespace,
		AvoidOrphans:        proc.AvoidOrphans,
	}
	c.Chunking = ChunkingConfig{
		Strategy: string(chunk.Strategy),
		MaxWords: chunk.MaxWords,
		MaxChars: chunk.MaxRunes,
	}
	c.Page = PageConfig{
		Width:      render.Width,
		Height:     render.Height,
		MarginLeft: render.MarginLeft,
		MarginTop:  render.MarginTop,
		LineHeight: render.LineHeight,
		Scale:      render.Scale,
		WordGap:    render.WordGap,
		Paper:      render.Template,
	}
	c.Ink = InkConfig{
		Style:       render.Style,
		Color:       render.InkColor,
		StrokeWidth: render.StrokeWidth,
	}
}

// SetPageSize selects a named page size, dropping explicit width and height.
func (c *Config) SetPageSize(name string) {
	c.Page.Size = name
	c.Page.Width, c.Page.Height = 0, 0
}

// ProcessingSettings converts the processing section for the converter.
func (c *Config) ProcessingSettings() handscript.ProcessingConfig {
	p := c.Processing
	return handscript.ProcessingConfig{
		MaxLineLength:       p.LineLength,
		LinesPerPage:        p.LinesPerPage,
		ParagraphStyle:      handscript.ParagraphStyle(p.ParagraphStyle),
		IndentSpaces:        p.IndentSpaces,
		PreserveEmptyLines:  p.PreserveEmptyLines,
		MaxEmptyLines:       p.MaxEmptyLines,
		Hyphenate:           p.Hyphenate,
		NormalizeWhitespace: p.NormalizeWhitespace,
		AvoidOrphans:        p.AvoidOrphans,
	}
}

// ChunkSettings converts the chunking section for the converter.
func (c *Config) ChunkSettings() handscript.ChunkConfig {
	return handscript.ChunkConfig{
		Strategy: handscript.ChunkStrategy(c.Chunking.Strategy),
		MaxWords: c.Chunking.MaxWords,
		MaxRunes: c.Chunking.MaxChars,
	}
}

// RenderSettings converts the page and ink sections for the converter.
// A named page size fills in width and height left at zero.
func (c *Config) RenderSettings() handscript.RenderSettings {
	width, height := c.Page.Width, c.Page.Height
	if w, h, ok := PageSize(c.Page.Size); ok {
		if width == 0 {
			width = w
		}
		if height == 0 {
			height = h
		}
	}
	return handscript.RenderSettings{
		Width:       width,
		Height:      height,
		MarginLeft:  c.Page.MarginLeft,
		MarginTop:   c.Page.MarginTop,
		LineHeight:  c.Page.LineHeight,
		Scale:       c.Page.Scale,
		WordGap:     c.Page.WordGap,
		InkColor:    c.Ink.Color,
		StrokeWidth: c.Ink.StrokeWidth,
		Template:    c.Page.Paper,
		Style:       c.Ink.Style,
	}
}

// Validate checks every section. Called automatically by LoadConfig, and
// again by the CLI after flags are applied.
func (c *Config) Validate() error {
	if err := c.validateLengths(); err != nil {
		return err
	}

	if _, err := handscript.ParseInputFormat(c.Input.Format); err != nil {
		return fmt.Errorf("input.format: %w", err)
	}
	if _, err := dateutil.Dateline(c.Input.Dateline, time.Now()); err != nil {
		return fmt.Errorf("input.dateline: %w", err)
	}
	if c.Page.Size != "" {
		if _, _, ok := PageSize(c.Page.Size); !ok {
			return fmt.Errorf("page.size: %w: unknown size %q (use letter, legal, a4 or a5)", handscript.ErrInvalidPageSize, c.Page.Size)
		}
	}

	proc := c.ProcessingSettings()
	if err := proc.Validate(); err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	if err := c.ChunkSettings().Validate(); err != nil {
		return fmt.Errorf("chunking: %w", err)
	}
	render := c.RenderSettings()
	if err := render.Validate(); err != nil {
		return fmt.Errorf("page: %w", err)
	}
	if !render.FitsLines(proc.LinesPerPage) {
		return fmt.Errorf("page: %w: %d lines of %v px from %v px on a %v px page",
			handscript.ErrPageOverflow, proc.LinesPerPage, render.LineHeight, render.MarginTop, render.Height)
	}
	if err := handscript.ValidateHandwriting(c.Handwriting.Style, c.Handwriting.Bias); err != nil {
		return fmt.Errorf("handwriting: %w", err)
	}

	switch c.Handwriting.Engine {
	case "", EnginePreview:
	case EngineCommand:
		if len(c.Handwriting.Command) == 0 || c.Handwriting.Command[0] == "" {
			return fmt.Errorf("handwriting.command: %w: required when engine is %q", ErrInvalidEngine, EngineCommand)
		}
	default:
		return fmt.Errorf("handwriting.engine: %w: %q (must be preview or command)", ErrInvalidEngine, c.Handwriting.Engine)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers: %w, got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Log.Level != "" {
		if _, err := logger.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

func (c *Config) validateLengths() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"page.paper", c.Page.Paper, MaxAssetNameLength},
		{"ink.style", c.Ink.Style, MaxAssetNameLength},
		{"ink.color", c.Ink.Color, MaxColorLength},
		{"input.dateline", c.Input.Dateline, MaxDatelineLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"presets.path", c.Presets.Path, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	for i, arg := range c.Handwriting.Command {
		if err := validateFieldLength(fmt.Sprintf("handwriting.command[%d]", i), arg, MaxArgLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	// Width and height start unset so a page size in the file can fill them.
	cfg.Page.Width, cfg.Page.Height = 0, 0
	if err := yamlutil.ReadFile(configPath, cfg); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
		}
	}

	if cfg.Page.Size == "" {
		render := handscript.DefaultRenderSettings()
		if cfg.Page.Width == 0 {
			cfg.Page.Width = render.Width
		}
		if cfg.Page.Height == 0 {
			cfg.Page.Height = render.Height
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-handscript/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if dir, err := UserDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// UserDir returns the per-user directory holding configs and presets.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "go-handscript"), nil
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
