package handscript

import (
	"time"

	"github.com/alnah/go-handscript/internal/logger"
)

// Default timeout for browser page loads during PDF export.
const defaultTimeout = 30 * time.Second

// Logger receives structured diagnostics from the converter.
type Logger = logger.Logger

// converterConfig holds options applied by NewConverter.
type converterConfig struct {
	timeout   time.Duration
	assetPath string
}

// Option configures a Converter.
type Option func(*Converter)

// WithEngine sets the stroke generator. Without it the converter uses
// PreviewEngine.
func WithEngine(engine StrokeGenerator) Option {
	return func(c *Converter) {
		if engine != nil {
			c.engine = engine
		}
	}
}

// WithAlphabet sets the characters the engine can write.
func WithAlphabet(alphabet Alphabet) Option {
	return func(c *Converter) {
		c.alphabet = alphabet
	}
}

// WithLogger sets the logger. Without it the converter is silent.
func WithLogger(l Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAssetPath loads ink styles and paper templates from dir first,
// falling back to the built-in ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithTimeout sets the browser page load timeout for PDF export.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		if d > 0 {
			c.cfg.timeout = d
		}
	}
}
