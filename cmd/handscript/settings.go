package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	handscript "github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/config"
	"github.com/alnah/go-handscript/internal/fileutil"
	"github.com/alnah/go-handscript/internal/logger"
	"github.com/alnah/go-handscript/internal/preset"
)

// Sentinel errors for settings resolution.
var (
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrReadPreset         = errors.New("failed to read preset file")
)

// defaultLogLevel keeps the CLI quiet unless something goes wrong.
const defaultLogLevel = logger.WarnLevel

// resolveConfig builds the effective config. Later sources win:
// defaults, config file, environment, preset, then flags.
func resolveConfig(ctx context.Context, f *settingsFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := f.common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)

	ref := f.common.preset
	if ref == "" {
		ref = env.Preset
	}
	if ref != "" {
		p, err := loadPreset(ctx, ref, cfg)
		if err != nil {
			return nil, err
		}
		applyPreset(p, cfg)
	}

	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return cfg, nil
}

// mergeFlags copies flags given on the command line into cfg.
func mergeFlags(f *settingsFlags, cfg *config.Config) {
	changed := f.changed
	if changed == nil {
		return
	}

	// Common
	if changed("log-level") {
		cfg.Log.Level = f.common.logLevel
	}
	if changed("log-json") {
		cfg.Log.JSON = f.common.logJSON
	}

	// Input
	if changed("format") {
		cfg.Input.Format = f.input.format
	}
	if changed("dateline") {
		cfg.Input.Dateline = f.input.dateline
	}

	// Handwriting
	if changed("engine-cmd") {
		cfg.Handwriting.Command = strings.Fields(f.handwriting.engineCmd)
		if !changed("engine") {
			cfg.Handwriting.Engine = config.EngineCommand
		}
	}
	if changed("engine") {
		cfg.Handwriting.Engine = f.handwriting.engine
	}
	if changed("style") {
		cfg.Handwriting.Style = f.handwriting.style
	}
	if changed("bias") {
		cfg.Handwriting.Bias = f.handwriting.bias
	}

	// Processing
	p := &cfg.Processing
	if changed("line-length") {
		p.LineLength = f.processing.lineLength
	}
	if changed("lines-per-page") {
		p.LinesPerPage = f.processing.linesPerPage
	}
	if changed("paragraph-style") {
		p.ParagraphStyle = f.processing.paragraphStyle
	}
	if changed("indent") {
		p.IndentSpaces = f.processing.indent
	}
	if changed("max-empty-lines") {
		p.MaxEmptyLines = f.processing.maxEmptyLines
	}
	if changed("hyphenate") {
		p.Hyphenate = f.processing.hyphenate
	}
	if changed("avoid-orphans") {
		p.AvoidOrphans = f.processing.avoidOrphans
	}
	if changed("chunk-strategy") {
		cfg.Chunking.Strategy = f.processing.chunkStrategy
	}
	if changed("max-words") {
		cfg.Chunking.MaxWords = f.processing.maxWords
	}
	if changed("max-chars") {
		cfg.Chunking.MaxChars = f.processing.maxChars
	}

	// Page and ink
	if changed("page-size") {
		cfg.SetPageSize(f.page.size)
	}
	if changed("paper") {
		cfg.Page.Paper = f.page.paper
	}
	if changed("line-height") {
		cfg.Page.LineHeight = f.page.lineHeight
	}
	if changed("scale") {
		cfg.Page.Scale = f.page.scale
	}
	if changed("ink") {
		cfg.Ink.Style = f.page.ink
	}
	if changed("ink-color") {
		cfg.Ink.Color = f.page.inkColor
	}
	if changed("stroke-width") {
		cfg.Ink.StrokeWidth = f.page.strokeWidth
	}
	if changed("asset-path") {
		cfg.Assets.BasePath = f.page.assetPath
	}
}

// loadPreset reads a preset from a YAML file when ref looks like a path,
// otherwise from the preset store.
func loadPreset(ctx context.Context, ref string, cfg *config.Config) (preset.Preset, error) {
	if fileutil.IsFilePath(ref) {
		data, err := os.ReadFile(ref) // #nosec G304 -- user-provided path
		if err != nil {
			return preset.Preset{}, fmt.Errorf("%w: %w", ErrReadPreset, err)
		}
		p, err := preset.Import(data)
		if err != nil {
			return preset.Preset{}, fmt.Errorf("preset %s: %w", ref, err)
		}
		return p, nil
	}

	store, err := openPresetStore(cfg)
	if err != nil {
		return preset.Preset{}, err
	}
	defer store.Close()

	p, err := store.Get(ctx, ref)
	if err != nil {
		return preset.Preset{}, err
	}
	return *p, nil
}

// applyPreset overwrites the handwriting, layout, page and ink sections.
func applyPreset(p preset.Preset, cfg *config.Config) {
	cfg.Handwriting.Style = p.Style
	cfg.Handwriting.Bias = p.Bias
	cfg.Apply(p.Processing, p.Chunking, p.Render)
}

// presetStorePath returns the configured database path or the default one
// in the user config directory.
func presetStorePath(cfg *config.Config) (string, error) {
	if cfg.Presets.Path != "" {
		return cfg.Presets.Path, nil
	}
	dir, err := config.UserDir()
	if err != nil {
		return "", fmt.Errorf("locating preset store: %w", err)
	}
	return filepath.Join(dir, preset.DefaultFileName), nil
}

// openPresetStore opens the preset database for cfg.
func openPresetStore(cfg *config.Config) (*preset.Store, error) {
	path, err := presetStorePath(cfg)
	if err != nil {
		return nil, err
	}
	return preset.Open(path)
}

// newLogger builds the CLI logger. --verbose forces debug and --quiet
// forces error; otherwise the configured level applies.
func newLogger(cfg *config.Config, f *commonFlags, w io.Writer) logger.Logger {
	level := defaultLogLevel
	if cfg.Log.Level != "" {
		if l, err := logger.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
	}
	switch {
	case f.verbose:
		level = logger.DebugLevel
	case f.quiet:
		level = logger.ErrorLevel
	}

	return logger.New(&logger.Config{
		Level:      level,
		Output:     w,
		JSON:       cfg.Log.JSON,
		TimeFormat: time.TimeOnly,
		Prefix:     "handscript",
	})
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(log logger.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug(fmt.Sprintf(format, args...))
	}))
}

// resolveTimeout picks the PDF timeout: flag, then environment. Zero keeps
// the converter default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveWorkers picks the worker count: flag, then config. Zero means auto.
func resolveWorkers(flagWorkers, cfgWorkers int) (int, error) {
	n := flagWorkers
	if n == 0 {
		n = cfgWorkers
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > handscript.MaxPoolSize {
		return 0, fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, handscript.MaxPoolSize)
	}
	return handscript.ResolvePoolSize(n), nil
}

// buildEngine creates the stroke generator selected by cfg.
func buildEngine(cfg *config.Config) (handscript.StrokeGenerator, error) {
	if cfg.Handwriting.Engine == config.EngineCommand {
		engine, err := handscript.NewCommandEngine(cfg.Handwriting.Command)
		if err != nil {
			return nil, err
		}
		return engine, nil
	}
	return handscript.NewPreviewEngine(), nil
}

// converterOptions returns the options shared by every pooled converter.
func converterOptions(cfg *config.Config, engine handscript.StrokeGenerator, log logger.Logger, timeout time.Duration) []handscript.Option {
	opts := []handscript.Option{
		handscript.WithEngine(engine),
		handscript.WithLogger(log),
		handscript.WithTimeout(timeout),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, handscript.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}
