package main

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-handscript/internal/config"
	"github.com/alnah/go-handscript/internal/logger"
)

const envPrefix = "HANDSCRIPT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // HANDSCRIPT_CONFIG: config file name or path
	Preset     string        // HANDSCRIPT_PRESET: preset name or YAML path
	Timeout    time.Duration // HANDSCRIPT_TIMEOUT: PDF page load timeout
	LogLevel   string        // HANDSCRIPT_LOG_LEVEL: debug, info, warn, error, disabled

	// Tier 2 - I/O
	InputDir  string // HANDSCRIPT_INPUT_DIR: default input directory
	OutputDir string // HANDSCRIPT_OUTPUT_DIR: default output directory
	Dateline  string // HANDSCRIPT_DATELINE: "today", "today:FORMAT" or text

	// Tier 3 - Engine and page
	Engine      string   // HANDSCRIPT_ENGINE: preview or command
	EngineCmd   []string // HANDSCRIPT_ENGINE_CMD: engine argv, split on spaces
	PageSize    string   // HANDSCRIPT_PAGE_SIZE: letter, legal, a4, a5
	Paper       string   // HANDSCRIPT_PAPER: paper template name
	Ink         string   // HANDSCRIPT_INK: ink style name
	AssetPath   string   // HANDSCRIPT_ASSET_PATH: custom asset directory
	PresetsPath string   // HANDSCRIPT_PRESETS: preset database path
	Workers     int      // HANDSCRIPT_WORKERS: parallel workers
}

// knownEnvVars lists valid HANDSCRIPT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = []string{
	"HANDSCRIPT_ASSET_PATH",
	"HANDSCRIPT_CONFIG",
	"HANDSCRIPT_DATELINE",
	"HANDSCRIPT_ENGINE",
	"HANDSCRIPT_ENGINE_CMD",
	"HANDSCRIPT_INK",
	"HANDSCRIPT_INPUT_DIR",
	"HANDSCRIPT_LOG_LEVEL",
	"HANDSCRIPT_OUTPUT_DIR",
	"HANDSCRIPT_PAGE_SIZE",
	"HANDSCRIPT_PAPER",
	"HANDSCRIPT_PRESET",
	"HANDSCRIPT_PRESETS",
	"HANDSCRIPT_TIMEOUT",
	"HANDSCRIPT_WORKERS",
}

// loadEnvConfig reads configuration through getenv.
// Malformed timeout and worker values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("HANDSCRIPT_CONFIG"),
		Preset:      getenv("HANDSCRIPT_PRESET"),
		LogLevel:    getenv("HANDSCRIPT_LOG_LEVEL"),
		InputDir:    getenv("HANDSCRIPT_INPUT_DIR"),
		OutputDir:   getenv("HANDSCRIPT_OUTPUT_DIR"),
		Dateline:    getenv("HANDSCRIPT_DATELINE"),
		Engine:      getenv("HANDSCRIPT_ENGINE"),
		EngineCmd:   strings.Fields(getenv("HANDSCRIPT_ENGINE_CMD")),
		PageSize:    getenv("HANDSCRIPT_PAGE_SIZE"),
		Paper:       getenv("HANDSCRIPT_PAPER"),
		Ink:         getenv("HANDSCRIPT_INK"),
		AssetPath:   getenv("HANDSCRIPT_ASSET_PATH"),
		PresetsPath: getenv("HANDSCRIPT_PRESETS"),
	}

	if timeout := getenv("HANDSCRIPT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("HANDSCRIPT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized HANDSCRIPT_*
// variable, such as HANDSCRIPT_ENGIN.
func warnUnknownEnvVars(environ []string, log logger.Logger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !slices.Contains(knownEnvVars, name) {
			log.Warn("unknown environment variable", "name", name)
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// Flags are merged afterwards, so: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Dateline != "" {
		cfg.Input.Dateline = env.Dateline
	}

	if env.Engine != "" {
		cfg.Handwriting.Engine = env.Engine
	}
	if len(env.EngineCmd) > 0 {
		cfg.Handwriting.Command = env.EngineCmd
		if env.Engine == "" {
			cfg.Handwriting.Engine = config.EngineCommand
		}
	}

	if env.PageSize != "" {
		cfg.SetPageSize(env.PageSize)
	}
	if env.Paper != "" {
		cfg.Page.Paper = env.Paper
	}
	if env.Ink != "" {
		cfg.Ink.Style = env.Ink
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.PresetsPath != "" {
		cfg.Presets.Path = env.PresetsPath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
