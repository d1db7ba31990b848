package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/dateutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "handscript.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if got, want := cfg.ProcessingSettings(), handscript.DefaultProcessingConfig(); got != want {
		t.Errorf("ProcessingSettings() = %+v, want %+v", got, want)
	}
	if got, want := cfg.ChunkSettings(), handscript.DefaultChunkConfig(); got != want {
		t.Errorf("ChunkSettings() = %+v, want %+v", got, want)
	}
	if got, want := cfg.RenderSettings(), handscript.DefaultRenderSettings(); got != want {
		t.Errorf("RenderSettings() = %+v, want %+v", got, want)
	}
	if cfg.Handwriting.Bias != handscript.DefaultBias || cfg.Handwriting.Engine != EnginePreview {
		t.Errorf("Handwriting = %+v", cfg.Handwriting)
	}
	if cfg.Output.PDF || cfg.Workers != 0 || cfg.Assets.BasePath != "" {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
}

func TestPageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  float64
		height float64
		ok     bool
	}{
		{"letter", 816, 1056, true},
		{"A4", 794, 1123, true},
		{" legal ", 816, 1344, true},
		{"a5", 559, 794, true},
		{"tabloid", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, ok := PageSize(tt.name)
			if w != tt.width || h != tt.height || ok != tt.ok {
				t.Errorf("PageSize(%q) = %v, %v, %v", tt.name, w, h, ok)
			}
		})
	}
}

func TestConfig_RenderSettings_PageSize(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Page.Size = "a4"
	cfg.Page.Width = 0
	cfg.Page.Height = 0

	r := cfg.RenderSettings()
	if r.Width != 794 || r.Height != 1123 {
		t.Errorf("size a4 = %vx%v, want 794x1123", r.Width, r.Height)
	}

	cfg.Page.Width = 600
	if r := cfg.RenderSettings(); r.Width != 600 || r.Height != 1123 {
		t.Errorf("explicit width = %vx%v, want 600x1123", r.Width, r.Height)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "paper name too long",
			mutate:  func(c *Config) { c.Page.Paper = strings.Repeat("p", MaxAssetNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "engine argument too long",
			mutate:  func(c *Config) { c.Handwriting.Command = []string{"synth", strings.Repeat("a", MaxArgLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown input format",
			mutate:  func(c *Config) { c.Input.Format = "docx" },
			wantErr: handscript.ErrInvalidInputFormat,
		},
		{
			name:    "invalid dateline format",
			mutate:  func(c *Config) { c.Input.Dateline = "today:[x" },
			wantErr: dateutil.ErrInvalidDateFormat,
		},
		{
			name:    "unknown page size",
			mutate:  func(c *Config) { c.Page.Size = "tabloid" },
			wantErr: handscript.ErrInvalidPageSize,
		},
		{
			name:    "zero line length",
			mutate:  func(c *Config) { c.Processing.LineLength = 0 },
			wantErr: handscript.ErrInvalidLineLength,
		},
		{
			name:    "unknown paragraph style",
			mutate:  func(c *Config) { c.Processing.ParagraphStyle = "double" },
			wantErr: handscript.ErrInvalidParagraphStyle,
		},
		{
			name:    "unknown chunk strategy",
			mutate:  func(c *Config) { c.Chunking.Strategy = "random" },
			wantErr: handscript.ErrInvalidChunkStrategy,
		},
		{
			name:    "invalid ink color",
			mutate:  func(c *Config) { c.Ink.Color = "url(#x)" },
			wantErr: handscript.ErrInvalidInkColor,
		},
		{
			name:    "lines overflow the page",
			mutate:  func(c *Config) { c.Processing.LinesPerPage = 40 },
			wantErr: handscript.ErrPageOverflow,
		},
		{
			name:    "style out of range",
			mutate:  func(c *Config) { c.Handwriting.Style = 13 },
			wantErr: handscript.ErrInvalidStyle,
		},
		{
			name:    "negative bias",
			mutate:  func(c *Config) { c.Handwriting.Bias = -1 },
			wantErr: handscript.ErrInvalidBias,
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Handwriting.Engine = "neural" },
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "command engine without command",
			mutate:  func(c *Config) { c.Handwriting.Engine = EngineCommand },
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: ErrInvalidWorkers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Log.Level = "verbose"
		if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "log.level") {
			t.Errorf("Validate() error = %v, want log.level error", err)
		}
	})

	t.Run("command engine with command", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Handwriting.Engine = EngineCommand
		cfg.Handwriting.Command = []string{"python3", "synth.py"}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("all config errors wrap ErrInvalidConfig", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Page.Scale = 0
		if err := cfg.Validate(); !errors.Is(err, handscript.ErrInvalidConfig) {
			t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `processing:
  lineLength: 48
  paragraphStyle: indent_first
handwriting:
  style: 7
  bias: 2.5
page:
  paper: ruled
ink:
  style: fountain
output:
  pdf: true
workers: 3
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		proc := cfg.ProcessingSettings()
		if proc.MaxLineLength != 48 || proc.ParagraphStyle != handscript.StyleIndentFirst {
			t.Errorf("processing = %+v", proc)
		}
		if proc.LinesPerPage != handscript.DefaultLinesPerPage || !proc.Hyphenate {
			t.Errorf("defaults lost: %+v", proc)
		}
		if cfg.Handwriting.Style != 7 || cfg.Handwriting.Bias != 2.5 {
			t.Errorf("handwriting = %+v", cfg.Handwriting)
		}
		r := cfg.RenderSettings()
		if r.Template != "ruled" || r.Style != "fountain" || r.InkColor != handscript.DefaultInkColor {
			t.Errorf("render = %+v", r)
		}
		if !cfg.Output.PDF || cfg.Workers != 3 {
			t.Errorf("output/workers = %+v / %d", cfg.Output, cfg.Workers)
		}
	})

	t.Run("boolean set to false overrides default", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "processing:\n  hyphenate: false\n  preserveEmptyLines: false\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Processing.Hyphenate || cfg.Processing.PreserveEmptyLines {
			t.Errorf("processing = %+v, want both false", cfg.Processing)
		}
	})

	t.Run("named page size fills width and height", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  size: a5\nprocessing:\n  linesPerPage: 16\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if r := cfg.RenderSettings(); r.Width != 559 || r.Height != 794 {
			t.Errorf("a5 = %vx%v, want 559x794", r.Width, r.Height)
		}
	})

	t.Run("no page size keeps default dimensions", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  width: 700\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := handscript.DefaultRenderSettings()
		if cfg.Page.Width != 700 || cfg.Page.Height != want.Height {
			t.Errorf("page = %vx%v, want 700x%v", cfg.Page.Width, cfg.Page.Height, want.Height)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig("/nonexistent/path/config.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-handscript-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-handscript-config.yaml") {
			t.Errorf("error should list tried paths: %v", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(writeConfig(t, "page: [unclosed")); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  paper: plain\n  watermark: draft\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation on load", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "chunking:\n  strategy: random\n")
		if _, err := LoadConfig(path); !errors.Is(err, handscript.ErrInvalidChunkStrategy) {
			t.Errorf("error = %v, want ErrInvalidChunkStrategy", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced here")
		}
		path := writeConfig(t, "workers: 1\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(path, 0o600)

		_, err := LoadConfig(path)
		if err == nil || errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want read error", err)
		}
	})
}

func TestResolveConfigPath_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("letters.yml", []byte("workers: 2\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	path, err := resolveConfigPath("letters")
	if err != nil {
		t.Fatalf("resolveConfigPath() error = %v", err)
	}
	if path != "letters.yml" {
		t.Errorf("path = %q, want letters.yml", path)
	}

	cfg, err := LoadConfig("letters")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestConfig_Apply(t *testing.T) {
	t.Parallel()

	proc := handscript.DefaultProcessingConfig()
	proc.ParagraphStyle = handscript.StyleNoBreaks
	proc.MaxLineLength = 30
	chunk := handscript.ChunkConfig{Strategy: handscript.ChunkWidth, MaxWords: 4, MaxRunes: 20}
	render := handscript.DefaultRenderSettings()
	render.Template = "grid"
	render.InkColor = "black"

	cfg := DefaultConfig()
	cfg.Page.Size = "a4"
	cfg.Apply(proc, chunk, render)

	if cfg.Page.Size != "" {
		t.Errorf("Page.Size = %q, want cleared", cfg.Page.Size)
	}
	if got := cfg.ProcessingSettings(); got != proc {
		t.Errorf("ProcessingSettings() = %+v, want %+v", got, proc)
	}
	if got := cfg.ChunkSettings(); got != chunk {
		t.Errorf("ChunkSettings() = %+v, want %+v", got, chunk)
	}
	if got := cfg.RenderSettings(); got != render {
		t.Errorf("RenderSettings() = %+v, want %+v", got, render)
	}
}

func TestConfig_SetPageSize(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SetPageSize("legal")
	if cfg.Page.Width != 0 || cfg.Page.Height != 0 {
		t.Fatalf("SetPageSize kept %vx%v", cfg.Page.Width, cfg.Page.Height)
	}
	if r := cfg.RenderSettings(); r.Width != 816 || r.Height != 1344 {
		t.Errorf("legal = %vx%v, want 816x1344", r.Width, r.Height)
	}
}
