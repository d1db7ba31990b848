package handscript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-handscript/internal/assets"
)

// countingLoader wraps a loader and records requested names.
type countingLoader struct {
	inner  AssetLoader
	styles []string
	papers []string
}

func (l *countingLoader) LoadStyle(name string) (string, error) {
	l.styles = append(l.styles, name)
	return l.inner.LoadStyle(name)
}

func (l *countingLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	l.papers = append(l.papers, name)
	return l.inner.LoadTemplateSet(name)
}

func TestNewAssetLoader_Builtins(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadStyle("ballpoint")
	if err != nil || !strings.Contains(css, ".ink") {
		t.Errorf("LoadStyle(ballpoint) = %q, %v", css, err)
	}

	ts, err := loader.LoadTemplateSet("ruled")
	if err != nil {
		t.Fatalf("LoadTemplateSet(ruled) error = %v", err)
	}
	if ts.Name != "ruled" || !strings.Contains(ts.Page, "<svg") || ts.Sheet == "" {
		t.Errorf("LoadTemplateSet(ruled) = %+v", ts)
	}
}

func TestNewAssetLoader_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewAssetLoader("/nonexistent/assets/xyz"); !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader(missing) error = %v, want ErrInvalidAssetPath", err)
	}

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func() error
		wantErr error
	}{
		{
			name:    "unknown style",
			load:    func() error { _, err := loader.LoadStyle("crayon"); return err },
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "unknown paper",
			load:    func() error { _, err := loader.LoadTemplateSet("papyrus"); return err },
			wantErr: ErrTemplateSetNotFound,
		},
		{
			name:    "traversal",
			load:    func() error { _, err := loader.LoadStyle("../secret"); return err },
			wantErr: ErrInvalidAssetPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.load(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAssetLoader_CustomDirectoryOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stylesDir := filepath.Join(dir, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stylesDir, "ballpoint.css"), []byte(".ink path { stroke: red; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadStyle("ballpoint")
	if err != nil || !strings.Contains(css, "red") {
		t.Errorf("LoadStyle(ballpoint) = %q, %v, want custom override", css, err)
	}
	// Fallback to built-ins for assets the directory lacks.
	if _, err := loader.LoadStyle("pencil"); err != nil {
		t.Errorf("LoadStyle(pencil) fallback error = %v", err)
	}
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		internal error
		want     error
	}{
		{name: "style", internal: assets.ErrStyleNotFound, want: ErrStyleNotFound},
		{name: "paper", internal: assets.ErrTemplateSetNotFound, want: ErrTemplateSetNotFound},
		{name: "incomplete", internal: assets.ErrIncompleteTemplateSet, want: ErrIncompleteTemplateSet},
		{name: "base path", internal: assets.ErrInvalidBasePath, want: ErrInvalidAssetPath},
		{name: "traversal", internal: assets.ErrPathTraversal, want: ErrInvalidAssetPath},
		{name: "name", internal: assets.ErrInvalidAssetName, want: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			original := fmt.Errorf("%w: detail", tt.internal)
			got := convertAssetError(original)
			if !errors.Is(got, tt.want) {
				t.Errorf("convertAssetError() = %v, want %v", got, tt.want)
			}
			if errors.Is(got, tt.internal) {
				t.Error("internal sentinel leaked through the public error")
			}
			if got.Error() != original.Error() {
				t.Errorf("message = %q, want %q", got.Error(), original.Error())
			}
		})
	}

	t.Run("nil and unknown", func(t *testing.T) {
		t.Parallel()

		if convertAssetError(nil) != nil {
			t.Error("convertAssetError(nil) != nil")
		}
		other := errors.New("other")
		if got := convertAssetError(other); got != other {
			t.Errorf("convertAssetError(other) = %v, want unchanged", got)
		}
	})
}

func TestWithAssetLoader(t *testing.T) {
	t.Parallel()

	builtin, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}
	loader := &countingLoader{inner: builtin}
	c, _, _ := newTestConverter(t, WithAssetLoader(loader))

	render := DefaultRenderSettings()
	render.Template = "grid"
	render.Style = "marker"
	for range 2 {
		if _, err := c.Convert(context.Background(), Input{Text: "hello", Render: &render}); err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
	}

	if !slices.Equal(loader.papers, []string{"grid"}) || !slices.Equal(loader.styles, []string{"marker"}) {
		t.Errorf("loader calls = papers %v styles %v, want one cached load each", loader.papers, loader.styles)
	}
}

func TestWithAssetLoader_Nil(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestConverter(t, WithAssetLoader(nil))
	if _, err := c.Convert(context.Background(), Input{Text: "hello"}); err != nil {
		t.Errorf("Convert() error = %v", err)
	}
}

func TestBuiltinAssets(t *testing.T) {
	t.Parallel()

	if got := strings.Join(BuiltinStyles(), ","); got != "ballpoint,fountain,marker,pencil" {
		t.Errorf("BuiltinStyles() = %q", got)
	}
	if got := strings.Join(BuiltinPapers(), ","); got != "grid,plain,ruled" {
		t.Errorf("BuiltinPapers() = %q", got)
	}
}
