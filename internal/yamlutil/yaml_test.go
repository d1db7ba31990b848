package yamlutil_test

// Notes:
// - Marshal errors are not tested: goccy/go-yaml only fails on channels and
//   functions, which no caller encodes.
// - TestInputSizeLimit mutates MaxInputSize and does not run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-handscript/internal/yamlutil"
)

type pageDoc struct {
	Paper  string   `yaml:"paper"`
	Lines  int      `yaml:"lines"`
	Ruled  bool     `yaml:"ruled"`
	Colors []string `yaml:"colors"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		strict  bool
		wantErr error
		want    pageDoc
	}{
		{
			name: "valid YAML",
			data: []byte("paper: ruled\nlines: 24\nruled: true"),
			dest: &pageDoc{},
			want: pageDoc{Paper: "ruled", Lines: 24, Ruled: true},
		},
		{
			name: "unknown key ignored when lenient",
			data: []byte("paper: grid\nfolded: true"),
			dest: &pageDoc{},
			want: pageDoc{Paper: "grid"},
		},
		{
			name:    "unknown key rejected when strict",
			data:    []byte("paper: grid\nfolded: true"),
			dest:    &pageDoc{},
			strict:  true,
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			dest:    &pageDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data strict",
			data:    []byte{},
			dest:    &pageDoc{},
			strict:  true,
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("paper: plain"),
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid syntax",
			data:    []byte("paper: [unclosed"),
			dest:    &pageDoc{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name: "unicode content",
			data: []byte("paper: 方眼紙"),
			dest: &pageDoc{},
			want: pageDoc{Paper: "方眼紙"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var err error
			if tt.strict {
				err = yamlutil.UnmarshalStrict(tt.data, tt.dest)
			} else {
				err = yamlutil.Unmarshal(tt.data, tt.dest)
			}

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := tt.dest.(*pageDoc)
			if got.Paper != tt.want.Paper || got.Lines != tt.want.Lines || got.Ruled != tt.want.Ruled {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReadFile
// ---------------------------------------------------------------------------

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("keeps prefilled values", func(t *testing.T) {
		t.Parallel()

		path := write("partial.yaml", "lines: 30\n")
		doc := pageDoc{Paper: "plain", Lines: 24}
		if err := yamlutil.ReadFile(path, &doc); err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if doc.Paper != "plain" || doc.Lines != 30 {
			t.Errorf("got %+v, want paper plain and 30 lines", doc)
		}
	})

	t.Run("strict on unknown keys", func(t *testing.T) {
		t.Parallel()

		path := write("unknown.yaml", "paper: plain\nfolded: true\n")
		if err := yamlutil.ReadFile(path, &pageDoc{}); err == nil {
			t.Error("ReadFile() error = nil, want unknown key error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.ReadFile(filepath.Join(dir, "absent.yaml"), &pageDoc{})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&pageDoc{Paper: "grid", Lines: 5, Colors: []string{"navy", "black"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{"paper: grid", "lines: 5", "ruled: false", "  - navy"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got:\n%s", want, s)
		}
	}

	var decoded pageDoc
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error = %v", err)
	}
	if decoded.Paper != "grid" || len(decoded.Colors) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	pad := func(n int) []byte {
		return []byte("paper: x" + strings.Repeat(" ", n-len("paper: x")))
	}

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		if err := yamlutil.Unmarshal(pad(100), &pageDoc{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		err := yamlutil.UnmarshalStrict(pad(101), &pageDoc{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("error = %v, want ErrInputTooLarge", err)
		}
		if !strings.Contains(err.Error(), "101 bytes") || !strings.Contains(err.Error(), "max 100") {
			t.Errorf("error should name both sizes, got: %s", err)
		}
	})

	t.Run("ReadFile stops reading past the limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		path := filepath.Join(t.TempDir(), "big.yaml")
		if err := os.WriteFile(path, pad(500), 0o644); err != nil {
			t.Fatal(err)
		}
		err := yamlutil.ReadFile(path, &pageDoc{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}
