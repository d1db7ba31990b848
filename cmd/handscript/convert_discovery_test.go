package main

// Notes:
// - discoverFiles: single file, directory walk with mirrored output dirs,
//   extension filtering, format override.
// - readCSVJobs: column selection, blank rows, row naming, malformed files.
// - readStdinJob: defaults for name, directory and format.
// - Permission-denied walks are not tested; they depend on the OS and user.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	handscript "github.com/alnah/go-handscript"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input files and output locations
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file next to source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "Letter.MD", "# hi")

		jobs, err := discoverFiles(path, "", "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		want := job{Source: path, Path: path, Format: handscript.FormatMarkdown, OutputDir: dir, BaseName: "Letter"}
		if len(jobs) != 1 || jobs[0] != want {
			t.Errorf("jobs = %+v, want [%+v]", jobs, want)
		}
	})

	t.Run("single file with output dir", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "note.text", "hi")

		jobs, err := discoverFiles(path, "out", "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if jobs[0].OutputDir != "out" || jobs[0].Format != handscript.FormatText {
			t.Errorf("job = %+v", jobs[0])
		}
	})

	t.Run("format override", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "raw.md", "*not emphasis*")

		jobs, err := discoverFiles(path, "", handscript.FormatText)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if jobs[0].Format != handscript.FormatText {
			t.Errorf("Format = %q, want text", jobs[0].Format)
		}
	})

	t.Run("directory mirrors layout", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeFile(t, src, "a.txt", "a")
		writeFile(t, src, "letters/2026/b.markdown", "b")
		writeFile(t, src, "letters/photo.jpg", "jpg")
		writeFile(t, src, "README", "no extension")

		jobs, err := discoverFiles(src, "/out", "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}

		got := make([]string, len(jobs))
		for i, j := range jobs {
			got[i] = filepath.Join(j.OutputDir, j.BaseName)
		}
		slices.Sort(got)
		want := []string{filepath.Join("/out", "a"), filepath.Join("/out", "letters", "2026", "b")}
		if !slices.Equal(got, want) {
			t.Errorf("outputs = %v, want %v", got, want)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "images/a.png", "png")
		image := filepath.Join(dir, "images", "a.png")

		tests := []struct {
			name    string
			path    string
			wantErr error
		}{
			{"missing path", filepath.Join(dir, "nope.txt"), os.ErrNotExist},
			{"unsupported extension", image, ErrInvalidExtension},
			{"no text files", filepath.Join(dir, "images"), ErrNoTextFiles},
		}
		for _, tt := range tests {
			if _, err := discoverFiles(tt.path, "", ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestReadStdinJob - Standard input defaults
// ---------------------------------------------------------------------------

func TestReadStdinJob(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		j, err := readStdinJob(strings.NewReader("hello"), "", "", "")
		if err != nil {
			t.Fatalf("readStdinJob() error = %v", err)
		}
		want := job{Source: "-", Text: "hello", Format: handscript.FormatText, OutputDir: ".", BaseName: "stdin"}
		if j != want {
			t.Errorf("job = %+v, want %+v", j, want)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Parallel()

		j, err := readStdinJob(strings.NewReader("# hi"), "out", "card", handscript.FormatMarkdown)
		if err != nil {
			t.Fatalf("readStdinJob() error = %v", err)
		}
		if j.OutputDir != "out" || j.BaseName != "card" || j.Format != handscript.FormatMarkdown {
			t.Errorf("job = %+v", j)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		_, err := readStdinJob(failingReader{}, "", "", "")
		if !errors.Is(err, ErrReadStdin) {
			t.Errorf("error = %v, want ErrReadStdin", err)
		}
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

// ---------------------------------------------------------------------------
// TestReadCSVJobs - One job per row
// ---------------------------------------------------------------------------

func TestReadCSVJobs(t *testing.T) {
	t.Parallel()

	t.Run("named column and blank rows", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "cards.csv", "Guest,Message\nAnn,Thank you!\nBob,\nCy,\"See you, soon\"\n")

		jobs, err := readCSVJobs(path, "message", "", "")
		if err != nil {
			t.Fatalf("readCSVJobs() error = %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("got %d jobs, want 2", len(jobs))
		}
		if jobs[0].Text != "Thank you!" || jobs[0].BaseName != "cards-001" || jobs[0].Source != path+"#1" {
			t.Errorf("jobs[0] = %+v", jobs[0])
		}
		if jobs[1].Text != "See you, soon" || jobs[1].BaseName != "cards-003" {
			t.Errorf("jobs[1] = %+v", jobs[1])
		}
		if jobs[0].OutputDir != dir || jobs[0].Format != handscript.FormatText {
			t.Errorf("jobs[0] location = %q format %q", jobs[0].OutputDir, jobs[0].Format)
		}
	})

	t.Run("first column by default", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "notes.csv", "text,id\nhello,1\n")

		jobs, err := readCSVJobs(path, "", "out", handscript.FormatMarkdown)
		if err != nil {
			t.Fatalf("readCSVJobs() error = %v", err)
		}
		if len(jobs) != 1 || jobs[0].Text != "hello" || jobs[0].OutputDir != "out" || jobs[0].Format != handscript.FormatMarkdown {
			t.Errorf("jobs = %+v", jobs)
		}
	})

	t.Run("row numbers widen with row count", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("text\n")
		for range 1200 {
			b.WriteString("x\n")
		}
		path := writeFile(t, t.TempDir(), "many.csv", b.String())

		jobs, err := readCSVJobs(path, "", "", "")
		if err != nil {
			t.Fatalf("readCSVJobs() error = %v", err)
		}
		if got := jobs[0].BaseName; got != "many-0001" {
			t.Errorf("BaseName = %q, want many-0001", got)
		}
		if got := jobs[len(jobs)-1].BaseName; got != "many-1200" {
			t.Errorf("last BaseName = %q, want many-1200", got)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		tests := []struct {
			name    string
			content string
			column  string
			wantErr error
		}{
			{"empty file", "", "", ErrReadCSV},
			{"header only", "text\n", "", ErrReadCSV},
			{"all rows blank", "text\n \n\"\"\n", "", ErrReadCSV},
			{"unknown column", "a,b\n1,2\n", "body", ErrCSVColumn},
			{"malformed quotes", "text\n\"unterminated\n", "", ErrReadCSV},
		}
		for i, tt := range tests {
			path := writeFile(t, dir, "f"+string(rune('a'+i))+".csv", tt.content)
			if _, err := readCSVJobs(path, tt.column, "", ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
			}
		}

		if _, err := readCSVJobs(filepath.Join(dir, "missing.csv"), "", "", ""); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("missing file: error = %v, want os.ErrNotExist", err)
		}
	})
}
