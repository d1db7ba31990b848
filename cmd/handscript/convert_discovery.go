package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	handscript "github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/fileutil"
)

// Sentinel errors for input discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoTextFiles      = errors.New("no text or markdown files found")
	ErrInvalidExtension = errors.New("file must have a .txt, .text, .md or .markdown extension")
	ErrCSVColumn        = errors.New("CSV column not found")
	ErrReadCSV          = errors.New("failed to read CSV file")
	ErrReadStdin        = errors.New("failed to read standard input")
)

// stdinName is the default output base name for standard input.
const stdinName = "stdin"

// Recognized input extensions and the format each implies.
var inputExtensions = map[string]handscript.InputFormat{
	".txt":      handscript.FormatText,
	".text":     handscript.FormatText,
	".md":       handscript.FormatMarkdown,
	".markdown": handscript.FormatMarkdown,
}

// job is one document to convert. Exactly one of Path and Text is used:
// files are read when converted, stdin and CSV text is held in memory.
type job struct {
	Source    string
	Path      string
	Text      string
	Format    handscript.InputFormat
	OutputDir string
	BaseName  string
}

// discoverFiles finds the text files under inputPath. A single file must
// have a recognized extension; directories are walked and other files skipped.
// format overrides the format implied by each extension.
func discoverFiles(inputPath, outputDir string, format handscript.InputFormat) ([]job, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(inputPath))
		if _, ok := inputExtensions[ext]; !ok {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
		}
		return []job{fileJob(inputPath, outputDir, "", format)}, nil
	}

	var jobs []job
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := inputExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		jobs = append(jobs, fileJob(path, outputDir, inputPath, format))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTextFiles, inputPath)
	}
	return jobs, nil
}

// fileJob builds the job for one file. Output goes next to the source when
// outputDir is empty, and mirrors the layout below baseDir otherwise.
func fileJob(path, outputDir, baseDir string, format handscript.InputFormat) job {
	if format == "" {
		format = inputExtensions[strings.ToLower(filepath.Ext(path))]
	}

	dir := filepath.Dir(path)
	if outputDir != "" {
		dir = outputDir
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, filepath.Dir(path)); err == nil {
				dir = filepath.Join(outputDir, rel)
			}
		}
	}

	return job{
		Source:    path,
		Path:      path,
		Format:    format,
		OutputDir: dir,
		BaseName:  fileutil.StripExt(path),
	}
}

// readStdinJob reads all of r as one document.
func readStdinJob(r io.Reader, outputDir, name string, format handscript.InputFormat) (job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return job{}, fmt.Errorf("%w: %v", ErrReadStdin, err)
	}
	if name == "" {
		name = stdinName
	}
	if outputDir == "" {
		outputDir = "."
	}
	if format == "" {
		format = handscript.FormatText
	}
	return job{
		Source:    "-",
		Text:      string(data),
		Format:    format,
		OutputDir: outputDir,
		BaseName:  name,
	}, nil
}

// readCSVJobs turns each data row of a CSV file into a job. The first row
// is the header; column selects the text column by name, defaulting to the
// first. Rows with a blank cell are skipped. Outputs are named after the
// file and the row number: letters-001-p01.svg.
func readCSVJobs(path, column, outputDir string, format handscript.InputFormat) ([]job, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadCSV, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrReadCSV, path)
	}

	col := 0
	if column != "" {
		col = slices.IndexFunc(records[0], func(h string) bool {
			return strings.EqualFold(strings.TrimSpace(h), column)
		})
		if col < 0 {
			return nil, fmt.Errorf("%w: %q (have %s)", ErrCSVColumn, column, strings.Join(records[0], ", "))
		}
	}

	if outputDir == "" {
		outputDir = filepath.Dir(path)
	}
	if format == "" {
		format = handscript.FormatText
	}
	base := fileutil.StripExt(path)
	width := max(3, len(fmt.Sprint(len(records)-1)))

	var jobs []job
	for i, rec := range records[1:] {
		row := i + 1
		if col >= len(rec) || strings.TrimSpace(rec[col]) == "" {
			continue
		}
		jobs = append(jobs, job{
			Source:    fmt.Sprintf("%s#%d", path, row),
			Text:      rec[col],
			Format:    format,
			OutputDir: outputDir,
			BaseName:  fmt.Sprintf("%s-%0*d", base, width, row),
		})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows with text", ErrReadCSV, path)
	}
	return jobs, nil
}
