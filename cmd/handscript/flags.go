package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	preset   string
	quiet    bool
	verbose  bool
	logLevel string
	logJSON  bool
}

// inputFlags holds input interpretation flags.
type inputFlags struct {
	format   string
	dateline string
	title    string
}

// handwritingFlags holds stroke engine flags.
type handwritingFlags struct {
	engine    string
	engineCmd string
	style     int
	bias      float64
}

// processingFlags holds text layout and chunking flags.
type processingFlags struct {
	lineLength     int
	linesPerPage   int
	paragraphStyle string
	indent         int
	maxEmptyLines  int
	hyphenate      bool
	avoidOrphans   bool
	chunkStrategy  string
	maxWords       int
	maxChars       int
}

// pageFlags holds page geometry and ink flags.
type pageFlags struct {
	size        string
	paper       string
	ink         string
	inkColor    string
	strokeWidth float64
	lineHeight  float64
	scale       float64
	assetPath   string
}

// settingsFlags holds every flag that maps onto config.Config.
// changed reports whether a flag was given on the command line.
type settingsFlags struct {
	common      commonFlags
	input       inputFlags
	handwriting handwritingFlags
	processing  processingFlags
	page        pageFlags
	changed     func(name string) bool
}

// outputFlags holds flags for where and how results are written.
type outputFlags struct {
	output  string
	pdf     bool
	workers int
	timeout string
	csv     string
	column  string
	name    string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	settings settingsFlags
	out      outputFlags
}

// layoutFlags holds flags for the layout command.
type layoutFlags struct {
	settings settingsFlags
	chunks   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.preset, "preset", "P", "", "preset name or YAML file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")
	fs.BoolVar(&f.logJSON, "log-json", false, "write logs as JSON")
}

// addInputFlags adds input flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "input format: text, markdown (default: by extension)")
	fs.StringVar(&f.dateline, "dateline", "", "first line: \"today\", \"today:FORMAT\" or text")
	fs.StringVar(&f.title, "title", "", "PDF document title (default: file name)")
}

// addHandwritingFlags adds stroke engine flags to a FlagSet.
func addHandwritingFlags(fs *flag.FlagSet, f *handwritingFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "stroke engine: preview, command")
	fs.StringVar(&f.engineCmd, "engine-cmd", "", "external engine command line")
	fs.IntVarP(&f.style, "style", "s", 0, "handwriting style (0-12)")
	fs.Float64VarP(&f.bias, "bias", "b", 0, "sampling bias (0-10, higher is neater)")
}

// addProcessingFlags adds layout and chunking flags to a FlagSet.
func addProcessingFlags(fs *flag.FlagSet, f *processingFlags) {
	fs.IntVarP(&f.lineLength, "line-length", "l", 0, "max characters per line")
	fs.IntVar(&f.linesPerPage, "lines-per-page", 0, "lines per page")
	fs.StringVar(&f.paragraphStyle, "paragraph-style", "", "preserve_breaks, single_space, no_breaks, indent_first")
	fs.IntVar(&f.indent, "indent", 0, "indent spaces for indent_first")
	fs.IntVar(&f.maxEmptyLines, "max-empty-lines", 0, "max consecutive empty lines kept")
	fs.BoolVar(&f.hyphenate, "hyphenate", false, "hyphenate words longer than a line")
	fs.BoolVar(&f.avoidOrphans, "avoid-orphans", false, "avoid lone paragraph lines at page edges")
	fs.StringVar(&f.chunkStrategy, "chunk-strategy", "", "chunking: fixed, balanced, width")
	fs.IntVar(&f.maxWords, "max-words", 0, "max words per engine request")
	fs.IntVar(&f.maxChars, "max-chars", 0, "max characters per request for width chunking")
}

// addPageFlags adds page and ink flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, legal, a4, a5")
	fs.StringVar(&f.paper, "paper", "", "paper template name")
	fs.StringVar(&f.ink, "ink", "", "ink style name")
	fs.StringVar(&f.inkColor, "ink-color", "", "ink color (hex or CSS name)")
	fs.Float64Var(&f.strokeWidth, "stroke-width", 0, "stroke width in pixels")
	fs.Float64Var(&f.lineHeight, "line-height", 0, "distance between baselines in pixels")
	fs.Float64Var(&f.scale, "scale", 0, "stroke scale factor")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addSettingsFlags adds every config-backed flag group.
func addSettingsFlags(fs *flag.FlagSet, f *settingsFlags) {
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addHandwritingFlags(fs, &f.handwriting)
	addProcessingFlags(fs, &f.processing)
	addPageFlags(fs, &f.page)
	f.changed = fs.Changed
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVar(&f.pdf, "pdf", false, "also export a PDF")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.csv, "csv", "", "convert each row of a CSV file")
	fs.StringVar(&f.column, "column", "", "CSV column holding the text (default: first)")
	fs.StringVar(&f.name, "name", "", "output base name for stdin input")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlagSet parses args, wrapping failures in ErrUsage. ErrHelp is
// returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", stderr, printConvertUsage)
	addSettingsFlags(fs, &f.settings)
	addOutputFlags(fs, &f.out)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseLayoutFlags parses layout command flags and returns positional args.
func parseLayoutFlags(args []string, stderr io.Writer) (*layoutFlags, []string, error) {
	f := &layoutFlags{}
	fs := newFlagSet("layout", stderr, printLayoutUsage)
	addSettingsFlags(fs, &f.settings)
	fs.BoolVar(&f.chunks, "chunks", false, "show engine chunks separated by |")

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
