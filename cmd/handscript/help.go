package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handscript <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Write text as handwritten SVG pages (and PDF)")
	fmt.Fprintln(w, "  layout     Show line wrapping, pages and engine chunks")
	fmt.Fprintln(w, "  preset     Manage saved handwriting presets")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'handscript help <command>' for details on a specific command.")
}

// printSettingsUsage prints the flags shared by convert, layout and preset save.
func printSettingsUsage(w io.Writer) {
	fmt.Fprintln(w, "Settings:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -P, --preset <name|path>    Saved preset name or preset YAML file")
	fmt.Fprintln(w, "  -f, --format <s>            Input format: text, markdown")
	fmt.Fprintln(w, "      --dateline <s>          First line: \"today\", \"today:FORMAT\", or literal")
	fmt.Fprintln(w, "                              Tokens: YYYY, YY, MMMM, MMM, MM, M, DDDD, DDD, DD, D")
	fmt.Fprintln(w, "                              Presets: iso, european, us, long, letter")
	fmt.Fprintln(w, "                              Use [text] to escape literals: [Paris,] D MMMM YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Handwriting:")
	fmt.Fprintln(w, "  -e, --engine <s>            Stroke engine: preview, command")
	fmt.Fprintln(w, "      --engine-cmd <cmd>      External engine command (implies --engine command)")
	fmt.Fprintln(w, "  -s, --style <n>             Handwriting style (0-12)")
	fmt.Fprintln(w, "  -b, --bias <f>              Sampling bias (0-10, higher is neater)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -l, --line-length <n>       Max characters per line")
	fmt.Fprintln(w, "      --lines-per-page <n>    Lines per page")
	fmt.Fprintln(w, "      --paragraph-style <s>   preserve_breaks, single_space, no_breaks, indent_first")
	fmt.Fprintln(w, "      --indent <n>            Indent spaces for indent_first")
	fmt.Fprintln(w, "      --max-empty-lines <n>   Max consecutive empty lines kept")
	fmt.Fprintln(w, "      --hyphenate             Hyphenate words longer than a line (--hyphenate=false to disable)")
	fmt.Fprintln(w, "      --avoid-orphans         Avoid lone paragraph lines at page edges")
	fmt.Fprintln(w, "      --chunk-strategy <s>    Chunking: fixed, balanced, width")
	fmt.Fprintln(w, "      --max-words <n>         Max words per engine request")
	fmt.Fprintln(w, "      --max-chars <n>         Max characters per request (width chunking)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page and Ink:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, legal, a4, a5")
	fmt.Fprintln(w, "      --paper <s>             Paper: plain, ruled, grid, or a custom name")
	fmt.Fprintln(w, "      --ink <s>               Ink: ballpoint, fountain, pencil, marker, or custom")
	fmt.Fprintln(w, "      --ink-color <s>         Ink color (hex or CSS name)")
	fmt.Fprintln(w, "      --stroke-width <f>      Stroke width in pixels")
	fmt.Fprintln(w, "      --line-height <f>       Distance between baselines in pixels")
	fmt.Fprintln(w, "      --scale <f>             Stroke scale factor")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom inks (styles/) and papers (templates/)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs and timing")
	fmt.Fprintln(w, "      --log-level <s>         debug, info, warn, error, disabled")
	fmt.Fprintln(w, "      --log-json              Write logs as JSON")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handscript convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write text as handwriting, one SVG per page: letter.txt -> letter-p01.svg.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .txt/.md file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir or --csv is set)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: next to input)")
	fmt.Fprintln(w, "      --pdf                   Also export all pages as one PDF")
	fmt.Fprintln(w, "      --title <s>             PDF title (default: file name)")
	fmt.Fprintln(w, "      --csv <file>            Convert each CSV row as its own document")
	fmt.Fprintln(w, "      --column <name>         CSV column holding the text (default: first)")
	fmt.Fprintln(w, "      --name <s>              Output base name for stdin (default: stdin)")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printSettingsUsage(w)
}

// printLayoutUsage prints usage for the layout command.
func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handscript layout [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print wrapped lines page by page, without drawing strokes.")
	fmt.Fprintln(w, "Reads stdin when input is omitted or -.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --chunks                Show engine requests separated by |")
	fmt.Fprintln(w)
	printSettingsUsage(w)
}

// printPresetUsage prints usage for the preset command.
func printPresetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handscript preset <subcommand> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list                        List saved presets")
	fmt.Fprintln(w, "  show <name>                 Print a preset as YAML")
	fmt.Fprintln(w, "  export <name> [-o file]     Write a preset as YAML")
	fmt.Fprintln(w, "  save <name> [settings]      Save current settings (any convert setting flag)")
	fmt.Fprintln(w, "  import <file> [--name s]    Save a YAML preset (- for stdin)")
	fmt.Fprintln(w, "  delete <name>               Remove a preset")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --db <path>             Preset database (default: user config dir)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "layout":
		printLayoutUsage(env.Stdout)
	case "preset":
		printPresetUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: handscript version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: handscript help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
