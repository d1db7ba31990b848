package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	handscript "github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/dateutil"
	"github.com/alnah/go-handscript/internal/pipeline"
)

// runLayout prints the pages and engine chunks of a document without
// drawing strokes.
func runLayout(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseLayoutFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(ctx, &flags.settings, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}

	source := "-"
	if len(positional) > 0 {
		source = positional[0]
	}
	text, err := readLayoutInput(source, env.Stdin)
	if err != nil {
		return err
	}

	format, err := handscript.ParseInputFormat(cfg.Input.Format)
	if err != nil {
		return err
	}
	if cfg.Input.Format == "" {
		if f, ok := inputExtensions[strings.ToLower(filepath.Ext(source))]; ok {
			format = f
		}
	}

	dateline, err := dateutil.Dateline(cfg.Input.Dateline, env.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", handscript.ErrInvalidDateline, err)
	}

	if format == handscript.FormatMarkdown {
		text, err = pipeline.NewGoldmarkExtractor().ToText(ctx, text)
		if err != nil {
			return err
		}
	}
	doc, err := handscript.LayoutWithDateline(text, dateline, handscript.DefaultAlphabet(), cfg.ProcessingSettings())
	if err != nil {
		return err
	}
	chunks, err := handscript.ChunkDocument(doc, cfg.ChunkSettings())
	if err != nil {
		return err
	}

	printLayout(env.Stdout, doc, chunks, flags.chunks)
	return nil
}

// readLayoutInput reads a file, or stdin for "-".
func readLayoutInput(source string, stdin io.Reader) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadStdin, err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// printLayout writes each page with numbered lines. With chunks set, a
// line shows its engine requests separated by " | ".
func printLayout(w io.Writer, doc *handscript.Document, chunks [][]handscript.Chunk, showChunks bool) {
	if len(doc.Pages) == 0 {
		fmt.Fprintln(w, "(no text)")
		return
	}

	lineIndex := 0
	for i, page := range doc.Pages {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "page %d (%d lines)\n", page.Number, len(page.Lines))
		for n, line := range page.Lines {
			text := line.Text
			if showChunks && lineIndex < len(chunks) {
				parts := make([]string, len(chunks[lineIndex]))
				for k, c := range chunks[lineIndex] {
					parts[k] = c.Text
				}
				text = strings.Join(parts, " | ")
			}
			fmt.Fprintf(w, "%3d  %s\n", n+1, strings.TrimRight(text, " "))
			lineIndex++
		}
	}
}
