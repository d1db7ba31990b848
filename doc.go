// Package handscript turns typed text into handwriting-style SVG pages.
//
// # Quick Start
//
//	conv, err := handscript.NewConverter(handscript.WithEngine(engine))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, handscript.Input{
//	    Text:  "Dear Ada,\n\nThank you for the notes.",
//	    Style: 9,
//	    Bias:  0.75,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range result.Pages {
//	    os.WriteFile(fmt.Sprintf("page-%02d.svg", p.Number), p.SVG, 0644)
//	}
//
// # Pipeline
//
// Text goes through these stages before any ink is drawn:
//
//  1. Preprocessing (line endings, Unicode NFC, full-width folding, tabs)
//  2. Sanitizing against the engine Alphabet
//  3. Paragraph splitting according to ParagraphStyle
//  4. Wrapping to MaxLineLength, hyphenating words that cannot fit
//  5. Pagination into LinesPerPage pages
//  6. Chunking each line into short requests for the stroke engine
//
// Layout and ChunkDocument expose stages 1 to 6 without an engine. They
// never fail on text once the configuration is valid; empty text yields
// zero pages.
//
// # Stroke Engine
//
// The handwriting model is external. Plug it in through StrokeGenerator:
// it receives chunk text, a style id and a bias and returns pen points
// with Y growing upward from the baseline. PreviewEngine is a deterministic
// stand-in; SerialEngine serializes access to a model that is not safe for
// concurrent use.
//
// # Output
//
// Chunk strokes of a line are laid side by side, placed on the line's
// baseline and drawn through a paper template with an ink style. Built-in
// papers are plain, ruled and grid; built-in inks are ballpoint, pencil,
// fountain and marker. WithAssetPath and WithAssetLoader add custom ones.
// Setting Input.PDF prints all pages to one PDF through headless Chrome.
//
// # Parallel Processing
//
// A Converter runs one conversion at a time. ConverterPool hands out
// converters for batch work; ResolvePoolSize picks a size from GOMAXPROCS.
//
// # Errors
//
// Configuration errors wrap ErrInvalidConfig and a field sentinel such as
// ErrInvalidLineLength. Engine failures wrap ErrStrokeGeneration.
package handscript
