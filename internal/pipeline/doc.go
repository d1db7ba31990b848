// Package pipeline implements the text layout pipeline that prepares typed
// text for the stroke-generation engine.
//
// The stages run in this order:
//   - Preprocessing (line endings, Unicode composition, width folding, tabs)
//   - Sanitizing against the engine's alphabet
//   - Paragraph splitting
//   - Line wrapping (greedy, with optional hyphenation)
//   - Pagination
//   - Chunking of each line into word groups for the engine
//
// Every stage is a pure function of its inputs and an immutable Config.
// Stages never read package-level state, so they are safe to call from
// many goroutines at once. Configuration is validated by the caller
// (the root handscript package) before any stage runs.
//
// Stroke generation, SVG assembly and PDF rendering live elsewhere: this
// package only deals with text.
package pipeline
