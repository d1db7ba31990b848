// Package svg turns generated pen strokes into handwritten SVG pages.
//
// Strokes arrive per chunk in engine units with Y growing upward and the
// baseline at 0. AssembleLine lays the chunks of one line side by side;
// Renderer maps each assembled line onto its baseline on the page and
// executes the paper template. SheetRenderer wraps finished pages into a
// printable HTML sheet for PDF export.
package svg
