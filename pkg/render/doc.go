// Package render turns a computed region index into output artifacts.
// Two sinks are provided: an SVG document with hover tooltips for
// browsers, and a JSON export for external tooling.
package render
