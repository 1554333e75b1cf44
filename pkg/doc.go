// Package pkg provides the core libraries for duviz disk usage
// visualization.
//
// # Overview
//
// duviz turns a directory tree into a squarified treemap where every
// file is a rectangle sized by its byte count. The pkg directory is
// organized into five areas:
//
//  1. [treemap] - Domain logic (weighted tree, squarified layout, region index)
//  2. [scan] - Parallel filesystem walking
//  3. [render] - Output sinks (SVG, JSON)
//  4. [pipeline] - Orchestration (scan → layout → render)
//  5. [errors] - Coded errors shared across packages
//
// # Architecture
//
// The typical data flow through duviz:
//
//	Filesystem
//	     ↓
//	scan.Run          (weighted tree + stats)
//	     ↓
//	treemap.Layout    (region index)
//	     ↓
//	render.RenderSVG / render.RenderJSON / interactive viewer
//
// The pipeline package drives all three stages so the CLI commands and
// the terminal viewer behave identically.
package pkg
