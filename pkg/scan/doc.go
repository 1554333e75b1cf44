// Package scan walks a directory tree and builds the weighted tree a
// layout is computed from. The walk runs on multiple goroutines and
// reports progress through an optional callback; unreadable entries are
// counted and skipped rather than failing the scan.
package scan
