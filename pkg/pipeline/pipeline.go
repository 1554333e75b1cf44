// Package pipeline provides the scan → layout → render pipeline.
//
// The CLI and the interactive viewer both drive the same three stages
// through a [Runner], so behavior stays consistent across entry points:
//
//  1. Scan: walk a directory and build its weighted tree
//  2. Layout: compute the squarified treemap for the tree
//  3. Render: generate output artifacts (SVG, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Path:    "/var/log",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/duviz/duviz/pkg/errors"
	"github.com/duviz/duviz/pkg/scan"
	"github.com/duviz/duviz/pkg/treemap"
)

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 800.0

	// DefaultMaxDepth is the default layout depth cap. Deep trees stay
	// legible; explicit MaxDepth overrides it, -1 disables the cap.
	DefaultMaxDepth = 8

	// DefaultMaxNodes caps the number of layout cells.
	DefaultMaxNodes = 50000

	// DefaultMinCellSize hides cells smaller than one pixel.
	DefaultMinCellSize = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatJSON}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the pipeline. The struct
// serializes to JSON so runs can be recorded and replayed.
type Options struct {
	// Scan options
	Path           string `json:"path"`
	ScanDepth      int    `json:"scan_depth,omitempty"`
	MaxFiles       int64  `json:"max_files,omitempty"`
	FollowSymlinks bool   `json:"follow_symlinks,omitempty"`

	// Layout options
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	MaxDepth    int     `json:"max_depth,omitempty"` // -1 = unlimited
	MaxNodes    int     `json:"max_nodes,omitempty"`
	Padding     float64 `json:"padding,omitempty"`
	MinCellSize float64 `json:"min_cell_size,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Title        string   `json:"title,omitempty"`
	Labels       bool     `json:"labels,omitempty"`
	DepthShading bool     `json:"depth_shading,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger              `json:"-"`
	Progress func(files, bytes int64) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the aggregated weighted tree.
	Root *treemap.Node

	// Index is the computed region index.
	Index *treemap.Index

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// ScanStats summarizes the walk.
	ScanStats scan.Stats

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount  int
	ScanTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults
// for the full pipeline. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForScan(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForScan checks required fields for scanning.
func (o *Options) ValidateForScan() error {
	if err := errors.ValidateScanPath(o.Path); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MinCellSize == 0 {
		o.MinCellSize = DefaultMinCellSize
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errors.ValidateBounds(0, 0, o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions converts the pipeline settings into layout options.
func (o *Options) LayoutOptions() []treemap.Option {
	var opts []treemap.Option
	if o.MaxDepth > 0 {
		opts = append(opts, treemap.WithMaxDepth(o.MaxDepth))
	}
	if o.MaxNodes > 0 {
		opts = append(opts, treemap.WithMaxNodes(o.MaxNodes))
	}
	if o.Padding > 0 {
		opts = append(opts, treemap.WithPadding(o.Padding))
	}
	if o.MinCellSize > 0 {
		opts = append(opts, treemap.WithMinCellSize(o.MinCellSize))
	}
	return opts
}
