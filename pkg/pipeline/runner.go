package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/duviz/duviz/pkg/render"
	"github.com/duviz/duviz/pkg/scan"
	"github.com/duviz/duviz/pkg/treemap"
)

// Runner executes pipeline stages. It is stateless except for the
// logger; multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete scan → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	scanStart := time.Now()
	scanned, err := r.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Root = scanned.Root
	result.ScanStats = scanned.Stats
	result.Stats.ScanTime = time.Since(scanStart)

	r.Logger.Info("scanned directory",
		"path", opts.Path,
		"files", scanned.Stats.Files,
		"dirs", scanned.Stats.Dirs,
		"bytes", scanned.Stats.TotalBytes,
		"duration", result.Stats.ScanTime)
	if scanned.Stats.Truncated {
		r.Logger.Warn("scan truncated at file cap", "max_files", opts.MaxFiles)
	}

	layoutStart := time.Now()
	ix, err := r.ComputeLayout(scanned.Root, opts)
	if err != nil {
		return nil, err
	}
	result.Index = ix
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CellCount = ix.Len()

	r.Logger.Info("computed layout",
		"cells", ix.Len(),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, err := r.Render(ix, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scan walks the directory at opts.Path and returns its weighted tree.
func (r *Runner) Scan(ctx context.Context, opts Options) (*scan.Result, error) {
	if err := opts.ValidateForScan(); err != nil {
		return nil, err
	}
	return scan.Run(ctx, scan.Options{
		Path:           opts.Path,
		MaxDepth:       opts.ScanDepth,
		MaxFiles:       opts.MaxFiles,
		FollowSymlinks: opts.FollowSymlinks,
		Progress:       opts.Progress,
		Logger:         r.Logger,
	})
}

// ComputeLayout computes the region index for an aggregated tree.
func (r *Runner) ComputeLayout(root *treemap.Node, opts Options) (*treemap.Index, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	bounds := treemap.NewRect(0, 0, opts.Width, opts.Height)
	return treemap.Layout(root, bounds, opts.LayoutOptions()...)
}

// Render generates artifacts for every requested format, keyed by
// format name.
func (r *Runner) Render(ix *treemap.Index, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			svgOpts := []render.SVGOption{render.WithTitle(opts.Title)}
			if opts.Labels {
				svgOpts = append(svgOpts, render.WithLabels())
			}
			if opts.DepthShading {
				svgOpts = append(svgOpts, render.WithDepthShading())
			}
			artifacts[format] = render.RenderSVG(ix, svgOpts...)
		case FormatJSON:
			data, err := render.RenderJSON(ix, render.WithJSONTitle(opts.Title))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}
