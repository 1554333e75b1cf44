package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/duviz/duviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string   // output file path (or base path for multiple formats)
	formats      []string // output formats: "svg", "json"
	width        float64  // canvas width in pixels
	height       float64  // canvas height in pixels
	maxDepth     int      // layout depth cap (-1 = unlimited)
	maxFiles     int64    // scan file cap
	scanDepth    int      // traversal depth limit
	follow       bool     // follow symlinked directories
	padding      float64  // inset per nesting level
	minCell      float64  // hide cells smaller than this
	labels       bool     // draw names inside cells
	depthShading bool     // darken cells by nesting depth
	title        string   // document title
}

// renderCommand creates the render command for generating treemap
// artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		width:        c.Config.Render.Width,
		height:       c.Config.Render.Height,
		maxDepth:     c.Config.Render.MaxDepth,
		maxFiles:     c.Config.Scan.MaxFiles,
		follow:       c.Config.Scan.FollowSymlinks,
		padding:      c.Config.Render.Padding,
		labels:       c.Config.Render.Labels,
		depthShading: c.Config.Render.DepthShading,
	}
	var formatsStr string
	if c.Config.Render.Format != "" {
		formatsStr = c.Config.Render.Format
	}

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render a directory as a treemap",
		Long: heredoc.Doc(`
			Scan a directory and render its usage as a squarified treemap.
			Each file becomes a rectangle whose area is proportional to
			its size; directories nest their contents.

			SVG output includes hover tooltips with the full path and
			human-readable size of every cell.
		`),
		Example: heredoc.Doc(`
			# Render the current directory to duviz.svg
			duviz render

			# Both formats at a custom size
			duviz render /var/log -f svg,json --width 1920 --height 1080

			# Flat two-level overview with labels
			duviz render ~/projects --max-depth 2 --labels
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", formatsStr, "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "layout depth cap (-1 = unlimited)")
	cmd.Flags().Int64Var(&opts.maxFiles, "max-files", opts.maxFiles, "stop scanning after this many files")
	cmd.Flags().IntVar(&opts.scanDepth, "depth", opts.scanDepth, "traversal depth limit (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.follow, "follow", opts.follow, "follow symlinked directories")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "inset per nesting level in pixels")
	cmd.Flags().Float64Var(&opts.minCell, "min-cell", opts.minCell, "hide cells smaller than this many pixels")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw names inside cells")
	cmd.Flags().BoolVar(&opts.depthShading, "shade", opts.depthShading, "darken cells by nesting depth")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (defaults to the path)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	title := opts.title
	if title == "" {
		title = path
	}

	pipeOpts := pipeline.Options{
		Path:           path,
		ScanDepth:      opts.scanDepth,
		MaxFiles:       opts.maxFiles,
		FollowSymlinks: opts.follow,
		Width:          opts.width,
		Height:         opts.height,
		MaxDepth:       opts.maxDepth,
		Padding:        opts.padding,
		MinCellSize:    opts.minCell,
		Formats:        opts.formats,
		Title:          title,
		Labels:         opts.labels,
		DepthShading:   opts.depthShading,
		Logger:         c.Logger,
	}

	var spin *Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) {
		spin = newSpinnerWithContext(cmd.Context(), "Rendering "+path)
		pipeOpts.Progress = func(files, bytes int64) {
			spin.SetMessage(fmt.Sprintf("Scanning %s · %s files · %s",
				path, humanize.Comma(files), humanize.IBytes(uint64(bytes))))
		}
		spin.Start()
	}

	res, err := c.newRunner().Execute(cmd.Context(), pipeOpts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if res.ScanStats.Truncated {
		printWarning("scan stopped at the file cap; the treemap is partial")
	}

	written, err := writeArtifacts(path, opts.output, opts.formats, res.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s cells from %s files",
		humanize.Comma(int64(res.Stats.CellCount)), humanize.Comma(res.ScanStats.Files))
	for _, f := range written {
		printFile(f)
	}
	return nil
}

// writeArtifacts writes each rendered format to disk and returns the
// file paths. With a single format, output names the file directly;
// with several, output (or the app name) is the base path and the
// format becomes the extension.
func writeArtifacts(scanPath, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	base := output
	if base == "" {
		base = appName
		if name := filepath.Base(filepath.Clean(scanPath)); name != "." && name != string(filepath.Separator) {
			base = name
		}
	}

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		target := base + "." + format
		if output != "" && len(formats) == 1 {
			target = output
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}
