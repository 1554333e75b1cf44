package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/duviz/duviz/pkg/pipeline"
	"github.com/duviz/duviz/pkg/scan"
	"github.com/duviz/duviz/pkg/treemap"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	maxFiles int64 // stop after this many files (0 = unlimited)
	depth    int   // traversal depth limit (0 = unlimited)
	follow   bool  // follow symlinked directories
	top      int   // number of entries in the top tables
	jsonOut  bool  // machine-readable output
}

// scanSummary is the JSON shape emitted with --json.
type scanSummary struct {
	Path  string          `json:"path"`
	Stats scan.Stats      `json:"stats"`
	Top   []scanEntry     `json:"top_entries"`
	Types []scan.TypeStat `json:"types"`
}

type scanEntry struct {
	Name  string  `json:"name"`
	Bytes int64   `json:"bytes"`
	Share float64 `json:"share"`
	Dir   bool    `json:"dir"`
}

// scanCommand creates the scan command for printing a usage summary.
func (c *CLI) scanCommand() *cobra.Command {
	opts := scanOpts{
		maxFiles: c.Config.Scan.MaxFiles,
		depth:    c.Config.Scan.Depth,
		follow:   c.Config.Scan.FollowSymlinks,
		top:      10,
	}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Walk a directory and print a usage summary",
		Long: heredoc.Doc(`
			Walk a directory tree and print where the bytes went: totals,
			the largest top-level entries, and a breakdown by file type.

			The walk runs in parallel and skips entries it cannot read,
			counting them as errors instead of failing.
		`),
		Example: heredoc.Doc(`
			# Summarize the current directory
			duviz scan

			# Largest 20 entries under /var, three levels deep
			duviz scan /var --top 20 --depth 3

			# Machine-readable output
			duviz scan ~/Downloads --json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return c.runScan(cmd, path, &opts)
		},
	}

	cmd.Flags().Int64Var(&opts.maxFiles, "max-files", opts.maxFiles, "stop after this many files (0 = unlimited)")
	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "traversal depth limit (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.follow, "follow", opts.follow, "follow symlinked directories")
	cmd.Flags().IntVar(&opts.top, "top", opts.top, "number of entries in the top tables")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit machine-readable JSON")

	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, path string, opts *scanOpts) error {
	interactive := !opts.jsonOut && isatty.IsTerminal(os.Stderr.Fd())

	pipeOpts := pipeline.Options{
		Path:           path,
		ScanDepth:      opts.depth,
		MaxFiles:       opts.maxFiles,
		FollowSymlinks: opts.follow,
	}

	var spin *Spinner
	if interactive {
		spin = newSpinnerWithContext(cmd.Context(), "Scanning "+path)
		pipeOpts.Progress = func(files, bytes int64) {
			spin.SetMessage(fmt.Sprintf("Scanning %s · %s files · %s",
				path, humanize.Comma(files), humanize.IBytes(uint64(bytes))))
		}
		spin.Start()
	}

	prog := newProgress(c.Logger)
	res, err := c.newRunner().Scan(cmd.Context(), pipeOpts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %s files", humanize.Comma(res.Stats.Files)))

	if opts.jsonOut {
		return printScanJSON(cmd, path, res, opts.top)
	}

	printScanSummary(path, res, opts.top)
	return nil
}

func printScanJSON(cmd *cobra.Command, path string, res *scan.Result, top int) error {
	summary := scanSummary{
		Path:  path,
		Stats: res.Stats,
		Top:   topEntries(res.Root, top),
		Types: scan.FileTypes(res.Root, top),
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printScanSummary(path string, res *scan.Result, top int) {
	printNewline()
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("total", humanize.IBytes(uint64(res.Stats.TotalBytes)))
	printKeyValue("files", humanize.Comma(res.Stats.Files))
	printKeyValue("dirs", humanize.Comma(res.Stats.Dirs))
	printKeyValue("elapsed", res.Stats.Elapsed.String())
	if res.Stats.Errors > 0 {
		printWarning("%d entries could not be read", res.Stats.Errors)
	}
	if res.Stats.Truncated {
		printWarning("scan stopped at the file cap; sizes are a lower bound")
	}

	if entries := topEntries(res.Root, top); len(entries) > 0 {
		printNewline()
		fmt.Println(renderEntryTable("Largest entries", entries))
	}
	if types := scan.FileTypes(res.Root, top); len(types) > 0 {
		printNewline()
		fmt.Println(renderTypeTable("By file type", types, res.Stats.TotalBytes))
	}
}

// topEntries returns the root's largest direct children.
func topEntries(root *treemap.Node, n int) []scanEntry {
	entries := make([]scanEntry, 0, n)
	for _, c := range root.Children {
		if c.Size == 0 {
			continue
		}
		share := 0.0
		if root.Size > 0 {
			share = float64(c.Size) / float64(root.Size)
		}
		entries = append(entries, scanEntry{
			Name:  c.Name,
			Bytes: c.Size,
			Share: share,
			Dir:   !c.Leaf(),
		})
		if len(entries) == n {
			break
		}
	}
	return entries
}

func renderEntryTable(title string, entries []scanEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if e.Dir {
			name += "/"
		}
		rows = append(rows, []string{
			name,
			humanize.IBytes(uint64(e.Bytes)),
			fmt.Sprintf("%.1f%%", e.Share*100),
		})
	}
	return title + "\n" + renderTable([]string{"Name", "Size", "Share"}, rows)
}

func renderTypeTable(title string, types []scan.TypeStat, total int64) string {
	rows := make([][]string, 0, len(types))
	for _, ts := range types {
		share := 0.0
		if total > 0 {
			share = float64(ts.Bytes) / float64(total)
		}
		rows = append(rows, []string{
			ts.Ext,
			humanize.Comma(ts.Files),
			humanize.IBytes(uint64(ts.Bytes)),
			fmt.Sprintf("%.1f%%", share*100),
		})
	}
	return title + "\n" + renderTable([]string{"Type", "Files", "Size", "Share"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
