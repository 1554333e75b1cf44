package cli

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/duviz/duviz/pkg/errors"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	maxFiles  int64 // scan file cap
	scanDepth int   // traversal depth limit
	follow    bool  // follow symlinked directories
	maxDepth  int   // layout depth cap shown at once
}

// viewCommand creates the view command for interactive exploration.
func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{
		maxFiles:  c.Config.Scan.MaxFiles,
		scanDepth: c.Config.Scan.Depth,
		follow:    c.Config.Scan.FollowSymlinks,
		maxDepth:  c.Config.View.MaxDepth,
	}
	if opts.maxDepth == 0 {
		opts.maxDepth = defaultViewDepth
	}

	cmd := &cobra.Command{
		Use:   "view [path]",
		Short: "Explore a directory interactively",
		Long: heredoc.Doc(`
			Scan a directory and explore its treemap in the terminal.

			Keys:
			  ←/→, h/l    select the previous/next entry
			  enter       descend into the selected directory
			  backspace   go back up
			  +/-         show more/fewer nesting levels
			  r           rescan the current directory
			  q           quit
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				return errors.New(errors.ErrCodeUnsupported, "view needs an interactive terminal; use render for file output")
			}
			return c.runView(cmd, path, &opts)
		},
	}

	cmd.Flags().Int64Var(&opts.maxFiles, "max-files", opts.maxFiles, "stop scanning after this many files")
	cmd.Flags().IntVar(&opts.scanDepth, "depth", opts.scanDepth, "traversal depth limit (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.follow, "follow", opts.follow, "follow symlinked directories")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "nesting levels shown at once")

	return cmd
}

func (c *CLI) runView(cmd *cobra.Command, path string, opts *viewOpts) error {
	m := newViewModel(c, path, opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viewModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
