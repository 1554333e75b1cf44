package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/duviz/duviz/pkg/render"
	"github.com/duviz/duviz/pkg/scan"
	"github.com/duviz/duviz/pkg/treemap"
)

// defaultViewDepth is how many nesting levels the viewer shows at once.
const defaultViewDepth = 3

// statusLines is the screen space reserved below the treemap.
const statusLines = 2

type viewState int

const (
	stateScanning viewState = iota
	stateReady
	stateFailed
)

// Messages emitted by the scan goroutine.
type scanProgressMsg struct{ files, bytes int64 }
type scanDoneMsg struct{ res *scan.Result }
type scanFailedMsg struct{ err error }

// viewModel is the bubbletea model for the interactive treemap.
type viewModel struct {
	cli  *CLI
	path string
	opts viewOpts

	state viewState
	err   error

	// scan progress
	spin   spinner.Model
	progCh chan scanProgressMsg
	files  int64
	bytes  int64

	// tree and layout
	root     *treemap.Node   // full scanned tree
	focus    []*treemap.Node // descent stack, last is the visible root
	index    *treemap.Index
	maxDepth int
	sel      int // position within the visible root's direct children

	width  int
	height int
}

func newViewModel(c *CLI, path string, opts *viewOpts) viewModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styleIconSpinner),
	)
	return viewModel{
		cli:      c,
		path:     path,
		opts:     *opts,
		spin:     sp,
		progCh:   make(chan scanProgressMsg, 8),
		maxDepth: opts.maxDepth,
	}
}

func (m viewModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startScan(), waitForProgress(m.progCh))
}

// startScan runs the walk off the UI goroutine and delivers the result
// as a message. Progress flows through progCh so the UI can repaint
// counters while the walk runs.
func (m viewModel) startScan() tea.Cmd {
	ch := m.progCh
	opts := scan.Options{
		Path:           m.path,
		MaxDepth:       m.opts.scanDepth,
		MaxFiles:       m.opts.maxFiles,
		FollowSymlinks: m.opts.follow,
		Logger:         m.cli.Logger,
		Progress: func(files, bytes int64) {
			select {
			case ch <- scanProgressMsg{files: files, bytes: bytes}:
			default:
			}
		},
	}
	return func() tea.Msg {
		res, err := scan.Run(context.Background(), opts)
		if err != nil {
			return scanFailedMsg{err: err}
		}
		return scanDoneMsg{res: res}
	}
}

func waitForProgress(ch chan scanProgressMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == stateReady {
			m.relayout()
		}
		return m, nil

	case scanProgressMsg:
		m.files, m.bytes = msg.files, msg.bytes
		return m, waitForProgress(m.progCh)

	case scanDoneMsg:
		m.root = msg.res.Root
		m.focus = []*treemap.Node{m.root}
		m.state = stateReady
		m.sel = 0
		m.relayout()
		return m, nil

	case scanFailedMsg:
		m.err = msg.err
		m.state = stateFailed
		return m, tea.Quit

	case spinner.TickMsg:
		if m.state != stateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	if m.state != stateReady {
		return m, nil
	}

	switch msg.String() {
	case "left", "h", "up", "k":
		if m.sel > 0 {
			m.sel--
		}
	case "right", "l", "down", "j", "tab":
		if m.sel < len(m.visibleChildren())-1 {
			m.sel++
		}
	case "enter":
		if n := m.selectedNode(); n != nil && !n.Leaf() {
			m.focus = append(m.focus, n)
			m.sel = 0
			m.relayout()
		}
	case "backspace", "esc":
		if len(m.focus) > 1 {
			m.focus = m.focus[:len(m.focus)-1]
			m.sel = 0
			m.relayout()
		}
	case "+", "=":
		m.maxDepth++
		m.relayout()
	case "-", "_":
		if m.maxDepth > 1 {
			m.maxDepth--
			m.relayout()
		}
	case "r":
		m.state = stateScanning
		m.files, m.bytes = 0, 0
		m.index = nil
		return m, tea.Batch(m.spin.Tick, m.startScan())
	}
	return m, nil
}

// relayout recomputes the region index for the focused subtree at the
// current terminal size.
func (m *viewModel) relayout() {
	m.index = nil
	w, h := m.width, m.height-statusLines
	if w < 2 || h < 2 || len(m.focus) == 0 {
		return
	}

	cur := m.focus[len(m.focus)-1]
	ix, err := treemap.Layout(cur, treemap.NewRect(0, 0, float64(w), float64(h)),
		treemap.WithMaxDepth(m.maxDepth),
		treemap.WithMinCellSize(1),
	)
	if err != nil {
		return
	}
	m.index = ix
	if kids := m.visibleChildren(); m.sel >= len(kids) {
		m.sel = 0
	}
}

// visibleChildren returns the cell indices of the visible root's direct
// children.
func (m viewModel) visibleChildren() []int {
	if m.index == nil || m.index.Len() == 0 {
		return nil
	}
	return m.index.Cell(0).Children
}

// selectedCell returns the currently selected top-level cell.
func (m viewModel) selectedCell() (treemap.Cell, bool) {
	kids := m.visibleChildren()
	if m.sel < 0 || m.sel >= len(kids) {
		return treemap.Cell{}, false
	}
	return m.index.Cell(kids[m.sel]), true
}

// selectedNode resolves the selected cell back to its tree node.
func (m viewModel) selectedNode() *treemap.Node {
	c, ok := m.selectedCell()
	if !ok {
		return nil
	}
	return m.focus[len(m.focus)-1].Find(c.Path)
}

func (m viewModel) View() string {
	switch m.state {
	case stateScanning:
		return fmt.Sprintf("\n  %s Scanning %s · %s files · %s\n",
			m.spin.View(), m.path,
			humanize.Comma(m.files), humanize.IBytes(uint64(m.bytes)))
	case stateFailed:
		return ""
	}

	if m.index == nil || m.index.Len() == 0 {
		return "\n  " + StyleDim.Render("nothing to show (empty or too small)") + "\n"
	}
	return m.viewTreemap()
}

// viewTreemap rasterizes the region index onto the character grid and
// appends the status bar.
func (m viewModel) viewTreemap() string {
	w, h := m.width, m.height-statusLines

	owner := make([][]int, h)
	chars := make([][]rune, h)
	for y := 0; y < h; y++ {
		owner[y] = make([]int, w)
		chars[y] = make([]rune, w)
		for x := 0; x < w; x++ {
			owner[y][x] = -1
			chars[y][x] = ' '
		}
	}

	// Paint in index order so children overdraw their parents.
	for i := 1; i < m.index.Len(); i++ {
		c := m.index.Cell(i)
		x0, y0, x1, y1 := clampRect(c.Rect, w, h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				owner[y][x] = i
			}
		}
		// Label in the cell's top-left corner when it fits.
		name := []rune(c.Name)
		if x1-x0 >= len(name)+2 && y1 > y0 {
			for j, r := range name {
				chars[y0][x0+1+j] = r
			}
		}
	}

	styles := m.cellStyles()
	var b strings.Builder
	for y := 0; y < h; y++ {
		x := 0
		for x < w {
			run := x
			for run < w && owner[y][run] == owner[y][x] {
				run++
			}
			b.WriteString(styles[owner[y][x]+1].Render(string(chars[y][x:run])))
			x = run
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusBar())
	return b.String()
}

// cellStyles precomputes one style per cell, offset by one so index 0
// is the background style for unowned space.
func (m viewModel) cellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, m.index.Len()+1)
	styles[0] = StyleDim

	selected, hasSel := m.selectedCell()
	for i := 0; i < m.index.Len(); i++ {
		c := m.index.Cell(i)
		color := render.ColorFor(m.topAncestorPath(i))
		if c.Depth > 1 {
			color = render.Shade(color, c.Depth-1)
		}
		st := lipgloss.NewStyle().
			Background(lipgloss.Color(color)).
			Foreground(colorWhite)
		if hasSel && (c.Path == selected.Path || strings.HasPrefix(c.Path, selected.Path+"/")) {
			st = st.Bold(true).Underline(true)
		}
		styles[i+1] = st
	}
	return styles
}

// topAncestorPath walks the parent chain up to the cell nested directly
// under the visible root.
func (m viewModel) topAncestorPath(i int) string {
	c := m.index.Cell(i)
	for c.Depth > 1 {
		c = m.index.Cell(c.Parent)
	}
	return c.Path
}

// statusBar shows the breadcrumb to the selected cell and the key help.
func (m viewModel) statusBar() string {
	var crumb string
	if c, ok := m.selectedCell(); ok {
		chain := m.index.At(c.X+c.W/2, c.Y+c.H/2)
		names := make([]string, len(chain))
		for i, link := range chain {
			names[i] = link.Name
		}
		share := 0.0
		if total := m.index.Cell(0).Size; total > 0 {
			share = float64(c.Size) / float64(total) * 100
		}
		crumb = fmt.Sprintf("%s · %s · %.1f%%",
			strings.Join(names, " › "), humanize.IBytes(uint64(c.Size)), share)
	}

	help := "←/→ select · enter open · backspace up · +/- depth · r rescan · q quit"
	return StyleValue.Render(crumb) + "\n" + StyleDim.Render(help)
}

// clampRect converts a layout rectangle to integer grid bounds.
func clampRect(r treemap.Rect, w, h int) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(r.X))
	y0 = int(math.Round(r.Y))
	x1 = int(math.Round(r.X + r.W))
	y1 = int(math.Round(r.Y + r.H))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	return x0, y0, x1, y1
}
