package treemap

import (
	"math"
	"sort"

	"github.com/duviz/duviz/pkg/errors"
)

// Options controls layout generation. The zero value is lossless: no
// depth cap, no node cap, no padding, and no minimum cell size, so the
// output covers the bounding rectangle exactly.
type Options struct {
	// MaxDepth stops recursion below the given depth (0 = unlimited).
	// The node at MaxDepth is still emitted; its children are not.
	MaxDepth int

	// MaxNodes caps the number of emitted cells (0 = unlimited).
	MaxNodes int

	// Padding insets each node's interior before laying out its
	// children, leaving a visible border per nesting level.
	Padding float64

	// MinCellSize drops cells whose width or height falls below the
	// given size; their subtrees are skipped too.
	MinCellSize float64
}

// Option mutates layout Options.
type Option func(*Options)

// WithMaxDepth limits recursion depth.
func WithMaxDepth(d int) Option { return func(o *Options) { o.MaxDepth = d } }

// WithMaxNodes caps the number of emitted cells.
func WithMaxNodes(n int) Option { return func(o *Options) { o.MaxNodes = n } }

// WithPadding insets children inside their parent by pad units.
func WithPadding(pad float64) Option { return func(o *Options) { o.Padding = pad } }

// WithMinCellSize drops cells smaller than min in either dimension.
func WithMinCellSize(min float64) Option { return func(o *Options) { o.MinCellSize = min } }

// Layout computes the squarified treemap for the tree rooted at root
// inside bounds and returns the resulting region index.
//
// Children are placed in rows perpendicular to the remaining
// rectangle's shorter side; each row is grown greedily until adding the
// next child would worsen the row's worst aspect ratio. Every emitted
// cell's area equals bounds.Area() * size / root.Size within floating
// tolerance. Zero-size nodes are omitted; a zero-size root yields an
// empty index.
//
// Layout is pure: it does not mutate the tree and identical inputs
// produce identical output. It fails with INVALID_BOUNDS for
// non-positive or non-finite bounds and with INVALID_INPUT for any
// negative node size; a single invalid node aborts the entire call.
func Layout(root *Node, bounds Rect, opts ...Option) (*Index, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil root node")
	}
	if err := errors.ValidateBounds(bounds.X, bounds.Y, bounds.W, bounds.H); err != nil {
		return nil, err
	}

	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &layouter{opts: cfg}
	if err := l.walk(root, bounds, 0, -1); err != nil {
		return nil, err
	}
	return &Index{bounds: bounds, cells: l.cells}, nil
}

// layouter accumulates cells during one Layout call. It holds no state
// across calls.
type layouter struct {
	opts  Options
	cells []Cell
}

// rowItem pairs a child node with its allotted area inside the parent's
// interior rectangle.
type rowItem struct {
	node *Node
	area float64
}

func (l *layouter) full() bool {
	return l.opts.MaxNodes > 0 && len(l.cells) >= l.opts.MaxNodes
}

// walk emits the cell for n covering r, then subdivides r among n's
// children. parent is the index of the caller's cell, or -1 for the root.
func (l *layouter) walk(n *Node, r Rect, depth, parent int) error {
	if n.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative size %d for %q", n.Size, n.Path)
	}
	if n.Size == 0 {
		// Degenerate subtree: omitted rather than failing the layout.
		return nil
	}
	if l.full() {
		return nil
	}
	if l.opts.MinCellSize > 0 && (r.W < l.opts.MinCellSize || r.H < l.opts.MinCellSize) {
		return nil
	}

	idx := len(l.cells)
	l.cells = append(l.cells, Cell{
		Rect:   r,
		Path:   n.Path,
		Name:   n.Name,
		Size:   n.Size,
		Dir:    !n.Leaf(),
		Depth:  depth,
		Parent: parent,
	})
	if parent >= 0 {
		l.cells[parent].Children = append(l.cells[parent].Children, idx)
	}

	if n.Leaf() {
		return nil
	}
	if l.opts.MaxDepth > 0 && depth >= l.opts.MaxDepth {
		return nil
	}

	inner := r
	if l.opts.Padding > 0 {
		inner = r.Shrink(l.opts.Padding)
		if inner.W <= 0 || inner.H <= 0 {
			return nil
		}
	}

	// Stable descending order; ties keep insertion order so the layout
	// is reproducible regardless of how the tree was built.
	children := make([]*Node, 0, len(n.Children))
	var total int64
	for _, c := range n.Children {
		if c.Size < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "negative size %d for %q", c.Size, c.Path)
		}
		if c.Size == 0 {
			continue
		}
		children = append(children, c)
		total += c.Size
	}
	if total == 0 {
		return nil
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Size > children[j].Size
	})

	interior := inner.Area()
	items := make([]rowItem, len(children))
	for i, c := range children {
		items[i] = rowItem{node: c, area: interior * float64(c.Size) / float64(total)}
	}

	return l.squarify(items, inner, depth+1, idx)
}

// squarify partitions bounds among items. Row membership is decided by
// an explicit greedy loop so stack depth stays bounded by tree depth,
// not by child count.
func (l *layouter) squarify(items []rowItem, bounds Rect, depth, parent int) error {
	remaining := bounds

	i := 0
	for i < len(items) {
		side := remaining.ShortestSide()

		// Grow the row while the worst aspect ratio does not get worse.
		// A tie keeps the candidate in the row, which also keeps the
		// orientation already chosen for it.
		sum := items[i].area
		min, max := items[i].area, items[i].area
		j := i + 1
		for j < len(items) {
			a := items[j].area
			newSum := sum + a
			newMin, newMax := min, max
			if a < newMin {
				newMin = a
			}
			if a > newMax {
				newMax = a
			}
			if worstRatio(newSum, newMin, newMax, side) > worstRatio(sum, min, max, side) {
				break
			}
			sum, min, max = newSum, newMin, newMax
			j++
		}

		var err error
		remaining, err = l.layoutRow(items[i:j], sum, remaining, depth, parent)
		if err != nil {
			return err
		}
		i = j

		if l.full() {
			return nil
		}
	}
	return nil
}

// layoutRow places one committed row inside bounds and recurses into each
// member's subtree. The row occupies a strip along the longer axis whose
// thickness is rowSum / longSide; members subdivide the strip
// proportionally. It returns the rectangle left over for later rows.
func (l *layouter) layoutRow(row []rowItem, rowSum float64, bounds Rect, depth, parent int) (Rect, error) {
	if rowSum <= 0 {
		return bounds, nil
	}

	if bounds.W >= bounds.H {
		// Shorter side is vertical: the row becomes a column strip on
		// the left, members stacked top to bottom.
		width := rowSum / bounds.H
		y := bounds.Y
		for _, item := range row {
			h := item.area / width
			if err := l.walk(item.node, NewRect(bounds.X, y, width, h), depth, parent); err != nil {
				return bounds, err
			}
			y += h
		}
		return NewRect(bounds.X+width, bounds.Y, bounds.W-width, bounds.H), nil
	}

	// Shorter side is horizontal: the row is a strip across the top,
	// members placed left to right.
	height := rowSum / bounds.W
	x := bounds.X
	for _, item := range row {
		w := item.area / height
		if err := l.walk(item.node, NewRect(x, bounds.Y, w, height), depth, parent); err != nil {
			return bounds, err
		}
		x += w
	}
	return NewRect(bounds.X, bounds.Y+height, bounds.W, bounds.H-height), nil
}

// worstRatio returns the worst aspect ratio any member of a row would
// have if the row were finalized at its current thickness. sum, min and
// max are the row's total, smallest and largest member areas; side is
// the length the row is laid along.
func worstRatio(sum, min, max, side float64) float64 {
	if sum <= 0 || min <= 0 || side <= 0 {
		return math.Inf(1)
	}
	s2 := side * side
	sum2 := sum * sum
	return math.Max(s2*max/sum2, sum2/(s2*min))
}
