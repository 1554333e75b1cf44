package treemap

// Cell is one rectangle of a computed layout. It references its source
// node only by path and copied display fields; it never owns or points
// into the tree, so an Index can outlive nothing and leak nothing.
type Cell struct {
	Rect

	// Path identifies the source node. Use it to look the node up in
	// the tree revision the layout was computed from.
	Path string
	Name string
	Size int64
	Dir  bool

	// Depth is the nesting level; the root cell has depth 0.
	Depth int

	// Parent is the index of the enclosing cell, -1 for the root.
	Parent int

	// Children are indices of directly nested cells, in layout order.
	Children []int
}

// Index is the queryable result of a layout: every emitted cell in
// parent-before-children order, which renderers can paint front to back
// without overdraw between sibling subtrees.
type Index struct {
	bounds Rect
	cells  []Cell
}

// Bounds returns the bounding rectangle the layout was computed for.
func (ix *Index) Bounds() Rect {
	return ix.bounds
}

// Len returns the number of cells.
func (ix *Index) Len() int {
	return len(ix.cells)
}

// Cells returns the cell slice in layout order. The slice is shared;
// callers must treat it as read-only.
func (ix *Index) Cells() []Cell {
	return ix.cells
}

// Cell returns the cell at index i.
func (ix *Index) Cell(i int) Cell {
	return ix.cells[i]
}

// At returns the chain of cells containing the point (x, y), from the
// root down to the deepest match, the breadcrumb for that point. It
// returns nil if the point lies outside the root rectangle or the index
// is empty.
//
// The query descends the cell hierarchy level by level instead of
// scanning all cells, so cost grows with depth, not with tree size.
// When a point sits on an edge shared by two siblings, the first child
// in layout order wins, keeping results deterministic.
func (ix *Index) At(x, y float64) []Cell {
	if len(ix.cells) == 0 || !ix.cells[0].Contains(x, y) {
		return nil
	}

	var chain []Cell
	cur := 0
	for {
		chain = append(chain, ix.cells[cur])
		next := -1
		for _, ci := range ix.cells[cur].Children {
			if ix.cells[ci].Contains(x, y) {
				next = ci
				break
			}
		}
		if next < 0 {
			return chain
		}
		cur = next
	}
}
