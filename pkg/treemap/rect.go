package treemap

// Rect is an axis-aligned rectangle in layout coordinates.
// All values are in user units (typically pixels or terminal cells).
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect constructs a rectangle from origin and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Area returns the rectangle's area, treating negative dimensions as zero.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// ShortestSide returns the smaller of width and height.
func (r Rect) ShortestSide() float64 {
	if r.W < r.H {
		return r.W
	}
	return r.H
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Containment is closed-interval inclusive on all edges so that points on
// a boundary shared by two siblings match both; callers resolve ties by
// traversal order.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Shrink returns the rectangle inset by pad on every side.
// Dimensions are clamped at zero.
func (r Rect) Shrink(pad float64) Rect {
	doubled := pad * 2
	w := r.W - doubled
	h := r.H - doubled
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + pad, Y: r.Y + pad, W: w, H: h}
}
