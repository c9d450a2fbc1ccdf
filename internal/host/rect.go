package host

import "fmt"

// Rect is a window rectangle in character cells.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the column one past the right edge.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Bottom returns the row one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Overlaps returns true if r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Left < o.Right() && o.Left < r.Right() &&
		r.Top < o.Bottom() && o.Top < r.Bottom()
}

// Contains returns true if o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Right() <= r.Right() &&
		o.Top >= r.Top && o.Bottom() <= r.Bottom()
}

// SameColumn returns true if r and o span exactly the same columns.
func (r Rect) SameColumn(o Rect) bool {
	return r.Left == o.Left && r.Width == o.Width
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.Left, r.Top)
}
