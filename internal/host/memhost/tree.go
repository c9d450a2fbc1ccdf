package memhost

import "github.com/dshills/quietwin/internal/host"

// node is a window tree node: either a leaf holding a window or a
// combination of children stacked vertically or laid out side by side.
type node struct {
	parent   *node
	vertical bool // children stacked top to bottom
	children []*node
	win      *window

	// size is the extent along the parent's axis: height inside a
	// vertical combination, width inside a side-by-side one.
	size int
	rect host.Rect
}

func (n *node) isLeaf() bool {
	return n.win != nil
}

func (n *node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// leaves appends the leaf windows under n in display order.
func (n *node) leaves(dst []*window) []*window {
	if n.isLeaf() {
		return append(dst, n.win)
	}
	for _, c := range n.children {
		dst = c.leaves(dst)
	}
	return dst
}

func (n *node) firstLeaf() *window {
	for !n.isLeaf() {
		n = n.children[0]
	}
	return n.win
}

func (n *node) lastLeaf() *window {
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n.win
}

// minExtent returns the smallest extent n can take along an axis.
func (n *node) minExtent(vertical bool, minHeight, minWidth int) int {
	if n.isLeaf() {
		if vertical {
			return minHeight
		}
		return minWidth
	}
	total := 0
	for _, c := range n.children {
		m := c.minExtent(vertical, minHeight, minWidth)
		if n.vertical == vertical {
			total += m
		} else if m > total {
			total = m
		}
	}
	return total
}

// layout assigns rectangles from sizes, top-down.
func (n *node) layout(r host.Rect) {
	n.rect = r
	if n.isLeaf() {
		return
	}
	pos := r.Top
	if !n.vertical {
		pos = r.Left
	}
	for _, c := range n.children {
		cr := r
		if n.vertical {
			cr.Top = pos
			cr.Height = c.size
		} else {
			cr.Left = pos
			cr.Width = c.size
		}
		c.layout(cr)
		pos += c.size
	}
}

// grow adds d cells to n along an axis at one edge. Only the child
// touching that edge changes inside a same-axis combination.
func (n *node) grow(vertical, atStart bool, d int) {
	if n.isLeaf() || d == 0 {
		return
	}
	if n.vertical != vertical {
		for _, c := range n.children {
			c.grow(vertical, atStart, d)
		}
		return
	}
	c := n.children[len(n.children)-1]
	if atStart {
		c = n.children[0]
	}
	c.size += d
	c.grow(vertical, atStart, d)
}

// shrink removes k cells from n along an axis, starting at one edge and
// moving inward when the edge child reaches its minimum. Callers check
// that n can give up k cells.
func (n *node) shrink(vertical, atStart bool, k, minHeight, minWidth int) {
	if n.isLeaf() || k <= 0 {
		return
	}
	if n.vertical != vertical {
		for _, c := range n.children {
			c.shrink(vertical, atStart, k, minHeight, minWidth)
		}
		return
	}
	for i := range n.children {
		c := n.children[len(n.children)-1-i]
		if atStart {
			c = n.children[i]
		}
		take := c.size - c.minExtent(vertical, minHeight, minWidth)
		if take > k {
			take = k
		}
		if take <= 0 {
			continue
		}
		c.size -= take
		c.shrink(vertical, atStart, take, minHeight, minWidth)
		k -= take
		if k == 0 {
			return
		}
	}
}

// fit rescales sizes under n to a new rectangle, proportionally, with
// the last child absorbing rounding.
func (n *node) fit(r host.Rect) {
	if n.isLeaf() {
		return
	}
	old, extent := n.rect.Width, r.Width
	if n.vertical {
		old, extent = n.rect.Height, r.Height
	}
	used := 0
	for i, c := range n.children {
		if i == len(n.children)-1 {
			c.size = extent - used
		} else if old > 0 {
			c.size = c.size * extent / old
			if c.size < 1 {
				c.size = 1
			}
		}
		used += c.size
	}
	pos := r.Top
	if !n.vertical {
		pos = r.Left
	}
	for _, c := range n.children {
		cr := r
		if n.vertical {
			cr.Top, cr.Height = pos, c.size
		} else {
			cr.Left, cr.Width = pos, c.size
		}
		c.fit(cr)
		c.rect = cr
		pos += c.size
	}
}

// replace puts repl where n was in n's parent, or returns repl as the
// new root when n was the root.
func (n *node) replace(repl *node) {
	repl.parent = n.parent
	if n.parent == nil {
		return
	}
	n.parent.children[n.index()] = repl
}

// splice removes n from its parent and inserts its children in its place.
// The parent must share n's orientation.
func (n *node) splice() {
	p := n.parent
	i := n.index()
	children := make([]*node, 0, len(p.children)+len(n.children)-1)
	children = append(children, p.children[:i]...)
	for _, c := range n.children {
		c.parent = p
		children = append(children, c)
	}
	children = append(children, p.children[i+1:]...)
	p.children = children
}
