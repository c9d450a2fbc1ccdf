package planner

import "github.com/dshills/quietwin/internal/host"

// Other selects the window n steps after the selected one in display
// order, wrapping around and skipping the reserved window. Negative n
// moves backward.
func (c *Coordinator) Other(n int) (host.WindowID, error) {
	windows := c.ordinary()
	if len(windows) == 0 {
		return host.NoWindow, host.NewOperationError("other", host.NoWindow, host.ErrInvalidWindow)
	}
	cur := c.host.Selected()
	i := 0
	for j, w := range windows {
		if w == cur {
			i = j
			break
		}
	}
	i = ((i+n)%len(windows) + len(windows)) % len(windows)
	target := windows[i]
	if err := c.host.SelectWindow(target); err != nil {
		return host.NoWindow, host.NewOperationError("other", target, err)
	}
	return target, nil
}

// WhereIs returns the cell showing the cursor of w. ok is false when the
// cursor is scrolled out of view.
func (c *Coordinator) WhereIs(w host.WindowID) (pos host.Coordinate, ok bool, err error) {
	return c.geom.LocateCursor(w)
}
