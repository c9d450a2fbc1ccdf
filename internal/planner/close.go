package planner

import (
	"github.com/dshills/quietwin/internal/host"
)

// Close deletes w and returns the window that received its rows.
//
// When w is the top window of a vertical stack, the window below grows
// upward and its anchor steps back by the rows it gained, so its text
// stays put on screen; it also takes over w's cursor if that offset is
// still visible. Otherwise, with CloseKeepsFocus set, a focused w whose
// window above shows the same buffer and continues exactly where w began
// hands its cursor and focus to that window. An unselected w never takes
// that path, even with the setting on: it falls through to a plain close.
func (c *Coordinator) Close(w host.WindowID) (host.WindowID, error) {
	const op = "close"
	if err := c.checkOrdinary(op, w); err != nil {
		return host.NoWindow, err
	}
	if len(c.ordinary()) < 2 {
		return host.NoWindow, host.NewOperationError(op, w, host.ErrLastWindow)
	}
	r, err := c.rect(op, w)
	if err != nil {
		return host.NoWindow, err
	}

	closed := closedWindow{
		id:       w,
		rect:     r,
		anchor:   c.host.Anchor(w),
		cursor:   c.host.Cursor(w),
		buffer:   c.host.BufferOf(w),
		selected: c.host.Selected() == w,
	}

	if r.Top == c.host.FrameRect().Top {
		if below := c.adjacent(r, false); below != host.NoWindow {
			return c.closeTop(closed, below)
		}
	}
	if c.policy.CloseKeepsFocus() && closed.selected {
		if above := c.adjacent(r, true); above != host.NoWindow && c.continues(above, closed) {
			return c.closeIntoAbove(closed, above)
		}
	}
	return c.closePlain(closed)
}

type closedWindow struct {
	id       host.WindowID
	rect     host.Rect
	anchor   int
	cursor   int
	buffer   host.BufferID
	selected bool
}

// adjacent returns the ordinary window sharing r's column extent and
// touching its top edge (above) or bottom edge.
func (c *Coordinator) adjacent(r host.Rect, above bool) host.WindowID {
	for _, o := range c.ordinary() {
		or, err := c.host.WindowRect(o)
		if err != nil || !or.SameColumn(r) {
			continue
		}
		if above && or.Bottom() == r.Top {
			return o
		}
		if !above && or.Top == r.Bottom() {
			return o
		}
	}
	return host.NoWindow
}

// continues dry-runs growing above over the closed window: its text must
// reach the closed window's anchor exactly at the closed window's top row.
func (c *Coordinator) continues(above host.WindowID, closed closedWindow) bool {
	if c.host.BufferOf(above) != closed.buffer {
		return false
	}
	prev := c.precedingWindow(closed.id)
	if prev != above {
		return false
	}
	ar, err := c.host.WindowRect(above)
	if err != nil {
		return false
	}
	rows := closed.rect.Top - ar.Top
	off, moved := c.host.StepDisplayLines(above, c.host.Anchor(above), rows)
	return moved == rows && off == closed.anchor
}

// precedingWindow returns the ordinary window before w in display order.
func (c *Coordinator) precedingWindow(w host.WindowID) host.WindowID {
	prev := host.NoWindow
	for _, o := range c.ordinary() {
		if o == w {
			return prev
		}
		prev = o
	}
	return host.NoWindow
}

func (c *Coordinator) closeTop(closed closedWindow, below host.WindowID) (host.WindowID, error) {
	const op = "close"
	before, err := c.rect(op, below)
	if err != nil {
		return host.NoWindow, err
	}
	if err := c.host.CloseRaw(closed.id); err != nil {
		return host.NoWindow, host.NewOperationError(op, closed.id, err)
	}
	after, err := c.rect(op, below)
	if err != nil {
		return host.NoWindow, err
	}

	gained := before.Top - after.Top
	if err := c.shiftAnchor(op, below, -gained); err != nil {
		return below, err
	}
	if c.host.BufferOf(below) == closed.buffer && c.host.IsVisible(below, closed.cursor) {
		if err := c.host.SetCursor(below, closed.cursor); err != nil {
			return below, host.NewOperationError(op, below, err)
		}
	}
	if err := c.selectIf(op, closed.selected, below); err != nil {
		return below, err
	}

	c.log.WithFields(map[string]any{
		"window":   closed.id,
		"survivor": below,
		"gained":   gained,
		"anchor":   c.host.Anchor(below),
		"cursor":   c.host.Cursor(below),
	}).Debug("close top of stack")
	return below, nil
}

func (c *Coordinator) closeIntoAbove(closed closedWindow, above host.WindowID) (host.WindowID, error) {
	const op = "close"
	if err := c.host.CloseRaw(closed.id); err != nil {
		return host.NoWindow, host.NewOperationError(op, closed.id, err)
	}
	if err := c.host.SelectWindow(above); err != nil {
		return above, host.NewOperationError(op, above, err)
	}
	if err := c.host.SetCursor(above, closed.cursor); err != nil {
		return above, host.NewOperationError(op, above, err)
	}
	c.log.WithFields(map[string]any{
		"window":   closed.id,
		"survivor": above,
		"cursor":   closed.cursor,
	}).Debug("close into window above")
	return above, nil
}

func (c *Coordinator) closePlain(closed closedWindow) (host.WindowID, error) {
	const op = "close"
	if err := c.host.CloseRaw(closed.id); err != nil {
		return host.NoWindow, host.NewOperationError(op, closed.id, err)
	}
	survivor := c.windowAt(closed.rect.Left, closed.rect.Top)
	c.log.WithFields(map[string]any{"window": closed.id, "survivor": survivor}).Debug("close")
	return survivor, nil
}

// windowAt returns the ordinary window covering cell (x, y).
func (c *Coordinator) windowAt(x, y int) host.WindowID {
	for _, o := range c.ordinary() {
		r, err := c.host.WindowRect(o)
		if err != nil {
			continue
		}
		if x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom() {
			return o
		}
	}
	return host.NoWindow
}
