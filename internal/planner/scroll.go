package planner

import "github.com/dshills/quietwin/internal/host"

// Scroll moves the anchor of w by lines display lines (forward when
// positive). A visible cursor keeps its screen row and column; a cursor
// pushed off screen is clamped.
func (c *Coordinator) Scroll(w host.WindowID, lines int) error {
	const op = "scroll"
	if !c.host.Live(w) {
		return host.NewOperationError(op, w, host.ErrInvalidWindow)
	}
	if lines == 0 {
		return nil
	}

	anchor := c.host.Anchor(w)
	cursor := c.host.Cursor(w)
	lineStart, _ := c.host.StepDisplayLines(w, cursor, 0)
	visible := c.host.IsVisible(w, cursor)
	pos, _, err := c.geom.Locate(w, lineStart)
	if err != nil {
		return err
	}
	// Column within the display line, unclipped by truncation.
	col := c.host.Column(w, cursor) - c.host.Column(w, lineStart)

	next, moved := c.host.StepDisplayLines(w, anchor, lines)
	if moved == 0 {
		if lines > 0 {
			return host.NewOperationError(op, w, host.ErrEndOfBuffer)
		}
		return host.NewOperationError(op, w, host.ErrBeginningOfBuffer)
	}
	if err := c.host.SetAnchor(w, next); err != nil {
		return host.NewOperationError(op, w, err)
	}

	if visible {
		row, _ := c.host.StepDisplayLines(w, next, pos.Row)
		target := c.host.OffsetAtColumn(w, row, col)
		if err := c.host.SetCursor(w, target); err != nil {
			return host.NewOperationError(op, w, err)
		}
	}
	if err := c.correctCursor(op, w); err != nil {
		return err
	}
	c.log.WithFields(map[string]any{
		"window": w,
		"lines":  moved,
		"anchor": next,
		"cursor": c.host.Cursor(w),
	}).Debug("scroll")
	return nil
}
