package planner

import (
	"github.com/dshills/quietwin/internal/host"
	"github.com/dshills/quietwin/internal/policy"
)

// SizeHint requests the height of a split. The zero value splits evenly.
type SizeHint struct {
	lines int
}

// Even requests an even split; the top window gets the odd row.
func Even() SizeHint {
	return SizeHint{}
}

// Lines requests n rows for the top window, or -n rows for the bottom
// window when n is negative. Lines(0) is an even split.
func Lines(n int) SizeHint {
	return SizeHint{lines: n}
}

// IsEven reports whether h requests an even split.
func (h SizeHint) IsEven() bool {
	return h.lines == 0
}

// topHeight returns the top window height for a window of height rows.
func (h SizeHint) topHeight(height int) int {
	switch {
	case h.lines > 0:
		return h.lines
	case h.lines < 0:
		return height + h.lines
	default:
		return height - height/2
	}
}

// Split divides w into two stacked windows showing the same buffer. w
// keeps its identity as the top window. Cursor and anchor placement
// follow the active layout policy; focus moves to the bottom window only
// when w held it.
func (c *Coordinator) Split(w host.WindowID, hint SizeHint) (top, bottom host.WindowID, err error) {
	const op = "split"
	if err := c.checkOrdinary(op, w); err != nil {
		return host.NoWindow, host.NoWindow, err
	}
	r, err := c.rect(op, w)
	if err != nil {
		return host.NoWindow, host.NoWindow, err
	}
	topHeight := hint.topHeight(r.Height)
	minHeight := c.host.MinWindowHeight()
	if topHeight < minHeight || r.Height-topHeight < minHeight {
		return host.NoWindow, host.NoWindow, host.NewOperationError(op, w, host.ErrWindowTooSmall)
	}

	p := c.policy.Policy()
	oldAnchor := c.host.Anchor(w)
	oldCursor := c.host.Cursor(w)
	focused := c.host.Selected() == w

	bottom, err = c.host.SplitRaw(w, topHeight)
	if err != nil {
		return host.NoWindow, host.NoWindow, host.NewOperationError(op, w, err)
	}

	switch p {
	case policy.MinimizeMotion:
		err = c.minimizeMotion(w, bottom, oldAnchor, oldCursor, focused)
	case policy.RevealIfHidden:
		if err = c.minimizeMotion(w, bottom, oldAnchor, oldCursor, focused); err == nil {
			err = c.revealIfHidden(w, bottom, oldCursor, focused)
		}
	}
	if err != nil {
		return w, bottom, err
	}

	c.log.WithFields(map[string]any{
		"window":   w,
		"new":      bottom,
		"policy":   p,
		"height":   topHeight,
		"anchor":   c.host.Anchor(bottom),
		"cursor":   oldCursor,
		"selected": c.host.Selected(),
	}).Debug("split")
	return w, bottom, nil
}

// minimizeMotion scrolls the bottom window so every line keeps its screen
// row, then gives the old cursor to whichever window shows it.
func (c *Coordinator) minimizeMotion(top, bottom host.WindowID, oldAnchor, oldCursor int, focused bool) error {
	const op = "split"
	rows := c.host.TextHeight(top)
	anchor, moved := c.host.StepDisplayLines(bottom, oldAnchor, rows)
	if moved < rows {
		// The buffer ends inside the top window: start the bottom
		// window one display line earlier.
		anchor, _ = c.host.StepDisplayLines(bottom, anchor, -1)
	}
	if err := c.host.SetAnchor(bottom, anchor); err != nil {
		return host.NewOperationError(op, bottom, err)
	}
	anchor = c.host.Anchor(bottom)

	if c.host.Cursor(bottom) < anchor {
		if err := c.host.SetCursor(bottom, anchor); err != nil {
			return host.NewOperationError(op, bottom, err)
		}
	}

	if oldCursor >= anchor {
		if err := c.host.SetCursor(bottom, oldCursor); err != nil {
			return host.NewOperationError(op, bottom, err)
		}
		if err := c.selectIf(op, focused, bottom); err != nil {
			return err
		}
	}
	return c.correctCursor(op, top)
}

// revealIfHidden scrolls the bottom window to the old cursor when neither
// window shows it.
func (c *Coordinator) revealIfHidden(top, bottom host.WindowID, oldCursor int, focused bool) error {
	const op = "split"
	if c.host.IsVisible(top, oldCursor) || c.host.IsVisible(bottom, oldCursor) {
		return nil
	}
	start, _ := c.host.StepDisplayLines(bottom, oldCursor, 0)
	if err := c.host.SetAnchor(bottom, start); err != nil {
		return host.NewOperationError(op, bottom, err)
	}
	if err := c.host.SetCursor(bottom, oldCursor); err != nil {
		return host.NewOperationError(op, bottom, err)
	}
	if err := c.selectIf(op, focused, bottom); err != nil {
		return err
	}
	c.log.WithFields(map[string]any{"window": bottom, "cursor": oldCursor}).Debug("revealed hidden cursor")
	return nil
}

// SplitSide divides w into two side-by-side windows without any position
// fixup. The host must implement host.SideSplitter.
func (c *Coordinator) SplitSide(w host.WindowID) (left, right host.WindowID, err error) {
	const op = "split-side"
	if err := c.checkOrdinary(op, w); err != nil {
		return host.NoWindow, host.NoWindow, err
	}
	s, ok := c.host.(host.SideSplitter)
	if !ok {
		return host.NoWindow, host.NoWindow, host.NewOperationError(op, w, host.ErrNotSupported)
	}
	r, err := c.rect(op, w)
	if err != nil {
		return host.NoWindow, host.NoWindow, err
	}
	right, err = s.SplitSideRaw(w, r.Width-r.Width/2)
	if err != nil {
		return host.NoWindow, host.NoWindow, host.NewOperationError(op, w, err)
	}
	c.log.WithFields(map[string]any{"window": w, "new": right}).Debug("split side")
	return w, right, nil
}
