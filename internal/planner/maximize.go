package planner

import "github.com/dshills/quietwin/internal/host"

// Maximize closes every other ordinary window so w fills the frame. The
// anchor of w steps back by the rows its top edge moved up, keeping its
// text on the same screen rows. The reserved window cannot be maximized.
func (c *Coordinator) Maximize(w host.WindowID) error {
	const op = "maximize"
	if err := c.checkOrdinary(op, w); err != nil {
		return err
	}
	others := c.ordinary()
	if len(others) == 1 {
		return nil
	}
	before, err := c.rect(op, w)
	if err != nil {
		return err
	}

	for _, o := range others {
		if o == w {
			continue
		}
		if err := c.host.CloseRaw(o); err != nil {
			return host.NewOperationError(op, o, err)
		}
	}

	after, err := c.rect(op, w)
	if err != nil {
		return err
	}
	if err := c.shiftAnchor(op, w, after.Top-before.Top); err != nil {
		return err
	}
	if err := c.host.SelectWindow(w); err != nil {
		return host.NewOperationError(op, w, err)
	}
	if err := c.correctCursor(op, w); err != nil {
		return err
	}
	c.log.WithFields(map[string]any{
		"window": w,
		"closed": len(others) - 1,
		"moved":  before.Top - after.Top,
	}).Debug("maximize")
	return nil
}
