package planner

import "github.com/dshills/quietwin/internal/host"

// Resize grows w by delta rows, shrinking a neighbor, or shrinks it when
// delta is negative. Windows whose top edge moves have their anchors
// stepped by the same number of rows, then every cursor is clamped into
// its window's visible region.
//
// The host validates the resize before changing anything, so a refused
// resize leaves the frame as it was.
func (c *Coordinator) Resize(w host.WindowID, delta int) error {
	const op = "resize"
	if err := c.checkOrdinary(op, w); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	windows := c.ordinary()
	tops := make(map[host.WindowID]int, len(windows))
	for _, o := range windows {
		r, err := c.rect(op, o)
		if err != nil {
			return err
		}
		tops[o] = r.Top
	}

	if err := c.host.ResizeRaw(w, delta); err != nil {
		return host.NewOperationError(op, w, err)
	}

	for _, o := range windows {
		r, err := c.rect(op, o)
		if err != nil {
			return err
		}
		if err := c.shiftAnchor(op, o, r.Top-tops[o]); err != nil {
			return err
		}
	}
	for _, o := range windows {
		if err := c.correctCursor(op, o); err != nil {
			return err
		}
	}
	c.log.WithFields(map[string]any{"window": w, "delta": delta}).Debug("resize")
	return nil
}
