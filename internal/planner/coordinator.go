// Package planner implements cursor-preserving window layout operations
// on top of a host's raw split, close and resize primitives.
//
// Every operation validates its target before the first raw mutation, so
// a failed validation leaves the frame untouched. Once the raw mutation
// has run, anchors are adjusted so text keeps its screen rows, and
// cursors are moved or clamped according to the active layout policy.
package planner

import (
	"math"

	"github.com/dshills/quietwin/internal/geometry"
	"github.com/dshills/quietwin/internal/host"
	"github.com/dshills/quietwin/internal/logging"
	"github.com/dshills/quietwin/internal/policy"
)

// Coordinator runs layout operations against one host. It is not safe
// for concurrent use; all calls belong on the control goroutine.
type Coordinator struct {
	host   host.DisplayHost
	geom   *geometry.Service
	policy *policy.Store
	log    *logging.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithGeometry replaces the geometry service built from the host.
func WithGeometry(g *geometry.Service) Option {
	return func(c *Coordinator) {
		if g != nil {
			c.geom = g
		}
	}
}

// New creates a Coordinator for h reading policy from store.
func New(h host.DisplayHost, store *policy.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		host:   h,
		policy: store,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.geom == nil {
		c.geom = geometry.New(h)
	}
	if c.policy == nil {
		c.policy = policy.NewStore(policy.Default())
	}
	c.log = c.log.WithComponent("planner")
	return c
}

// Host returns the host the coordinator drives.
func (c *Coordinator) Host() host.DisplayHost {
	return c.host
}

// Geometry returns the geometry service.
func (c *Coordinator) Geometry() *geometry.Service {
	return c.geom
}

// Policy returns the policy store.
func (c *Coordinator) Policy() *policy.Store {
	return c.policy
}

// checkOrdinary validates that w is live and not reserved.
func (c *Coordinator) checkOrdinary(op string, w host.WindowID) error {
	if !c.host.Live(w) {
		return host.NewOperationError(op, w, host.ErrInvalidWindow)
	}
	if c.host.Reserved(w) {
		return host.NewOperationError(op, w, host.ErrUnsplittableWindow)
	}
	return nil
}

// ordinary returns the non-reserved windows in display order.
func (c *Coordinator) ordinary() []host.WindowID {
	all := c.host.Windows()
	out := make([]host.WindowID, 0, len(all))
	for _, w := range all {
		if !c.host.Reserved(w) {
			out = append(out, w)
		}
	}
	return out
}

// rect returns the rectangle of a window known to be live.
func (c *Coordinator) rect(op string, w host.WindowID) (host.Rect, error) {
	r, err := c.host.WindowRect(w)
	if err != nil {
		return host.Rect{}, host.NewOperationError(op, w, err)
	}
	return r, nil
}

// lastVisible returns the last offset drawn in w, or false when the
// whole remaining buffer fits.
func (c *Coordinator) lastVisible(w host.WindowID) (int, bool) {
	rows := c.host.TextHeight(w)
	if rows <= 0 {
		return c.host.Anchor(w), true
	}
	anchor := c.host.Anchor(w)
	if _, moved := c.host.StepDisplayLines(w, anchor, rows); moved < rows {
		return 0, false
	}
	last, _ := c.host.StepDisplayLines(w, anchor, rows-1)
	return c.host.OffsetAtColumn(w, last, math.MaxInt), true
}

// correctCursor clamps the cursor of w into its visible region.
func (c *Coordinator) correctCursor(op string, w host.WindowID) error {
	cur := c.host.Cursor(w)
	if c.host.IsVisible(w, cur) {
		return nil
	}
	target := c.host.Anchor(w)
	if cur > target {
		if last, ok := c.lastVisible(w); ok {
			target = last
		}
	}
	if err := c.host.SetCursor(w, target); err != nil {
		return host.NewOperationError(op, w, err)
	}
	c.log.WithFields(map[string]any{"window": w, "from": cur, "to": target}).Debug("cursor clamped")
	return nil
}

// shiftAnchor steps the anchor of w by rows display lines.
func (c *Coordinator) shiftAnchor(op string, w host.WindowID, rows int) error {
	if rows == 0 {
		return nil
	}
	anchor, _ := c.host.StepDisplayLines(w, c.host.Anchor(w), rows)
	if err := c.host.SetAnchor(w, anchor); err != nil {
		return host.NewOperationError(op, w, err)
	}
	return nil
}

func (c *Coordinator) selectIf(op string, cond bool, w host.WindowID) error {
	if !cond {
		return nil
	}
	if err := c.host.SelectWindow(w); err != nil {
		return host.NewOperationError(op, w, err)
	}
	return nil
}
