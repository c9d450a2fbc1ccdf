// Package geometry maps buffer offsets to window cells.
//
// Hosts that implement host.PositionLocator answer directly. Other hosts
// are queried by bisecting over their display line stepping primitive,
// which costs O(log height) host calls per lookup.
package geometry

import (
	"github.com/dshills/quietwin/internal/host"
)

// Host is the host surface the service reads.
type Host interface {
	host.Frame
	host.Motion
	host.Points
}

// Stats counts host calls made by a Service.
type Stats struct {
	Lookups      int // Locate calls that reached the host
	StepCalls    int // StepDisplayLines calls made while bisecting
	LocatorCalls int // PositionOf calls
}

// Service answers offset to coordinate queries.
type Service struct {
	host    Host
	locator host.PositionLocator
	stats   Stats
}

// New creates a Service over h. If h implements host.PositionLocator it
// is used instead of bisection.
func New(h Host) *Service {
	s := &Service{host: h}
	if l, ok := h.(host.PositionLocator); ok {
		s.locator = l
	}
	return s
}

// NewBisecting creates a Service that always bisects, even when h could
// locate offsets directly.
func NewBisecting(h Host) *Service {
	return &Service{host: h}
}

// Stats returns the call counters.
func (s *Service) Stats() Stats {
	return s.stats
}

// ResetStats zeroes the call counters.
func (s *Service) ResetStats() {
	s.stats = Stats{}
}

// Locate returns the cell at which offset is drawn in w. ok is false
// when the offset is not visible.
func (s *Service) Locate(w host.WindowID, offset int) (c host.Coordinate, ok bool, err error) {
	if !s.host.Live(w) {
		return host.Coordinate{}, false, host.NewOperationError("locate", w, host.ErrInvalidWindow)
	}
	if !s.host.IsVisible(w, offset) {
		return host.Coordinate{}, false, nil
	}
	s.stats.Lookups++

	if s.locator != nil {
		s.stats.LocatorCalls++
		c, ok = s.locator.PositionOf(w, offset)
		if !ok {
			return host.Coordinate{}, false, nil
		}
		return s.fit(w, c), true, nil
	}

	row, base := s.bisect(w, offset)
	col := s.host.Column(w, offset) - s.host.Column(w, base)
	return s.fit(w, host.Coordinate{Row: row, Col: col}), true, nil
}

// fit maps an unclipped column onto the window: wrapped windows carry
// whole widths onto following rows, truncated ones clamp to the last
// column.
func (s *Service) fit(w host.WindowID, c host.Coordinate) host.Coordinate {
	r, err := s.host.WindowRect(w)
	if err != nil || r.Width <= 0 {
		return c
	}
	if s.host.Wraps(w) {
		c.Row += c.Col / r.Width
		c.Col %= r.Width
	} else if c.Col > r.Width-1 {
		c.Col = r.Width - 1
	}
	return c
}

// LocateCursor locates the cursor of w.
func (s *Service) LocateCursor(w host.WindowID) (host.Coordinate, bool, error) {
	if !s.host.Live(w) {
		return host.Coordinate{}, false, host.NewOperationError("locate", w, host.ErrInvalidWindow)
	}
	return s.Locate(w, s.host.Cursor(w))
}

// bisect finds the largest row k whose display line starts at or before
// offset. Stepping further from the anchor never yields an earlier
// offset, so the predicate flips exactly once.
func (s *Service) bisect(w host.WindowID, offset int) (row, base int) {
	anchor := s.host.Anchor(w)
	lo, hi := 0, s.host.TextHeight(w)-1
	base = anchor
	for lo < hi {
		mid := (lo + hi + 1) / 2
		s.stats.StepCalls++
		off, moved := s.host.StepDisplayLines(w, anchor, mid)
		if moved == mid && off <= offset {
			lo, base = mid, off
		} else {
			hi = mid - 1
		}
	}
	return lo, base
}
