package memhost

import (
	"fmt"

	"github.com/dshills/quietwin/internal/host"
)

// CheckTiling verifies that the live windows of f exactly tile its frame:
// every rectangle is non-empty and inside the frame, no two overlap, and
// together they cover its whole area.
func CheckTiling(f host.Frame) error {
	frame := f.FrameRect()
	ids := f.Windows()
	rects := make([]host.Rect, 0, len(ids))
	area := 0
	for _, id := range ids {
		r, err := f.WindowRect(id)
		if err != nil {
			return fmt.Errorf("window %d: %w", id, err)
		}
		if r.IsEmpty() {
			return fmt.Errorf("window %d is empty: %v", id, r)
		}
		if !frame.Contains(r) {
			return fmt.Errorf("window %d %v escapes frame %v", id, r, frame)
		}
		for j, o := range rects {
			if r.Overlaps(o) {
				return fmt.Errorf("window %d %v overlaps window %d %v", id, r, ids[j], o)
			}
		}
		rects = append(rects, r)
		area += r.Area()
	}
	if area != frame.Area() {
		return fmt.Errorf("windows cover %d cells, frame has %d", area, frame.Area())
	}
	return nil
}
