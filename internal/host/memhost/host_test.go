package memhost

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/quietwin/internal/host"
)

func numbered(n int) *Buffer {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return NewBuffer(1, "numbered", strings.Join(lines, "\n"))
}

func newTestHost(t *testing.T, width, height int, opts Options) (*Host, *Buffer) {
	t.Helper()
	b := numbered(100)
	return New(width, height, b, opts), b
}

func mustTile(t *testing.T, h *Host) {
	t.Helper()
	if err := CheckTiling(h); err != nil {
		t.Fatalf("tiling broken: %v", err)
	}
}

func TestNewHost(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())

	ids := h.Windows()
	if len(ids) != 1 {
		t.Fatalf("expected 1 window, got %d", len(ids))
	}
	r, err := h.WindowRect(ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(host.Rect{Width: 80, Height: 40}, r); diff != "" {
		t.Errorf("rect mismatch (-want +got):\n%s", diff)
	}
	if h.Selected() != ids[0] {
		t.Errorf("expected window %d selected, got %d", ids[0], h.Selected())
	}
	mustTile(t, h)
}

func TestEchoArea(t *testing.T) {
	opts := DefaultOptions()
	opts.EchoArea = true
	h, _ := newTestHost(t, 80, 40, opts)

	ids := h.Windows()
	if len(ids) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(ids))
	}
	echo := ids[1]
	if !h.Reserved(echo) {
		t.Error("expected last window to be reserved")
	}
	r, _ := h.WindowRect(echo)
	if r.Top != 39 || r.Height != 1 {
		t.Errorf("expected echo area on the last row, got %v", r)
	}
	if _, err := h.SplitRaw(echo, 1); !errors.Is(err, host.ErrUnsplittableWindow) {
		t.Errorf("expected ErrUnsplittableWindow, got %v", err)
	}
	if err := h.CloseRaw(echo); !errors.Is(err, host.ErrUnsplittableWindow) {
		t.Errorf("expected ErrUnsplittableWindow, got %v", err)
	}
	mustTile(t, h)
}

func TestStepDisplayLines(t *testing.T) {
	h, b := newTestHost(t, 80, 40, DefaultOptions())
	w := h.Windows()[0]

	off, moved := h.StepDisplayLines(w, 0, 10)
	if off != b.LineStart(10) || moved != 10 {
		t.Errorf("expected line 11 after 10 steps, got offset %d moved %d", off, moved)
	}

	// From the middle of a line the step starts at that line's start.
	off, moved = h.StepDisplayLines(w, b.LineStart(5)+3, 0)
	if off != b.LineStart(5) || moved != 0 {
		t.Errorf("expected line start %d, got %d (moved %d)", b.LineStart(5), off, moved)
	}

	off, moved = h.StepDisplayLines(w, b.LineStart(95), 10)
	if off != b.LineStart(99) || moved != 4 {
		t.Errorf("expected clamp at last line, got offset %d moved %d", off, moved)
	}

	off, moved = h.StepDisplayLines(w, b.LineStart(3), -10)
	if off != 0 || moved != -3 {
		t.Errorf("expected clamp at first line, got offset %d moved %d", off, moved)
	}
}

func TestStepDisplayLinesWrapped(t *testing.T) {
	b := NewBuffer(1, "wrap", "abcdefghij\nxy")
	h := New(4, 10, b, DefaultOptions())
	w := h.Windows()[0]

	var got []int
	for i := 0; i <= 4; i++ {
		off, _ := h.StepDisplayLines(w, 0, i)
		got = append(got, off)
	}
	if diff := cmp.Diff([]int{0, 4, 8, 11, 11}, got); diff != "" {
		t.Errorf("display line starts mismatch (-want +got):\n%s", diff)
	}

	off, moved := h.StepDisplayLines(w, 11, -2)
	if off != 4 || moved != -2 {
		t.Errorf("expected to step back into the wrapped line, got %d moved %d", off, moved)
	}
}

func TestIsVisible(t *testing.T) {
	h, b := newTestHost(t, 80, 10, DefaultOptions())
	w := h.Windows()[0]
	_ = h.SetAnchor(w, b.LineStart(20))

	tests := []struct {
		offset int
		want   bool
	}{
		{b.LineStart(19), false},
		{b.LineStart(20), true},
		{b.LineEnd(29), true},
		{b.LineStart(30), false},
	}
	for _, tt := range tests {
		if got := h.IsVisible(w, tt.offset); got != tt.want {
			t.Errorf("IsVisible(%d) = %v, expected %v", tt.offset, got, tt.want)
		}
	}

	_ = h.SetAnchor(w, b.LineStart(95))
	if !h.IsVisible(w, b.Len()) {
		t.Error("expected end of buffer visible when the window shows the last line")
	}
}

func TestModeLineHidesLastRow(t *testing.T) {
	opts := DefaultOptions()
	opts.ModeLine = true
	h, b := newTestHost(t, 80, 10, opts)
	w := h.Windows()[0]

	if h.TextHeight(w) != 9 {
		t.Errorf("expected 9 text rows, got %d", h.TextHeight(w))
	}
	if h.IsVisible(w, b.LineStart(9)) {
		t.Error("expected line under the mode line to be hidden")
	}
	if h.MinWindowHeight() != 2 {
		t.Errorf("expected min height 2 with mode lines, got %d", h.MinWindowHeight())
	}
}

func TestSetAnchorSnapsToLineStart(t *testing.T) {
	h, b := newTestHost(t, 80, 10, DefaultOptions())
	w := h.Windows()[0]

	if err := h.SetAnchor(w, b.LineStart(4)+2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Anchor(w) != b.LineStart(4) {
		t.Errorf("expected anchor %d, got %d", b.LineStart(4), h.Anchor(w))
	}
	if err := h.SetAnchor(99, 0); !errors.Is(err, host.ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestPositionOf(t *testing.T) {
	b := NewBuffer(1, "wrap", "abcdefghij\nxy\n\tz")
	h := New(4, 10, b, DefaultOptions())
	w := h.Windows()[0]

	tests := []struct {
		offset int
		want   host.Coordinate
	}{
		{0, host.Coordinate{Row: 0, Col: 0}},
		{5, host.Coordinate{Row: 1, Col: 1}},
		{9, host.Coordinate{Row: 2, Col: 1}},
		{12, host.Coordinate{Row: 3, Col: 1}},
		{15, host.Coordinate{Row: 5, Col: 0}}, // z wraps after the wide tab
	}
	for _, tt := range tests {
		got, ok := h.PositionOf(w, tt.offset)
		if !ok {
			t.Errorf("PositionOf(%d) not visible", tt.offset)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("PositionOf(%d) mismatch (-want +got):\n%s", tt.offset, diff)
		}
	}
}

func TestSplitRaw(t *testing.T) {
	h, b := newTestHost(t, 80, 40, DefaultOptions())
	w := h.Windows()[0]
	_ = h.SetAnchor(w, b.LineStart(3))
	_ = h.SetCursor(w, b.LineStart(7))

	nw, err := h.SplitRaw(w, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustTile(t, h)

	top, _ := h.WindowRect(w)
	bottom, _ := h.WindowRect(nw)
	if top.Height != 15 || bottom.Top != 15 || bottom.Height != 25 {
		t.Errorf("unexpected split geometry top=%v bottom=%v", top, bottom)
	}
	if h.Anchor(nw) != h.Anchor(w) || h.Cursor(nw) != h.Cursor(w) {
		t.Error("expected new window to copy anchor and cursor")
	}
	if diff := cmp.Diff([]host.WindowID{w, nw}, h.Windows()); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}
	if h.Selected() != w {
		t.Error("raw split must not change selection")
	}

	if _, err := h.SplitRaw(w, 0); !errors.Is(err, host.ErrWindowTooSmall) {
		t.Errorf("expected ErrWindowTooSmall, got %v", err)
	}
	if _, err := h.SplitRaw(w, 15); !errors.Is(err, host.ErrWindowTooSmall) {
		t.Errorf("expected ErrWindowTooSmall, got %v", err)
	}
}

func TestSplitFlattensSameOrientation(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())
	a := h.Windows()[0]
	b, _ := h.SplitRaw(a, 20)
	c, _ := h.SplitRaw(b, 10)

	if len(h.root.children) != 3 {
		t.Fatalf("expected a flat combination of 3, got %d children", len(h.root.children))
	}
	if diff := cmp.Diff([]host.WindowID{a, b, c}, h.Windows()); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}
	mustTile(t, h)
}

func TestCloseRawGivesSpaceToPrevious(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())
	a := h.Windows()[0]
	b, _ := h.SplitRaw(a, 20)
	c, _ := h.SplitRaw(b, 10)

	if err := h.CloseRaw(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustTile(t, h)
	ra, _ := h.WindowRect(a)
	if ra.Height != 30 {
		t.Errorf("expected previous window to absorb rows, got %v", ra)
	}

	if err := h.CloseRaw(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rc, _ := h.WindowRect(c)
	if rc.Top != 0 || rc.Height != 40 {
		t.Errorf("expected next window to absorb rows upward, got %v", rc)
	}
	if h.Selected() != c {
		t.Errorf("expected selection to move to %d, got %d", c, h.Selected())
	}
	if err := h.CloseRaw(c); !errors.Is(err, host.ErrLastWindow) {
		t.Errorf("expected ErrLastWindow, got %v", err)
	}
	mustTile(t, h)
}

func TestCloseRawCollapsesNestedCombination(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())
	a := h.Windows()[0]
	b, _ := h.SplitRaw(a, 20)
	c, err := h.SplitSideRaw(b, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, _ := h.SplitRaw(c, 10)
	mustTile(t, h)

	// Closing b leaves the side-by-side combination with one vertical
	// child, which must be spliced into the root.
	if err := h.CloseRaw(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustTile(t, h)
	if len(h.root.children) != 3 {
		t.Errorf("expected root to hold 3 children after splice, got %d", len(h.root.children))
	}
	if diff := cmp.Diff([]host.WindowID{a, c, d}, h.Windows()); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeRaw(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())
	a := h.Windows()[0]
	b, _ := h.SplitRaw(a, 20)

	if err := h.ResizeRaw(a, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ra, _ := h.WindowRect(a)
	rb, _ := h.WindowRect(b)
	if ra.Height != 25 || rb.Top != 25 || rb.Height != 15 {
		t.Errorf("unexpected geometry a=%v b=%v", ra, rb)
	}

	// The last window trades with the one above it.
	if err := h.ResizeRaw(b, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ra, _ = h.WindowRect(a)
	rb, _ = h.WindowRect(b)
	if ra.Height != 20 || rb.Top != 20 || rb.Height != 20 {
		t.Errorf("unexpected geometry a=%v b=%v", ra, rb)
	}

	if err := h.ResizeRaw(a, -20); !errors.Is(err, host.ErrWindowTooSmall) {
		t.Errorf("expected ErrWindowTooSmall, got %v", err)
	}
	if err := h.ResizeRaw(a, 20); !errors.Is(err, host.ErrWindowTooSmall) {
		t.Errorf("expected ErrWindowTooSmall, got %v", err)
	}
	mustTile(t, h)
}

func TestResizeRawSingleWindow(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())
	if err := h.ResizeRaw(h.Windows()[0], 1); !errors.Is(err, host.ErrCannotResize) {
		t.Errorf("expected ErrCannotResize, got %v", err)
	}
}

func TestResizeFrame(t *testing.T) {
	opts := DefaultOptions()
	opts.EchoArea = true
	h, _ := newTestHost(t, 80, 41, opts)
	a := h.Windows()[0]
	_, _ = h.SplitRaw(a, 20)
	mustTile(t, h)

	h.ResizeFrame(100, 61)
	mustTile(t, h)
	ra, _ := h.WindowRect(a)
	if ra.Height != 30 || ra.Width != 100 {
		t.Errorf("expected proportional rescale, got %v", ra)
	}
}

func TestWindowAt(t *testing.T) {
	h, _ := newTestHost(t, 80, 40, DefaultOptions())
	a := h.Windows()[0]
	b, _ := h.SplitRaw(a, 20)

	if h.WindowAt(5, 5) != a || h.WindowAt(5, 25) != b {
		t.Error("WindowAt returned the wrong window")
	}
	if h.WindowAt(100, 100) != host.NoWindow {
		t.Error("expected NoWindow outside the frame")
	}
}
