package host

// WindowID identifies a window within a host.
type WindowID int

// NoWindow is the zero WindowID. It is never live.
const NoWindow WindowID = 0

// BufferID identifies the buffer a window displays.
type BufferID int

// Coordinate is a cell position relative to a window's top-left text cell.
type Coordinate struct {
	Row int
	Col int
}

// Frame exposes the window set and its geometry.
type Frame interface {
	// Windows returns live windows in display order.
	Windows() []WindowID
	// FrameRect returns the rectangle tiled by all live windows.
	FrameRect() Rect
	// Live reports whether w is a live window.
	Live(w WindowID) bool
	// Reserved reports whether w is the reserved echo-area window.
	Reserved(w WindowID) bool
	// Selected returns the window holding focus.
	Selected() WindowID
	// SelectWindow moves focus to w.
	SelectWindow(w WindowID) error
	// WindowRect returns the rectangle of w.
	WindowRect(w WindowID) (Rect, error)
	// TextHeight returns the number of display lines w shows.
	TextHeight(w WindowID) int
	// Wraps reports whether long lines wrap in w (otherwise they truncate).
	Wraps(w WindowID) bool
	// BufferOf returns the buffer displayed in w.
	BufferOf(w WindowID) BufferID
	// MinWindowHeight returns the smallest height an ordinary window may have.
	MinWindowHeight() int
}

// Motion exposes the host's line engine.
type Motion interface {
	// StepDisplayLines moves from the display line containing from by
	// count display lines and returns the start of the line reached.
	// moved is the signed number of lines actually moved; its magnitude
	// is below |count| when a buffer boundary was reached.
	StepDisplayLines(w WindowID, from, count int) (offset, moved int)
	// IsVisible reports whether offset is currently rendered in w.
	IsVisible(w WindowID, offset int) bool
	// Column returns the display column of offset, measured from the
	// start of its buffer line.
	Column(w WindowID, offset int) int
	// OffsetAtColumn returns the offset on the display line starting at
	// lineStart whose column is closest to, but not past, column.
	OffsetAtColumn(w WindowID, lineStart, column int) int
}

// Points exposes per-window anchor and cursor state.
type Points interface {
	Anchor(w WindowID) int
	SetAnchor(w WindowID, offset int) error
	Cursor(w WindowID) int
	SetCursor(w WindowID, offset int) error
}

// Mutator exposes raw, position-unaware layout mutations.
type Mutator interface {
	// SplitRaw splits w vertically. w keeps the top topHeight rows and
	// the new window below shows the same buffer, anchor and cursor.
	SplitRaw(w WindowID, topHeight int) (WindowID, error)
	// CloseRaw deletes w. Its rows go to the previous sibling, or to the
	// next sibling when w is the first of its combination.
	CloseRaw(w WindowID) error
	// ResizeRaw grows w by delta rows (shrinks when negative), trading
	// rows with the next sibling, or the previous one if w is last.
	ResizeRaw(w WindowID, delta int) error
}

// DisplayHost is the full capability set consumed by the coordinator.
type DisplayHost interface {
	Frame
	Motion
	Points
	Mutator
}

// PositionLocator is implemented by hosts that can map an offset to a
// cell directly. The geometry service prefers it over bisection. The
// column counts from the start of the offset's display line and is not
// wrapped or clipped to the window width; the geometry service does that.
type PositionLocator interface {
	PositionOf(w WindowID, offset int) (Coordinate, bool)
}

// SideSplitter is implemented by hosts that can split a window side by
// side. The coordinator performs no position fixup on such splits.
type SideSplitter interface {
	// SplitSideRaw splits w; w keeps the left leftWidth columns.
	SplitSideRaw(w WindowID, leftWidth int) (WindowID, error)
}
