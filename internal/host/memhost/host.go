package memhost

import (
	"fmt"

	"github.com/dshills/quietwin/internal/host"
)

// window is a leaf viewport onto a buffer.
type window struct {
	id       host.WindowID
	buf      *Buffer
	anchor   int
	cursor   int
	node     *node
	reserved bool
	rect     host.Rect // reserved window only; tree windows use node.rect
}

func (w *window) bounds() host.Rect {
	if w.node != nil {
		return w.node.rect
	}
	return w.rect
}

type layoutKey struct {
	buf   host.BufferID
	line  int
	width int
	wrap  bool
}

// Options configures a Host.
type Options struct {
	// ModeLine reserves the last row of every ordinary window.
	ModeLine bool
	// Wrap soft-wraps long lines; otherwise they are truncated.
	Wrap bool
	// TabWidth is the tab stop interval.
	TabWidth int
	// EchoArea adds a reserved one-line window at the bottom of the frame.
	EchoArea bool
	// MinWidth is the narrowest a side-by-side window may become.
	MinWidth int
}

// DefaultOptions returns the default host options.
func DefaultOptions() Options {
	return Options{
		ModeLine: false,
		Wrap:     true,
		TabWidth: 8,
		EchoArea: false,
		MinWidth: 4,
	}
}

// Host is an in-memory host.DisplayHost.
type Host struct {
	opts     Options
	engine   *layoutEngine
	frame    host.Rect
	root     *node
	echo     *window
	windows  map[host.WindowID]*window
	selected host.WindowID
	nextID   host.WindowID
	layouts  map[layoutKey]*lineLayout
}

var (
	_ host.DisplayHost     = (*Host)(nil)
	_ host.PositionLocator = (*Host)(nil)
)

// New creates a host whose frame is width x height cells, with a single
// window showing buf.
func New(width, height int, buf *Buffer, opts Options) *Host {
	if opts.MinWidth < 1 {
		opts.MinWidth = 1
	}
	h := &Host{
		opts:    opts,
		engine:  newLayoutEngine(opts.TabWidth),
		frame:   host.Rect{Width: width, Height: height},
		windows: make(map[host.WindowID]*window),
		layouts: make(map[layoutKey]*lineLayout),
	}

	w := h.newWindow(buf)
	h.root = &node{win: w}
	w.node = h.root
	h.selected = w.id

	if opts.EchoArea {
		h.echo = h.newWindow(NewBuffer(-1, "*echo*", ""))
		h.echo.reserved = true
	}
	h.relayout()
	return h
}

func (h *Host) newWindow(buf *Buffer) *window {
	h.nextID++
	w := &window{id: h.nextID, buf: buf}
	h.windows[w.id] = w
	return w
}

// mainRect is the frame minus the echo area.
func (h *Host) mainRect() host.Rect {
	r := h.frame
	if h.echo != nil {
		r.Height--
	}
	return r
}

// relayout recomputes rectangles and re-snaps anchors, since a width
// change moves display line boundaries.
func (h *Host) relayout() {
	h.root.layout(h.mainRect())
	if h.echo != nil {
		h.echo.rect = host.Rect{
			Left:   h.frame.Left,
			Top:    h.frame.Bottom() - 1,
			Width:  h.frame.Width,
			Height: 1,
		}
	}
	for _, w := range h.windows {
		w.anchor = h.lineStartOf(w, w.anchor)
	}
}

func (h *Host) lookup(id host.WindowID) (*window, error) {
	w, ok := h.windows[id]
	if !ok {
		return nil, host.ErrInvalidWindow
	}
	return w, nil
}

func (h *Host) mustLookup(id host.WindowID) *window {
	w, err := h.lookup(id)
	if err != nil {
		panic(fmt.Sprintf("memhost: window %d: %v", id, err))
	}
	return w
}

// Windows returns live windows in display order, echo area last.
func (h *Host) Windows() []host.WindowID {
	leaves := h.root.leaves(nil)
	ids := make([]host.WindowID, 0, len(leaves)+1)
	for _, w := range leaves {
		ids = append(ids, w.id)
	}
	if h.echo != nil {
		ids = append(ids, h.echo.id)
	}
	return ids
}

// FrameRect returns the frame rectangle.
func (h *Host) FrameRect() host.Rect {
	return h.frame
}

// Live reports whether id names a live window.
func (h *Host) Live(id host.WindowID) bool {
	_, ok := h.windows[id]
	return ok
}

// Reserved reports whether id is the echo area.
func (h *Host) Reserved(id host.WindowID) bool {
	w, ok := h.windows[id]
	return ok && w.reserved
}

// Selected returns the selected window.
func (h *Host) Selected() host.WindowID {
	return h.selected
}

// SelectWindow selects id.
func (h *Host) SelectWindow(id host.WindowID) error {
	if _, err := h.lookup(id); err != nil {
		return err
	}
	h.selected = id
	return nil
}

// WindowRect returns the rectangle of id.
func (h *Host) WindowRect(id host.WindowID) (host.Rect, error) {
	w, err := h.lookup(id)
	if err != nil {
		return host.Rect{}, err
	}
	return w.bounds(), nil
}

// TextHeight returns the number of text rows of id.
func (h *Host) TextHeight(id host.WindowID) int {
	w, ok := h.windows[id]
	if !ok {
		return 0
	}
	n := w.bounds().Height
	if h.opts.ModeLine && !w.reserved {
		n--
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Wraps reports whether long lines wrap.
func (h *Host) Wraps(id host.WindowID) bool {
	return h.opts.Wrap
}

// BufferOf returns the buffer shown in id.
func (h *Host) BufferOf(id host.WindowID) host.BufferID {
	w, ok := h.windows[id]
	if !ok {
		return 0
	}
	return w.buf.id
}

// Buffer returns the buffer shown in id, or nil.
func (h *Host) Buffer(id host.WindowID) *Buffer {
	w, ok := h.windows[id]
	if !ok {
		return nil
	}
	return w.buf
}

// ShowBuffer displays buf in id from its start.
func (h *Host) ShowBuffer(id host.WindowID, buf *Buffer) error {
	w, err := h.lookup(id)
	if err != nil {
		return err
	}
	if w.reserved {
		return host.ErrUnsplittableWindow
	}
	w.buf = buf
	w.anchor = 0
	w.cursor = 0
	return nil
}

// MinWindowHeight returns the minimum ordinary window height.
func (h *Host) MinWindowHeight() int {
	if h.opts.ModeLine {
		return 2
	}
	return 1
}

// Options returns the host options.
func (h *Host) Options() Options {
	return h.opts
}

// ResizeFrame rescales every window to a new frame size.
func (h *Host) ResizeFrame(width, height int) {
	h.frame.Width = width
	h.frame.Height = height
	h.root.fit(h.mainRect())
	h.relayout()
}

// lineLayout returns the cached layout of buffer line line in w.
func (h *Host) lineLayout(w *window, line int) *lineLayout {
	width := w.bounds().Width
	key := layoutKey{buf: w.buf.id, line: line, width: width, wrap: h.opts.Wrap}
	if l, ok := h.layouts[key]; ok {
		return l
	}
	l := h.engine.layout(w.buf.LineText(line), w.buf.LineStart(line), width, h.opts.Wrap)
	if w.buf.id >= 0 {
		h.layouts[key] = l
	}
	return l
}

// position returns the buffer line and display line index of offset.
func (h *Host) position(w *window, offset int) (line, seg int) {
	offset = w.buf.Clamp(offset)
	line = w.buf.LineAt(offset)
	return line, h.lineLayout(w, line).segmentOf(offset)
}

func (h *Host) lineStartOf(w *window, offset int) int {
	line, seg := h.position(w, offset)
	return h.lineLayout(w, line).segments[seg]
}

// StepDisplayLines moves count display lines from the line holding from.
func (h *Host) StepDisplayLines(id host.WindowID, from, count int) (offset, moved int) {
	w := h.mustLookup(id)
	line, seg := h.position(w, from)
	for moved < count {
		if seg+1 < len(h.lineLayout(w, line).segments) {
			seg++
		} else if line+1 < w.buf.LineCount() {
			line++
			seg = 0
		} else {
			break
		}
		moved++
	}
	for moved > count {
		if seg > 0 {
			seg--
		} else if line > 0 {
			line--
			seg = len(h.lineLayout(w, line).segments) - 1
		} else {
			break
		}
		moved--
	}
	return h.lineLayout(w, line).segments[seg], moved
}

// IsVisible reports whether offset is rendered in id.
func (h *Host) IsVisible(id host.WindowID, offset int) bool {
	w, ok := h.windows[id]
	if !ok || offset < w.anchor || offset > w.buf.Len() {
		return false
	}
	rows := h.TextHeight(id)
	if rows <= 0 {
		return false
	}
	end, moved := h.StepDisplayLines(id, w.anchor, rows)
	if moved < rows {
		return true
	}
	return offset < end
}

// Column returns the display column of offset within its buffer line.
func (h *Host) Column(id host.WindowID, offset int) int {
	w := h.mustLookup(id)
	offset = w.buf.Clamp(offset)
	return h.lineLayout(w, w.buf.LineAt(offset)).column(offset)
}

// OffsetAtColumn returns the offset at column on the display line
// starting at lineStart. column counts from the display line's first cell.
func (h *Host) OffsetAtColumn(id host.WindowID, lineStart, column int) int {
	w := h.mustLookup(id)
	line, seg := h.position(w, lineStart)
	return h.lineLayout(w, line).offsetAtColumn(seg, column)
}

// PositionOf maps offset to a cell of id by walking from the anchor.
// The column is unclipped: past the width on a truncated line, equal to
// the width at the end of a full wrapped segment.
func (h *Host) PositionOf(id host.WindowID, offset int) (host.Coordinate, bool) {
	if !h.IsVisible(id, offset) {
		return host.Coordinate{}, false
	}
	w := h.windows[id]
	target := h.lineStartOf(w, offset)
	row := 0
	pos := w.anchor
	for pos != target {
		next, moved := h.StepDisplayLines(id, pos, 1)
		if moved == 0 {
			break
		}
		pos = next
		row++
	}
	col := h.Column(id, offset) - h.Column(id, target)
	return host.Coordinate{Row: row, Col: col}, true
}

// Anchor returns the first displayed offset of id.
func (h *Host) Anchor(id host.WindowID) int {
	return h.mustLookup(id).anchor
}

// SetAnchor sets the anchor of id, snapped to its display line start.
func (h *Host) SetAnchor(id host.WindowID, offset int) error {
	w, err := h.lookup(id)
	if err != nil {
		return err
	}
	w.anchor = h.lineStartOf(w, offset)
	return nil
}

// Cursor returns the cursor offset of id.
func (h *Host) Cursor(id host.WindowID) int {
	return h.mustLookup(id).cursor
}

// SetCursor sets the cursor of id, clamped to the buffer.
func (h *Host) SetCursor(id host.WindowID, offset int) error {
	w, err := h.lookup(id)
	if err != nil {
		return err
	}
	w.cursor = w.buf.Clamp(offset)
	return nil
}

// SplitRaw splits id; id keeps topHeight rows and the new window below
// copies its buffer, anchor and cursor.
func (h *Host) SplitRaw(id host.WindowID, topHeight int) (host.WindowID, error) {
	w, err := h.lookup(id)
	if err != nil {
		return host.NoWindow, err
	}
	if w.reserved {
		return host.NoWindow, host.ErrUnsplittableWindow
	}
	height := w.node.rect.Height
	if topHeight < h.MinWindowHeight() || height-topHeight < h.MinWindowHeight() {
		return host.NoWindow, host.ErrWindowTooSmall
	}
	nw := h.split(w, true, topHeight, height-topHeight)
	return nw.id, nil
}

// SplitSideRaw splits id side by side; id keeps leftWidth columns.
func (h *Host) SplitSideRaw(id host.WindowID, leftWidth int) (host.WindowID, error) {
	w, err := h.lookup(id)
	if err != nil {
		return host.NoWindow, err
	}
	if w.reserved {
		return host.NoWindow, host.ErrUnsplittableWindow
	}
	width := w.node.rect.Width
	if leftWidth < h.opts.MinWidth || width-leftWidth < h.opts.MinWidth {
		return host.NoWindow, host.ErrWindowTooSmall
	}
	nw := h.split(w, false, leftWidth, width-leftWidth)
	return nw.id, nil
}

func (h *Host) split(w *window, vertical bool, first, second int) *window {
	nw := h.newWindow(w.buf)
	nw.anchor = w.anchor
	nw.cursor = w.cursor
	nn := &node{win: nw, size: second}
	nw.node = nn

	leaf := w.node
	if p := leaf.parent; p != nil && p.vertical == vertical {
		i := leaf.index()
		p.children = append(p.children[:i+1], append([]*node{nn}, p.children[i+1:]...)...)
		nn.parent = p
		leaf.size = first
	} else {
		combo := &node{vertical: vertical, size: leaf.size, rect: leaf.rect}
		leaf.replace(combo)
		if leaf == h.root {
			h.root = combo
		}
		leaf.parent = combo
		nn.parent = combo
		leaf.size = first
		combo.children = []*node{leaf, nn}
	}
	h.relayout()
	return nw
}

// CloseRaw deletes id, giving its space to a sibling.
func (h *Host) CloseRaw(id host.WindowID) error {
	w, err := h.lookup(id)
	if err != nil {
		return err
	}
	if w.reserved {
		return host.ErrUnsplittableWindow
	}
	leaf := w.node
	p := leaf.parent
	if p == nil {
		return host.ErrLastWindow
	}

	i := leaf.index()
	var recipient *node
	atStart := false
	if i > 0 {
		recipient = p.children[i-1]
	} else {
		recipient = p.children[i+1]
		atStart = true
	}
	recipient.size += leaf.size
	recipient.grow(p.vertical, atStart, leaf.size)
	p.children = append(p.children[:i], p.children[i+1:]...)

	if len(p.children) == 1 {
		only := p.children[0]
		only.size = p.size
		if p == h.root {
			h.root = only
			only.parent = nil
		} else if gp := p.parent; !only.isLeaf() && only.vertical == gp.vertical {
			only.parent = gp
			gp.children[p.index()] = only
			only.splice()
		} else {
			p.replace(only)
		}
	}

	delete(h.windows, id)
	if h.selected == id {
		if atStart {
			h.selected = recipient.firstLeaf().id
		} else {
			h.selected = recipient.lastLeaf().id
		}
	}
	h.relayout()
	return nil
}

// ResizeRaw grows id by delta rows, trading with a vertical neighbor.
func (h *Host) ResizeRaw(id host.WindowID, delta int) error {
	w, err := h.lookup(id)
	if err != nil {
		return err
	}
	if w.reserved {
		return host.ErrUnsplittableWindow
	}
	if delta == 0 {
		return nil
	}

	branch := w.node
	for branch.parent != nil && !(branch.parent.vertical && len(branch.parent.children) > 1) {
		branch = branch.parent
	}
	p := branch.parent
	if p == nil {
		return host.ErrCannotResize
	}

	i := branch.index()
	neighbor, atEnd := (*node)(nil), true
	if i+1 < len(p.children) {
		neighbor = p.children[i+1]
	} else {
		neighbor = p.children[i-1]
		atEnd = false
	}

	minH, minW := h.MinWindowHeight(), h.opts.MinWidth
	giver, taker, k := neighbor, branch, delta
	if delta < 0 {
		giver, taker, k = branch, neighbor, -delta
	}
	if giver.size-k < giver.minExtent(true, minH, minW) {
		return host.ErrWindowTooSmall
	}

	// The branch's shared edge is its bottom when the neighbor is below.
	takerAtStart := (taker == branch) != atEnd
	taker.size += k
	taker.grow(true, takerAtStart, k)
	giver.size -= k
	giver.shrink(true, !takerAtStart, k, minH, minW)
	h.relayout()
	return nil
}

// WindowAt returns the window covering the cell (x, y).
func (h *Host) WindowAt(x, y int) host.WindowID {
	for _, id := range h.Windows() {
		r := h.windows[id].bounds()
		if x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom() {
			return id
		}
	}
	return host.NoWindow
}

// Rects returns every live window's rectangle keyed by id.
func (h *Host) Rects() map[host.WindowID]host.Rect {
	out := make(map[host.WindowID]host.Rect, len(h.windows))
	for id, w := range h.windows {
		out[id] = w.bounds()
	}
	return out
}
