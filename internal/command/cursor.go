package command

import (
	"math"
	"slices"

	"github.com/dshills/quietwin/internal/host"
)

// CursorHandler moves the selected window's cursor by display lines.
// When the cursor leaves the window the view is recentered on it.
type CursorHandler struct {
	host host.DisplayHost
}

// NewCursorHandler creates a cursor handler for h.
func NewCursorHandler(h host.DisplayHost) *CursorHandler {
	return &CursorHandler{host: h}
}

// Namespace returns the cursor namespace.
func (h *CursorHandler) Namespace() string {
	return "cursor"
}

var cursorActions = []string{
	ActionNextLine, ActionPrevLine, ActionBeginningOfBuffer, ActionEndOfBuffer,
}

// CanHandle returns true if this handler can process the action.
func (h *CursorHandler) CanHandle(actionName string) bool {
	return slices.Contains(cursorActions, actionName)
}

// Actions implements ActionLister.
func (h *CursorHandler) Actions() []string {
	return slices.Clone(cursorActions)
}

// HandleAction processes a cursor action.
func (h *CursorHandler) HandleAction(action Action) Result {
	w := h.host.Selected()
	if !h.host.Live(w) || h.host.Reserved(w) {
		return NoOp()
	}

	var target int
	switch action.Name {
	case ActionNextLine, ActionPrevLine:
		n := action.CountOr(1)
		if action.Name == ActionPrevLine {
			n = -n
		}
		var err error
		if target, err = h.lineMove(w, n); err != nil {
			return Error(err)
		}
	case ActionBeginningOfBuffer:
		target = 0
	case ActionEndOfBuffer:
		last, _ := h.host.StepDisplayLines(w, h.host.Cursor(w), math.MaxInt)
		target = h.host.OffsetAtColumn(w, last, math.MaxInt)
	default:
		return NoOpWithMessage("cursor: unknown action " + action.Name)
	}

	if err := h.host.SetCursor(w, target); err != nil {
		return Error(host.NewOperationError("cursor", w, err))
	}
	if !h.host.IsVisible(w, target) {
		anchor, _ := h.host.StepDisplayLines(w, target, -(h.host.TextHeight(w) / 2))
		if err := h.host.SetAnchor(w, anchor); err != nil {
			return Error(host.NewOperationError("cursor", w, err))
		}
	}
	return Success()
}

// lineMove returns the offset n display lines from the cursor, keeping
// its column within the display line.
func (h *CursorHandler) lineMove(w host.WindowID, n int) (int, error) {
	cur := h.host.Cursor(w)
	start, _ := h.host.StepDisplayLines(w, cur, 0)
	goal := h.host.Column(w, cur) - h.host.Column(w, start)

	next, moved := h.host.StepDisplayLines(w, cur, n)
	if moved == 0 && n != 0 {
		if n > 0 {
			return 0, host.NewOperationError("cursor", w, host.ErrEndOfBuffer)
		}
		return 0, host.NewOperationError("cursor", w, host.ErrBeginningOfBuffer)
	}
	return h.host.OffsetAtColumn(w, next, goal), nil
}
