package command

import (
	"fmt"
	"slices"

	"github.com/dshills/quietwin/internal/host"
	"github.com/dshills/quietwin/internal/planner"
)

// WindowHandler runs window.* actions against the selected window.
type WindowHandler struct {
	coord *planner.Coordinator
}

// NewWindowHandler creates a window handler driving coord.
func NewWindowHandler(coord *planner.Coordinator) *WindowHandler {
	return &WindowHandler{coord: coord}
}

// Namespace returns the window namespace.
func (h *WindowHandler) Namespace() string {
	return "window"
}

var windowActions = []string{
	ActionSplit, ActionSplitRight, ActionClose, ActionMaximize,
	ActionEnlarge, ActionShrink, ActionScrollDown, ActionScrollUp,
	ActionNext, ActionPrev, ActionWhereIs,
}

// CanHandle returns true if this handler can process the action.
func (h *WindowHandler) CanHandle(actionName string) bool {
	return slices.Contains(windowActions, actionName)
}

// Actions implements ActionLister.
func (h *WindowHandler) Actions() []string {
	return slices.Clone(windowActions)
}

// HandleAction processes a window action.
func (h *WindowHandler) HandleAction(action Action) Result {
	w := h.coord.Host().Selected()

	switch action.Name {
	case ActionSplit:
		hint := planner.Even()
		if action.HasCount {
			hint = planner.Lines(action.Count)
		}
		_, _, err := h.coord.Split(w, hint)
		return fromErr(err)

	case ActionSplitRight:
		_, _, err := h.coord.SplitSide(w)
		return fromErr(err)

	case ActionClose:
		_, err := h.coord.Close(w)
		return fromErr(err)

	case ActionMaximize:
		return fromErr(h.coord.Maximize(w))

	case ActionEnlarge:
		return fromErr(h.coord.Resize(w, action.CountOr(1)))

	case ActionShrink:
		return fromErr(h.coord.Resize(w, -action.CountOr(1)))

	case ActionScrollDown:
		return fromErr(h.coord.Scroll(w, action.CountOr(h.page(w))))

	case ActionScrollUp:
		return fromErr(h.coord.Scroll(w, -action.CountOr(h.page(w))))

	case ActionNext:
		_, err := h.coord.Other(action.CountOr(1))
		return fromErr(err)

	case ActionPrev:
		_, err := h.coord.Other(-action.CountOr(1))
		return fromErr(err)

	case ActionWhereIs:
		pos, ok, err := h.coord.WhereIs(w)
		if err != nil {
			return Error(err)
		}
		if !ok {
			return NoOpWithMessage("Cursor is not visible")
		}
		return Result{Status: StatusOK, Message: fmt.Sprintf("Cursor at row %d, column %d", pos.Row, pos.Col)}
	}

	return NoOpWithMessage("window: unknown action " + action.Name)
}

// page is the default scroll distance: a window of text less two lines
// of overlap.
func (h *WindowHandler) page(w host.WindowID) int {
	return max(1, h.coord.Host().TextHeight(w)-2)
}
