package command

import "github.com/dshills/quietwin/internal/policy"

// NewLayoutHandler returns the layout.* handler for store.
func NewLayoutHandler(store *policy.Store) *FuncHandler {
	h := NewFuncHandler("layout")
	h.Register(ActionCyclePolicy, func(Action) Result {
		p := store.Cycle()
		return SuccessWithMessage("Layout policy: " + p.String())
	})
	h.Register(ActionToggleCloseFocus, func(Action) Result {
		if store.ToggleCloseKeepsFocus() {
			return SuccessWithMessage("Close keeps focus: on")
		}
		return SuccessWithMessage("Close keeps focus: off")
	})
	return h
}
