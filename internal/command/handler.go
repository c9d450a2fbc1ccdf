package command

import "sort"

// Handler handles all actions within a namespace. A namespace is the
// prefix before the first dot ("window" in "window.split").
type Handler interface {
	// Namespace returns the namespace prefix.
	Namespace() string

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// HandleAction executes the action.
	HandleAction(action Action) Result
}

// ActionLister is implemented by handlers that can enumerate their
// actions.
type ActionLister interface {
	Actions() []string
}

// FuncHandler is a Handler built from a table of functions.
type FuncHandler struct {
	namespace string
	actions   map[string]func(Action) Result
}

// NewFuncHandler creates an empty FuncHandler for namespace.
func NewFuncHandler(namespace string) *FuncHandler {
	return &FuncHandler{
		namespace: namespace,
		actions:   make(map[string]func(Action) Result),
	}
}

// Register registers fn for an action name.
func (h *FuncHandler) Register(actionName string, fn func(Action) Result) {
	h.actions[actionName] = fn
}

// Namespace implements Handler.
func (h *FuncHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements Handler.
func (h *FuncHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// HandleAction implements Handler.
func (h *FuncHandler) HandleAction(action Action) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return NoOpWithMessage(action.Name + " is not defined")
	}
	return fn(action)
}

// Actions implements ActionLister.
func (h *FuncHandler) Actions() []string {
	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
