package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quietwin/internal/host"
	"github.com/dshills/quietwin/internal/logging"
)

// ErrUnknownAction is returned for actions no handler accepts.
var ErrUnknownAction = errors.New("unknown action")

// Dispatcher routes actions to namespace handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *logging.Logger
	newID    func() uuid.UUID
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *logging.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithIDGenerator replaces uuid.New for invocation IDs.
func WithIDGenerator(fn func() uuid.UUID) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// NewDispatcher creates a dispatcher with no handlers.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
		log:      logging.Nop(),
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.WithComponent("dispatcher")
	return d
}

// Register installs h for its namespace, replacing any previous handler.
func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[h.Namespace()] = h
}

// CanHandle reports whether some handler accepts actionName.
func (d *Dispatcher) CanHandle(actionName string) bool {
	h := d.handlerFor(Action{Name: actionName})
	return h != nil && h.CanHandle(actionName)
}

// Actions returns the sorted names of every action a registered handler
// can list.
func (d *Dispatcher) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var names []string
	for _, h := range d.handlers {
		if l, ok := h.(ActionLister); ok {
			names = append(names, l.Actions()...)
		}
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) handlerFor(a Action) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handlers[a.Namespace()]
}

// Dispatch runs action and returns its result. The action gets a fresh
// invocation ID unless it already carries one.
func (d *Dispatcher) Dispatch(action Action) Result {
	if action.ID == uuid.Nil {
		action.ID = d.newID()
	}
	log := d.log.WithFields(map[string]any{
		"action": action.Name,
		"id":     action.ID.String(),
	})
	if action.HasCount {
		log = log.WithField("count", action.Count)
	}

	h := d.handlerFor(action)
	if h == nil || !h.CanHandle(action.Name) {
		log.Warn("no handler")
		r := Error(fmt.Errorf("%w: %s", ErrUnknownAction, action.Name))
		r.InvocationID = action.ID
		return r
	}

	log.Debug("dispatch")
	r := h.HandleAction(action)
	r.InvocationID = action.ID

	switch {
	case r.Error == nil:
		log.WithField("status", r.Status).Debug("done")
	case host.IsUserError(r.Error):
		log.Info("refused: %v", r.Error)
	default:
		log.Error("failed: %v", r.Error)
	}
	return r
}
