// Package termui is the terminal front end: it draws an in-memory host's
// windows on a tcell screen and feeds key events through the keymap and
// command dispatcher.
//
// All host and policy mutation happens on the goroutine running the
// event loop. Other goroutines, such as the config watcher, communicate
// by posting events to the screen.
package termui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quietwin/internal/command"
	"github.com/dshills/quietwin/internal/config"
	"github.com/dshills/quietwin/internal/host/memhost"
	"github.com/dshills/quietwin/internal/logging"
	"github.com/dshills/quietwin/internal/planner"
	"github.com/dshills/quietwin/internal/policy"
)

// Action names handled by the front end.
const (
	ActionQuit   = "app.quit"
	ActionRedraw = "app.redraw"
	ActionReload = "app.reloadConfig"
)

// reloadEvent asks the loop to re-read the config file.
type reloadEvent struct {
	when time.Time
}

func (e *reloadEvent) When() time.Time { return e.when }

// stopEvent is the interrupt payload posted when Run's context ends.
type stopEvent struct{}

// App owns the screen and the control goroutine.
type App struct {
	screen tcell.Screen
	host   *memhost.Host
	store  *policy.Store
	keymap *command.Keymap
	coord  *planner.Coordinator
	disp   *command.Dispatcher
	reader *command.Reader
	cfg    *config.Config
	log    *logging.Logger

	message string
	prompt  *prompt
	quit    bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithConfig enables config reloads.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

// New creates an App drawing h on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, h *memhost.Host, store *policy.Store, keymap *command.Keymap, opts ...Option) *App {
	a := &App{
		screen: screen,
		host:   h,
		store:  store,
		keymap: keymap,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.coord = planner.New(h, store, planner.WithLogger(a.log))
	a.disp = command.NewDispatcher(command.WithLogger(a.log))
	a.disp.Register(command.NewWindowHandler(a.coord))
	a.disp.Register(command.NewLayoutHandler(store))
	a.disp.Register(command.NewCursorHandler(h))
	a.disp.Register(a.appHandler())
	a.reader = command.NewReader(keymap)
	a.log = a.log.WithComponent("termui")

	for _, b := range []command.Binding{
		{Keys: "C-x C-c", Action: ActionQuit},
		{Keys: "C-l", Action: ActionRedraw},
		{Keys: "C-x r", Action: ActionReload},
		{Keys: "M-x", Action: ActionExecute},
	} {
		if keymap.Action(b.Keys) == "" {
			if err := keymap.Bind(b.Keys, b.Action); err != nil {
				a.log.Warn("cannot bind %s: %v", b.Keys, err)
			}
		}
	}
	return a
}

func (a *App) appHandler() command.Handler {
	h := command.NewFuncHandler("app")
	h.Register(ActionQuit, func(command.Action) command.Result {
		a.quit = true
		return command.NoOp()
	})
	h.Register(ActionRedraw, func(command.Action) command.Result {
		a.screen.Sync()
		return command.Success()
	})
	h.Register(ActionReload, func(command.Action) command.Result {
		return a.reloadConfig()
	})
	h.Register(ActionExecute, a.openPrompt)
	return h
}

// Coordinator returns the layout coordinator.
func (a *App) Coordinator() *planner.Coordinator {
	return a.coord
}

// Dispatcher returns the command dispatcher.
func (a *App) Dispatcher() *command.Dispatcher {
	return a.disp
}

// Message returns the echo area text.
func (a *App) Message() string {
	return a.message
}

// SetMessage sets the echo area text.
func (a *App) SetMessage(msg string) {
	a.message = msg
}

// RequestReload asks the event loop to reload the config. It is safe to
// call from any goroutine.
func (a *App) RequestReload() {
	if err := a.screen.PostEvent(&reloadEvent{when: time.Now()}); err != nil {
		a.log.Warn("reload request dropped: %v", err)
	}
}

// Run draws the frame and processes events until the user quits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(stopEvent{}))
		case <-done:
		}
	}()

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			return ctx.Err()
		}
	}
}

// HandleEvent processes one event and redraws. It returns false when
// the loop should stop.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(e)
		if a.quit {
			return false
		}
	case *tcell.EventResize:
		w, h := e.Size()
		a.host.ResizeFrame(w, h)
		a.screen.Sync()
	case *reloadEvent:
		res := a.reloadConfig()
		a.message = res.Message
	case *tcell.EventInterrupt:
		if _, ok := e.Data().(stopEvent); ok {
			return false
		}
	default:
		return true
	}
	a.Draw()
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) {
	chord := ChordOf(ev)
	if chord == "" {
		return
	}
	a.message = ""
	if a.prompt != nil {
		a.promptKey(chord)
		return
	}

	action, status := a.reader.Feed(chord)
	switch status {
	case command.ReadAction:
		a.dispatch(action)
	case command.ReadUnbound:
		a.message = action.Keys + " is undefined"
	case command.ReadCancelled:
		a.message = "Quit"
	}
}

func (a *App) dispatch(action command.Action) {
	res := a.disp.Dispatch(action)
	a.message = res.Message
	if res.IsError() {
		_ = a.screen.Beep()
	}
}

// reloadConfig re-reads the config file and applies it.
func (a *App) reloadConfig() command.Result {
	if a.cfg == nil {
		return command.NoOpWithMessage("No configuration file")
	}
	if err := a.cfg.Reload(context.Background()); err != nil {
		a.log.Warn("config reload failed: %v", err)
		return command.Error(err)
	}
	s, err := a.cfg.Settings()
	if err != nil {
		a.log.Warn("config invalid: %v", err)
		return command.Error(err)
	}
	if errs := a.ApplySettings(s); len(errs) > 0 {
		return command.Error(errors.Join(errs...))
	}
	a.log.Info("configuration reloaded")
	return command.SuccessWithMessage("Configuration reloaded")
}

// ApplySettings pushes layout, keymap and logging settings into the
// running app. Keymap entries that fail are skipped and reported.
func (a *App) ApplySettings(s config.Settings) []error {
	a.store.Apply(s.Layout.Snapshot())
	a.log.SetLevel(s.Logging.Level)
	return ApplyKeymap(a.keymap, s.Keymap, a.disp)
}

// ApplyKeymap binds overrides into k. An empty action unbinds the keys.
// Unknown actions are rejected when d is non-nil.
func ApplyKeymap(k *command.Keymap, overrides map[string]string, d *command.Dispatcher) []error {
	keys := make([]string, 0, len(overrides))
	for seq := range overrides {
		keys = append(keys, seq)
	}
	sort.Strings(keys)

	var errs []error
	for _, seq := range keys {
		action := overrides[seq]
		if action != "" && d != nil && !d.CanHandle(action) {
			errs = append(errs, fmt.Errorf("keymap %s: %w: %s", seq, command.ErrUnknownAction, action))
			continue
		}
		if err := k.Bind(seq, action); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
