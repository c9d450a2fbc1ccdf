// Package script runs the Lua init script that customizes quietwin.
//
// The script sees one global table, quietwin:
//
//	quietwin.set_policy("reveal-if-hidden")
//	quietwin.set_close_keeps_focus(false)
//	quietwin.bind("C-x 9", "window.maximize")
//	quietwin.unbind("C-x 3")
//	quietwin.run("window.split", 12)
//	quietwin.log("init done")
//
// Only the base, table, string and math libraries are opened, and file
// loading functions are removed.
package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quietwin/internal/command"
	"github.com/dshills/quietwin/internal/logging"
	"github.com/dshills/quietwin/internal/policy"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned when running a closed Runner.
var ErrClosed = errors.New("script runner closed")

// Env is what a script may touch.
type Env struct {
	Store  *policy.Store
	Keymap *command.Keymap

	// Dispatcher validates bound action names and runs quietwin.run.
	// When nil, bind accepts any name and run is unavailable.
	Dispatcher *command.Dispatcher
}

// Runner executes scripts against an Env. Like the underlying Lua
// state it must be used from one goroutine.
type Runner struct {
	L       *lua.LState
	env     Env
	log     *logging.Logger
	timeout time.Duration
	closed  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used by quietwin.log and for diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTimeout sets the per-run timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// New creates a Runner with a fresh Lua state.
func New(env Env, opts ...Option) *Runner {
	r := &Runner{
		env:     env,
		log:     logging.Nop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("script")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	r.L = L
	r.install()
	return r
}

// openSafeLibraries opens only the pure Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Close releases the Lua state.
func (r *Runner) Close() {
	if !r.closed {
		r.closed = true
		r.L.Close()
	}
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error { return r.L.DoFile(path) })
}

// RunString runs code. name labels it in errors and logs.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	return r.run(ctx, name, func() error {
		fn, err := r.L.Load(stringReader(code), name)
		if err != nil {
			return err
		}
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
}

func (r *Runner) run(ctx context.Context, name string, fn func() error) (err error) {
	if r.closed {
		return ErrClosed
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic in %s: %v", name, p)
		}
	}()

	r.log.WithField("script", name).Debug("running")
	if err := fn(); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}
