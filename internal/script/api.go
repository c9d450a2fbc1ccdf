package script

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quietwin/internal/command"
	"github.com/dshills/quietwin/internal/policy"
)

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}

// install registers the quietwin table.
func (r *Runner) install() {
	mod := r.L.NewTable()
	r.L.SetFuncs(mod, map[string]lua.LGFunction{
		"set_policy":            r.setPolicy,
		"policy":                r.getPolicy,
		"set_close_keeps_focus": r.setCloseKeepsFocus,
		"close_keeps_focus":     r.getCloseKeepsFocus,
		"bind":                  r.bind,
		"unbind":                r.unbind,
		"run":                   r.runAction,
		"log":                   r.logMessage,
	})
	r.L.SetGlobal("quietwin", mod)
}

func (r *Runner) store(L *lua.LState) *policy.Store {
	if r.env.Store == nil {
		L.RaiseError("no policy store")
	}
	return r.env.Store
}

func (r *Runner) setPolicy(L *lua.LState) int {
	name := L.CheckString(1)
	p, err := policy.ParsePolicy(name)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	r.store(L).SetPolicy(p)
	return 0
}

func (r *Runner) getPolicy(L *lua.LState) int {
	L.Push(lua.LString(r.store(L).Policy().String()))
	return 1
}

func (r *Runner) setCloseKeepsFocus(L *lua.LState) int {
	r.store(L).SetCloseKeepsFocus(L.CheckBool(1))
	return 0
}

func (r *Runner) getCloseKeepsFocus(L *lua.LState) int {
	L.Push(lua.LBool(r.store(L).CloseKeepsFocus()))
	return 1
}

func (r *Runner) bind(L *lua.LState) int {
	keys := L.CheckString(1)
	action := L.CheckString(2)
	if r.env.Keymap == nil {
		L.RaiseError("no keymap")
		return 0
	}
	if r.env.Dispatcher != nil && !r.env.Dispatcher.CanHandle(action) {
		L.ArgError(2, "unknown action "+action)
		return 0
	}
	if err := r.env.Keymap.Bind(keys, action); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runner) unbind(L *lua.LState) int {
	keys := L.CheckString(1)
	if r.env.Keymap == nil {
		L.RaiseError("no keymap")
		return 0
	}
	L.Push(lua.LBool(r.env.Keymap.Unbind(keys)))
	return 1
}

// runAction dispatches an action. It returns true and the result message,
// or false and the error message.
func (r *Runner) runAction(L *lua.LState) int {
	name := L.CheckString(1)
	if r.env.Dispatcher == nil {
		L.RaiseError("no dispatcher")
		return 0
	}
	a := command.Action{Name: name}
	if L.GetTop() >= 2 {
		a.Count = L.CheckInt(2)
		a.HasCount = true
	}
	res := r.env.Dispatcher.Dispatch(a)
	L.Push(lua.LBool(!res.IsError()))
	L.Push(lua.LString(res.Message))
	return 2
}

func (r *Runner) logMessage(L *lua.LState) int {
	r.log.Info("%s", L.CheckString(1))
	return 0
}
