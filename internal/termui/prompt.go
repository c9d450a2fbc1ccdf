package termui

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/quietwin/internal/command"
)

// ActionExecute opens the M-x prompt for running an action by name.
const ActionExecute = "app.execute"

const promptLabel = "M-x "

// maxShownMatches caps the completions drawn after the prompt input.
const maxShownMatches = 3

// prompt is the state of an open M-x prompt. The count of the action
// that opened it is forwarded to the chosen action.
type prompt struct {
	input    string
	count    int
	hasCount bool
}

func (a *App) openPrompt(act command.Action) command.Result {
	a.prompt = &prompt{count: act.Count, hasCount: act.HasCount}
	return command.Success()
}

// candidates returns the actions matching the prompt input.
func (a *App) candidates() []string {
	names := a.disp.Actions()
	out := names[:0]
	for _, n := range names {
		if n != ActionExecute {
			out = append(out, n)
		}
	}
	return command.Complete(a.prompt.input, out)
}

// promptKey edits the prompt. RET runs the exact match or the best
// completion; TAB completes; C-g closes the prompt.
func (a *App) promptKey(chord string) {
	p := a.prompt
	switch chord {
	case command.ChordCancel:
		a.prompt = nil
		a.message = "Quit"
	case "TAB":
		if m := a.candidates(); len(m) > 0 {
			p.input = m[0]
		}
	case "DEL":
		if p.input != "" {
			_, size := utf8.DecodeLastRuneInString(p.input)
			p.input = p.input[:len(p.input)-size]
		}
	case "RET":
		name := a.choose()
		if name == "" {
			a.message = "[No match]"
			return
		}
		a.prompt = nil
		a.dispatch(command.Action{Name: name, Count: p.count, HasCount: p.hasCount, Keys: "M-x"})
	default:
		if utf8.RuneCountInString(chord) == 1 {
			p.input += chord
		}
	}
}

func (a *App) choose() string {
	m := a.candidates()
	for _, name := range m {
		if name == a.prompt.input {
			return name
		}
	}
	if len(m) == 0 {
		return ""
	}
	return m[0]
}

// promptLine renders the prompt and its first completions.
func (a *App) promptLine() string {
	var b strings.Builder
	b.WriteString(promptLabel)
	b.WriteString(a.prompt.input)
	if a.message != "" {
		b.WriteString("  ")
		b.WriteString(a.message)
		return b.String()
	}
	m := a.candidates()
	if len(m) == 0 {
		return b.String()
	}
	if len(m) > maxShownMatches {
		m = append(m[:maxShownMatches:maxShownMatches], "...")
	}
	b.WriteString("  {")
	b.WriteString(strings.Join(m, " | "))
	b.WriteString("}")
	return b.String()
}
