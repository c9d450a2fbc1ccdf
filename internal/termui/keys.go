package termui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quietwin/internal/command"
)

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "RET",
	tcell.KeyTab:        "TAB",
	tcell.KeyBackspace:  "DEL",
	tcell.KeyBackspace2: "DEL",
	tcell.KeyEscape:     "ESC",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// ChordOf converts a key event to a canonical chord ("C-x", "M-v",
// "PgDn"). It returns "" for keys with no name.
func ChordOf(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	ctrl := mods&tcell.ModCtrl != 0
	meta := mods&(tcell.ModAlt|tcell.ModMeta) != 0
	shift := mods&tcell.ModShift != 0

	k := ev.Key()
	if name, ok := keyNames[k]; ok {
		return command.Chord(name, ctrl, meta, shift)
	}
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return command.Chord("SPC", ctrl, meta, false)
		}
		if ctrl {
			r = unicode.ToLower(r)
		}
		return command.Chord(string(r), ctrl, meta, false)
	case k == tcell.KeyCtrlSpace:
		return command.Chord("SPC", true, meta, false)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return command.Chord(string(rune('a'+int(k-tcell.KeyCtrlA))), true, meta, false)
	}
	return ""
}
