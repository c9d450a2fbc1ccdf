package termui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/quietwin/internal/host"
)

var (
	styleText     = tcell.StyleDefault
	styleModeLine = tcell.StyleDefault.Reverse(true)
	styleModeDim  = tcell.StyleDefault.Reverse(true).Dim(true)
)

// Draw repaints the whole frame and places the terminal cursor.
func (a *App) Draw() {
	a.screen.Clear()
	for _, w := range a.host.Windows() {
		if a.host.Reserved(w) {
			a.drawEcho(w)
			continue
		}
		a.drawWindow(w)
	}
	a.placeCursor()
	a.screen.Show()
}

func (a *App) drawWindow(w host.WindowID) {
	r, err := a.host.WindowRect(w)
	if err != nil {
		return
	}
	buf := a.host.Buffer(w)
	text := buf.Text()

	off := a.host.Anchor(w)
	rows := a.host.TextHeight(w)
	for row := 0; row < rows; row++ {
		next, moved := a.host.StepDisplayLines(w, off, 1)
		end := next
		if moved == 0 {
			end = len(text)
		}
		a.drawSegment(w, r, row, text, off, end)
		if moved == 0 {
			break
		}
		off = next
	}

	if rows < r.Height {
		a.drawModeLine(w, r)
	}
}

// drawSegment draws text[start:end], one display line, at row of r.
func (a *App) drawSegment(w host.WindowID, r host.Rect, row int, text string, start, end int) {
	y := r.Top + row
	base := a.host.Column(w, start)
	state := -1
	for i := start; i < end; {
		cluster, _, width, st := uniseg.FirstGraphemeClusterInString(text[i:end], state)
		state = st
		if cluster == "\n" || cluster == "\r\n" {
			return
		}
		col := a.host.Column(w, i) - base
		if cluster == "\t" {
			stop := a.host.Column(w, i+1) - base
			for c := col; c < stop && c < r.Width; c++ {
				a.screen.SetContent(r.Left+c, y, ' ', nil, styleText)
			}
		} else if col+width <= r.Width {
			runes := []rune(cluster)
			a.screen.SetContent(r.Left+col, y, runes[0], runes[1:], styleText)
		}
		i += len(cluster)
	}
}

// drawModeLine draws the status row: selection marker, buffer name,
// layout policy and cursor cell.
func (a *App) drawModeLine(w host.WindowID, r host.Rect) {
	style := styleModeDim
	marker := "-"
	if a.host.Selected() == w {
		style = styleModeLine
		marker = "*"
	}

	where := "--"
	if pos, ok, err := a.coord.WhereIs(w); err == nil && ok {
		where = fmt.Sprintf("(%d,%d)", pos.Row, pos.Col)
	}
	line := fmt.Sprintf("%s %s  [%s]  %s", marker, a.host.Buffer(w).Name(), a.store.Policy(), where)
	a.drawText(r.Left, r.Bottom()-1, r.Width, line, style)
}

func (a *App) drawEcho(w host.WindowID) {
	r, err := a.host.WindowRect(w)
	if err != nil {
		return
	}
	msg := a.message
	switch {
	case a.prompt != nil:
		msg = a.promptLine()
	case a.reader.Pending() != "":
		msg = a.reader.Pending() + "-"
	}
	a.drawText(r.Left, r.Top, r.Width, msg, styleText)
}

// drawText draws s from x, padding with spaces to width.
func (a *App) drawText(x, y, width int, s string, style tcell.Style) {
	col := 0
	state := -1
	for len(s) > 0 && col < width {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if col+w > width {
			break
		}
		runes := []rune(cluster)
		a.screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += max(w, 1)
	}
	for ; col < width; col++ {
		a.screen.SetContent(x+col, y, ' ', nil, style)
	}
}

func (a *App) placeCursor() {
	if a.prompt != nil {
		a.placePromptCursor()
		return
	}
	w := a.host.Selected()
	r, err := a.host.WindowRect(w)
	if err != nil {
		a.screen.HideCursor()
		return
	}
	pos, ok, err := a.coord.WhereIs(w)
	if err != nil || !ok {
		a.screen.HideCursor()
		return
	}
	a.screen.ShowCursor(r.Left+pos.Col, r.Top+pos.Row)
}

func (a *App) placePromptCursor() {
	for _, w := range a.host.Windows() {
		if !a.host.Reserved(w) {
			continue
		}
		r, err := a.host.WindowRect(w)
		if err != nil {
			break
		}
		col := uniseg.StringWidth(promptLabel + a.prompt.input)
		a.screen.ShowCursor(r.Left+min(col, r.Width-1), r.Top)
		return
	}
	a.screen.HideCursor()
}
