// Package command maps key sequences to layout actions and runs them.
//
// A Keymap binds Emacs-style key sequences ("C-x 2") to action names.
// A Reader consumes key chords one at a time, collects an optional
// numeric prefix ("C-u 5") and resolves the sequence against the keymap.
// The Dispatcher routes each Action to the Handler owning its namespace
// ("window", "layout", "cursor") and stamps every invocation with a
// unique ID for the log.
//
// Action names:
//
//	window.split          split the selected window (count: top height)
//	window.splitRight     side-by-side split
//	window.close          close the selected window
//	window.maximize       delete every other window
//	window.enlarge        grow by count rows (default 1)
//	window.shrink         shrink by count rows (default 1)
//	window.scrollDown     scroll toward the buffer end (default: a page)
//	window.scrollUp       scroll toward the buffer start
//	window.next           select the count-th next window
//	window.prev           select the count-th previous window
//	window.whereIs        report the cursor cell
//	layout.cyclePolicy    advance the layout policy
//	layout.toggleCloseFocus
package command
