package command

import (
	"strings"

	"github.com/google/uuid"
)

// Action names for window operations.
const (
	ActionSplit      = "window.split"      // C-x 2
	ActionSplitRight = "window.splitRight" // C-x 3
	ActionClose      = "window.close"      // C-x 0
	ActionMaximize   = "window.maximize"   // C-x 1
	ActionEnlarge    = "window.enlarge"    // C-x ^
	ActionShrink     = "window.shrink"     // C-x -
	ActionScrollDown = "window.scrollDown" // C-v
	ActionScrollUp   = "window.scrollUp"   // M-v
	ActionNext       = "window.next"       // C-x o
	ActionPrev       = "window.prev"       // C-x p
	ActionWhereIs    = "window.whereIs"    // C-x =
)

// Action names for layout settings.
const (
	ActionCyclePolicy      = "layout.cyclePolicy"      // C-x w p
	ActionToggleCloseFocus = "layout.toggleCloseFocus" // C-x w f
)

// Action names for cursor motion.
const (
	ActionNextLine          = "cursor.nextLine"          // C-n
	ActionPrevLine          = "cursor.prevLine"          // C-p
	ActionBeginningOfBuffer = "cursor.beginningOfBuffer" // M-<
	ActionEndOfBuffer       = "cursor.endOfBuffer"       // M->
)

// Action is a resolved command invocation.
type Action struct {
	// Name is the action name (e.g., "window.split").
	Name string

	// Count is the numeric prefix. Meaningful only when HasCount is set.
	Count    int
	HasCount bool

	// Keys is the key sequence that produced the action, if any.
	Keys string

	// ID identifies the invocation. The dispatcher fills it in when zero.
	ID uuid.UUID
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	ns, _, _ := strings.Cut(a.Name, ".")
	return ns
}

// CountOr returns the count, or def when no prefix was given.
func (a Action) CountOr(def int) int {
	if a.HasCount {
		return a.Count
	}
	return def
}
