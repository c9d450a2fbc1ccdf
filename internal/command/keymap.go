package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Keymap errors.
var (
	// ErrInvalidSequence indicates a key sequence that does not parse.
	ErrInvalidSequence = errors.New("invalid key sequence")

	// ErrBindingConflict indicates a sequence that is a prefix of an
	// existing binding, or has one as a prefix.
	ErrBindingConflict = errors.New("key binding conflict")
)

// LookupStatus is the outcome of resolving a key sequence.
type LookupStatus uint8

const (
	// Unbound means no binding starts with the sequence.
	Unbound LookupStatus = iota
	// Prefix means the sequence begins one or more longer bindings.
	Prefix
	// Bound means the sequence names an action.
	Bound
)

// String returns the status name.
func (s LookupStatus) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Prefix:
		return "prefix"
	case Bound:
		return "bound"
	default:
		return "unknown"
	}
}

// Binding pairs a key sequence with an action name.
type Binding struct {
	Keys   string
	Action string
}

// Keymap maps key sequences to action names. It is safe for concurrent
// use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[string]string
	prefixes map[string]int // proper prefix -> number of bindings under it
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[string]string),
		prefixes: make(map[string]int),
	}
}

// DefaultBindings returns the built-in Emacs-style bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{"C-x 2", ActionSplit},
		{"C-x 3", ActionSplitRight},
		{"C-x 0", ActionClose},
		{"C-x 1", ActionMaximize},
		{"C-x ^", ActionEnlarge},
		{"C-x -", ActionShrink},
		{"C-x o", ActionNext},
		{"C-x p", ActionPrev},
		{"C-x =", ActionWhereIs},
		{"C-v", ActionScrollDown},
		{"PgDn", ActionScrollDown},
		{"M-v", ActionScrollUp},
		{"PgUp", ActionScrollUp},
		{"C-x w p", ActionCyclePolicy},
		{"C-x w f", ActionToggleCloseFocus},
		{"C-n", ActionNextLine},
		{"Down", ActionNextLine},
		{"C-p", ActionPrevLine},
		{"Up", ActionPrevLine},
		{"M-<", ActionBeginningOfBuffer},
		{"M->", ActionEndOfBuffer},
	}
}

// DefaultKeymap returns a keymap holding DefaultBindings.
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	for _, b := range DefaultBindings() {
		if err := k.Bind(b.Keys, b.Action); err != nil {
			panic(fmt.Sprintf("default binding %q: %v", b.Keys, err))
		}
	}
	return k
}

// Bind binds keys to action, replacing an existing binding of the same
// sequence. An empty action removes the binding.
func (k *Keymap) Bind(keys, action string) error {
	seq, err := ParseSequence(keys)
	if err != nil {
		return err
	}
	if action == "" {
		k.Unbind(keys)
		return nil
	}
	canon := strings.Join(seq, " ")

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.prefixes[canon] > 0 {
		return fmt.Errorf("%w: %q is a prefix of other bindings", ErrBindingConflict, canon)
	}
	for i := 1; i < len(seq); i++ {
		p := strings.Join(seq[:i], " ")
		if _, ok := k.bindings[p]; ok {
			return fmt.Errorf("%w: %q is already bound", ErrBindingConflict, p)
		}
	}

	if _, exists := k.bindings[canon]; !exists {
		for i := 1; i < len(seq); i++ {
			k.prefixes[strings.Join(seq[:i], " ")]++
		}
	}
	k.bindings[canon] = action
	return nil
}

// Unbind removes the binding for keys. It reports whether one existed.
func (k *Keymap) Unbind(keys string) bool {
	seq, err := ParseSequence(keys)
	if err != nil {
		return false
	}
	canon := strings.Join(seq, " ")

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.bindings[canon]; !ok {
		return false
	}
	delete(k.bindings, canon)
	for i := 1; i < len(seq); i++ {
		p := strings.Join(seq[:i], " ")
		if k.prefixes[p]--; k.prefixes[p] <= 0 {
			delete(k.prefixes, p)
		}
	}
	return true
}

// Lookup resolves a sequence of canonical chords.
func (k *Keymap) Lookup(chords []string) (LookupStatus, string) {
	if len(chords) == 0 {
		return Unbound, ""
	}
	canon := strings.Join(chords, " ")

	k.mu.RLock()
	defer k.mu.RUnlock()

	if action, ok := k.bindings[canon]; ok {
		return Bound, action
	}
	if k.prefixes[canon] > 0 {
		return Prefix, ""
	}
	return Unbound, ""
}

// Action returns the action bound to keys, or "".
func (k *Keymap) Action(keys string) string {
	seq, err := ParseSequence(keys)
	if err != nil {
		return ""
	}
	status, action := k.Lookup(seq)
	if status != Bound {
		return ""
	}
	return action
}

// Bindings returns all bindings sorted by key sequence.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Binding, 0, len(k.bindings))
	for keys, action := range k.bindings {
		out = append(out, Binding{Keys: keys, Action: action})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// KeysFor returns the sequences bound to action, sorted.
func (k *Keymap) KeysFor(action string) []string {
	var keys []string
	for _, b := range k.Bindings() {
		if b.Action == action {
			keys = append(keys, b.Keys)
		}
	}
	return keys
}

// ParseSequence splits a space-separated key sequence into canonical
// chords. Modifiers are written C- (control), M- (meta) and S- (shift)
// and are normalized to that order: "M-C-v" becomes "C-M-v".
func ParseSequence(keys string) ([]string, error) {
	fields := strings.Fields(keys)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSequence)
	}
	seq := make([]string, len(fields))
	for i, f := range fields {
		chord, err := ParseChord(f)
		if err != nil {
			return nil, err
		}
		seq[i] = chord
	}
	return seq, nil
}

// ParseChord normalizes a single chord such as "C-x" or "M-<".
func ParseChord(s string) (string, error) {
	var ctrl, meta, shift bool
	rest := s
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C':
			ctrl = true
		case 'M':
			meta = true
		case 'S':
			shift = true
		default:
			return "", fmt.Errorf("%w: unknown modifier in %q", ErrInvalidSequence, s)
		}
		rest = rest[2:]
	}
	if rest == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSequence, s)
	}
	return Chord(rest, ctrl, meta, shift), nil
}

// Chord builds a canonical chord from a key name and modifiers.
func Chord(key string, ctrl, meta, shift bool) string {
	var b strings.Builder
	if ctrl {
		b.WriteString("C-")
	}
	if meta {
		b.WriteString("M-")
	}
	if shift {
		b.WriteString("S-")
	}
	b.WriteString(key)
	return b.String()
}
