package command

import (
	"strconv"
	"strings"
)

// ReadStatus is the state of a Reader after consuming a chord.
type ReadStatus uint8

const (
	// ReadPending means more chords are needed.
	ReadPending ReadStatus = iota
	// ReadAction means an action was resolved.
	ReadAction
	// ReadUnbound means the sequence matched nothing and was discarded.
	ReadUnbound
	// ReadCancelled means C-g aborted the sequence.
	ReadCancelled
)

// Chords with fixed meaning to the reader.
const (
	ChordCancel    = "C-g"
	ChordUniversal = "C-u"
)

// Reader resolves chords into actions, collecting a numeric prefix.
//
// C-u alone gives a count of 4 and each further C-u multiplies it by 4.
// Digits after C-u replace that default; a leading "-" negates it.
type Reader struct {
	keymap *Keymap

	pending []string

	counting bool // inside a C-u prefix
	digits   bool // a digit has been typed
	negative bool
	count    int
}

// NewReader creates a Reader over keymap.
func NewReader(keymap *Keymap) *Reader {
	return &Reader{keymap: keymap}
}

// Pending returns the chords typed so far, for echoing, including the
// numeric prefix.
func (r *Reader) Pending() string {
	var parts []string
	if r.counting {
		parts = append(parts, ChordUniversal)
		if r.negative {
			parts = append(parts, "-")
		}
		if r.digits {
			parts = append(parts, strconv.Itoa(r.count))
		}
	}
	parts = append(parts, r.pending...)
	return strings.Join(parts, " ")
}

// Reset discards any partial sequence.
func (r *Reader) Reset() {
	r.pending = r.pending[:0]
	r.counting, r.digits, r.negative = false, false, false
	r.count = 0
}

// Feed consumes one canonical chord. When the status is ReadAction the
// returned Action is ready to dispatch; for ReadUnbound its Keys holds
// the rejected sequence.
func (r *Reader) Feed(chord string) (Action, ReadStatus) {
	if chord == ChordCancel {
		r.Reset()
		return Action{}, ReadCancelled
	}

	if len(r.pending) == 0 {
		if chord == ChordUniversal {
			if r.counting && !r.digits {
				r.count *= 4
			} else {
				r.counting, r.digits, r.negative = true, false, false
				r.count = 4
			}
			return Action{}, ReadPending
		}
		if r.counting {
			if d, ok := digit(chord); ok {
				if !r.digits {
					r.digits = true
					r.count = 0
				}
				r.count = r.count*10 + d
				return Action{}, ReadPending
			}
			if chord == "-" && !r.digits && !r.negative {
				r.negative = true
				r.count = 1
				return Action{}, ReadPending
			}
		}
	}

	r.pending = append(r.pending, chord)
	status, name := r.keymap.Lookup(r.pending)
	switch status {
	case Prefix:
		return Action{}, ReadPending
	case Bound:
		a := Action{Name: name, Keys: strings.Join(r.pending, " ")}
		if r.counting {
			a.HasCount = true
			a.Count = r.count
			if r.negative {
				a.Count = -a.Count
			}
		}
		r.Reset()
		return a, ReadAction
	default:
		a := Action{Keys: strings.Join(r.pending, " ")}
		r.Reset()
		return a, ReadUnbound
	}
}

func digit(chord string) (int, bool) {
	if len(chord) == 1 && chord[0] >= '0' && chord[0] <= '9' {
		return int(chord[0] - '0'), true
	}
	return 0, false
}
