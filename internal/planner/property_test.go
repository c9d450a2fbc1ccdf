package planner

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dshills/quietwin/internal/host"
	"github.com/dshills/quietwin/internal/host/memhost"
	"github.com/dshills/quietwin/internal/policy"
)

const propertyRuns = 300

func randomBuffer(rng *rand.Rand) *memhost.Buffer {
	n := 1 + rng.Intn(120)
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch rng.Intn(6) {
		case 0:
			// empty line
		case 1:
			b.WriteString(strings.Repeat("wrapped text ", 1+rng.Intn(12)))
		case 2:
			b.WriteString("\tindent\t")
		default:
			b.WriteString(strings.Repeat("x", rng.Intn(30)))
		}
	}
	return memhost.NewBuffer(1, "random", b.String())
}

func randomOptions(rng *rand.Rand, modeLine bool) memhost.Options {
	opts := memhost.DefaultOptions()
	opts.ModeLine = modeLine
	opts.Wrap = rng.Intn(4) != 0
	opts.EchoArea = rng.Intn(2) == 0
	return opts
}

// visibleSetup places the cursor at a random offset and scrolls so it is
// on screen.
func visibleSetup(rng *rand.Rand, h *memhost.Host, b *memhost.Buffer, w host.WindowID) int {
	cursor := rng.Intn(b.Len() + 1)
	_ = h.SetCursor(w, cursor)
	back := rng.Intn(h.TextHeight(w))
	anchor, _ := h.StepDisplayLines(w, cursor, -back)
	_ = h.SetAnchor(w, anchor)
	return cursor
}

func randomHint(rng *rand.Rand, height, min int) SizeHint {
	if height < 2*min || rng.Intn(3) == 0 {
		return Even()
	}
	top := min + rng.Intn(height-2*min+1)
	if rng.Intn(2) == 0 {
		return Lines(top)
	}
	return Lines(top - height)
}

func TestPropertyMinimizeMotionKeepsCursorVisible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for run := 0; run < propertyRuns; run++ {
		b := randomBuffer(rng)
		h := memhost.New(10+rng.Intn(60), 4+rng.Intn(40), b, randomOptions(rng, false))
		c := New(h, policy.NewStore(policy.Snapshot{Policy: policy.MinimizeMotion}))
		w := h.Windows()[0]
		cursor := visibleSetup(rng, h, b, w)
		if !h.IsVisible(w, cursor) {
			t.Fatalf("run %d: setup left cursor hidden", run)
		}
		r, _ := h.WindowRect(w)
		if r.Height < 2*h.MinWindowHeight() {
			continue
		}

		top, bottom, err := c.Split(w, randomHint(rng, r.Height, h.MinWindowHeight()))
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		if !h.IsVisible(top, cursor) && !h.IsVisible(bottom, cursor) {
			t.Fatalf("run %d: cursor %d hidden in both windows", run, cursor)
		}
		if err := memhost.CheckTiling(h); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
}

func TestPropertyRevealIfHiddenAlwaysVisible(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for run := 0; run < propertyRuns; run++ {
		b := randomBuffer(rng)
		h := memhost.New(10+rng.Intn(60), 4+rng.Intn(40), b, randomOptions(rng, rng.Intn(2) == 0))
		c := New(h, policy.NewStore(policy.Snapshot{Policy: policy.RevealIfHidden}))
		w := h.Windows()[0]

		// Any cursor, on screen or not.
		cursor := rng.Intn(b.Len() + 1)
		_ = h.SetCursor(w, cursor)
		_ = h.SetAnchor(w, rng.Intn(b.Len()+1))
		r, _ := h.WindowRect(w)
		if r.Height < 2*h.MinWindowHeight() {
			continue
		}

		top, bottom, err := c.Split(w, randomHint(rng, r.Height, h.MinWindowHeight()))
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		if !h.IsVisible(top, cursor) && !h.IsVisible(bottom, cursor) {
			t.Fatalf("run %d: cursor %d hidden in both windows", run, cursor)
		}
	}
}

func TestPropertyDuplicatePointSplitIsReversible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for run := 0; run < propertyRuns/3; run++ {
		b := randomBuffer(rng)
		h := memhost.New(80, 60, b, randomOptions(rng, rng.Intn(2) == 0))
		c := New(h, policy.NewStore(policy.Snapshot{Policy: policy.DuplicatePoint}))
		shuffleLayout(t, rng, c, h, 6)

		ws := c.ordinary()
		w := ws[rng.Intn(len(ws))]
		before, _ := h.WindowRect(w)
		_, bottom, err := c.Split(w, Even())
		if err != nil {
			continue // too small to split
		}
		if _, err := c.Close(bottom); err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		after, _ := h.WindowRect(w)
		if after != before {
			t.Fatalf("run %d: rect %v after split and close, expected %v", run, after, before)
		}
	}
}

func TestPropertyCloseContinuity(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for run := 0; run < propertyRuns; run++ {
		b := randomBuffer(rng)
		h := memhost.New(10+rng.Intn(60), 4+rng.Intn(40), b, randomOptions(rng, rng.Intn(2) == 0))
		c := New(h, policy.NewStore(policy.Snapshot{Policy: policy.Policies[rng.Intn(3)]}))
		w := h.Windows()[0]
		r, _ := h.WindowRect(w)
		if r.Height < 2*h.MinWindowHeight() {
			continue
		}

		top, bottom, err := c.Split(w, randomHint(rng, r.Height, h.MinWindowHeight()))
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		_ = h.SetAnchor(bottom, rng.Intn(b.Len()+1))
		anchor := h.Anchor(bottom)
		topRect, _ := h.WindowRect(top)
		oldRect, _ := h.WindowRect(bottom)

		if _, err := c.Close(top); err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		newRect, _ := h.WindowRect(bottom)
		pos, ok, err := c.Geometry().Locate(bottom, anchor)
		if err != nil || !ok {
			t.Fatalf("run %d: old anchor not visible after close (err %v)", run, err)
		}
		shift := oldRect.Top - (newRect.Top + pos.Row)
		if shift < 0 || shift > topRect.Height {
			t.Fatalf("run %d: line moved %d rows, closed height %d", run, shift, topRect.Height)
		}
	}
}

func TestPropertyTilingUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for run := 0; run < 40; run++ {
		b := randomBuffer(rng)
		h := memhost.New(40+rng.Intn(80), 20+rng.Intn(40), b, randomOptions(rng, rng.Intn(2) == 0))
		c := New(h, policy.NewStore(policy.Snapshot{
			Policy:          policy.Policies[rng.Intn(3)],
			CloseKeepsFocus: rng.Intn(2) == 0,
		}))
		shuffleLayout(t, rng, c, h, 60)

		for _, w := range h.Windows() {
			a := h.Anchor(w)
			if start, _ := h.StepDisplayLines(w, a, 0); start != a {
				t.Fatalf("run %d: window %d anchor %d is not a display line start", run, w, a)
			}
			if cur := h.Cursor(w); cur < 0 || cur > h.Buffer(w).Len() {
				t.Fatalf("run %d: window %d cursor %d outside buffer", run, w, cur)
			}
		}
	}
}

// shuffleLayout applies n random operations, checking the tiling after
// each one. User errors such as a too small window are expected.
func shuffleLayout(t *testing.T, rng *rand.Rand, c *Coordinator, h *memhost.Host, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ws := c.ordinary()
		w := ws[rng.Intn(len(ws))]
		var err error
		switch rng.Intn(7) {
		case 0, 1:
			_, _, err = c.Split(w, Even())
		case 2:
			_, _, err = c.SplitSide(w)
		case 3:
			_, err = c.Close(w)
		case 4:
			err = c.Resize(w, rng.Intn(7)-3)
		case 5:
			err = c.Scroll(w, rng.Intn(11)-5)
		case 6:
			if rng.Intn(5) == 0 {
				err = c.Maximize(w)
			} else {
				_, err = c.Other(1)
			}
		}
		if err != nil && !host.IsUserError(err) {
			t.Fatalf("operation %d: unexpected error: %v", i, err)
		}
		if err := memhost.CheckTiling(h); err != nil {
			t.Fatalf("operation %d: %v", i, err)
		}
	}
}
