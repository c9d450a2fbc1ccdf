package memhost

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayoutNoWrap(t *testing.T) {
	e := newLayoutEngine(4)
	l := e.layout("hello world", 10, 5, false)

	if diff := cmp.Diff([]int{10}, l.segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if l.width != 11 {
		t.Errorf("expected width 11, got %d", l.width)
	}
	if l.end != 21 {
		t.Errorf("expected end 21, got %d", l.end)
	}
}

func TestLayoutWrap(t *testing.T) {
	e := newLayoutEngine(4)
	l := e.layout("abcdefghij", 0, 4, true)

	if diff := cmp.Diff([]int{0, 4, 8}, l.segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if got := l.segmentOf(5); got != 1 {
		t.Errorf("expected offset 5 on display line 1, got %d", got)
	}
	if got := l.segmentOf(10); got != 2 {
		t.Errorf("expected end of line on last display line, got %d", got)
	}
}

func TestLayoutTabs(t *testing.T) {
	e := newLayoutEngine(4)
	l := e.layout("a\tb", 0, 80, true)

	if got := l.column(1); got != 1 {
		t.Errorf("expected tab at column 1, got %d", got)
	}
	if got := l.column(2); got != 4 {
		t.Errorf("expected b at column 4, got %d", got)
	}
	if l.width != 5 {
		t.Errorf("expected width 5, got %d", l.width)
	}
}

func TestLayoutWideRunes(t *testing.T) {
	e := newLayoutEngine(4)
	// Each CJK rune is three bytes and two cells wide.
	l := e.layout("日本語", 0, 5, true)

	if diff := cmp.Diff([]int{0, 6}, l.segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if got := l.column(3); got != 2 {
		t.Errorf("expected second rune at column 2, got %d", got)
	}
	if got := l.column(6); got != 4 {
		t.Errorf("expected third rune at column 4, got %d", got)
	}
}

func TestLayoutCombiningCluster(t *testing.T) {
	e := newLayoutEngine(4)
	// "e" + combining acute is one cluster of width 1.
	l := e.layout("éx", 0, 80, false)

	if len(l.clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(l.clusters))
	}
	if got := l.column(3); got != 1 {
		t.Errorf("expected x at column 1, got %d", got)
	}
	if got := l.column(1); got != 0 {
		t.Errorf("expected mid-cluster offset at column 0, got %d", got)
	}
}

func TestLayoutOffsetAtColumn(t *testing.T) {
	e := newLayoutEngine(4)
	l := e.layout("abcdefghij", 0, 4, true)

	tests := []struct {
		seg, col, want int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{0, 9, 3},  // stays on the first display line
		{1, 1, 5},
		{2, 1, 9},
		{2, 5, 10}, // last display line may reach the line end
	}
	for _, tt := range tests {
		if got := l.offsetAtColumn(tt.seg, tt.col); got != tt.want {
			t.Errorf("offsetAtColumn(%d, %d) = %d, expected %d", tt.seg, tt.col, got, tt.want)
		}
	}
}

func TestLayoutEmptyLine(t *testing.T) {
	e := newLayoutEngine(4)
	l := e.layout("", 7, 10, true)

	if diff := cmp.Diff([]int{7}, l.segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if l.column(7) != 0 {
		t.Errorf("expected column 0, got %d", l.column(7))
	}
	if l.offsetAtColumn(0, 3) != 7 {
		t.Errorf("expected offset 7, got %d", l.offsetAtColumn(0, 3))
	}
}
