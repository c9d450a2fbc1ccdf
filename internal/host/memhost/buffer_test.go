package memhost

import "testing"

func TestBufferLines(t *testing.T) {
	b := NewBuffer(1, "t", "ab\ncd\n\nefg")

	if b.LineCount() != 4 {
		t.Fatalf("expected 4 lines, got %d", b.LineCount())
	}

	tests := []struct {
		line  int
		start int
		end   int
		text  string
	}{
		{0, 0, 2, "ab"},
		{1, 3, 5, "cd"},
		{2, 6, 6, ""},
		{3, 7, 10, "efg"},
	}
	for _, tt := range tests {
		if got := b.LineStart(tt.line); got != tt.start {
			t.Errorf("LineStart(%d) = %d, expected %d", tt.line, got, tt.start)
		}
		if got := b.LineEnd(tt.line); got != tt.end {
			t.Errorf("LineEnd(%d) = %d, expected %d", tt.line, got, tt.end)
		}
		if got := b.LineText(tt.line); got != tt.text {
			t.Errorf("LineText(%d) = %q, expected %q", tt.line, got, tt.text)
		}
	}
}

func TestBufferTrailingNewline(t *testing.T) {
	b := NewBuffer(1, "t", "a\n")
	if b.LineCount() != 2 {
		t.Errorf("expected trailing newline to start a second line, got %d lines", b.LineCount())
	}
	if b.LineAt(2) != 1 {
		t.Errorf("expected offset 2 on line 1, got %d", b.LineAt(2))
	}
}

func TestBufferLineAt(t *testing.T) {
	b := NewBuffer(1, "t", "ab\ncd\n\nefg")
	tests := map[int]int{
		-5: 0, 0: 0, 2: 0, 3: 1, 5: 1, 6: 2, 7: 3, 10: 3, 99: 3,
	}
	for off, want := range tests {
		if got := b.LineAt(off); got != want {
			t.Errorf("LineAt(%d) = %d, expected %d", off, got, want)
		}
	}
}

func TestBufferClamp(t *testing.T) {
	b := NewBuffer(1, "t", "abc")
	if b.Clamp(-1) != 0 || b.Clamp(2) != 2 || b.Clamp(10) != 3 {
		t.Error("clamp out of range")
	}
}

func TestEmptyBuffer(t *testing.T) {
	b := NewBuffer(1, "t", "")
	if b.LineCount() != 1 || b.LineText(0) != "" || b.LineEnd(0) != 0 {
		t.Error("empty buffer should have one empty line")
	}
}
