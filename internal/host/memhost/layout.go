package memhost

import (
	"sort"

	"github.com/rivo/uniseg"
)

// cluster is one grapheme cluster of a laid-out line.
type cluster struct {
	offset int // buffer offset of the first byte
	col    int // display column from the line start
	width  int // display width in cells
}

// lineLayout is the display layout of one buffer line at a given width.
type lineLayout struct {
	start    int       // buffer offset of the line start
	end      int       // buffer offset of the line end, excluding the newline
	width    int       // total display width
	segments []int     // buffer offsets where display lines start
	clusters []cluster // grapheme clusters in order
}

// segmentOf returns the index of the display line holding offset.
func (l *lineLayout) segmentOf(offset int) int {
	i := sort.SearchInts(l.segments, offset+1) - 1
	if i < 0 {
		return 0
	}
	return i
}

// segmentEnd returns the offset where display line seg ends.
func (l *lineLayout) segmentEnd(seg int) int {
	if seg+1 < len(l.segments) {
		return l.segments[seg+1]
	}
	return l.end
}

// column returns the display column of offset from the line start.
func (l *lineLayout) column(offset int) int {
	if offset >= l.end {
		return l.width
	}
	i := sort.Search(len(l.clusters), func(i int) bool {
		return l.clusters[i].offset > offset
	}) - 1
	if i < 0 {
		return 0
	}
	return l.clusters[i].col
}

// offsetAtColumn returns the offset on display line seg at column
// (relative to the display line), never past the column.
func (l *lineLayout) offsetAtColumn(seg, column int) int {
	start := l.segments[seg]
	end := l.segmentEnd(seg)
	base := l.column(start)
	off := start
	for _, c := range l.clusters {
		if c.offset < start {
			continue
		}
		if c.offset >= end || c.col-base+c.width > column {
			break
		}
		off = l.nextClusterOffset(c.offset)
	}
	if off >= end && seg+1 < len(l.segments) {
		// Stay on this display line: the end offset belongs to the next one.
		return l.lastClusterBefore(end)
	}
	return off
}

func (l *lineLayout) nextClusterOffset(offset int) int {
	i := sort.Search(len(l.clusters), func(i int) bool {
		return l.clusters[i].offset > offset
	})
	if i < len(l.clusters) {
		return l.clusters[i].offset
	}
	return l.end
}

func (l *lineLayout) lastClusterBefore(offset int) int {
	i := sort.Search(len(l.clusters), func(i int) bool {
		return l.clusters[i].offset >= offset
	}) - 1
	if i < 0 {
		return l.start
	}
	return l.clusters[i].offset
}

// layoutEngine computes line layouts.
type layoutEngine struct {
	tabWidth int
}

func newLayoutEngine(tabWidth int) *layoutEngine {
	if tabWidth < 1 {
		tabWidth = 8
	}
	return &layoutEngine{tabWidth: tabWidth}
}

// layout lays out text, which starts at buffer offset start. When wrap
// is set, display lines break before a cluster that would cross width.
func (e *layoutEngine) layout(text string, start, width int, wrap bool) *lineLayout {
	l := &lineLayout{
		start:    start,
		end:      start + len(text),
		segments: []int{start},
		clusters: make([]cluster, 0, len(text)),
	}

	col := 0
	rowCol := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		w := g.Width()
		if g.Str() == "\t" {
			w = e.tabWidth - col%e.tabWidth
		}

		if wrap && width > 0 && rowCol > 0 && rowCol+w > width {
			l.segments = append(l.segments, start+from)
			rowCol = 0
		}

		l.clusters = append(l.clusters, cluster{
			offset: start + from,
			col:    col,
			width:  w,
		})
		col += w
		rowCol += w
	}

	l.width = col
	return l
}
