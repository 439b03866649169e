// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import "iter"

// Span is a run of Len pixels starting at column X of a scanline.
// For a [ScanlineAA], Cover is the index of the span's first coverage
// value, see [ScanlineAA.Covers]; for a [ScanlineBin] it is zero.
type Span struct {
	X, Len int
	Cover  int
}

// Scanline receives the spans of one row from a sweep.
//
// Cells and spans must be added in increasing x order. A cell at exactly
// one past the end of the previous cell or span extends it; any other
// position starts a new span.
type Scanline interface {
	// Reset prepares the scanline for cells in columns minX to maxX.
	Reset(minX, maxX int)

	// ResetSpans removes all spans, keeping the column range.
	ResetSpans()

	AddCell(x int, cover uint8)
	AddSpan(x, n int, cover uint8)

	// Finalize records the row of the spans added since ResetSpans.
	Finalize(y int)

	NumSpans() int
}

// ScanlineBin collects spans without coverage values, for binary
// rendering.
type ScanlineBin struct {
	spans []Span // spans[0] is unused, so that the first span has index 1
	cur   int
	lastX int
	y     int
}

var _ Scanline = (*ScanlineBin)(nil)

// Reset implements [Scanline]. The span buffer is grown to hold
// maxX-minX+3 entries; it never shrinks.
func (sl *ScanlineBin) Reset(minX, maxX int) {
	if n := maxX - minX + 3; n > len(sl.spans) {
		sl.spans = make([]Span, n)
	}
	sl.ResetSpans()
}

// ResetSpans implements [Scanline].
func (sl *ScanlineBin) ResetSpans() {
	sl.lastX = noLastX
	sl.cur = 0
}

// AddCell implements [Scanline]. The cover value is ignored.
func (sl *ScanlineBin) AddCell(x int, _ uint8) {
	if x == sl.lastX+1 {
		sl.spans[sl.cur].Len++
	} else {
		sl.cur++
		sl.spans[sl.cur] = Span{X: x, Len: 1}
	}
	sl.lastX = x
}

// AddSpan implements [Scanline]. The cover value is ignored.
func (sl *ScanlineBin) AddSpan(x, n int, _ uint8) {
	if x == sl.lastX+1 {
		sl.spans[sl.cur].Len += n
	} else {
		sl.cur++
		sl.spans[sl.cur] = Span{X: x, Len: n}
	}
	sl.lastX = x + n - 1
}

// Finalize implements [Scanline].
func (sl *ScanlineBin) Finalize(y int) {
	sl.y = y
}

// Y returns the row passed to Finalize.
func (sl *ScanlineBin) Y() int {
	return sl.y
}

// NumSpans implements [Scanline].
func (sl *ScanlineBin) NumSpans() int {
	return sl.cur
}

// Spans iterates over the spans in the order they were added.
func (sl *ScanlineBin) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for i := 1; i <= sl.cur; i++ {
			if !yield(sl.spans[i]) {
				return
			}
		}
	}
}

// ScanlineAA collects spans together with one 8-bit coverage value per
// pixel.
type ScanlineAA struct {
	minX   int
	lastX  int // relative to minX
	y      int
	covers []uint8
	spans  []Span // spans[0] is unused
	cur    int
}

var _ Scanline = (*ScanlineAA)(nil)

// Reset implements [Scanline]. Buffers are grown to hold maxX-minX+2
// entries; they never shrink.
func (sl *ScanlineAA) Reset(minX, maxX int) {
	if n := maxX - minX + 2; n > len(sl.covers) {
		sl.covers = make([]uint8, n)
		sl.spans = make([]Span, n)
	}
	sl.minX = minX
	sl.ResetSpans()
}

// ResetSpans implements [Scanline].
func (sl *ScanlineAA) ResetSpans() {
	sl.lastX = noLastX
	sl.cur = 0
}

// AddCell implements [Scanline].
func (sl *ScanlineAA) AddCell(x int, cover uint8) {
	x -= sl.minX
	sl.covers[x] = cover
	if x == sl.lastX+1 {
		sl.spans[sl.cur].Len++
	} else {
		sl.cur++
		sl.spans[sl.cur] = Span{X: x + sl.minX, Len: 1, Cover: x}
	}
	sl.lastX = x
}

// AddSpan implements [Scanline].
func (sl *ScanlineAA) AddSpan(x, n int, cover uint8) {
	x -= sl.minX
	covers := sl.covers[x : x+n]
	for i := range covers {
		covers[i] = cover
	}
	if x == sl.lastX+1 {
		sl.spans[sl.cur].Len += n
	} else {
		sl.cur++
		sl.spans[sl.cur] = Span{X: x + sl.minX, Len: n, Cover: x}
	}
	sl.lastX = x + n - 1
}

// Finalize implements [Scanline].
func (sl *ScanlineAA) Finalize(y int) {
	sl.y = y
}

// Y returns the row passed to Finalize.
func (sl *ScanlineAA) Y() int {
	return sl.y
}

// NumSpans implements [Scanline].
func (sl *ScanlineAA) NumSpans() int {
	return sl.cur
}

// Spans iterates over the spans in the order they were added.
func (sl *ScanlineAA) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for i := 1; i <= sl.cur; i++ {
			if !yield(sl.spans[i]) {
				return
			}
		}
	}
}

// Covers returns the coverage values of a span of this scanline.
// The slice is valid until the next call to ResetSpans.
func (sl *ScanlineAA) Covers(sp Span) []uint8 {
	return sl.covers[sp.Cover : sp.Cover+sp.Len]
}

// noLastX is the initial value of lastX; no valid x follows it.
const noLastX = 0x7FFFFFF0
