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

import (
	"slices"
	"testing"
)

func TestScanlineBinAdjacentCells(t *testing.T) {
	var sl ScanlineBin
	sl.Reset(0, 10)
	sl.AddCell(3, 255)
	sl.AddCell(4, 255)
	sl.AddCell(4, 255) // repeated x starts a new span
	sl.Finalize(7)

	got := slices.Collect(sl.Spans())
	want := []Span{{X: 3, Len: 2}, {X: 4, Len: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if sl.NumSpans() != 2 || sl.Y() != 7 {
		t.Errorf("got %d spans in row %d", sl.NumSpans(), sl.Y())
	}
}

func TestScanlineBinSpans(t *testing.T) {
	var sl ScanlineBin
	sl.Reset(0, 20)
	sl.AddCell(1, 0)
	sl.AddSpan(2, 3, 0) // extends the cell
	sl.AddCell(5, 0)    // extends the span
	sl.AddSpan(8, 2, 0)
	sl.AddCell(12, 0)

	got := slices.Collect(sl.Spans())
	want := []Span{{X: 1, Len: 5}, {X: 8, Len: 2}, {X: 12, Len: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	sl.ResetSpans()
	if sl.NumSpans() != 0 {
		t.Errorf("%d spans after ResetSpans", sl.NumSpans())
	}
	sl.AddCell(2, 0)
	if got := slices.Collect(sl.Spans()); !slices.Equal(got, []Span{{X: 2, Len: 1}}) {
		t.Errorf("after ResetSpans: got %v", got)
	}
}

func TestScanlineAACovers(t *testing.T) {
	var sl ScanlineAA
	sl.Reset(10, 30)
	sl.AddCell(10, 20)
	sl.AddSpan(11, 3, 255)
	sl.AddCell(14, 40)
	sl.AddCell(20, 100)
	sl.Finalize(3)

	if sl.NumSpans() != 2 || sl.Y() != 3 {
		t.Fatalf("got %d spans in row %d", sl.NumSpans(), sl.Y())
	}
	type result struct {
		x      int
		covers []uint8
	}
	var got []result
	for sp := range sl.Spans() {
		got = append(got, result{sp.X, slices.Clone(sl.Covers(sp))})
	}
	want := []result{
		{10, []uint8{20, 255, 255, 255, 40}},
		{20, []uint8{100}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i].x != want[i].x || !slices.Equal(got[i].covers, want[i].covers) {
			t.Errorf("span %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanlineAAGrow(t *testing.T) {
	var sl ScanlineAA
	sl.Reset(0, 2)
	sl.Reset(-50, 50)
	for x := -50; x <= 50; x += 2 {
		sl.AddCell(x, uint8(x+50))
	}
	if sl.NumSpans() != 51 {
		t.Errorf("got %d spans, want 51", sl.NumSpans())
	}
	for sp := range sl.Spans() {
		if c := sl.Covers(sp); len(c) != 1 || int(c[0]) != sp.X+50 {
			t.Errorf("span at %d has covers %v", sp.X, c)
		}
	}
}
