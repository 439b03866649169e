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
	"errors"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/raster/testcases"
)

// polygon builds a closed path through the given points.
func polygon(pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// fillGrid renders p into a w×h grid of coverage values.
func fillGrid(t *testing.T, r *Rasteriser, p path.Path, w, h int) [][]float32 {
	t.Helper()
	grid := make([][]float32, h)
	for y := range grid {
		grid[y] = make([]float32, w)
	}
	err := r.Fill(p, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= h {
			t.Fatalf("row %d out of range", y)
		}
		for i, c := range coverage {
			grid[y][xMin+i] = c
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	return grid
}

// TestTriangleCoverage verifies coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := polygon(
		vec.Vec2{X: 0, Y: 0},
		vec.Vec2{X: 10, Y: 0},
		vec.Vec2{X: 10, Y: 1},
	)

	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1}
	r := NewRasteriser(clip)
	grid := fillGrid(t, r, triangle, 10, 1)

	// coverage is quantised to 8 bits
	const epsilon = 0.01
	for x := range 10 {
		expected := float32(2*x+1) / 20.0
		actual := grid[0][x]
		if math.Abs(float64(actual-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, actual)
		}
	}
}

func TestFillRule(t *testing.T) {
	// two overlapping squares with the same orientation
	overlap := func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, pts := range polygon(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 6, Y: 0}, vec.Vec2{X: 6, Y: 6}, vec.Vec2{X: 0, Y: 6}) {
			if !yield(cmd, pts) {
				return
			}
		}
		for cmd, pts := range polygon(vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 9, Y: 3}, vec.Vec2{X: 9, Y: 9}, vec.Vec2{X: 3, Y: 9}) {
			if !yield(cmd, pts) {
				return
			}
		}
	}

	clip := rect.Rect{URx: 10, URy: 10}
	tests := []struct {
		rule    FillRule
		overlap float32
	}{
		{NonZero, 1},
		{EvenOdd, 0},
	}
	for _, test := range tests {
		r := NewRasteriser(clip)
		r.FillRule = test.rule
		grid := fillGrid(t, r, overlap, 10, 10)
		if got := grid[1][1]; got != 1 {
			t.Errorf("rule %d: single cover = %g, want 1", test.rule, got)
		}
		if got := grid[4][4]; got != test.overlap {
			t.Errorf("rule %d: double cover = %g, want %g", test.rule, got, test.overlap)
		}
		if got := grid[1][8]; got != 0 {
			t.Errorf("rule %d: outside = %g, want 0", test.rule, got)
		}
	}
}

func TestFillClipped(t *testing.T) {
	// a square larger than the clip rectangle covers exactly the clip area
	r := NewRasteriser(rect.Rect{LLx: 2, LLy: 3, URx: 7, URy: 5})
	square := polygon(vec.Vec2{X: -10, Y: -10}, vec.Vec2{X: 20, Y: -10}, vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: -10, Y: 20})
	grid := fillGrid(t, r, square, 10, 10)
	for y := range 10 {
		for x := range 10 {
			want := float32(0)
			if x >= 2 && x < 7 && y >= 3 && y < 5 {
				want = 1
			}
			if grid[y][x] != want {
				t.Errorf("pixel (%d,%d) = %g, want %g", x, y, grid[y][x], want)
			}
		}
	}
}

func TestFillCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 2, 2}
	unit := polygon(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 0, Y: 1})
	grid := fillGrid(t, r, unit, 10, 10)

	total := float32(0)
	for y := range 10 {
		for x := range 10 {
			total += grid[y][x]
		}
	}
	if total != 4 {
		t.Errorf("total coverage %g, want 4", total)
	}
	if grid[2][2] != 1 || grid[3][3] != 1 {
		t.Errorf("transformed square not at (2,2)-(4,4)")
	}
}

func TestCurveSegment(t *testing.T) {
	curve := func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: 0, Y: 0}}) {
			return
		}
		yield(path.CmdQuadTo, []vec.Vec2{{X: 5, Y: 10}, {X: 10, Y: 0}})
	}

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	err := r.Fill(curve, func(int, int, []float32) {})
	if !errors.Is(err, ErrCurveSegment) {
		t.Errorf("Fill: got %v, want ErrCurveSegment", err)
	}

	h := NewHairline(rect.Rect{URx: 10, URy: 10})
	if err := h.Stroke(curve); !errors.Is(err, ErrCurveSegment) {
		t.Errorf("Stroke: got %v, want ErrCurveSegment", err)
	}
}

func TestRasteriserReuse(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	big := polygon(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 0, Y: 10})
	small := polygon(vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 2, Y: 1}, vec.Vec2{X: 2, Y: 2}, vec.Vec2{X: 1, Y: 2})

	fillGrid(t, r, big, 10, 10)
	grid := fillGrid(t, r, small, 10, 10)
	for y := range 10 {
		for x := range 10 {
			want := float32(0)
			if x == 1 && y == 1 {
				want = 1
			}
			if grid[y][x] != want {
				t.Fatalf("pixel (%d,%d) = %g after reuse, want %g", x, y, grid[y][x], want)
			}
		}
	}
}

func TestSweepIntoScanlineBin(t *testing.T) {
	r := NewRasteriser(rect.Rect{})
	s := SubpixelScale
	r.MoveTo(1*s, 0)
	r.LineTo(4*s, 0)
	r.LineTo(4*s, 2*s)
	r.LineTo(1*s, 2*s)
	if !r.RewindScanlines() {
		t.Fatal("no cells")
	}

	minX, minY, maxX, maxY := r.Bounds()
	if minX != 1 || minY != 0 || maxX != 4 || maxY != 2 {
		t.Errorf("bounds %d,%d,%d,%d", minX, minY, maxX, maxY)
	}

	var sl ScanlineBin
	sl.Reset(minX, maxX)
	rows := 0
	for r.Sweep(&sl) {
		spans := slices.Collect(sl.Spans())
		if len(spans) != 1 || spans[0].X != 1 || spans[0].Len != 3 {
			t.Errorf("row %d: spans %v", sl.Y(), spans)
		}
		rows++
	}
	if rows != 2 {
		t.Errorf("%d rows, want 2", rows)
	}
}

// BenchmarkRasteriseAll measures steady-state performance by reusing a single
// Rasteriser and Hairline across all test cases.
func BenchmarkRasteriseAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	r := NewRasteriser(rect.Rect{})
	h := NewHairline(rect.Rect{})

	// No-op emit callback - we're measuring rasterisation, not compositing
	emit := func(y, xMin int, coverage []float32) {}

	b.ReportAllocs()
	for b.Loop() {
		for _, tc := range cases {
			switch op := tc.Op.(type) {
			case testcases.Fill:
				r.Reset(tc.ClipRect())
				r.CTM = tc.Matrix()
				if op.Rule == testcases.EvenOdd {
					r.FillRule = EvenOdd
				}
				r.Fill(tc.Path, emit)
			case testcases.Hairline:
				h.Reset(tc.ClipRect())
				h.CTM = tc.Matrix()
				h.Draw(tc.Path, emit)
			}
		}
	}
}
