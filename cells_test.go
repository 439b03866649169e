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
	"math/rand/v2"
	"slices"
	"testing"
)

func TestQuickSortCells(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for _, n := range []int{0, 1, 2, 3, 10, 100, 1000} {
		cells := make([]Cell, n)
		for i := range cells {
			cells[i] = Cell{X: rng.IntN(50) - 25, Cover: i}
		}
		orig := slices.Clone(cells)

		quickSortCells(cells)

		if !slices.IsSortedFunc(cells, func(a, b Cell) int { return a.X - b.X }) {
			t.Fatalf("n=%d: cells not sorted", n)
		}
		// the sort permutes the cells
		seen := make([]bool, n)
		for _, c := range cells {
			if seen[c.Cover] || orig[c.Cover] != c {
				t.Fatalf("n=%d: cell %v lost or duplicated", n, c)
			}
			seen[c.Cover] = true
		}
	}
}

func TestQuickSortCellsSorted(t *testing.T) {
	// already sorted and reversed input, the worst case for a first
	// element pivot
	cells := make([]Cell, 2000)
	for i := range cells {
		cells[i].X = i
	}
	quickSortCells(cells)
	for i, c := range cells {
		if c.X != i {
			t.Fatalf("cell %d has x=%d", i, c.X)
		}
	}
	slices.Reverse(cells)
	quickSortCells(cells)
	for i, c := range cells {
		if c.X != i {
			t.Fatalf("reversed: cell %d has x=%d", i, c.X)
		}
	}
}

func TestCellStoreRectangle(t *testing.T) {
	const s = SubpixelScale
	var store CellStore
	store.Reset()

	pts := []Vec2i{{1 * s, 1 * s}, {3 * s, 1 * s}, {3 * s, 3 * s}, {1 * s, 3 * s}, {1 * s, 1 * s}}
	for i := 1; i < len(pts); i++ {
		store.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
	}
	store.Sort()
	if !store.Sorted() {
		t.Fatal("store not sorted")
	}

	for y := 1; y <= 2; y++ {
		row := store.RowCells(y)
		if len(row) != 2 {
			t.Fatalf("row %d: got %d cells, want 2", y, len(row))
		}
		if row[0].X != 1 || row[1].X != 3 {
			t.Errorf("row %d: cells at x=%d and x=%d", y, row[0].X, row[1].X)
		}
		for _, c := range row {
			if abs(c.Cover) != s || c.Area != 0 {
				t.Errorf("row %d: unexpected cell %v", y, c)
			}
		}
		if row[0].Cover+row[1].Cover != 0 {
			t.Errorf("row %d: covers do not cancel", y)
		}
	}
	if row := store.RowCells(0); len(row) != 0 {
		t.Errorf("row 0: got %v", row)
	}
	if row := store.RowCells(-100); row != nil {
		t.Errorf("row outside the bounds: got %v", row)
	}
}

func TestCellStoreClosedPath(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	var store CellStore
	for range 50 {
		store.Reset()

		n := rng.IntN(10) + 3
		pts := make([]Vec2i, n+1)
		for i := range n {
			pts[i] = Vec2i{rng.IntN(40 * SubpixelScale), rng.IntN(40 * SubpixelScale)}
		}
		pts[n] = pts[0]
		for i := 1; i <= n; i++ {
			store.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
		}
		store.Sort()

		// a closed path enters every row as often as it leaves it
		_, minY, _, maxY := store.Bounds()
		total := 0
		for y := minY; y <= maxY; y++ {
			sum := 0
			prevX := 0
			for i, c := range store.RowCells(y) {
				if c.Y != y {
					t.Fatalf("cell %v in row %d", c, y)
				}
				if i > 0 && c.X < prevX {
					t.Fatalf("row %d not sorted", y)
				}
				prevX = c.X
				sum += c.Cover
				total++
			}
			if sum != 0 {
				t.Fatalf("row %d: covers sum to %d", y, sum)
			}
		}
		if total != store.NumCells() {
			t.Fatalf("rows hold %d cells, store has %d", total, store.NumCells())
		}
	}
}

func TestCellStoreAddPixel(t *testing.T) {
	var store CellStore
	store.Reset()
	store.AddPixel(5, 2)
	store.AddPixel(3, 2)
	store.AddPixel(4, 0)
	store.Sort()

	minX, minY, maxX, maxY := store.Bounds()
	if minX != 3 || minY != 0 || maxX != 5 || maxY != 2 {
		t.Errorf("bounds %d,%d,%d,%d", minX, minY, maxX, maxY)
	}
	row := store.RowCells(2)
	if len(row) != 2 || row[0].X != 3 || row[1].X != 5 {
		t.Errorf("row 2: got %v", row)
	}
	if len(store.RowCells(1)) != 0 {
		t.Error("row 1 should be empty")
	}
}
