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
	"log/slog"
	"math"
	"slices"
)

// Cell holds the coverage contribution of the segments crossing one
// pixel. Cover is the signed vertical extent of the segments inside the
// pixel, in subpixel units. Area is the signed area between the segments
// and the left pixel edge, weighted so that a fully covered pixel has
// area 2*SubpixelScale*SubpixelScale.
type Cell struct {
	X, Y  int
	Cover int
	Area  int
}

// CellStore accumulates cells from line segments and sorts them into
// scanlines. Internal buffers grow as needed but never shrink.
//
// A CellStore is not safe for concurrent use.
type CellStore struct {
	cells []Cell
	curr  Cell

	minX, minY, maxX, maxY int

	sorted   []Cell // cells ordered by row, then by x
	rowStart []int  // start of each row in sorted; one extra entry at the end
	rowFill  []int
	isSorted bool
}

// Reset discards all cells.
func (s *CellStore) Reset() {
	s.cells = s.cells[:0]
	s.curr = Cell{X: noCell, Y: noCell}
	s.minX, s.minY = math.MaxInt, math.MaxInt
	s.maxX, s.maxY = math.MinInt, math.MinInt
	s.isSorted = false
}

// NumCells returns the number of cells stored so far.
func (s *CellStore) NumCells() int {
	n := len(s.cells)
	if s.curr.Cover|s.curr.Area != 0 {
		n++
	}
	return n
}

// Sorted reports whether Sort has been called since the last Reset.
func (s *CellStore) Sorted() bool {
	return s.isSorted
}

// Bounds returns the range of pixel coordinates touched by the segments.
// The result is only meaningful if at least one segment was added.
func (s *CellStore) Bounds() (minX, minY, maxX, maxY int) {
	return s.minX, s.minY, s.maxX, s.maxY
}

func (s *CellStore) extend(x1, y1, x2, y2 int) {
	s.minX = min(s.minX, x1, x2)
	s.maxX = max(s.maxX, x1, x2)
	s.minY = min(s.minY, y1, y2)
	s.maxY = max(s.maxY, y1, y2)
}

func (s *CellStore) addCurrCell() {
	if s.curr.Area|s.curr.Cover != 0 {
		s.cells = append(s.cells, s.curr)
	}
}

func (s *CellStore) setCurrCell(x, y int) {
	if s.curr.X != x || s.curr.Y != y {
		s.addCurrCell()
		s.curr = Cell{X: x, Y: y}
	}
}

// AddPixel records a fully covered pixel, for binary rendering.
// AddPixel and Line should not be mixed on the same store.
func (s *CellStore) AddPixel(x, y int) {
	s.extend(x, y, x, y)
	s.cells = append(s.cells, Cell{X: x, Y: y, Cover: SubpixelScale})
}

// Line adds the cells of the segment (x1, y1)–(x2, y2), given in subpixel
// coordinates. CellStore implements [LineSink].
func (s *CellStore) Line(x1, y1, x2, y2 int) {
	dx := x2 - x1
	if dx >= dxLimit || dx <= -dxLimit {
		cx := (x1 + x2) >> 1
		cy := (y1 + y2) >> 1
		s.Line(x1, y1, cx, cy)
		s.Line(cx, cy, x2, y2)
		return
	}

	dy := y2 - y1
	ex1 := x1 >> SubpixelShift
	ex2 := x2 >> SubpixelShift
	ey1 := y1 >> SubpixelShift
	ey2 := y2 >> SubpixelShift
	fy1 := y1 & SubpixelMask
	fy2 := y2 & SubpixelMask

	s.extend(ex1, ey1, ex2, ey2)
	s.setCurrCell(ex1, ey1)

	// everything is on a single row
	if ey1 == ey2 {
		s.renderHLine(ey1, x1, fy1, x2, fy2)
		return
	}

	// Vertical segments cross exactly one cell per row, and all cells
	// between the first and the last row get the same contribution.
	incr := 1
	if dx == 0 {
		ex := x1 >> SubpixelShift
		twoFx := (x1 - ex<<SubpixelShift) << 1

		first := SubpixelScale
		if dy < 0 {
			first = 0
			incr = -1
		}

		delta := first - fy1
		s.curr.Cover += delta
		s.curr.Area += twoFx * delta

		ey1 += incr
		s.setCurrCell(ex, ey1)

		delta = first + first - SubpixelScale
		area := twoFx * delta
		for ey1 != ey2 {
			s.curr.Cover = delta
			s.curr.Area = area
			ey1 += incr
			s.setCurrCell(ex, ey1)
		}
		delta = fy2 - SubpixelScale + first
		s.curr.Cover += delta
		s.curr.Area += twoFx * delta
		return
	}

	// several rows
	p := (SubpixelScale - fy1) * dx
	first := SubpixelScale
	if dy < 0 {
		p = fy1 * dx
		first = 0
		incr = -1
		dy = -dy
	}

	delta := p / dy
	mod := p % dy
	if mod < 0 {
		delta--
		mod += dy
	}

	xFrom := x1 + delta
	s.renderHLine(ey1, x1, fy1, xFrom, first)

	ey1 += incr
	s.setCurrCell(xFrom>>SubpixelShift, ey1)

	if ey1 != ey2 {
		p = SubpixelScale * dx
		lift := p / dy
		rem := p % dy
		if rem < 0 {
			lift--
			rem += dy
		}
		mod -= dy

		for ey1 != ey2 {
			delta = lift
			mod += rem
			if mod >= 0 {
				mod -= dy
				delta++
			}

			xTo := xFrom + delta
			s.renderHLine(ey1, xFrom, SubpixelScale-first, xTo, first)
			xFrom = xTo

			ey1 += incr
			s.setCurrCell(xFrom>>SubpixelShift, ey1)
		}
	}
	s.renderHLine(ey1, xFrom, SubpixelScale-first, x2, fy2)
}

// renderHLine adds the cells of a segment within row ey. The x coordinates
// are in subpixel units, y1 and y2 are the fractional y coordinates within
// the row.
func (s *CellStore) renderHLine(ey, x1, y1, x2, y2 int) {
	ex1 := x1 >> SubpixelShift
	ex2 := x2 >> SubpixelShift
	fx1 := x1 & SubpixelMask
	fx2 := x2 & SubpixelMask

	// horizontal segments add nothing
	if y1 == y2 {
		s.setCurrCell(ex2, ey)
		return
	}

	// single cell
	if ex1 == ex2 {
		delta := y2 - y1
		s.curr.Cover += delta
		s.curr.Area += (fx1 + fx2) * delta
		return
	}

	// a run of adjacent cells on the same row
	p := (SubpixelScale - fx1) * (y2 - y1)
	first := SubpixelScale
	incr := 1
	dx := x2 - x1
	if dx < 0 {
		p = fx1 * (y2 - y1)
		first = 0
		incr = -1
		dx = -dx
	}

	delta := p / dx
	mod := p % dx
	if mod < 0 {
		delta--
		mod += dx
	}

	s.curr.Cover += delta
	s.curr.Area += (fx1 + first) * delta

	ex1 += incr
	s.setCurrCell(ex1, ey)
	y1 += delta

	if ex1 != ex2 {
		p = SubpixelScale * (y2 - y1 + delta)
		lift := p / dx
		rem := p % dx
		if rem < 0 {
			lift--
			rem += dx
		}
		mod -= dx

		for ex1 != ex2 {
			delta = lift
			mod += rem
			if mod >= 0 {
				mod -= dx
				delta++
			}

			s.curr.Cover += delta
			s.curr.Area += SubpixelScale * delta
			y1 += delta
			ex1 += incr
			s.setCurrCell(ex1, ey)
		}
	}
	delta = y2 - y1
	s.curr.Cover += delta
	s.curr.Area += (fx2 + SubpixelScale - first) * delta
}

// Sort groups the cells by row and sorts every row by x. Cells with equal
// coordinates are kept; consumers merge them. After Sort, no more
// segments should be added until the next Reset.
func (s *CellStore) Sort() {
	if s.isSorted {
		return
	}
	s.addCurrCell()
	s.curr = Cell{X: noCell, Y: noCell}
	s.isSorted = true
	if len(s.cells) == 0 {
		return
	}

	rows := s.maxY - s.minY + 1
	s.rowStart = slices.Grow(s.rowStart[:0], rows+1)[:rows+1]
	clear(s.rowStart)
	for _, c := range s.cells {
		s.rowStart[c.Y-s.minY+1]++
	}
	for i := 1; i <= rows; i++ {
		s.rowStart[i] += s.rowStart[i-1]
	}

	s.rowFill = slices.Grow(s.rowFill[:0], rows)[:rows]
	copy(s.rowFill, s.rowStart)
	s.sorted = slices.Grow(s.sorted[:0], len(s.cells))[:len(s.cells)]
	for _, c := range s.cells {
		row := c.Y - s.minY
		s.sorted[s.rowFill[row]] = c
		s.rowFill[row]++
	}

	for row := range rows {
		quickSortCells(s.sorted[s.rowStart[row]:s.rowStart[row+1]])
	}

	Logger().Debug("cells sorted",
		slog.Int("cells", len(s.cells)),
		slog.Int("rows", rows))
}

// RowCells returns the sorted cells of row y. The store must be sorted.
// The returned slice is valid until the next Reset.
func (s *CellStore) RowCells(y int) []Cell {
	if !s.isSorted || len(s.cells) == 0 || y < s.minY || y > s.maxY {
		return nil
	}
	row := y - s.minY
	return s.sorted[s.rowStart[row]:s.rowStart[row+1]]
}

// quickSortCells sorts cells by x, using the first element as the pivot.
// The sort is not stable.
func quickSortCells(cells []Cell) {
	if len(cells) < 2 {
		return
	}
	pivot := cells[0].X
	i := 0
	for j := 1; j < len(cells); j++ {
		if cells[j].X < pivot {
			i++
			cells[i], cells[j] = cells[j], cells[i]
		}
	}
	cells[0], cells[i] = cells[i], cells[0]
	quickSortCells(cells[:i])
	quickSortCells(cells[i+1:])
}

const (
	// noCell marks the current cell as unused.
	noCell = math.MaxInt32

	// dxLimit is the largest horizontal extent of a segment processed in
	// one piece. Wider segments are split to avoid overflow in the
	// cell walk.
	dxLimit = 16384 << SubpixelShift
)
