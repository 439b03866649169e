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
	"log/slog"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrCurveSegment is returned when a path passed to the rasteriser contains
// curve segments. Paths must be flattened before rasterisation.
var ErrCurveSegment = errors.New("raster: path contains curve segments")

// FillRule selects how winding numbers are converted into coverage.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// pathStatus tracks the state of the polygon being added.
type pathStatus int

const (
	statusInitial pathStatus = iota
	statusMoveTo
	statusLineTo
	statusClosed
)

// Rasteriser converts polygons into anti-aliased scanlines. Segments are
// clipped by a [VectorClipper], turned into cells by a [CellStore], and
// the sorted cells are swept row by row into a [Scanline].
//
// The caller creates one instance and reuses it for multiple paths.
// Internal buffers grow as needed but never shrink, achieving zero
// allocations in steady state.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM transforms paths passed to AddPath and Fill into device space.
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Clip bounds the output to this device space rectangle. The zero
	// rectangle disables clipping. Changes take effect at the start of
	// the next polygon after a Reset or a sweep.
	Clip rect.Rect

	// FillRule selects the nonzero or even-odd rule.
	FillRule FillRule

	clipper  VectorClipper
	cells    CellStore
	sl       ScanlineAA
	coverage []float32

	startX, startY int
	status         pathStatus
	started        bool
	scanY          int
}

// NewRasteriser creates a new Rasteriser with the given clip rectangle,
// the identity CTM and the nonzero winding rule.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset resets the Rasteriser to its initial state with the given clip
// rectangle, preserving internal buffer capacity for reuse.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.FillRule = NonZero
	r.resetGeometry()
}

func (r *Rasteriser) resetGeometry() {
	r.cells.Reset()
	r.status = statusInitial
	r.started = false
	r.scanY = 0
}

// begin applies the clip rectangle before the first vertex of a pass.
func (r *Rasteriser) begin() {
	if r.started {
		return
	}
	r.started = true
	if r.Clip == (rect.Rect{}) {
		r.clipper.ResetClipping()
	} else {
		r.clipper.SetClipBox(ClipBoxFromRect(r.Clip))
	}
}

// MoveTo starts a new polygon at (x, y), given in subpixel device
// coordinates. The previous polygon is closed.
func (r *Rasteriser) MoveTo(x, y int) {
	if r.cells.Sorted() {
		r.resetGeometry()
	}
	r.begin()
	r.ClosePolygon()
	r.clipper.MoveTo(x, y)
	r.startX, r.startY = x, y
	r.status = statusMoveTo
}

// LineTo adds a segment from the current point to (x, y), given in
// subpixel device coordinates.
func (r *Rasteriser) LineTo(x, y int) {
	if r.status == statusInitial || r.cells.Sorted() {
		r.MoveTo(x, y)
		return
	}
	r.clipper.LineTo(&r.cells, x, y)
	r.status = statusLineTo
}

// ClosePolygon adds the closing segment of the current polygon, if any.
func (r *Rasteriser) ClosePolygon() {
	if r.status == statusLineTo {
		r.clipper.LineTo(&r.cells, r.startX, r.startY)
		r.status = statusClosed
	}
}

// AddPath adds all subpaths of p, transformed by the CTM. Every subpath is
// closed implicitly. If p contains curves, ErrCurveSegment is returned
// and the segments before the curve remain added.
func (r *Rasteriser) AddPath(p path.Path) error {
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			r.MoveTo(r.toDevice(pts[0]))
		case path.CmdLineTo:
			r.LineTo(r.toDevice(pts[0]))
		case path.CmdQuadTo, path.CmdCubeTo:
			return ErrCurveSegment
		case path.CmdClose:
			r.ClosePolygon()
		}
	}
	return nil
}

// toDevice transforms a user space point into subpixel device coordinates.
func (r *Rasteriser) toDevice(v vec.Vec2) (int, int) {
	x := r.CTM[0]*v.X + r.CTM[2]*v.Y + r.CTM[4]
	y := r.CTM[1]*v.X + r.CTM[3]*v.Y + r.CTM[5]
	return Coord(x), Coord(y)
}

// RewindScanlines closes the current polygon and sorts the cells. It
// returns false if there is nothing to sweep.
func (r *Rasteriser) RewindScanlines() bool {
	r.ClosePolygon()
	r.cells.Sort()
	if r.cells.NumCells() == 0 {
		return false
	}
	minX, minY, maxX, maxY := r.cells.Bounds()
	r.scanY = minY
	Logger().Debug("sweep",
		slog.Int("cells", r.cells.NumCells()),
		slog.Int("minX", minX), slog.Int("minY", minY),
		slog.Int("maxX", maxX), slog.Int("maxY", maxY))
	return true
}

// Bounds returns the pixel range touched by the cells. The result is only
// meaningful after RewindScanlines returned true.
func (r *Rasteriser) Bounds() (minX, minY, maxX, maxY int) {
	return r.cells.Bounds()
}

// Sweep fills sl with the spans of the next row which has any coverage.
// It returns false when all rows have been swept. The scanline must have
// been Reset with the x range returned by Bounds.
func (r *Rasteriser) Sweep(sl Scanline) bool {
	if !r.cells.Sorted() {
		return false
	}
	_, _, _, maxY := r.cells.Bounds()
	for r.scanY <= maxY {
		sl.ResetSpans()
		cells := r.cells.RowCells(r.scanY)
		cover := 0
		for i := 0; i < len(cells); {
			x := cells[i].X
			area := cells[i].Area
			cover += cells[i].Cover
			i++

			// merge all cells with the same x
			for i < len(cells) && cells[i].X == x {
				area += cells[i].Area
				cover += cells[i].Cover
				i++
			}

			if area != 0 {
				if alpha := r.calculateAlpha(cover<<(SubpixelShift+1) - area); alpha != 0 {
					sl.AddCell(x, alpha)
				}
				x++
			}

			if i < len(cells) && cells[i].X > x {
				if alpha := r.calculateAlpha(cover << (SubpixelShift + 1)); alpha != 0 {
					sl.AddSpan(x, cells[i].X-x, alpha)
				}
			}
		}

		y := r.scanY
		r.scanY++
		if sl.NumSpans() > 0 {
			sl.Finalize(y)
			return true
		}
	}
	return false
}

// calculateAlpha converts an accumulated area into an 8-bit coverage
// value using the fill rule.
func (r *Rasteriser) calculateAlpha(area int) uint8 {
	cover := abs(area >> (2*SubpixelShift + 1 - aaShift))
	if r.FillRule == EvenOdd {
		cover &= aaMask2
		if cover > aaScale {
			cover = aaScale2 - cover
		}
	}
	return uint8(min(cover, aaMask))
}

// Fill rasterises p, transformed by the CTM, and emits the coverage row
// by row. Coverage values range from 0 (outside) to 1 (inside). The slice
// passed to emit is valid only during the call.
//
// Fill discards any geometry added before.
func (r *Rasteriser) Fill(p path.Path, emit func(y, xMin int, coverage []float32)) error {
	r.resetGeometry()
	if err := r.AddPath(p); err != nil {
		return err
	}
	if !r.RewindScanlines() {
		return nil
	}

	minX, _, maxX, _ := r.cells.Bounds()
	r.sl.Reset(minX, maxX)
	for r.Sweep(&r.sl) {
		for sp := range r.sl.Spans() {
			covers := r.sl.Covers(sp)
			r.coverage = slices.Grow(r.coverage[:0], len(covers))[:len(covers)]
			for i, c := range covers {
				r.coverage[i] = float32(c) / aaMask
			}
			emit(r.sl.Y(), sp.X, r.coverage)
		}
	}
	return nil
}

// Coverage quantisation.
const (
	aaShift  = 8
	aaScale  = 1 << aaShift
	aaMask   = aaScale - 1
	aaScale2 = aaScale * 2
	aaMask2  = aaScale2 - 1
)
