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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// Hairline draws one pixel wide aliased lines. Segments are clipped
// against the clip rectangle, stepped with a [BresenhamInterpolator], and
// the resulting pixels are swept into a [ScanlineBin].
//
// A Hairline is not safe for concurrent use.
type Hairline struct {
	// CTM transforms paths passed to Stroke into device space.
	CTM matrix.Matrix

	// Clip bounds the output to this device space rectangle. The zero
	// rectangle disables clipping.
	Clip rect.Rect

	cells   CellStore
	sl      ScanlineBin
	box     ClipBox // clip box of the current pass, see begin
	clipped bool
	started bool
	x, y    int
	active  bool
	scanY   int
	ones    []float32
}

var _ LineSink = (*Hairline)(nil)

// NewHairline creates a new Hairline renderer with the given clip
// rectangle and the identity CTM.
func NewHairline(clip rect.Rect) *Hairline {
	h := &Hairline{}
	h.Reset(clip)
	return h
}

// Reset discards all pixels and sets a new clip rectangle.
func (h *Hairline) Reset(clip rect.Rect) {
	h.CTM = matrix.Identity
	h.Clip = clip
	h.cells.Reset()
	h.active = false
	h.started = false
	h.scanY = 0
}

// begin converts the clip rectangle before the first vertex of a pass.
// The box is shrunk by one subpixel on the far edges, so that the pixel
// column URx and the pixel row URy are never drawn.
func (h *Hairline) begin() {
	if h.started {
		return
	}
	h.started = true
	h.clipped = h.Clip != (rect.Rect{})
	if h.clipped {
		h.box = ClipBoxFromRect(h.Clip)
		h.box.X2--
		h.box.Y2--
	}
}

// Line draws the segment (x1, y1)–(x2, y2), given in subpixel device
// coordinates, including both end pixels. No clipping is applied.
func (h *Hairline) Line(x1, y1, x2, y2 int) {
	if h.cells.Sorted() {
		h.cells.Reset()
	}
	StepLine(x1, y1, x2, y2, true, h.cells.AddPixel)
}

// MoveTo sets the current point, in subpixel device coordinates. If the
// pixels have been swept, a new pass is started.
func (h *Hairline) MoveTo(x, y int) {
	if h.cells.Sorted() {
		h.cells.Reset()
		h.started = false
	}
	h.begin()
	h.x, h.y = x, y
	h.active = true
}

// LineTo draws a clipped segment from the current point to (x, y).
func (h *Hairline) LineTo(x, y int) {
	if !h.active || h.cells.Sorted() {
		h.MoveTo(x, y)
		return
	}
	x1, y1 := h.x, h.y
	h.x, h.y = x, y

	if !h.clipped {
		h.Line(x1, y1, x, y)
		return
	}
	if pts, n := ClipSegment(x1, y1, x, y, h.box); n == 2 {
		h.Line(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
	}
}

// Stroke draws all segments of p, transformed by the CTM. Closed
// subpaths get their closing segment. If p contains curves,
// ErrCurveSegment is returned.
func (h *Hairline) Stroke(p path.Path) error {
	var startX, startY int
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			startX, startY = h.toDevice(pts[0].X, pts[0].Y)
			h.MoveTo(startX, startY)
		case path.CmdLineTo:
			h.LineTo(h.toDevice(pts[0].X, pts[0].Y))
		case path.CmdQuadTo, path.CmdCubeTo:
			return ErrCurveSegment
		case path.CmdClose:
			if h.active && (h.x != startX || h.y != startY) {
				h.LineTo(startX, startY)
			}
		}
	}
	return nil
}

func (h *Hairline) toDevice(x, y float64) (int, int) {
	m := h.CTM
	return Coord(m[0]*x + m[2]*y + m[4]), Coord(m[1]*x + m[3]*y + m[5])
}

// Rewind sorts the pixels drawn so far and prepares the sweep. It returns
// false if no pixel was drawn.
func (h *Hairline) Rewind() bool {
	h.cells.Sort()
	if h.cells.NumCells() == 0 {
		return false
	}
	minX, minY, maxX, _ := h.cells.Bounds()
	h.sl.Reset(minX, maxX)
	h.scanY = minY
	return true
}

// Sweep fills the internal scanline with the next row containing pixels
// and returns it. The second return value is false when all rows have
// been swept.
func (h *Hairline) Sweep() (*ScanlineBin, bool) {
	if !h.cells.Sorted() {
		return nil, false
	}
	_, _, _, maxY := h.cells.Bounds()
	for h.scanY <= maxY {
		y := h.scanY
		h.scanY++

		cells := h.cells.RowCells(y)
		if len(cells) == 0 {
			continue
		}
		h.sl.ResetSpans()
		lastX := cells[0].X - 1
		for _, c := range cells {
			if c.X == lastX {
				continue
			}
			h.sl.AddCell(c.X, aaMask)
			lastX = c.X
		}
		h.sl.Finalize(y)
		return &h.sl, true
	}
	return nil, false
}

// Draw strokes p and emits the covered pixels row by row. Coverage is
// always 1. The slice passed to emit is valid only during the call.
func (h *Hairline) Draw(p path.Path, emit func(y, xMin int, coverage []float32)) error {
	h.cells.Reset()
	h.active = false
	h.started = false
	if err := h.Stroke(p); err != nil {
		return err
	}
	if !h.Rewind() {
		return nil
	}
	for {
		sl, ok := h.Sweep()
		if !ok {
			break
		}
		for sp := range sl.Spans() {
			for len(h.ones) < sp.Len {
				h.ones = append(h.ones, 1)
			}
			emit(sl.Y(), sp.X, h.ones[:sp.Len])
		}
	}
	return nil
}
