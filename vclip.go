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
)

// LineSink receives line segments in subpixel coordinates.
type LineSink interface {
	Line(x1, y1, x2, y2 int)
}

// VectorClipper clips a polyline against a box while it is being walked.
// Without a clip box, all segments are passed through unchanged.
//
// Parts of a segment which lie left or right of the box are not dropped
// but replaced by segments along the corresponding vertical box edge,
// so that a polygon fill of the forwarded segments produces the correct
// winding numbers inside the box. Parts above or below the box are
// dropped.
//
// A VectorClipper is not safe for concurrent use.
type VectorClipper struct {
	box      ClipBox
	x1, y1   int
	f1       ClipFlags
	clipping bool
}

// SetClipBox enables clipping against box. The box is normalized first.
func (c *VectorClipper) SetClipBox(box ClipBox) {
	c.box = box.Normalize()
	c.clipping = true
	Logger().Debug("clip box set",
		slog.Int("x1", c.box.X1), slog.Int("y1", c.box.Y1),
		slog.Int("x2", c.box.X2), slog.Int("y2", c.box.Y2))
}

// ResetClipping disables clipping. Subsequent segments are forwarded
// unchanged.
func (c *VectorClipper) ResetClipping() {
	c.clipping = false
}

// ClipBox returns the current clip box and whether clipping is enabled.
func (c *VectorClipper) ClipBox() (ClipBox, bool) {
	return c.box, c.clipping
}

// Cursor returns the current point. This is always the last point passed
// to MoveTo or LineTo, regardless of clipping.
func (c *VectorClipper) Cursor() (int, int) {
	return c.x1, c.y1
}

// MoveTo sets the current point.
func (c *VectorClipper) MoveTo(x, y int) {
	c.x1 = x
	c.y1 = y
	if c.clipping {
		c.f1 = ClassifyPoint(x, y, c.box)
	}
}

// LineTo forwards the visible parts of the segment from the current point
// to (x2, y2) to sink, and then makes (x2, y2) the current point.
// Up to three segments are forwarded.
func (c *VectorClipper) LineTo(sink LineSink, x2, y2 int) {
	if !c.clipping {
		sink.Line(c.x1, c.y1, x2, y2)
		c.x1, c.y1 = x2, y2
		return
	}

	f2 := ClassifyPoint(x2, y2, c.box)
	if c.f1&ClipYClipped == f2&ClipYClipped && c.f1&ClipYClipped != 0 {
		// invisible by y
		c.x1, c.y1, c.f1 = x2, y2, f2
		return
	}

	x1, y1, f1 := c.x1, c.y1, c.f1
	box := &c.box
	var y3, y4 int
	var f3, f4 ClipFlags

	switch (f1&ClipXClipped)<<1 | f2&ClipXClipped {
	case 0: // visible by x
		c.lineClipY(sink, x1, y1, x2, y2, f1, f2)

	case 1: // x2 > X2
		y3 = y1 + mulDiv(box.X2-x1, y2-y1, x2-x1)
		f3 = ClassifyY(y3, *box)
		c.lineClipY(sink, x1, y1, box.X2, y3, f1, f3)
		c.lineClipY(sink, box.X2, y3, box.X2, y2, f3, f2)

	case 2: // x1 > X2
		y3 = y1 + mulDiv(box.X2-x1, y2-y1, x2-x1)
		f3 = ClassifyY(y3, *box)
		c.lineClipY(sink, box.X2, y1, box.X2, y3, f1, f3)
		c.lineClipY(sink, box.X2, y3, x2, y2, f3, f2)

	case 3: // x1 > X2 && x2 > X2
		c.lineClipY(sink, box.X2, y1, box.X2, y2, f1, f2)

	case 4: // x2 < X1
		y3 = y1 + mulDiv(box.X1-x1, y2-y1, x2-x1)
		f3 = ClassifyY(y3, *box)
		c.lineClipY(sink, x1, y1, box.X1, y3, f1, f3)
		c.lineClipY(sink, box.X1, y3, box.X1, y2, f3, f2)

	case 6: // x1 > X2 && x2 < X1
		y3 = y1 + mulDiv(box.X2-x1, y2-y1, x2-x1)
		y4 = y1 + mulDiv(box.X1-x1, y2-y1, x2-x1)
		f3 = ClassifyY(y3, *box)
		f4 = ClassifyY(y4, *box)
		c.lineClipY(sink, box.X2, y1, box.X2, y3, f1, f3)
		c.lineClipY(sink, box.X2, y3, box.X1, y4, f3, f4)
		c.lineClipY(sink, box.X1, y4, box.X1, y2, f4, f2)

	case 8: // x1 < X1
		y3 = y1 + mulDiv(box.X1-x1, y2-y1, x2-x1)
		f3 = ClassifyY(y3, *box)
		c.lineClipY(sink, box.X1, y1, box.X1, y3, f1, f3)
		c.lineClipY(sink, box.X1, y3, x2, y2, f3, f2)

	case 9: // x1 < X1 && x2 > X2
		y3 = y1 + mulDiv(box.X1-x1, y2-y1, x2-x1)
		y4 = y1 + mulDiv(box.X2-x1, y2-y1, x2-x1)
		f3 = ClassifyY(y3, *box)
		f4 = ClassifyY(y4, *box)
		c.lineClipY(sink, box.X1, y1, box.X1, y3, f1, f3)
		c.lineClipY(sink, box.X1, y3, box.X2, y4, f3, f4)
		c.lineClipY(sink, box.X2, y4, box.X2, y2, f4, f2)

	case 12: // x1 < X1 && x2 < X1
		c.lineClipY(sink, box.X1, y1, box.X1, y2, f1, f2)
	}

	c.x1, c.y1, c.f1 = x2, y2, f2
}

// lineClipY forwards the part of a segment which lies between the top
// and bottom of the clip box. The segment must already be inside the box
// horizontally; f1 and f2 are the clipping flags of its end points.
func (c *VectorClipper) lineClipY(sink LineSink, x1, y1, x2, y2 int, f1, f2 ClipFlags) {
	f1 &= ClipYClipped
	f2 &= ClipYClipped
	if f1|f2 == 0 {
		sink.Line(x1, y1, x2, y2)
		return
	}
	if f1 == f2 {
		// invisible by y
		return
	}

	tx1, ty1, tx2, ty2 := x1, y1, x2, y2
	switch {
	case f1&ClipBottom != 0:
		tx1 = x1 + mulDiv(c.box.Y1-y1, x2-x1, y2-y1)
		ty1 = c.box.Y1
	case f1&ClipTop != 0:
		tx1 = x1 + mulDiv(c.box.Y2-y1, x2-x1, y2-y1)
		ty1 = c.box.Y2
	}
	switch {
	case f2&ClipBottom != 0:
		tx2 = x1 + mulDiv(c.box.Y1-y1, x2-x1, y2-y1)
		ty2 = c.box.Y1
	case f2&ClipTop != 0:
		tx2 = x1 + mulDiv(c.box.Y2-y1, x2-x1, y2-y1)
		ty2 = c.box.Y2
	}
	sink.Line(tx1, ty1, tx2, ty2)
}

// mulDiv returns a*b/c, rounded to the nearest integer.
func mulDiv(a, b, c int) int {
	return int(math.Round(float64(a) * float64(b) / float64(c)))
}
