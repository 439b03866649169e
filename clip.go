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
	"seehuhn.de/go/geom/rect"
)

// ClipBox is an axis-aligned rectangle with integer bounds. Points on the
// boundary are inside the box. Clipping functions require a normalized box.
type ClipBox struct {
	X1, Y1 int // left, bottom
	X2, Y2 int // right, top
}

// ClipBoxFromRect converts a device space rectangle into a normalized
// clip box in subpixel units.
func ClipBoxFromRect(r rect.Rect) ClipBox {
	return ClipBox{
		X1: Coord(r.LLx),
		Y1: Coord(r.LLy),
		X2: Coord(r.URx),
		Y2: Coord(r.URy),
	}.Normalize()
}

// Rect converts a clip box in subpixel units back to device space.
func (b ClipBox) Rect() rect.Rect {
	return rect.Rect{
		LLx: float64(b.X1) / SubpixelScale,
		LLy: float64(b.Y1) / SubpixelScale,
		URx: float64(b.X2) / SubpixelScale,
		URy: float64(b.Y2) / SubpixelScale,
	}
}

// Normalize returns the box with X1 <= X2 and Y1 <= Y2.
func (b ClipBox) Normalize() ClipBox {
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// IsValid reports whether the box is normalized.
func (b ClipBox) IsValid() bool {
	return b.X1 <= b.X2 && b.Y1 <= b.Y2
}

// Contains reports whether (x, y) lies inside the box or on its boundary.
func (b ClipBox) Contains(x, y int) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

func (b ClipBox) clamp(p Vec2i) Vec2i {
	return Vec2i{
		X: min(max(p.X, b.X1), b.X2),
		Y: min(max(p.Y, b.Y1), b.Y2),
	}
}

// ClipFlags describes on which sides of a clip box a point lies.
//
//	     |        |
//	 0110 | 0010   | 0011
//	      |        |
//	------+--------+------ Y2
//	      |        |
//	 0100 | 0000   | 0001
//	      |        |
//	------+--------+------ Y1
//	      |        |
//	 1100 | 1000   | 1001
//	      |        |
//	      X1       X2
type ClipFlags uint8

// Bits of ClipFlags.
const (
	ClipRight  ClipFlags = 1 << iota // x > X2
	ClipTop                          // y > Y2
	ClipLeft                         // x < X1
	ClipBottom                       // y < Y1

	ClipXClipped = ClipRight | ClipLeft
	ClipYClipped = ClipTop | ClipBottom
)

// ClassifyPoint returns the clipping flags of (x, y) relative to box.
// The two axes are classified independently.
func ClassifyPoint(x, y int, box ClipBox) ClipFlags {
	return ClassifyX(x, box) | ClassifyY(y, box)
}

// ClassifyX returns the horizontal clipping flags of x.
func ClassifyX(x int, box ClipBox) ClipFlags {
	var f ClipFlags
	if x > box.X2 {
		f |= ClipRight
	}
	if x < box.X1 {
		f |= ClipLeft
	}
	return f
}

// ClassifyY returns the vertical clipping flags of y.
func ClassifyY(y int, box ClipBox) ClipFlags {
	var f ClipFlags
	if y > box.Y2 {
		f |= ClipTop
	}
	if y < box.Y1 {
		f |= ClipBottom
	}
	return f
}

// ClipSegment clips the segment (x1, y1)–(x2, y2) to box using the
// Liang-Barsky algorithm. It returns the clipped end points and a count
// of 2, or a count of 0 if nothing of the segment remains.
//
// Segments which are entirely inside the box are returned unchanged.
// Intersection points are computed in floating point and truncated
// towards zero. Truncated points are clamped into the box, so that
// clipping the output again leaves it unchanged.
//
// Axis-parallel segments have their zero delta replaced by ±nearZero,
// with the sign chosen towards the interior of the box. A segment which
// lies exactly on a box edge is thus kept, and a segment which touches
// the box only in a corner is reported as clipped.
func ClipSegment(x1, y1, x2, y2 int, box ClipBox) ([2]Vec2i, int) {
	pts := [2]Vec2i{{X: x1, Y: y1}, {X: x2, Y: y2}}

	f1 := ClassifyPoint(x1, y1, box)
	f2 := ClassifyPoint(x2, y2, box)
	if f1|f2 == 0 {
		return pts, 2
	}
	if f1&f2 != 0 {
		return pts, 0
	}

	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	if dx == 0 {
		if x1 < box.X2 {
			dx = nearZero
		} else {
			dx = -nearZero
		}
	}
	if dy == 0 {
		if y1 < box.Y2 {
			dy = nearZero
		} else {
			dy = -nearZero
		}
	}

	tIn, tOut := 0.0, 1.0
	bounds := [4]struct{ p, q float64 }{
		{-dx, float64(x1 - box.X1)},
		{dx, float64(box.X2 - x1)},
		{-dy, float64(y1 - box.Y1)},
		{dy, float64(box.Y2 - y1)},
	}
	for _, b := range bounds {
		r := b.q / b.p
		if b.p < 0 {
			if r > tOut {
				return pts, 0
			}
			tIn = max(tIn, r)
		} else {
			if r < tIn {
				return pts, 0
			}
			tOut = min(tOut, r)
		}
	}
	if tIn >= tOut {
		return pts, 0
	}

	if tIn > 0 {
		pts[0] = box.clamp(Vec2i{X: x1 + int(tIn*dx), Y: y1 + int(tIn*dy)})
	}
	if tOut < 1 {
		pts[1] = box.clamp(Vec2i{X: x1 + int(tOut*dx), Y: y1 + int(tOut*dy)})
	}
	if pts[0] == pts[1] {
		return pts, 0
	}
	return pts, 2
}

// ClipMovePoint moves the point (x, y), which is an end point of the
// segment (x1, y1)–(x2, y2) with clipping flags f, along the segment onto
// the boundary of box. The result is false if the segment is parallel to
// the edge the point has to be moved to.
func ClipMovePoint(x1, y1, x2, y2 int, box ClipBox, x, y int, f ClipFlags) (int, int, bool) {
	if f&ClipXClipped != 0 {
		if x1 == x2 {
			return x, y, false
		}
		bound := box.X2
		if f&ClipLeft != 0 {
			bound = box.X1
		}
		y = int(float64(bound-x1)*float64(y2-y1)/float64(x2-x1) + float64(y1))
		x = bound
	}

	f = ClassifyY(y, box)
	if f&ClipYClipped != 0 {
		if y1 == y2 {
			return x, y, false
		}
		bound := box.Y2
		if f&ClipBottom != 0 {
			bound = box.Y1
		}
		x = int(float64(bound-y1)*float64(x2-x1)/float64(y2-y1) + float64(x1))
		y = bound
	}
	return x, y, true
}

// ClipResult describes the outcome of [ClipLineSegment].
type ClipResult uint8

// Bits of ClipResult. A zero result means that the segment was
// entirely visible.
const (
	FirstMoved  ClipResult = 1 << iota // the first end point was moved
	SecondMoved                        // the second end point was moved
	Invisible                          // nothing of the segment is visible
)

// ClipLineSegment clips a segment to box by moving the end points which lie
// outside, one at a time, using [ClipMovePoint]. It returns the new end
// points and a description of what was done. A segment which degenerates
// to a single point is reported as invisible.
func ClipLineSegment(x1, y1, x2, y2 int, box ClipBox) (int, int, int, int, ClipResult) {
	f1 := ClassifyPoint(x1, y1, box)
	f2 := ClassifyPoint(x2, y2, box)
	if f1|f2 == 0 {
		return x1, y1, x2, y2, 0
	}

	if f1&ClipXClipped != 0 && f1&ClipXClipped == f2&ClipXClipped {
		return x1, y1, x2, y2, Invisible
	}
	if f1&ClipYClipped != 0 && f1&ClipYClipped == f2&ClipYClipped {
		return x1, y1, x2, y2, Invisible
	}

	tx1, ty1, tx2, ty2 := x1, y1, x2, y2
	var res ClipResult
	var ok bool
	if f1 != 0 {
		x1, y1, ok = ClipMovePoint(tx1, ty1, tx2, ty2, box, x1, y1, f1)
		if !ok || x1 == x2 && y1 == y2 {
			return x1, y1, x2, y2, Invisible
		}
		res |= FirstMoved
	}
	if f2 != 0 {
		x2, y2, ok = ClipMovePoint(tx1, ty1, tx2, ty2, box, x2, y2, f2)
		if !ok || x1 == x2 && y1 == y2 {
			return x1, y1, x2, y2, Invisible
		}
		res |= SecondMoved
	}
	return x1, y1, x2, y2, res
}

// nearZero replaces a zero delta in [ClipSegment], to avoid division by
// zero for axis-parallel segments.
const nearZero = 1e-30
