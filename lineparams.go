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

import "math"

// Subpixel coordinates. All geometry in this package uses integer
// coordinates with SubpixelShift fractional bits.
const (
	SubpixelShift = 8
	SubpixelScale = 1 << SubpixelShift
	SubpixelMask  = SubpixelScale - 1

	// MaxCoord is the largest coordinate magnitude which can be processed
	// without overflow in the cell and outline code.
	MaxCoord = 1<<28 - 1

	// MaxLineLength is the longest segment, in subpixel units, which is
	// stepped in one piece. Longer segments are divided.
	MaxLineLength = 1 << (SubpixelShift + 10)
)

// Coord converts a device space coordinate to subpixel units.
// This is the only place where floating point values enter the
// fixed-point pipeline.
func Coord(v float64) int {
	return iround(v * SubpixelScale)
}

// lineDblHR converts subpixel units into units with twice the number of
// fractional bits.
func lineDblHR(x int) int {
	return x << SubpixelShift
}

// LineParameters describes a segment in subpixel coordinates together with
// the quantities needed to step along it. Values are never modified after
// construction; derived segments are new values.
type LineParameters struct {
	X1, Y1, X2, Y2 int

	DX, DY int // absolute deltas
	SX, SY int // direction of the x and y steps, ±1

	// Vertical is true if the segment is at least as steep as a diagonal.
	Vertical bool

	// Inc is the step direction along the major axis.
	Inc int

	// Len is the length of the segment, as supplied by the caller.
	Len int

	// Octant combines the signs of the deltas and the Vertical flag:
	// bit 2 is set for SY < 0, bit 1 for SX < 0, and bit 0 for Vertical.
	Octant int
}

// NewLineParameters classifies the segment (x1, y1)–(x2, y2) with the
// given length.
func NewLineParameters(x1, y1, x2, y2, length int) LineParameters {
	lp := LineParameters{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		DX:  abs(x2 - x1),
		DY:  abs(y2 - y1),
		SX:  sign(x1, x2),
		SY:  sign(y1, y2),
		Len: length,
	}
	lp.Vertical = lp.DY >= lp.DX
	if lp.Vertical {
		lp.Inc = lp.SY
	} else {
		lp.Inc = lp.SX
	}
	if lp.SY < 0 {
		lp.Octant |= 4
	}
	if lp.SX < 0 {
		lp.Octant |= 2
	}
	if lp.Vertical {
		lp.Octant |= 1
	}
	return lp
}

// OrthogonalQuadrant returns the quadrant, 0 to 3, of the direction of the
// segment when quadrants are bounded by the coordinate axes.
func (lp LineParameters) OrthogonalQuadrant() int {
	return orthogonalQuadrant[lp.Octant]
}

// DiagonalQuadrant returns the quadrant, 0 to 3, of the direction of the
// segment when quadrants are bounded by the diagonals.
func (lp LineParameters) DiagonalQuadrant() int {
	return diagonalQuadrant[lp.Octant]
}

// SameOrthogonalQuadrant reports whether lp and other point into the same
// orthogonal quadrant.
func (lp LineParameters) SameOrthogonalQuadrant(other LineParameters) bool {
	return orthogonalQuadrant[lp.Octant] == orthogonalQuadrant[other.Octant]
}

// SameDiagonalQuadrant reports whether lp and other point into the same
// diagonal quadrant. Joins between such segments need no bisectrix.
func (lp LineParameters) SameDiagonalQuadrant(other LineParameters) bool {
	return diagonalQuadrant[lp.Octant] == diagonalQuadrant[other.Octant]
}

// Divide splits the segment at the midpoint of its end points. Each half
// gets half the length, rounded down, so that for odd lengths the two
// halves are one unit shorter than the original in total. The direction
// fields are inherited unchanged.
func (lp LineParameters) Divide() (LineParameters, LineParameters) {
	xMid := (lp.X1 + lp.X2) >> 1
	yMid := (lp.Y1 + lp.Y2) >> 1
	half := lp.Len >> 1

	lp1 := lp
	lp1.X2 = xMid
	lp1.Y2 = yMid
	lp1.Len = half
	lp1.DX = abs(lp1.X2 - lp1.X1)
	lp1.DY = abs(lp1.Y2 - lp1.Y1)

	lp2 := lp
	lp2.X1 = xMid
	lp2.Y1 = yMid
	lp2.Len = half
	lp2.DX = abs(lp2.X2 - lp2.X1)
	lp2.DY = abs(lp2.Y2 - lp2.Y1)

	return lp1, lp2
}

// Bisectrix returns a point on the bisector of the join between l1 and l2,
// where l2 starts at the end of l1. The point is always on the right hand
// side of the path. If the bisector is shorter than one pixel, the
// averaged normal of the two segments is used instead.
func Bisectrix(l1, l2 LineParameters) (int, int) {
	k := float64(l2.Len) / float64(l1.Len)
	tx := float64(l2.X2) - float64(l2.X1-l1.X1)*k
	ty := float64(l2.Y2) - float64(l2.Y1-l1.Y1)*k

	// flip the point to the right hand side, if the path turns left
	if float64(l2.X2-l2.X1)*float64(l2.Y1-l1.Y1) <
		float64(l2.Y2-l2.Y1)*float64(l2.X1-l1.X1)+100.0 {
		tx -= (tx - float64(l2.X1)) * 2.0
		ty -= (ty - float64(l2.Y1)) * 2.0
	}

	dx := tx - float64(l2.X1)
	dy := ty - float64(l2.Y1)
	if int(math.Sqrt(dx*dx+dy*dy)) < SubpixelScale {
		x := (l2.X1 + l2.X1 + (l2.Y1 - l1.Y1) + (l2.Y2 - l2.Y1)) >> 1
		y := (l2.Y1 + l2.Y1 - (l2.X1 - l1.X1) - (l2.X2 - l2.X1)) >> 1
		return x, y
	}
	return iround(tx), iround(ty)
}

// FixDegenerateBisectrixStart replaces the start bisectrix point (x, y) of
// lp by the segment normal if the point lies closer than half a pixel to
// the line through lp.
func FixDegenerateBisectrixStart(lp LineParameters, x, y int) (int, int) {
	if lineDistance(lp, x, y) < SubpixelScale/2 {
		return lp.X1 + (lp.Y2 - lp.Y1), lp.Y1 - (lp.X2 - lp.X1)
	}
	return x, y
}

// FixDegenerateBisectrixEnd is like [FixDegenerateBisectrixStart] for the
// end point of lp.
func FixDegenerateBisectrixEnd(lp LineParameters, x, y int) (int, int) {
	if lineDistance(lp, x, y) < SubpixelScale/2 {
		return lp.X2 + (lp.Y2 - lp.Y1), lp.Y2 - (lp.X2 - lp.X1)
	}
	return x, y
}

// lineDistance returns the signed distance of (x, y) from the line through
// lp, positive on the right hand side.
func lineDistance(lp LineParameters, x, y int) int {
	return iround((float64(x-lp.X2)*float64(lp.Y2-lp.Y1) -
		float64(y-lp.Y2)*float64(lp.X2-lp.X1)) / float64(lp.Len))
}

// Quadrant tables, indexed by LineParameters.Octant.
var (
	orthogonalQuadrant = [8]int{0, 0, 1, 1, 3, 3, 2, 2}
	diagonalQuadrant   = [8]int{0, 1, 2, 1, 0, 3, 2, 3}
)
