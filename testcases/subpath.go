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

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var subpathCases = []TestCase{
	{
		Name:   "two_triangles",
		Path:   twoTriangles(16, 32, 48, 32, 12),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "overlapping_rect_nonzero",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "overlapping_rect_evenodd",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "ring_shape",
		Path:   ringShape(32, 32, 25, 12),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "multiple_rings",
		Path:   multipleRings(32, 32),
		Width:  128,
		Height: 128,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "many_small_shapes",
		Path:   manySmallShapes(8, 8),
		Width:  128,
		Height: 128,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "ring_outline",
		Path:   ringShape(32, 32, 25, 12),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
}

// twoTriangles builds two separate, disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) path.Path {
	return concat(
		triangle(cx1, cy1-size, cx1+size, cy1+size, cx1-size, cy1+size),
		triangle(cx2, cy2-size, cx2+size, cy2+size, cx2-size, cy2+size),
	)
}

// overlappingRectangles builds two overlapping rectangles.
func overlappingRectangles(x1a, y1a, x2a, y2a, x1b, y1b, x2b, y2b float64) path.Path {
	return concat(
		rectangle(x1a, y1a, x2a, y2a),
		rectangle(x1b, y1b, x2b, y2b),
	)
}

// ringShape builds a ring (outer rectangle with inner rectangle cutout).
// Both rectangles have the same orientation, so the hole only appears
// with the even-odd rule.
func ringShape(cx, cy, outerSize, innerSize float64) path.Path {
	return concat(
		rectangle(cx-outerSize, cy-outerSize, cx+outerSize, cy+outerSize),
		rectangle(cx-innerSize, cy-innerSize, cx+innerSize, cy+innerSize),
	)
}

// multipleRings builds three separate rings.
func multipleRings(cx, cy float64) path.Path {
	return concat(
		ringShape(cx-30, cy-30, 20, 10),
		ringShape(cx+30, cy-30, 20, 10),
		ringShape(cx, cy+30, 20, 10),
	)
}

// manySmallShapes builds a grid of small triangles (stress test).
func manySmallShapes(rows, cols int) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		const size, spacing = 5.0, 14.0
		for row := range rows {
			for col := range cols {
				cx := 10.0 + float64(col)*spacing
				cy := 10.0 + float64(row)*spacing
				if !moveTo(yield, cx, cy-size) ||
					!lineTo(yield, cx+size, cy+size) ||
					!lineTo(yield, cx-size, cy+size) ||
					!closePath(yield) {
					return
				}
			}
		}
	}
}
