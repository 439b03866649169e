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
)

var precisionCases = []TestCase{
	// subpixel positioning
	{
		Name:   "subpixel_offset_00",
		Path:   offsetRectangle(20, 20, 24, 24, 0.0),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "subpixel_offset_25",
		Path:   offsetRectangle(20, 20, 24, 24, 0.25),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "subpixel_offset_50",
		Path:   offsetRectangle(20, 20, 24, 24, 0.5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "subpixel_offset_75",
		Path:   offsetRectangle(20, 20, 24, 24, 0.75),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "subpixel_step_1_256",
		Path:   offsetRectangle(20, 20, 24, 24, 1.0/256),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "thin_line_y_integer",
		Path:   horizontalLineAt(5, 10.0, 59),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "thin_line_y_half",
		Path:   horizontalLineAt(5, 10.5, 59),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "sliver_triangle",
		Path:   triangle(4, 30, 60, 30.1, 4, 30.2),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},

	// large coordinates
	{
		Name:   "large_coord_centered",
		Path:   largeOffsetRectangle(1000, 1000, 20),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "small_shape_large_offset",
		Path:   largeOffsetRectangle(10000, 10000, 2),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "far_outside_clip",
		Path:   triangle(-1e5, -1e5, 1e5, -1e5, 0, 1e5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "float64_precision",
		Path:   float64PrecisionShape(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
}

// offsetRectangle builds a rectangular path with a subpixel offset applied
// to all coordinates.
func offsetRectangle(x1, y1, w, h, offset float64) path.Path {
	return rectangle(x1+offset, y1+offset, x1+w+offset, y1+h+offset)
}

// horizontalLineAt builds a horizontal line segment at a specific y position.
func horizontalLineAt(x1, y, x2 float64) path.Path {
	return polyline(false, pt(x1, y), pt(x2, y))
}

// largeOffsetRectangle builds a square computed around (cx, cy) and then
// translated to the canvas center (32, 32). This tests precision at large
// offsets.
func largeOffsetRectangle(cx, cy, size float64) path.Path {
	dx := 32 - cx
	dy := 32 - cy
	return rectangle(
		cx-size/2+dx, cy-size/2+dy,
		cx+size/2+dx, cy+size/2+dy)
}

// float64PrecisionShape builds a shape using coordinates that require
// full float64 precision to represent accurately.
func float64PrecisionShape() path.Path {
	base := 32.0
	delta1 := 0.123456789012345
	delta2 := 0.123456789012346
	return rectangle(
		base-10+delta1, base-10+delta1,
		base+10+delta2, base+10+delta2)
}
