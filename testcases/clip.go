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
	"seehuhn.de/go/geom/rect"
)

// clipCases render geometry which crosses the clip rectangle on
// different sides.
var clipCases = []TestCase{
	{
		Name:   "clip_left_right",
		Path:   rectangle(-20, 20, 84, 44),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "clip_top_bottom",
		Path:   rectangle(20, -20, 44, 84),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "clip_inner_box",
		Path:   fivePointStar(32, 32, 30),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Clip:   rect.Rect{LLx: 16, LLy: 16, URx: 48, URy: 48},
	},
	{
		Name:   "clip_inner_box_evenodd",
		Path:   fivePointStar(32, 32, 30),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
		Clip:   rect.Rect{LLx: 16, LLy: 16, URx: 48, URy: 48},
	},
	{
		Name:   "clip_corner_triangle",
		Path:   triangle(-30, 10, 50, -30, 40, 70),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Clip:   rect.Rect{LLx: 4.5, LLy: 4.5, URx: 59.5, URy: 59.5},
	},
	{
		Name:   "clip_fully_outside",
		Path:   rectangle(70, 70, 90, 90),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "clip_surrounding",
		Path:   rectangle(-10, -10, 74, 74),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Clip:   rect.Rect{LLx: 8, LLy: 8, URx: 24, URy: 56},
	},
	{
		Name:   "clip_hairline_crossing",
		Path:   polyline(false, pt(-5, 5), pt(70, 40), pt(10, 80)),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "clip_hairline_box",
		Path:   diamond(32, 32, 30),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
		Clip:   rect.Rect{LLx: 12, LLy: 12, URx: 52, URy: 52},
	},
}
