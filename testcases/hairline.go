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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var hairlineCases = []TestCase{
	{
		Name:   "line_horizontal",
		Path:   horizontalLineAt(8, 32.5, 56),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "line_vertical",
		Path:   polyline(false, pt(32.5, 8), pt(32.5, 56)),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "line_diagonal",
		Path:   polyline(false, pt(8, 8), pt(56, 56)),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "line_shallow",
		Path:   polyline(false, pt(4, 20), pt(60, 27)),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "line_steep",
		Path:   polyline(false, pt(40, 60), pt(33, 4)),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "corner_acute",
		Path:   cornerAngle(10, 40, 40, 40, 30),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "corner_obtuse",
		Path:   cornerAngle(10, 40, 34, 40, 150),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "closed_square",
		Path:   rectangle(12.5, 12.5, 50.5, 50.5),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "zigzag",
		Path:   zigzagPath(6, 32, 58, 18),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
	{
		Name:   "spiral",
		Path:   spiralPath(64, 64, 4, 56, 3),
		Width:  128,
		Height: 128,
		Op:     Hairline{},
	},
	{
		Name:   "star_outline",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
		Op:     Hairline{},
	},
}

// cornerAngle builds a corner path with a specific angle.
// The first segment goes from (x1, y1) to (cx, cy), the second segment
// extends from (cx, cy) at the given angle (in degrees) from horizontal.
func cornerAngle(x1, y1, cx, cy float64, angleDeg float64) path.Path {
	const length = 30.0
	angleRad := angleDeg * math.Pi / 180
	x2 := cx + length*math.Cos(angleRad)
	y2 := cy - length*math.Sin(angleRad) // y grows downwards in device space
	return polyline(false, pt(x1, y1), pt(cx, cy), pt(x2, y2))
}

// zigzagPath builds a zigzag of five segments between x1 and x2.
func zigzagPath(x1, cy, x2, amplitude float64) path.Path {
	const segments = 5
	segWidth := (x2 - x1) / segments
	pts := []vec.Vec2{pt(x1, cy)}
	for i := 1; i <= segments; i++ {
		y := cy + amplitude
		if i%2 == 1 {
			y = cy - amplitude
		}
		pts = append(pts, pt(x1+float64(i)*segWidth, y))
	}
	return polyline(false, pts...)
}

// spiralPath builds an Archimedean spiral from radius rMin to rMax.
func spiralPath(cx, cy, rMin, rMax float64, turns float64) path.Path {
	steps := max(int(turns*32), 8) // 32 segments per turn
	totalAngle := turns * 2 * math.Pi
	rGrowth := (rMax - rMin) / totalAngle

	pts := []vec.Vec2{pt(cx+rMin, cy)}
	for i := 1; i <= steps; i++ {
		angle := float64(i) / float64(steps) * totalAngle
		r := rMin + rGrowth*angle
		pts = append(pts, pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return polyline(false, pts...)
}
