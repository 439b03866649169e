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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// BoundingRect returns the smallest axis-aligned rectangle containing every
// vertex of p, including the control points of curves. The second return
// value is false if the path has no vertices.
func BoundingRect(p path.Path) (rect.Rect, bool) {
	var bbox rect.Rect
	first := true
	for _, pts := range p {
		for _, pt := range pts {
			if first {
				bbox = rect.Rect{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
				first = false
				continue
			}
			bbox.LLx = min(bbox.LLx, pt.X)
			bbox.LLy = min(bbox.LLy, pt.Y)
			bbox.URx = max(bbox.URx, pt.X)
			bbox.URy = max(bbox.URy, pt.Y)
		}
	}
	return bbox, !first
}

// boundingBox returns the integer bounding box of a list of points.
func boundingBox(pts []Vec2i) (ClipBox, bool) {
	if len(pts) == 0 {
		return ClipBox{}, false
	}
	box := ClipBox{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
	for _, p := range pts[1:] {
		box.X1 = min(box.X1, p.X)
		box.Y1 = min(box.Y1, p.Y)
		box.X2 = max(box.X2, p.X)
		box.Y2 = max(box.Y2, p.Y)
	}
	return box, true
}
