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

// Package raster implements the geometric core of a 2D rasteriser.
//
// Geometry is expressed in integer subpixel coordinates with
// [SubpixelShift] fractional bits. Segments are clipped against a
// rectangle by a [VectorClipper] or by [ClipSegment], converted into
// coverage cells by a [CellStore], and swept into scanlines of spans.
// [Rasteriser] produces anti-aliased fills, [Hairline] produces aliased
// one pixel wide lines, and [Outline] plans the segments of stroked
// polylines. [Fill] is an independent seed fill over packed pixel
// buffers.
package raster

//go:generate go run ./testcases/export

import (
	"seehuhn.de/go/raster/testcases"
)

// RenderExample renders a test case into a grayscale buffer.
// The buffer is pre-initialized with zeros, in row-major order.
// Each byte represents coverage from 0 (transparent) to 255 (opaque).
func RenderExample(tc testcases.TestCase, buf []byte, width, height, stride int) error {
	emit := func(y, xMin int, coverage []float32) {
		if y < 0 || y >= height {
			return
		}
		row := buf[y*stride:]
		for i, c := range coverage {
			x := xMin + i
			if x < 0 || x >= width {
				continue
			}
			v := int(c*255 + 0.5)
			row[x] = byte(min(int(row[x])+v, 255))
		}
	}

	clip := tc.ClipRect()
	switch op := tc.Op.(type) {
	case testcases.Fill:
		r := NewRasteriser(clip)
		r.CTM = tc.Matrix()
		if op.Rule == testcases.EvenOdd {
			r.FillRule = EvenOdd
		}
		return r.Fill(tc.Path, emit)
	case testcases.Hairline:
		h := NewHairline(clip)
		h.CTM = tc.Matrix()
		return h.Draw(tc.Path, emit)
	}
	return nil
}
