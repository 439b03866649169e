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
	"math"

	"golang.org/x/exp/constraints"
)

// Vec2i is a point or vector with integer coordinates, usually in
// subpixel units.
type Vec2i struct {
	X, Y int
}

// Add returns a+b.
func (a Vec2i) Add(b Vec2i) Vec2i {
	return Vec2i{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a-b.
func (a Vec2i) Sub(b Vec2i) Vec2i {
	return Vec2i{X: a.X - b.X, Y: a.Y - b.Y}
}

// Mul returns the vector scaled by k.
func (a Vec2i) Mul(k int) Vec2i {
	return Vec2i{X: a.X * k, Y: a.Y * k}
}

// Neg returns -a.
func (a Vec2i) Neg() Vec2i {
	return Vec2i{X: -a.X, Y: -a.Y}
}

// Dot returns the scalar product of a and b.
func (a Vec2i) Dot(b Vec2i) int {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z-component of the cross product a×b.
// The result is positive if b is counter-clockwise from a.
func (a Vec2i) Cross(b Vec2i) int {
	return a.X*b.Y - a.Y*b.X
}

// Length returns the Euclidean length of the vector.
func (a Vec2i) Length() float64 {
	return math.Hypot(float64(a.X), float64(a.Y))
}

// abs returns the absolute value of x.
func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns 1 if b > a and -1 otherwise.
func sign[T constraints.Signed](a, b T) T {
	if b > a {
		return 1
	}
	return -1
}

// iround rounds half away from zero.
func iround(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
