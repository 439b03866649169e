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
	"iter"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Vertex is implemented by the vertex types stored in a [VertexSequence].
//
// WithDistance returns a copy of the receiver which records the distance
// to next, and reports whether the two vertices are far enough apart to
// both be kept.
type Vertex[V any] interface {
	WithDistance(next V) (V, bool)
}

// VertexSequence is a list of vertices in which consecutive coincident
// vertices are merged. Each vertex records the distance to its successor;
// the distance of the last vertex is only known after Close.
type VertexSequence[V Vertex[V]] struct {
	v []V
}

// Reset removes all vertices, keeping the allocated storage.
func (s *VertexSequence[V]) Reset() {
	s.v = s.v[:0]
}

// Len returns the number of vertices.
func (s *VertexSequence[V]) Len() int {
	return len(s.v)
}

// At returns vertex i.
func (s *VertexSequence[V]) At(i int) V {
	return s.v[i]
}

// All iterates over the vertices in order.
func (s *VertexSequence[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range s.v {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Add appends a vertex. Before the new vertex is stored, the previous
// vertex is checked against its predecessor and dropped if the two
// coincide.
func (s *VertexSequence[V]) Add(val V) {
	if n := len(s.v); n > 1 {
		var keep bool
		s.v[n-2], keep = s.v[n-2].WithDistance(s.v[n-1])
		if !keep {
			s.v = s.v[:n-1]
		}
	}
	s.v = append(s.v, val)
}

// ModifyLast replaces the last vertex. The sequence must not be empty.
func (s *VertexSequence[V]) ModifyLast(val V) {
	s.v = s.v[:len(s.v)-1]
	s.Add(val)
}

// Close finishes the sequence. Trailing coincident vertices are merged;
// if closed is true, vertices coinciding with the first vertex are removed
// from the end and the last vertex records the distance back to the first.
func (s *VertexSequence[V]) Close(closed bool) {
	for len(s.v) > 1 {
		n := len(s.v)
		var keep bool
		s.v[n-2], keep = s.v[n-2].WithDistance(s.v[n-1])
		if keep {
			break
		}
		last := s.v[n-1]
		s.v = s.v[:n-1]
		s.ModifyLast(last)
	}

	if closed {
		for len(s.v) > 1 {
			n := len(s.v)
			var keep bool
			s.v[n-1], keep = s.v[n-1].WithDistance(s.v[0])
			if keep {
				break
			}
			s.v = s.v[:n-1]
		}
	}
}

// VertexDist is a vertex in device space together with the distance to
// the next vertex of its sequence.
type VertexDist struct {
	P    vec.Vec2
	Dist float64
}

// WithDistance implements [Vertex].
func (v VertexDist) WithDistance(next VertexDist) (VertexDist, bool) {
	v.Dist = next.P.Sub(v.P).Length()
	if v.Dist > vertexDistEpsilon {
		return v, true
	}
	v.Dist = 1 / vertexDistEpsilon
	return v, false
}

// LineVertex is a vertex in subpixel coordinates, as used by outline
// rendering. Len is the rounded distance to the next vertex.
type LineVertex struct {
	X, Y int
	Len  int
}

// WithDistance implements [Vertex]. Vertices closer than one and a half
// pixels are treated as coincident.
func (v LineVertex) WithDistance(next LineVertex) (LineVertex, bool) {
	dx := float64(next.X - v.X)
	dy := float64(next.Y - v.Y)
	v.Len = int(math.Hypot(dx, dy) + 0.5)
	return v, v.Len > SubpixelScale+SubpixelScale/2
}

// vertexDistEpsilon is the distance below which two device space vertices
// are considered coincident.
const vertexDistEpsilon = 1e-14
