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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

// JoinFlags records which ends of an [OutlineSegment] carry a join point.
type JoinFlags uint8

const (
	// NoStartJoin is set if the start point of the segment is unused.
	NoStartJoin JoinFlags = 1 << iota

	// NoEndJoin is set if the end point of the segment is unused.
	NoEndJoin
)

// OutlineSegment is one segment of a stroked polyline, ready to be drawn
// by an outline renderer. Start and End are points on the right hand side
// of the segment which bound its outline at the joins: either a bisectrix
// point or the end point moved along the segment normal.
type OutlineSegment struct {
	LineParameters
	Start, End Vec2i
	Flags      JoinFlags
}

// Outline plans the segments of stroked polylines. Segments are
// classified with [NewLineParameters], joins are resolved to bisectrix
// points, and segments longer than [MaxLineLength] are split.
//
// An Outline is not safe for concurrent use.
type Outline struct {
	// CTM transforms paths passed to AddPath into device space.
	CTM matrix.Matrix

	// Join selects how consecutive segments are connected.
	// Miter joins use the bisectrix between segments, round joins
	// use the segment normals, and bevel joins leave the ends open.
	Join graphics.LineJoinStyle

	// Accurate computes the bisectrix for every miter join, even if both
	// segments point into the same diagonal quadrant.
	Accurate bool

	seq  VertexSequence[LineVertex]
	segs []OutlineSegment
}

// NewOutline creates an outline planner with miter joins and the
// identity CTM.
func NewOutline() *Outline {
	return &Outline{
		CTM:  matrix.Identity,
		Join: graphics.LineJoinMiter,
	}
}

// AddPath plans all subpaths of p, transformed by the CTM, and returns the
// segments. Subpaths ending in a close command are planned as closed
// polygons. If p contains curves, ErrCurveSegment is returned together
// with the segments planned so far.
//
// The returned slice is valid until the next call to AddPath or Plan.
func (o *Outline) AddPath(p path.Path) ([]OutlineSegment, error) {
	o.segs = o.segs[:0]
	o.seq.Reset()
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			o.render(false)
			x, y := o.toDevice(pts[0].X, pts[0].Y)
			o.seq.Add(LineVertex{X: x, Y: y})
		case path.CmdLineTo:
			x, y := o.toDevice(pts[0].X, pts[0].Y)
			o.seq.Add(LineVertex{X: x, Y: y})
		case path.CmdQuadTo, path.CmdCubeTo:
			o.render(false)
			return o.segs, ErrCurveSegment
		case path.CmdClose:
			o.render(true)
		}
	}
	o.render(false)
	return o.segs, nil
}

func (o *Outline) toDevice(x, y float64) (int, int) {
	m := o.CTM
	return Coord(m[0]*x + m[2]*y + m[4]), Coord(m[1]*x + m[3]*y + m[5])
}

// Plan closes seq and returns the planned segments of the polyline.
// If closed is true, the last vertex is connected to the first.
//
// The returned slice is valid until the next call to AddPath or Plan.
func (o *Outline) Plan(seq *VertexSequence[LineVertex], closed bool) []OutlineSegment {
	o.segs = o.segs[:0]
	o.plan(seq, closed)
	return o.segs
}

// render plans the vertices collected by AddPath and clears them.
func (o *Outline) render(closed bool) {
	if o.seq.Len() > 0 {
		o.plan(&o.seq, closed)
		o.seq.Reset()
	}
}

// normalStart and normalEnd return the end points of lp moved along the
// segment normal, to the right hand side.
func normalStart(lp LineParameters) (int, int) {
	return lp.X1 + (lp.Y2 - lp.Y1), lp.Y1 - (lp.X2 - lp.X1)
}

func normalEnd(lp LineParameters) (int, int) {
	return lp.X2 + (lp.Y2 - lp.Y1), lp.Y2 - (lp.X2 - lp.X1)
}

func (o *Outline) plan(seq *VertexSequence[LineVertex], closed bool) {
	seq.Close(closed)
	n := seq.Len()
	round := o.Join == graphics.LineJoinRound

	if !closed {
		switch n {
		case 0, 1:
			return
		case 2:
			v0, v1 := seq.At(0), seq.At(1)
			lp := NewLineParameters(v0.X, v0.Y, v1.X, v1.Y, v0.Len)
			sx, sy := normalStart(lp)
			ex, ey := normalEnd(lp)
			o.emit(lp, sx, sy, ex, ey, 0)
			return
		case 3:
			v0, v1, v2 := seq.At(0), seq.At(1), seq.At(2)
			lp1 := NewLineParameters(v0.X, v0.Y, v1.X, v1.Y, v0.Len)
			lp2 := NewLineParameters(v1.X, v1.Y, v2.X, v2.Y, v1.Len)
			sx, sy := normalStart(lp1)
			ex, ey := normalEnd(lp2)
			if round {
				mx1, my1 := normalEnd(lp1)
				mx2, my2 := normalStart(lp2)
				o.emit(lp1, sx, sy, mx1, my1, 0)
				o.emit(lp2, mx2, my2, ex, ey, 0)
			} else {
				bx, by := Bisectrix(lp1, lp2)
				o.emit(lp1, sx, sy, bx, by, 0)
				o.emit(lp2, bx, by, ex, ey, 0)
			}
			return
		}
	} else if n < 3 {
		return
	}

	var w joinWalker
	w.seq = seq
	var prev LineParameters
	var first, last int
	if closed {
		vl, v0, v1, v2 := seq.At(n-1), seq.At(0), seq.At(1), seq.At(2)
		prev = NewLineParameters(vl.X, vl.Y, v0.X, v0.Y, vl.Len)
		w.curr = NewLineParameters(v0.X, v0.Y, v1.X, v1.Y, v0.Len)
		w.next = NewLineParameters(v1.X, v1.Y, v2.X, v2.Y, v1.Len)
		w.idx = 2
		first, last = 0, n
	} else {
		v0, v1, v2, v3 := seq.At(0), seq.At(1), seq.At(2), seq.At(3)
		prev = NewLineParameters(v0.X, v0.Y, v1.X, v1.Y, v0.Len)
		w.curr = NewLineParameters(v1.X, v1.Y, v2.X, v2.Y, v1.Len)
		w.next = NewLineParameters(v2.X, v2.Y, v3.X, v3.Y, v2.Len)
		w.idx = 3
		first, last = 1, n-2
	}

	switch {
	case o.Join == graphics.LineJoinBevel:
		w.flags = NoStartJoin | NoEndJoin
	case o.Join == graphics.LineJoinMiter && o.Accurate:
		w.flags = 0
	default:
		if prev.SameDiagonalQuadrant(w.curr) {
			w.flags |= NoStartJoin
		}
		if w.curr.SameDiagonalQuadrant(w.next) {
			w.flags |= NoEndJoin
		}
	}

	if closed {
		if w.flags&NoStartJoin == 0 && !round {
			w.xb1, w.yb1 = Bisectrix(prev, w.curr)
		}
	} else {
		// the first segment of an open polyline is drawn with both points
		sx, sy := normalStart(prev)
		if round {
			ex, ey := normalEnd(prev)
			o.emit(prev, sx, sy, ex, ey, 0)
		} else {
			w.xb1, w.yb1 = Bisectrix(prev, w.curr)
			o.emit(prev, sx, sy, w.xb1, w.yb1, 0)
		}
	}
	if w.flags&NoEndJoin == 0 && !round {
		w.xb2, w.yb2 = Bisectrix(w.curr, w.next)
	}

	for range last - first {
		o.walk(&w)
	}

	if !closed {
		ex, ey := normalEnd(w.curr)
		if round {
			sx, sy := normalStart(w.curr)
			o.emit(w.curr, sx, sy, ex, ey, 0)
		} else {
			o.emit(w.curr, w.xb1, w.yb1, ex, ey, 0)
		}
	}
}

// joinWalker holds the state while walking the inner segments of a
// polyline.
type joinWalker struct {
	seq        *VertexSequence[LineVertex]
	idx        int
	curr, next LineParameters
	xb1, yb1   int
	xb2, yb2   int
	flags      JoinFlags
}

// walk emits the current segment and advances to the next one.
func (o *Outline) walk(w *joinWalker) {
	if o.Join == graphics.LineJoinRound {
		w.xb1, w.yb1 = normalStart(w.curr)
		w.xb2, w.yb2 = normalEnd(w.curr)
	}
	o.emit(w.curr, w.xb1, w.yb1, w.xb2, w.yb2, w.flags)

	n := w.seq.Len()
	w.idx++
	if w.idx >= n {
		w.idx = 0
	}
	v1 := w.seq.At((w.idx + n - 1) % n)
	v2 := w.seq.At(w.idx)
	w.curr = w.next
	w.next = NewLineParameters(v1.X, v1.Y, v2.X, v2.Y, v1.Len)
	w.xb1, w.yb1 = w.xb2, w.yb2

	switch {
	case o.Join == graphics.LineJoinBevel:
		w.flags = NoStartJoin | NoEndJoin
	case o.Join == graphics.LineJoinMiter && o.Accurate:
		w.flags = 0
		w.xb2, w.yb2 = Bisectrix(w.curr, w.next)
	default:
		w.flags >>= 1
		if w.curr.SameDiagonalQuadrant(w.next) {
			w.flags |= NoEndJoin
		}
		if o.Join == graphics.LineJoinMiter && w.flags&NoEndJoin == 0 {
			w.xb2, w.yb2 = Bisectrix(w.curr, w.next)
		}
	}
}

// emit appends lp with the given join points. Segments longer than
// MaxLineLength are divided; the halves keep the flags of lp and meet at
// the normal point of the midpoint. Used join points closer than half a
// pixel to the line are replaced by the segment normal.
func (o *Outline) emit(lp LineParameters, sx, sy, ex, ey int, flags JoinFlags) {
	if lp.Len > MaxLineLength {
		lp1, lp2 := lp.Divide()
		mx, my := normalEnd(lp1)
		s1x, s1y := sx, sy
		if flags&NoStartJoin == 0 {
			s1x, s1y = (lp.X1+sx)>>1, (lp.Y1+sy)>>1
		}
		e2x, e2y := ex, ey
		if flags&NoEndJoin == 0 {
			e2x, e2y = (lp.X2+ex)>>1, (lp.Y2+ey)>>1
		}
		o.emit(lp1, s1x, s1y, mx, my, flags)
		o.emit(lp2, mx, my, e2x, e2y, flags)
		return
	}

	seg := OutlineSegment{LineParameters: lp, Flags: flags}
	if flags&NoStartJoin == 0 {
		seg.Start.X, seg.Start.Y = FixDegenerateBisectrixStart(lp, sx, sy)
	}
	if flags&NoEndJoin == 0 {
		seg.End.X, seg.End.Y = FixDegenerateBisectrixEnd(lp, ex, ey)
	}
	o.segs = append(o.segs, seg)
}

// OutlineBounds returns the subpixel bounding box of the end points of segs.
func OutlineBounds(segs []OutlineSegment) (ClipBox, bool) {
	pts := make([]Vec2i, 0, 2*len(segs))
	for _, s := range segs {
		pts = append(pts, Vec2i{X: s.X1, Y: s.Y1}, Vec2i{X: s.X2, Y: s.Y2})
	}
	return boundingBox(pts)
}

// LineStepper walks the pixels along the major axis of a segment. The
// minor coordinate is interpolated with a [DDA2]. StepBack exactly
// retraces the steps taken by Step.
type LineStepper struct {
	lp    LineParameters
	li    DDA2
	x, y  int
	count int
	saved []DDA2State // interpolator state before each step taken
}

// NewLineStepper creates a stepper positioned at the first pixel of lp.
func NewLineStepper(lp LineParameters) *LineStepper {
	s := &LineStepper{
		lp: lp,
		x:  lp.X1 >> SubpixelShift,
		y:  lp.Y1 >> SubpixelShift,
	}
	if lp.Vertical {
		s.li = NewDDA2Relative(lineDblHR(lp.X2-lp.X1), lp.DY+1)
		s.count = abs(lp.Y2>>SubpixelShift - s.y)
	} else {
		s.li = NewDDA2Relative(lineDblHR(lp.Y2-lp.Y1), lp.DX+1)
		s.count = abs(lp.X2>>SubpixelShift - s.x)
	}
	return s
}

// Count returns the number of steps from the first to the last pixel.
func (s *LineStepper) Count() int {
	return s.count
}

// Position returns the current pixel.
func (s *LineStepper) Position() (int, int) {
	return s.x, s.y
}

// Step advances by one pixel along the major axis. It returns false once
// the last pixel has been reached.
func (s *LineStepper) Step() bool {
	s.saved = append(s.saved, s.li.Save())
	s.li.Step()
	s.move(s.lp.Inc)
	return len(s.saved) < s.count
}

// StepBack moves back by one pixel along the major axis. It returns false
// once the first pixel has been reached; at the first pixel it does
// nothing. The interpolator state is restored from the state saved by
// Step.
func (s *LineStepper) StepBack() bool {
	n := len(s.saved)
	if n == 0 {
		return false
	}
	s.li.Load(s.saved[n-1])
	s.saved = s.saved[:n-1]
	s.move(-s.lp.Inc)
	return n > 1
}

// move updates the position after the interpolator has changed, with the
// major coordinate changed by inc.
func (s *LineStepper) move(inc int) {
	if s.lp.Vertical {
		s.y += inc
		s.x = (s.lp.X1 + s.li.Y()) >> SubpixelShift
	} else {
		s.x += inc
		s.y = (s.lp.Y1 + s.li.Y()) >> SubpixelShift
	}
}
