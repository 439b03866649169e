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

// DDA interpolates linearly between two values with a fixed-point
// increment. Since the increment is an integer, stepping forward and then
// back by the same number of steps restores the exact starting state.
//
// The increment has fractionShift fractional bits; Y reports values with
// yShift fractional bits.
type DDA struct {
	y     int
	inc   int
	dy    int
	shift uint
}

// NewDDA returns an interpolator from y1 to y2 in count steps.
// The count must be positive and yShift must not exceed fractionShift.
func NewDDA(y1, y2, count int, fractionShift, yShift uint) DDA {
	return DDA{
		y:     y1,
		inc:   ((y2 - y1) << fractionShift) / count,
		shift: fractionShift - yShift,
	}
}

// Step advances by one step.
func (d *DDA) Step() {
	d.dy += d.inc
}

// StepBack goes back by one step.
func (d *DDA) StepBack() {
	d.dy -= d.inc
}

// StepN advances by n steps.
func (d *DDA) StepN(n int) {
	d.dy += d.inc * n
}

// StepBackN goes back by n steps.
func (d *DDA) StepBackN(n int) {
	d.dy -= d.inc * n
}

// Y returns the current value.
func (d *DDA) Y() int {
	return d.y + d.dy>>d.shift
}

// DY returns the accumulated offset from the start value, with
// fractionShift fractional bits.
func (d *DDA) DY() int {
	return d.dy
}

// DDA2 distributes an integer distance over a number of steps without
// accumulating rounding errors. Each step advances by the quotient lft
// and carries the remainder rem in the error term mod; whenever the
// error term becomes positive, one extra unit is added. After count steps
// of an interpolator created by [NewDDA2], Y equals the end value exactly.
type DDA2 struct {
	cnt int
	lft int
	rem int
	mod int
	y   int
}

// DDA2State is a snapshot of the mutable state of a [DDA2].
type DDA2State struct {
	mod, y int
}

// NewDDA2 returns an interpolator from y1 to y2 in count steps.
// It panics if count is not positive.
func NewDDA2(y1, y2, count int) DDA2 {
	d := NewDDA2Forward(y1, y2, count)
	d.mod -= count
	return d
}

// NewDDA2Forward is like [NewDDA2], but the error term starts one full
// step ahead. This is the state of a NewDDA2 interpolator after
// [DDA2.AdjustBackward].
func NewDDA2Forward(y1, y2, count int) DDA2 {
	d := NewDDA2Relative(y2-y1, count)
	d.y = y1
	return d
}

// NewDDA2Relative returns an interpolator from 0 to y in count steps,
// with the error term adjusted like in [NewDDA2Forward].
// It panics if count is not positive.
func NewDDA2Relative(y, count int) DDA2 {
	if count <= 0 {
		panic("raster: DDA2 step count must be positive")
	}
	d := DDA2{
		cnt: count,
		lft: y / count,
		rem: y % count,
	}
	d.mod = d.rem
	if d.mod <= 0 {
		d.mod += count
		d.rem += count
		d.lft--
	}
	return d
}

// Step advances by one step.
func (d *DDA2) Step() {
	d.mod += d.rem
	d.y += d.lft
	if d.mod > 0 {
		d.mod -= d.cnt
		d.y++
	}
}

// StepBack steps backwards with the same quotient and remainder.
// It undoes a Step only if that step carried, i.e. added the extra unit.
// After a Step without carry, StepBack leaves Y one unit below its value
// before that Step. Callers which need to retrace their steps exactly
// use Save and Load.
func (d *DDA2) StepBack() {
	if d.mod <= d.rem {
		d.mod += d.cnt
		d.y--
	}
	d.mod -= d.rem
	d.y -= d.lft
}

// AdjustForward moves the error term one full step forward.
func (d *DDA2) AdjustForward() {
	d.mod -= d.cnt
}

// AdjustBackward moves the error term one full step back.
func (d *DDA2) AdjustBackward() {
	d.mod += d.cnt
}

// Save returns the current state.
func (d *DDA2) Save() DDA2State {
	return DDA2State{mod: d.mod, y: d.y}
}

// Load restores a state obtained from Save.
func (d *DDA2) Load(s DDA2State) {
	d.mod = s.mod
	d.y = s.y
}

// Y returns the current value.
func (d *DDA2) Y() int { return d.y }

// Mod returns the error term.
func (d *DDA2) Mod() int { return d.mod }

// Rem returns the per-step remainder.
func (d *DDA2) Rem() int { return d.rem }

// Lft returns the per-step quotient.
func (d *DDA2) Lft() int { return d.lft }

// BresenhamInterpolator steps along a segment given in subpixel
// coordinates, one whole pixel at a time along the major axis. The minor
// coordinate is interpolated with a [DDA2] in subpixel units.
type BresenhamInterpolator struct {
	x1, y1 int // current pixel, advanced by HStep and VStep
	ver    bool
	length int
	inc    int
	li     DDA2
}

// NewBresenhamInterpolator returns an interpolator for the segment
// (x1, y1)–(x2, y2) in subpixel coordinates.
func NewBresenhamInterpolator(x1, y1, x2, y2 int) *BresenhamInterpolator {
	b := &BresenhamInterpolator{
		x1: x1 >> SubpixelShift,
		y1: y1 >> SubpixelShift,
	}
	x2lr := x2 >> SubpixelShift
	y2lr := y2 >> SubpixelShift
	b.ver = abs(x2lr-b.x1) < abs(y2lr-b.y1)
	if b.ver {
		b.length = abs(y2lr - b.y1)
		b.inc = sign(y1, y2)
		b.li = NewDDA2(x1, x2, max(b.length, 1))
	} else {
		b.length = abs(x2lr - b.x1)
		b.inc = sign(x1, x2)
		b.li = NewDDA2(y1, y2, max(b.length, 1))
	}
	return b
}

// IsVertical reports whether y is the major axis.
func (b *BresenhamInterpolator) IsVertical() bool { return b.ver }

// Len returns the number of pixel steps along the major axis.
func (b *BresenhamInterpolator) Len() int { return b.length }

// Inc returns the step direction along the major axis.
func (b *BresenhamInterpolator) Inc() int { return b.inc }

// HStep advances one pixel along x. Use for horizontal-major segments.
func (b *BresenhamInterpolator) HStep() {
	b.li.Step()
	b.x1 += b.inc
}

// VStep advances one pixel along y. Use for vertical-major segments.
func (b *BresenhamInterpolator) VStep() {
	b.li.Step()
	b.y1 += b.inc
}

// X1 returns the current pixel column of a horizontal-major segment.
func (b *BresenhamInterpolator) X1() int { return b.x1 }

// Y1 returns the current pixel row of a vertical-major segment.
func (b *BresenhamInterpolator) Y1() int { return b.y1 }

// X2 returns the interpolated pixel column of a vertical-major segment.
func (b *BresenhamInterpolator) X2() int { return b.li.Y() >> SubpixelShift }

// Y2 returns the interpolated pixel row of a horizontal-major segment.
func (b *BresenhamInterpolator) Y2() int { return b.li.Y() >> SubpixelShift }

// X2HR returns the interpolated x coordinate in subpixel units.
func (b *BresenhamInterpolator) X2HR() int { return b.li.Y() }

// Y2HR returns the interpolated y coordinate in subpixel units.
func (b *BresenhamInterpolator) Y2HR() int { return b.li.Y() }

// StepLine calls plot for every pixel of the segment (x1, y1)–(x2, y2),
// given in subpixel coordinates. The pixel containing the end point is
// only plotted if last is true.
func StepLine(x1, y1, x2, y2 int, last bool, plot func(x, y int)) {
	b := NewBresenhamInterpolator(x1, y1, x2, y2)
	n := b.Len()
	if n == 0 {
		if last {
			plot(x1>>SubpixelShift, y1>>SubpixelShift)
		}
		return
	}
	if last {
		n++
	}
	if b.IsVertical() {
		for range n {
			plot(b.X2(), b.Y1())
			b.VStep()
		}
	} else {
		for range n {
			plot(b.X1(), b.Y2())
			b.HStep()
		}
	}
}
