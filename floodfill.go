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
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/clone"
)

// ErrInvalidBuffer is returned by NewPixelBuffer if the buffer geometry is
// inconsistent.
var ErrInvalidBuffer = errors.New("raster: invalid pixel buffer")

// PixelBuffer is a packed pixel buffer. The first three bytes of each
// pixel are the color channels, in an order chosen by the caller.
type PixelBuffer struct {
	Pix           []byte
	Width, Height int
	Stride        int // bytes per row
	BytesPerPixel int
}

// NewPixelBuffer wraps pix as a pixel buffer. An error wrapping
// ErrInvalidBuffer is returned if the geometry does not fit into pix.
func NewPixelBuffer(pix []byte, width, height, stride, bytesPerPixel int) (*PixelBuffer, error) {
	switch {
	case width < 0 || height < 0:
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidBuffer, width, height)
	case bytesPerPixel < 3:
		return nil, fmt.Errorf("%w: %d bytes per pixel", ErrInvalidBuffer, bytesPerPixel)
	case stride < width*bytesPerPixel:
		return nil, fmt.Errorf("%w: stride %d too small for width %d",
			ErrInvalidBuffer, stride, width)
	case height > 0 && len(pix) < (height-1)*stride+width*bytesPerPixel:
		return nil, fmt.Errorf("%w: %d bytes for %d rows of stride %d",
			ErrInvalidBuffer, len(pix), height, stride)
	}
	return &PixelBuffer{
		Pix:           pix,
		Width:         width,
		Height:        height,
		Stride:        stride,
		BytesPerPixel: bytesPerPixel,
	}, nil
}

// PixelBufferFromRGBA returns a pixel buffer sharing the pixels of img.
// Pixel (0, 0) of the buffer is img.Rect.Min.
func PixelBufferFromRGBA(img *image.RGBA) *PixelBuffer {
	b := img.Rect
	return &PixelBuffer{
		Pix:           img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
		Width:         b.Dx(),
		Height:        b.Dy(),
		Stride:        img.Stride,
		BytesPerPixel: 4,
	}
}

// Offset returns the index in Pix of the first byte of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return y*b.Stride + x*b.BytesPerPixel
}

// ColorAt returns the three color channels of pixel (x, y).
func (b *PixelBuffer) ColorAt(x, y int) [3]byte {
	o := b.Offset(x, y)
	return [3]byte(b.Pix[o : o+3])
}

func (b *PixelBuffer) inside(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// MatchRule decides which pixels a flood fill covers and how they are
// painted. The offset is an index into the Pix slice of the buffer.
type MatchRule interface {
	ShouldFill(buf *PixelBuffer, offset int) bool
	Paint(buf *PixelBuffer, offset int)
}

// ExactMatch fills pixels whose color channels are equal to Match.
type ExactMatch struct {
	Match [3]byte
	Fill  [3]byte
}

// NewExactMatch returns a rule matching the current color of pixel (x, y).
func NewExactMatch(buf *PixelBuffer, x, y int, fill [3]byte) *ExactMatch {
	return &ExactMatch{Match: buf.ColorAt(x, y), Fill: fill}
}

// ShouldFill implements [MatchRule].
func (r *ExactMatch) ShouldFill(buf *PixelBuffer, offset int) bool {
	p := buf.Pix[offset : offset+3]
	return p[0] == r.Match[0] && p[1] == r.Match[1] && p[2] == r.Match[2]
}

// Paint implements [MatchRule].
func (r *ExactMatch) Paint(buf *PixelBuffer, offset int) {
	copy(buf.Pix[offset:offset+3], r.Fill[:])
}

// ToleranceMatch fills pixels where every color channel lies within
// Tolerance of the corresponding channel of Match.
type ToleranceMatch struct {
	Match     [3]byte
	Fill      [3]byte
	Tolerance uint8
}

// NewToleranceMatch returns a rule matching colors close to the current
// color of pixel (x, y).
func NewToleranceMatch(buf *PixelBuffer, x, y int, fill [3]byte, tolerance uint8) *ToleranceMatch {
	return &ToleranceMatch{Match: buf.ColorAt(x, y), Fill: fill, Tolerance: tolerance}
}

// ShouldFill implements [MatchRule].
func (r *ToleranceMatch) ShouldFill(buf *PixelBuffer, offset int) bool {
	p := buf.Pix[offset : offset+3]
	tol := int(r.Tolerance)
	for i, c := range r.Match {
		if abs(int(p[i])-int(c)) > tol {
			return false
		}
	}
	return true
}

// Paint implements [MatchRule].
func (r *ToleranceMatch) Paint(buf *PixelBuffer, offset int) {
	copy(buf.Pix[offset:offset+3], r.Fill[:])
}

// Visited marks the pixels painted by a flood fill, in row-major order.
type Visited []bool

// Count returns the number of painted pixels.
func (v Visited) Count() int {
	n := 0
	for _, ok := range v {
		if ok {
			n++
		}
	}
	return n
}

// fillRange is a painted run of pixels whose neighbours above and below
// have not been examined yet.
type fillRange struct {
	x1, x2, y int
}

// floodFill holds the state of one Fill call.
type floodFill struct {
	buf     *PixelBuffer
	rule    MatchRule
	visited Visited
	queue   []fillRange
}

// Fill paints the connected region of pixels around (x, y) which pass
// rule.ShouldFill, and returns the painted pixels. If (x, y) lies outside
// the buffer, nil is returned. If the seed pixel itself does not pass the
// rule, nothing is painted.
func Fill(buf *PixelBuffer, x, y int, rule MatchRule) Visited {
	if !buf.inside(x, y) {
		return nil
	}

	f := &floodFill{
		buf:     buf,
		rule:    rule,
		visited: make(Visited, buf.Width*buf.Height),
	}
	if rule.ShouldFill(buf, buf.Offset(x, y)) {
		f.linearFill(x, y)
		f.run()
	}

	Logger().Debug("flood fill",
		slog.Int("x", x), slog.Int("y", y),
		slog.Int("painted", f.visited.Count()))
	return f.visited
}

// linearFill paints the seed and the maximal run of matching pixels to
// its left and right, and queues the run.
func (f *floodFill) linearFill(x, y int) {
	buf := f.buf
	row := y * buf.Width

	f.paint(x, y)

	left := x - 1
	for left >= 0 && !f.visited[row+left] && f.rule.ShouldFill(buf, buf.Offset(left, y)) {
		f.paint(left, y)
		left--
	}

	right := x + 1
	for right < buf.Width && !f.visited[row+right] && f.rule.ShouldFill(buf, buf.Offset(right, y)) {
		f.paint(right, y)
		right++
	}

	f.queue = append(f.queue, fillRange{x1: left + 1, x2: right - 1, y: y})
}

func (f *floodFill) paint(x, y int) {
	f.rule.Paint(f.buf, f.buf.Offset(x, y))
	f.visited[y*f.buf.Width+x] = true
}

// run processes queued runs until none are left.
func (f *floodFill) run() {
	for head := 0; head < len(f.queue); head++ {
		r := f.queue[head]
		for x := r.x1; x <= r.x2; x++ {
			f.check(x, r.y-1)
			f.check(x, r.y+1)
		}
	}
	f.queue = f.queue[:0]
}

// check starts a new run at (x, y) if the pixel is unvisited and matches.
func (f *floodFill) check(x, y int) {
	if y < 0 || y >= f.buf.Height || f.visited[y*f.buf.Width+x] {
		return
	}
	if f.rule.ShouldFill(f.buf, f.buf.Offset(x, y)) {
		f.linearFill(x, y)
	}
}

// FillImage flood fills a copy of img, starting at the point (x, y) in
// the coordinates of img. The rule receives the copy, whose first three
// channels are red, green and blue, and whose pixel (0, 0) is the top
// left corner of img.
func FillImage(img image.Image, x, y int, rule func(buf *PixelBuffer, x, y int) MatchRule) *image.RGBA {
	res := clone.AsRGBA(img)
	buf := PixelBufferFromRGBA(res)
	b := img.Bounds()
	x -= b.Min.X
	y -= b.Min.Y
	if buf.inside(x, y) {
		Fill(buf, x, y, rule(buf, x, y))
	}
	return res
}
