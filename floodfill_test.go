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
	"image"
	"image/color"
	"testing"
)

// newTestBuffer returns a w×h buffer with 4 bytes per pixel and a stride
// with some padding, filled with c.
func newTestBuffer(w, h int, c [3]byte) *PixelBuffer {
	stride := w*4 + 8
	pix := make([]byte, stride*h)
	buf, err := NewPixelBuffer(pix, w, h, stride, 4)
	if err != nil {
		panic(err)
	}
	for y := range h {
		for x := range w {
			copy(buf.Pix[buf.Offset(x, y):], c[:])
		}
	}
	return buf
}

var (
	white = [3]byte{255, 255, 255}
	grey  = [3]byte{128, 128, 128}
	black = [3]byte{0, 0, 0}
	red   = [3]byte{255, 0, 0}
)

func TestFillUniform(t *testing.T) {
	buf := newTestBuffer(10, 10, grey)

	rule := NewExactMatch(buf, 5, 5, white)
	visited := Fill(buf, 5, 5, rule)
	if len(visited) != 100 || visited.Count() != 100 {
		t.Fatalf("painted %d of %d pixels, want 100", visited.Count(), len(visited))
	}
	for y := range 10 {
		for x := range 10 {
			if c := buf.ColorAt(x, y); c != white {
				t.Fatalf("pixel (%d,%d) has color %v", x, y, c)
			}
		}
	}

	// the padding between rows is untouched
	for y := range 10 {
		o := buf.Offset(10, y)
		for _, b := range buf.Pix[o : o+8] {
			if b != 0 {
				t.Fatalf("row %d: padding overwritten", y)
			}
		}
	}
}

func TestFillRepeat(t *testing.T) {
	buf := newTestBuffer(10, 10, grey)
	rule := NewExactMatch(buf, 5, 5, white)
	Fill(buf, 5, 5, rule)

	// the original rule matches nothing any more
	if n := Fill(buf, 5, 5, rule).Count(); n != 0 {
		t.Errorf("refill with the original rule painted %d pixels", n)
	}

	// a rule matching the new color repaints the same region
	again := NewExactMatch(buf, 5, 5, white)
	if n := Fill(buf, 5, 5, again).Count(); n != 100 {
		t.Errorf("refill with the new color painted %d pixels, want 100", n)
	}
}

func TestFillRegion(t *testing.T) {
	// a black ring separates the inside from the outside
	buf := newTestBuffer(12, 12, grey)
	for i := 2; i <= 9; i++ {
		for _, p := range [][2]int{{i, 2}, {i, 9}, {2, i}, {9, i}} {
			copy(buf.Pix[buf.Offset(p[0], p[1]):], black[:])
		}
	}

	inside := Fill(buf, 5, 5, NewExactMatch(buf, 5, 5, red))
	if n := inside.Count(); n != 36 {
		t.Errorf("inside: painted %d pixels, want 36", n)
	}
	if !inside[5*12+5] || inside[0] || inside[2*12+2] {
		t.Error("wrong pixels marked as visited")
	}

	outside := Fill(buf, 0, 11, NewExactMatch(buf, 0, 11, white))
	if n := outside.Count(); n != 144-64 {
		t.Errorf("outside: painted %d pixels, want %d", n, 144-64)
	}
	if c := buf.ColorAt(5, 5); c != red {
		t.Errorf("inside repainted with %v", c)
	}
	if c := buf.ColorAt(2, 2); c != black {
		t.Errorf("border repainted with %v", c)
	}
}

func TestFillConcave(t *testing.T) {
	// a U shaped region forces runs to be revisited from below
	//
	//   .#.#.
	//   .#.#.
	//   .....
	buf := newTestBuffer(5, 3, grey)
	for y := range 2 {
		copy(buf.Pix[buf.Offset(1, y):], black[:])
		copy(buf.Pix[buf.Offset(3, y):], black[:])
	}
	visited := Fill(buf, 0, 0, NewExactMatch(buf, 0, 0, white))
	if n := visited.Count(); n != 11 {
		t.Errorf("painted %d pixels, want 11", n)
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}, {4, 0}, {2, 2}} {
		if buf.ColorAt(p[0], p[1]) != white {
			t.Errorf("pixel %v not painted", p)
		}
	}
}

func TestFillTolerance(t *testing.T) {
	buf := newTestBuffer(6, 1, grey)
	copy(buf.Pix[buf.Offset(1, 0):], []byte{130, 126, 128})
	copy(buf.Pix[buf.Offset(2, 0):], []byte{138, 128, 128})
	copy(buf.Pix[buf.Offset(4, 0):], []byte{128, 128, 100})

	rule := NewToleranceMatch(buf, 0, 0, red, 10)
	visited := Fill(buf, 0, 0, rule)
	// pixel 4 is too far off and blocks pixel 5
	want := []bool{true, true, true, true, false, false}
	for i, v := range want {
		if visited[i] != v {
			t.Errorf("pixel %d: visited=%t, want %t", i, visited[i], v)
		}
	}

	strict := newTestBuffer(3, 1, grey)
	copy(strict.Pix[strict.Offset(1, 0):], []byte{129, 128, 128})
	if n := Fill(strict, 0, 0, NewToleranceMatch(strict, 0, 0, red, 0)).Count(); n != 1 {
		t.Errorf("zero tolerance: painted %d pixels, want 1", n)
	}
}

func TestFillOutOfBounds(t *testing.T) {
	buf := newTestBuffer(4, 4, grey)
	rule := &ExactMatch{Match: grey, Fill: white}
	for _, seed := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if v := Fill(buf, seed[0], seed[1], rule); v != nil {
			t.Errorf("seed %v: got %d visited entries, want nil", seed, len(v))
		}
	}
	if c := buf.ColorAt(0, 0); c != grey {
		t.Error("buffer modified")
	}
}

func TestNewPixelBuffer(t *testing.T) {
	tests := []struct {
		name              string
		size              int
		w, h, stride, bpp int
		ok                bool
	}{
		{"valid", 40, 3, 4, 10, 3, true},
		{"valid last row short", 39, 3, 4, 10, 3, true},
		{"empty", 0, 0, 0, 0, 4, true},
		{"negative size", 100, -1, 2, 12, 4, false},
		{"two channels", 100, 2, 2, 4, 2, false},
		{"stride too small", 100, 4, 2, 11, 3, false},
		{"buffer too short", 38, 3, 4, 10, 3, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf, err := NewPixelBuffer(make([]byte, test.size), test.w, test.h, test.stride, test.bpp)
			if test.ok {
				if err != nil {
					t.Fatal(err)
				}
				if buf.Width != test.w || buf.Height != test.h {
					t.Errorf("got %dx%d", buf.Width, buf.Height)
				}
				return
			}
			if !errors.Is(err, ErrInvalidBuffer) {
				t.Errorf("got error %v, want ErrInvalidBuffer", err)
			}
		})
	}
}

func TestFillImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			c := color.NRGBA{0, 0, 255, 255}
			if x == 4 {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	res := FillImage(img, 1, 1, func(buf *PixelBuffer, x, y int) MatchRule {
		return NewExactMatch(buf, x, y, red)
	})
	if got := res.RGBAAt(0, 7); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("left half: got %v", got)
	}
	if got := res.RGBAAt(4, 3); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("divider: got %v", got)
	}
	if got := res.RGBAAt(6, 3); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("right half: got %v", got)
	}

	// the source image is not modified
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("source modified: %v", got)
	}

	// seeds outside the image leave the copy unchanged
	res = FillImage(img, -1, 3, func(buf *PixelBuffer, x, y int) MatchRule {
		t.Error("rule requested for an outside seed")
		return nil
	})
	if got := res.RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("outside seed: got %v", got)
	}
}
