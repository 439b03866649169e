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
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	var out bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	buf := newTestBuffer(2, 2, grey)
	Fill(buf, 0, 0, NewExactMatch(buf, 0, 0, white))

	msg := out.String()
	if !strings.Contains(msg, "flood fill") || !strings.Contains(msg, "painted=4") {
		t.Errorf("unexpected log output %q", msg)
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
	out.Reset()
	Fill(buf, 0, 0, NewExactMatch(buf, 0, 0, grey))
	if out.Len() != 0 {
		t.Errorf("output after SetLogger(nil): %q", out.String())
	}
}
