// seehuhn.de/go/scratch - pointer-driven raster surfaces
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

package ggsurface

import (
	"image/color"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/surface"
)

func rgbaAt(s *Surface, x, y int) color.RGBA {
	return color.RGBAModel.Convert(s.Image().At(x, y)).(color.RGBA)
}

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("got %v, want UNAVAILABLE", err)
	}
}

func TestRegistered(t *testing.T) {
	b, err := surface.Lookup(BackendName)
	if err != nil {
		t.Fatal(err)
	}
	s, err := b(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Bounds().Size(); got.X != 20 || got.Y != 10 {
		t.Errorf("size %v, want 20x10", got)
	}
}

func TestStrokeAndErase(t *testing.T) {
	s, err := New(60, 40)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Fill(surface.Solid{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	if got := rgbaAt(s, 5, 5); got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Fatalf("after fill: %v, want white", got)
	}

	s.CompositeLine(surface.Segment{
		From:  vec.Vec2{X: 10, Y: 20},
		To:    vec.Vec2{X: 50, Y: 20},
		Width: 6,
		Color: color.NRGBA{R: 0xFF, A: 0xFF},
	})
	if got := rgbaAt(s, 30, 20); got.R < 0xF0 || got.G > 0x10 {
		t.Errorf("stroke centre %v, want red", got)
	}

	s.CompositeCircle(vec.Vec2{X: 30, Y: 20}, 8, surface.OpDestinationOut, color.NRGBA{})
	if got := rgbaAt(s, 30, 20); got.A != 0 {
		t.Errorf("erased centre %v, want transparent", got)
	}
	if got := rgbaAt(s, 2, 2); got.A != 0xFF {
		t.Errorf("corner %v, want untouched", got)
	}
}

func TestDot(t *testing.T) {
	s, err := New(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p := vec.Vec2{X: 10, Y: 10}
	s.CompositeLine(surface.Segment{From: p, To: p, Width: 10, Color: color.NRGBA{B: 0xFF, A: 0xFF}})
	if got := rgbaAt(s, 10, 10); got.B < 0xF0 || got.A < 0xF0 {
		t.Errorf("dot centre %v, want blue", got)
	}
	if got := rgbaAt(s, 1, 1); got.A != 0 {
		t.Errorf("outside dot %v, want transparent", got)
	}
}

func TestClearedFraction(t *testing.T) {
	s, err := New(40, 30)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if got := s.ClearedFraction(); got != 1 {
		t.Errorf("new surface: %g, want 1", got)
	}
	s.Fill(surface.Solid{A: 0xFF})
	if got := s.ClearedFraction(); got != 0 {
		t.Errorf("filled surface: %g, want 0", got)
	}

	s.CompositeCircle(vec.Vec2{X: 20, Y: 15}, 10, surface.OpDestinationOut, color.NRGBA{})
	got := surface.Cleared(s)
	if got <= 0 || got >= 1 {
		t.Fatalf("after erase: %g, want strictly between 0 and 1", got)
	}
	if want := surface.ClearedFraction(s.Image()); got != want {
		t.Errorf("live fraction %g, snapshot fraction %g", got, want)
	}
}
