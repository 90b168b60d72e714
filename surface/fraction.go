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

package surface

import (
	"image"
	"io"

	"seehuhn.de/go/scratch"
)

// Measurer is implemented by surfaces which can report their cleared
// fraction without taking a snapshot.
type Measurer interface {
	ClearedFraction() float64
}

// Cleared returns the fraction of fully transparent pixels of s.
func Cleared(s Surface) float64 {
	if m, ok := s.(Measurer); ok {
		return m.ClearedFraction()
	}
	return ClearedFraction(s.Image())
}

// ClearedFraction returns the fraction of pixels in img which are fully
// transparent. Empty images report 0.
func ClearedFraction(img image.Image) float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total <= 0 {
		return 0
	}

	var cleared int
	switch img := img.(type) {
	case *image.RGBA:
		cleared = transparentPixels(img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], img.Stride, b.Dx(), b.Dy())
	case *image.NRGBA:
		cleared = transparentPixels(img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], img.Stride, b.Dx(), b.Dy())
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
					cleared++
				}
			}
		}
	}
	return float64(cleared) / float64(total)
}

// TransparentPixels counts the zero alpha bytes of a w×h block of 4-byte
// pixels, alpha last, starting at pix.
func TransparentPixels(pix []byte, stride, w, h int) int {
	return transparentPixels(pix, stride, w, h)
}

func transparentPixels(pix []byte, stride, w, h int) int {
	n := 0
	for y := range h {
		row := pix[y*stride : y*stride+4*w]
		for x := 3; x < len(row); x += 4 {
			if row[x] == 0 {
				n++
			}
		}
	}
	return n
}

// Release closes s if it holds resources beyond its memory. Errors are
// logged.
func Release(s Surface) {
	c, ok := s.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		scratch.Logger().Warn("closing surface failed", "error", err)
	}
}
