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

package raster

import (
	"image/color"

	"seehuhn.de/go/scratch/surface"
)

// spanFunc returns an Emitter compositing coverage into the canvas with op.
func (c *Canvas) spanFunc(op surface.Op, col color.NRGBA) Emitter {
	if op == surface.OpDestinationOut {
		return c.destinationOut
	}
	return func(y, xMin int, coverage []float32) {
		c.sourceOver(y, xMin, coverage, col)
	}
}

// sourceOver blends col over the buffer: dst = src·k + dst·(1 - a·k),
// with k the coverage and a the source alpha, in premultiplied space.
func (c *Canvas) sourceOver(y, xMin int, coverage []float32, col color.NRGBA) {
	a := float32(col.A) / 255
	sr := float32(col.R) * a
	sg := float32(col.G) * a
	sb := float32(col.B) * a
	sa := float32(col.A)

	row := c.img.Pix[c.img.PixOffset(xMin, y):]
	for i, k := range coverage {
		p := row[4*i : 4*i+4 : 4*i+4]
		keep := 1 - a*k
		p[0] = to8(sr*k + float32(p[0])*keep)
		p[1] = to8(sg*k + float32(p[1])*keep)
		p[2] = to8(sb*k + float32(p[2])*keep)
		p[3] = to8(sa*k + float32(p[3])*keep)
	}
}

// destinationOut removes buffer content in proportion to the coverage.
func (c *Canvas) destinationOut(y, xMin int, coverage []float32) {
	row := c.img.Pix[c.img.PixOffset(xMin, y):]
	for i, k := range coverage {
		p := row[4*i : 4*i+4 : 4*i+4]
		keep := 1 - k
		for j := range p {
			p[j] = to8(float32(p[j]) * keep)
		}
	}
}

func to8(v float32) uint8 {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
