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
	"image"
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/surface"
)

// BackendName is the name under which the software backend is registered.
const BackendName = "software"

func init() {
	surface.Register(BackendName, func(width, height int) (surface.Surface, error) {
		return NewCanvas(width, height)
	})
}

// Canvas is the software implementation of [surface.Surface]: a
// premultiplied RGBA buffer composited from Rasteriser coverage.
type Canvas struct {
	img *image.RGBA
	r   *Rasteriser

	// lineHeight is the baseline distance of DrawText, in pixels.
	lineHeight int
}

var (
	_ surface.Surface  = (*Canvas)(nil)
	_ surface.Measurer = (*Canvas)(nil)
)

// NewCanvas allocates a transparent canvas. Both dimensions must be
// positive.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeUnavailable, "cannot allocate a %dx%d canvas", width, height)
	}
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		r:          NewRasteriser(clip),
		lineHeight: 20,
	}, nil
}

// Bounds implements [surface.Surface].
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// Fill implements [surface.Surface]. Pixels are sampled at their centres.
func (c *Canvas) Fill(p surface.Paint) {
	if s, ok := p.(surface.Solid); ok {
		draw.Draw(c.img, c.img.Rect, image.NewUniform(color.NRGBA(s)), image.Point{}, draw.Src)
		return
	}
	b := c.img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.img.Set(x, y, p.ColorAt(float64(x)+0.5, float64(y)+0.5))
		}
	}
}

// CompositeLine implements [surface.Surface].
func (c *Canvas) CompositeLine(seg surface.Segment) {
	if !(seg.Width > 0) {
		return
	}
	c.r.Width = seg.Width
	c.r.StrokeSegment(seg.From, seg.To, c.spanFunc(seg.Op, seg.Color))
}

// CompositeCircle implements [surface.Surface].
func (c *Canvas) CompositeCircle(center vec.Vec2, radius float64, op surface.Op, col color.NRGBA) {
	c.r.FillCircle(center, radius, c.spanFunc(op, col))
}

// Image implements [surface.Surface].
func (c *Canvas) Image() image.Image {
	snap := image.NewRGBA(c.img.Rect)
	copy(snap.Pix, c.img.Pix)
	return snap
}

// ClearedFraction implements [surface.Measurer] without copying the
// pixels.
func (c *Canvas) ClearedFraction() float64 {
	return surface.ClearedFraction(c.img)
}

// RGBA gives direct access to the pixel buffer. The buffer is owned by the
// canvas and must not be retained across canvas operations.
func (c *Canvas) RGBA() *image.RGBA {
	return c.img
}
