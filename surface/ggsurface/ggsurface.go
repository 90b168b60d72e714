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

// Package ggsurface implements [surface.Surface] on top of a gogpu/gg
// drawing context. Importing the package registers the "gg" backend.
package ggsurface

import (
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/surface"
)

// BackendName is the name under which the gg backend is registered.
const BackendName = "gg"

// labelSize is the font size of DrawText, in pixels.
const labelSize = 16

func init() {
	surface.Register(BackendName, func(width, height int) (surface.Surface, error) {
		return New(width, height)
	})
}

var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Surface draws through a gg.Context. Erasing is done by rendering the
// shape into a separate coverage mask and scaling the main pixels by it,
// since gg composites source-over only.
type Surface struct {
	ctx  *gg.Context
	mask *gg.Context
}

var (
	_ surface.Surface  = (*Surface)(nil)
	_ surface.Measurer = (*Surface)(nil)
)

// New allocates a transparent surface.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeUnavailable, "cannot allocate a %dx%d gg context", width, height)
	}
	s := &Surface{
		ctx:  gg.NewContext(width, height),
		mask: gg.NewContext(width, height),
	}
	s.ctx.Clear()
	return s, nil
}

// Close releases the gg contexts.
func (s *Surface) Close() error {
	err := s.ctx.Close()
	if merr := s.mask.Close(); err == nil {
		err = merr
	}
	return err
}

// Bounds implements [surface.Surface].
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.ctx.Width(), s.ctx.Height())
}

// Fill implements [surface.Surface].
func (s *Surface) Fill(p surface.Paint) {
	w, h := s.ctx.Width(), s.ctx.Height()
	switch p := p.(type) {
	case surface.Solid:
		s.ctx.ClearWithColor(gg.FromColor(color.NRGBA(p)))
	case surface.LinearGradient:
		brush := gg.NewLinearGradientBrush(p.From.X, p.From.Y, p.To.X, p.To.Y)
		for _, stop := range p.Stops {
			brush.AddColorStop(stop.Offset, gg.FromColor(stop.Color))
		}
		s.ctx.Clear()
		s.ctx.SetFillBrush(brush)
		s.ctx.DrawRectangle(0, 0, float64(w), float64(h))
		s.fill(s.ctx)
	default:
		pix := s.ctx.ResizeTarget()
		for y := range h {
			for x := range w {
				pix.SetPixel(x, y, gg.FromColor(p.ColorAt(float64(x)+0.5, float64(y)+0.5)))
			}
		}
	}
}

// CompositeLine implements [surface.Surface].
func (s *Surface) CompositeLine(seg surface.Segment) {
	if !(seg.Width > 0) {
		return
	}
	if seg.Op == surface.OpDestinationOut {
		s.mask.Clear()
		s.mask.SetRGBA(1, 1, 1, 1)
		s.line(s.mask, seg.From, seg.To, seg.Width)
		s.punch()
		return
	}
	s.ctx.SetColor(seg.Color)
	s.line(s.ctx, seg.From, seg.To, seg.Width)
}

// CompositeCircle implements [surface.Surface].
func (s *Surface) CompositeCircle(center vec.Vec2, radius float64, op surface.Op, c color.NRGBA) {
	if !(radius > 0) {
		return
	}
	if op == surface.OpDestinationOut {
		s.mask.Clear()
		s.mask.SetRGBA(1, 1, 1, 1)
		s.mask.DrawCircle(center.X, center.Y, radius)
		s.fill(s.mask)
		s.punch()
		return
	}
	s.ctx.SetColor(c)
	s.ctx.DrawCircle(center.X, center.Y, radius)
	s.fill(s.ctx)
}

// DrawText implements [surface.Surface], using the Go Regular font.
func (s *Surface) DrawText(lines []string, c color.NRGBA) {
	src, err := fontSource()
	if err != nil {
		scratch.Logger().Warn("gg label font unavailable", "error", err)
		return
	}
	s.ctx.SetFont(src.Face(labelSize))
	s.ctx.SetColor(c)

	const lineHeight = 20
	cx := float64(s.ctx.Width()) / 2
	first := float64(s.ctx.Height())/2 - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		s.ctx.DrawStringAnchored(line, cx, first+float64(i)*lineHeight, 0.5, 0.5)
	}
}

// Image implements [surface.Surface].
func (s *Surface) Image() image.Image {
	if err := s.ctx.FlushGPU(); err != nil {
		scratch.Logger().Warn("gg flush failed", "error", err)
	}
	return s.ctx.Image()
}

// ClearedFraction implements [surface.Measurer] on the live pixels.
func (s *Surface) ClearedFraction() float64 {
	if err := s.ctx.FlushGPU(); err != nil {
		scratch.Logger().Debug("gg flush failed", "error", err)
	}
	w, h := s.ctx.Width(), s.ctx.Height()
	if w*h == 0 {
		return 0
	}
	n := surface.TransparentPixels(s.ctx.ResizeTarget().Data(), 4*w, w, h)
	return float64(n) / float64(w*h)
}

// line strokes a round-capped segment; zero-length segments become dots.
func (s *Surface) line(dc *gg.Context, a, b vec.Vec2, width float64) {
	if a == b {
		dc.DrawCircle(a.X, a.Y, width/2)
		s.fill(dc)
		return
	}
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(a.X, a.Y)
	dc.LineTo(b.X, b.Y)
	if err := dc.Stroke(); err != nil {
		scratch.Logger().Debug("gg stroke failed", "error", err)
	}
}

func (s *Surface) fill(dc *gg.Context) {
	if err := dc.Fill(); err != nil {
		scratch.Logger().Debug("gg fill failed", "error", err)
	}
}

// punch removes main-surface content in proportion to the mask alpha.
func (s *Surface) punch() {
	if err := s.mask.FlushGPU(); err != nil {
		scratch.Logger().Debug("gg mask flush failed", "error", err)
	}
	m := s.mask.ResizeTarget().Data()
	d := s.ctx.ResizeTarget().Data()
	for i := 3; i < len(m); i += 4 {
		k := m[i]
		if k == 0 {
			continue
		}
		keep := 255 - uint32(k)
		for j := i - 3; j <= i; j++ {
			d[j] = uint8((uint32(d[j])*keep + 127) / 255)
		}
	}
}
