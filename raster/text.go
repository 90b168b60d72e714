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
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/surface"
)

// labelSize is the em size of DrawText, in pixels.
const labelSize = 16

var goRegular = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

// glyph is a positioned glyph of a text line, in font units.
type glyph struct {
	index sfnt.GlyphIndex
	x     float64
}

// DrawText implements [surface.Surface]. The glyph outlines of the Go
// Regular font are filled with the nonzero rule, using a CTM which scales
// font units to pixels.
func (c *Canvas) DrawText(lines []string, col color.NRGBA) {
	f, err := goRegular()
	if err != nil {
		scratch.Logger().Warn("label font unavailable", "error", err)
		return
	}

	// outlines are loaded in font units
	var buf sfnt.Buffer
	upem := f.UnitsPerEm()
	ppem := fixed.I(int(upem))
	scale := labelSize / float64(upem)
	capHeight := float64(labelSize) * 0.7
	if m, err := f.Metrics(&buf, ppem, font.HintingNone); err == nil && m.CapHeight > 0 {
		capHeight = units(m.CapHeight) * scale
	}

	saved := c.r.CTM
	defer func() { c.r.CTM = saved }()

	b := c.img.Rect
	emit := c.spanFunc(surface.OpSourceOver, col)
	first := float64(b.Dy())/2 - float64(c.lineHeight)*float64(len(lines)-1)/2
	for i, line := range lines {
		glyphs, width := layoutLine(f, &buf, line, ppem)
		x0 := (float64(b.Dx()) - width*scale) / 2
		base := first + float64(i*c.lineHeight) + capHeight/2
		for _, g := range glyphs {
			segs, err := f.LoadGlyph(&buf, g.index, ppem, nil)
			if err != nil {
				scratch.Logger().Debug("glyph not loaded", "glyph", g.index, "error", err)
				continue
			}
			c.r.CTM = matrix.Matrix{scale, 0, 0, scale, x0 + g.x*scale, base}
			c.r.FillNonZero(outline(segs), emit)
		}
	}
}

// layoutLine places the glyphs of s along the baseline, applying kerning.
// It returns the glyphs and the advance width of the line, in font units.
func layoutLine(f *sfnt.Font, buf *sfnt.Buffer, s string, ppem fixed.Int26_6) ([]glyph, float64) {
	var glyphs []glyph
	x := 0.0
	prev := sfnt.GlyphIndex(0)
	for _, r := range s {
		idx, err := f.GlyphIndex(buf, r)
		if err != nil {
			continue
		}
		if prev != 0 {
			if k, err := f.Kern(buf, prev, idx, ppem, font.HintingNone); err == nil {
				x += units(k)
			}
		}
		glyphs = append(glyphs, glyph{index: idx, x: x})
		if adv, err := f.GlyphAdvance(buf, idx, ppem, font.HintingNone); err == nil {
			x += units(adv)
		}
		prev = idx
	}
	return glyphs, x
}

// outline converts glyph segments to a path. Segment coordinates are
// already y-down.
func outline(segs sfnt.Segments) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var pts [3]vec.Vec2
		for _, s := range segs {
			var cmd path.Command
			var n int
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				cmd, n = path.CmdMoveTo, 1
			case sfnt.SegmentOpLineTo:
				cmd, n = path.CmdLineTo, 1
			case sfnt.SegmentOpQuadTo:
				cmd, n = path.CmdQuadTo, 2
			case sfnt.SegmentOpCubeTo:
				cmd, n = path.CmdCubeTo, 3
			default:
				continue
			}
			for i := range n {
				pts[i] = vec.Vec2{X: units(s.Args[i].X), Y: units(s.Args[i].Y)}
			}
			if !yield(cmd, pts[:n]) {
				return
			}
		}
	}
}

func units(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
