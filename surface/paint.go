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
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Paint gives the colour used to fill a surface at each point.
type Paint interface {
	ColorAt(x, y float64) color.NRGBA
}

// Solid is a single colour.
type Solid color.NRGBA

// ColorAt implements [Paint].
func (s Solid) ColorAt(_, _ float64) color.NRGBA {
	return color.NRGBA(s)
}

// Stop is a colour stop of a gradient. Offset lies in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient varies colour along the line from From to To.
// Points beyond either end take the colour of the nearest stop.
type LinearGradient struct {
	From, To vec.Vec2
	Stops    []Stop
}

// ColorAt implements [Paint].
func (g LinearGradient) ColorAt(x, y float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	d := g.To.Sub(g.From)
	l2 := d.Dot(d)
	t := 0.0
	if l2 > 0 {
		t = vec.Vec2{X: x, Y: y}.Sub(g.From).Dot(d) / l2
	}
	t = max(0, min(1, t))

	stops := g.Stops
	if !slices.IsSortedFunc(stops, cmpStop) {
		stops = slices.SortedFunc(slices.Values(stops), cmpStop)
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerp(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// DiagonalGradient returns a gradient running from the top-left to the
// bottom-right corner of a w×h surface, with the colours spaced evenly.
func DiagonalGradient(w, h int, colors ...color.NRGBA) LinearGradient {
	g := LinearGradient{To: vec.Vec2{X: float64(w), Y: float64(h)}}
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		g.Stops = append(g.Stops, Stop{Offset: off, Color: c})
	}
	return g
}

func cmpStop(a, b Stop) int {
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
