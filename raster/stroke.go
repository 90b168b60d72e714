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
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// StrokeSegment strokes the segment from a to b using Width and Cap.
//
// The outline is built as a union of convex pieces (a quadrilateral for the
// body plus one piece per cap) which are filled together with the nonzero
// rule. All pieces share one orientation, so overlaps never cancel.
//
// If a == b the stroke is a dot: a disc of diameter Width for round caps,
// nothing otherwise.
func (r *Rasteriser) StrokeSegment(a, b vec.Vec2, emit Emitter) {
	r.outline = r.outline[:0]
	r.polys = r.polys[:0]

	d := r.Width / 2
	if d > 0 {
		if b.Sub(a).Length() < zeroLengthThreshold {
			if r.Cap == graphics.LineCapRound {
				r.addCircle(a, d)
			}
		} else {
			r.addSegment(a, b, d)
			if r.Cap == graphics.LineCapRound {
				r.addCircle(a, d)
				r.addCircle(b, d)
			}
		}
	}
	r.fillOutlines(emit)
}

// addSegment adds the body of the stroke between a and b.
func (r *Rasteriser) addSegment(a, b vec.Vec2, d float64) {
	t := unit(b.Sub(a))
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
	r.addPolygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// addCircle adds a polygonal approximation of a circle, fine enough that
// the error stays below Flatness in device space.
func (r *Rasteriser) addCircle(center vec.Vec2, radius float64) {
	devR := max(r.linear(vec.Vec2{X: radius}).Length(), r.linear(vec.Vec2{Y: radius}).Length())
	n := minCircleVertices
	if devR > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devR)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	// vertices sit slightly outside the circle, so that the polygon has
	// the area of the disc
	theta := 2 * math.Pi / float64(n)
	vr := radius * math.Sqrt(theta/math.Sin(theta))

	start := len(r.outline)
	for i := range n {
		phi := theta * float64(i)
		r.outline = append(r.outline, center.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(vr)))
	}
	r.closePolygon(start)
}

// addPolygon adds a convex polygon to the outline.
func (r *Rasteriser) addPolygon(pts ...vec.Vec2) {
	start := len(r.outline)
	r.outline = append(r.outline, pts...)
	r.closePolygon(start)
}

// closePolygon finishes the polygon starting at outline[start], reversing
// it if necessary so that all polygons have negative signed area.
func (r *Rasteriser) closePolygon(start int) {
	poly := r.outline[start:]
	if len(poly) < 3 {
		r.outline = r.outline[:start]
		return
	}
	a := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	if a > 0 {
		slices.Reverse(poly)
	}
	r.polys = append(r.polys, start)
}

// fillOutlines fills all collected polygons as one shape.
func (r *Rasteriser) fillOutlines(emit Emitter) {
	r.beginShape()
	for i, start := range r.polys {
		end := len(r.outline)
		if i+1 < len(r.polys) {
			end = r.polys[i+1]
		}
		poly := r.outline[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(emit)
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// minCircleVertices is the vertex count of the coarsest circle polygon.
const minCircleVertices = 8
