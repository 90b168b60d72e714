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

// Package raster converts paths, pointer strokes and circles to
// anti-aliased pixel coverage, and provides the software implementation of
// the [surface.Surface] capability on top of it.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Emitter receives coverage for one scanline: coverage[i] is the fraction
// of pixel (xMin+i, y) covered by the shape. The slice is only valid during
// the call.
type Emitter func(y, xMin int, coverage []float32)

// Rasteriser computes pixel coverage for filled and stroked shapes.
// Buffers are kept between calls, so a Rasteriser should be reused.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip is the device-space output rectangle, with integer coordinates.
	Clip rect.Rect

	// Flatness is the maximum distance, in device pixels, between a curve
	// or arc and its polygonal approximation.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the shape of stroke end points and of single-point strokes.
	// Only round and butt caps are supported.
	Cap graphics.LineCapStyle

	cover   []float32  // per-pixel change of winding (reused as output)
	area    []float32  // per-pixel partial area
	rowUsed []bool     // scanlines touched by at least one edge
	edges   []edge     // edges of the current shape
	outline []vec.Vec2 // polygon vertices, all polygons contiguous
	polys   []int      // start of each polygon in outline

	bboxEmpty    bool // no edge added since beginShape
	bxMin, bxMax float64
	byMin, byMax float64
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, set up
// for round-capped strokes of width 1.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1,
		Cap:      graphics.LineCapRound,
	}
}

// Reset changes the clip rectangle and restores the default parameters,
// keeping the internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapRound
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p path.Path, emit Emitter) {
	r.beginShape()
	var cur, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur, start = pts[0], pts[0]
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, pts[0], pts[1], r.addEdge)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addEdge)
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	// open subpaths are closed implicitly for filling
	if cur != start {
		r.addEdge(cur, start)
	}
	r.scan(emit)
}

// FillCircle fills the disc of the given radius around center.
func (r *Rasteriser) FillCircle(center vec.Vec2, radius float64, emit Emitter) {
	if !(radius > 0) {
		return
	}
	r.outline = r.outline[:0]
	r.polys = r.polys[:0]
	r.addCircle(center, radius)
	r.fillOutlines(emit)
}

func (r *Rasteriser) beginShape() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// toDevice applies the CTM.
func (r *Rasteriser) toDevice(p vec.Vec2) (x, y float64) {
	m := r.CTM
	return m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]
}

// linear applies the CTM without its translation part.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}
}

// addEdge records the edge from p0 to p1 (user space).
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := r.toDevice(p0)
	x1, y1 := r.toDevice(p1)

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxEmpty {
		r.bxMin, r.bxMax = min(x0, x1), max(x0, x1)
		r.byMin, r.byMax = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
		return
	}
	r.bxMin = min(r.bxMin, x0, x1)
	r.bxMax = max(r.bxMax, x0, x1)
	r.byMin = min(r.byMin, y0, y1)
	r.byMax = max(r.byMax, y0, y1)
}

// flattenQuadratic approximates a quadratic Bézier by n line segments,
// where n is chosen from the device-space deviation of the control point.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, q)
		prev = q
	}
}

// flattenCubic approximates a cubic Bézier using Wang's bound.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, q)
		prev = q
	}
}

// Coverage accumulation:
//
// Each edge crossing pixel (x, y) deposits
//
//	cover[x] += s·h        (h: vertical extent inside the pixel row, s: ±1 by direction)
//	area[x]  += s·h·(1-f)  (f: mean horizontal position of the crossing inside the pixel)
//
// and the coverage of pixel x is |Σ_{i<x} cover[i] + area[x]|, clamped to 1.
// Edges to the left of the bounding box are folded into column 0.

// scan converts the collected edges to coverage and calls emit for every
// non-empty scanline.
func (r *Rasteriser) scan(emit Emitter) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bxMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bxMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.byMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.byMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	w, h := xMax-xMin, yMax-yMin
	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowUsed = slices.Grow(r.rowUsed[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		top := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		bot := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := top; y < bot; y++ {
			row := y - yMin
			off := row * w
			e.deposit(y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range h {
		if !r.rowUsed[row] {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrateNonZero(cov, r.area[off:off+w])
		if span, skip := trimZeros(cov); span != nil {
			emit(yMin+row, xMin+skip, span)
		}
	}
}

// deposit adds the contribution of e within scanline y to cover and area,
// which are indexed from xMin.
func (e *edge) deposit(y int, cover, area []float32, xMin, xMax int) {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(top-e.y0)
	xb := e.x0 + e.dxdy*(bot-e.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	put := func(pix int, s0, s1 float64) {
		v := sign * float32(s1-s0)
		if pix < xMin {
			cover[0] += v
			area[0] += v
			return
		}
		if pix >= xMax {
			return
		}
		xm := e.x0 + e.dxdy*((s0+s1)/2-e.y0)
		i := pix - xMin
		cover[i] += v
		area[i] += v * float32(1-(xm-float64(pix)))
	}

	switch {
	case right < xMin:
		put(xMin-1, top, bot)
	case left >= xMax:
		// no effect on visible pixels
	case left == right:
		put(left, top, bot)
	default:
		dydx := 1 / e.dxdy
		for pix := left; pix <= right; pix++ {
			ya := e.y0 + dydx*(float64(pix)-e.x0)
			yb := e.y0 + dydx*(float64(pix+1)-e.x0)
			s0 := max(min(ya, yb), top)
			s1 := min(max(ya, yb), bot)
			if s1 > s0 {
				put(pix, s0, s1)
			}
		}
	}
}

// integrateNonZero turns accumulated cover/area into coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros strips zero coverage from both ends of a scanline.
func trimZeros(cov []float32) (span []float32, skip int) {
	lo, hi := 0, len(cov)
	for lo < hi && cov[lo] == 0 {
		lo++
	}
	for hi > lo && cov[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return cov[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which still contributes coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest stroke segment with a direction.
	zeroLengthThreshold = 1e-10
)
