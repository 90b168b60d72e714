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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"
)

// BenchmarkFillCircle measures one scratch dab, the hot path of card
// scratching.
func BenchmarkFillCircle(b *testing.B) {
	for _, radius := range []float64{5, 20, 200} {
		b.Run(fmt.Sprintf("r=%g", radius), func(b *testing.B) {
			size := int(2*radius) + 4
			r := NewRasteriser(clipRect(size, size))
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			center := vec.Vec2{X: float64(size) / 2, Y: float64(size) / 2}

			b.ReportAllocs()
			for b.Loop() {
				r.FillCircle(center, radius, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorCircle draws the same discs with x/image/vector.
func BenchmarkVectorCircle(b *testing.B) {
	for _, radius := range []float32{5, 20, 200} {
		b.Run(fmt.Sprintf("r=%g", radius), func(b *testing.B) {
			size := int(2*radius) + 4
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})
			c := float32(size) / 2

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				addVectorCircle(z, c, c, radius)
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkStrokeSegment measures one brush segment as produced by a
// pointer move.
func BenchmarkStrokeSegment(b *testing.B) {
	for _, width := range []float64{2, 5, 20} {
		b.Run(fmt.Sprintf("w=%g", width), func(b *testing.B) {
			r := NewRasteriser(clipRect(800, 600))
			r.Width = width
			emit := func(y, xMin int, coverage []float32) {}
			from := vec.Vec2{X: 100, Y: 100}
			to := vec.Vec2{X: 160, Y: 130}

			b.ReportAllocs()
			for b.Loop() {
				r.StrokeSegment(from, to, emit)
			}
		})
	}
}

// addVectorCircle adds a circle built from cubic Bézier arcs.
func addVectorCircle(z *vector.Rasterizer, cx, cy, r float32) {
	// magic number for circular arc approximation with cubic Bézier
	const k = 0.5522847498
	kr := k * r

	z.MoveTo(cx, cy-r)
	z.CubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	z.CubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	z.CubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	z.CubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	z.ClosePath()
}

// discCoverage estimates the fraction of pixel (x, y) inside the disc by
// sampling an n×n grid.
func discCoverage(x, y int, cx, cy, r float64, n int) float64 {
	inside := 0
	for j := range n {
		for i := range n {
			dx := float64(x) + (float64(i)+0.5)/float64(n) - cx
			dy := float64(y) + (float64(j)+0.5)/float64(n) - cy
			if dx*dx+dy*dy < r*r {
				inside++
			}
		}
	}
	return float64(inside) / float64(n*n)
}

// TestCircleCoverage compares FillCircle and x/image/vector against the
// true disc coverage.
func TestCircleCoverage(t *testing.T) {
	const size = 44
	const cx, cy, radius = size / 2, size / 2, 20
	r := NewRasteriser(clipRect(size, size))
	m := newCoverageMap(size, size)
	r.FillCircle(vec.Vec2{X: cx, Y: cy}, radius, m.emit)

	z := vector.NewRasterizer(size, size)
	addVectorCircle(z, cx, cy, radius)
	ref := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(ref, ref.Bounds(), image.NewUniform(color.Alpha{255}), image.Point{})

	var ours, theirs float64
	for y := range size {
		for x := range size {
			want := discCoverage(x, y, cx, cy, radius, 32)
			ours = max(ours, math.Abs(float64(m.at(x, y))-want))
			theirs = max(theirs, math.Abs(float64(ref.Pix[y*ref.Stride+x])/255-want))
		}
	}
	// the sampled reference is itself off by up to about 1/32
	if ours > 0.2 {
		t.Errorf("FillCircle: largest coverage error %.3f", ours)
	}
	if theirs > 0.3 {
		t.Errorf("x/image/vector: largest coverage error %.3f", theirs)
	}
}
