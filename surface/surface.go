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

// Package surface defines the raster surface capability shared by the
// drawing and scratch-card surfaces, independent of the rendering backend.
//
// A Surface is a fixed-size RGBA buffer which can be filled, composited
// with round-capped line segments and circles, labelled, and snapshotted
// for export. Backends register themselves by name, see [Register].
package surface

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/vec"
)

// Op is a compositing operator.
type Op int

const (
	// OpSourceOver paints the source colour over existing content.
	OpSourceOver Op = iota

	// OpDestinationOut removes existing content where the shape covers it,
	// leaving transparent pixels.
	OpDestinationOut
)

func (op Op) String() string {
	switch op {
	case OpSourceOver:
		return "source-over"
	case OpDestinationOut:
		return "destination-out"
	default:
		return "unknown"
	}
}

// Segment is a single stroke step between two surface-local points.
// From == To is valid and produces a round dot.
type Segment struct {
	From, To vec.Vec2
	Width    float64
	Op       Op
	Color    color.NRGBA // ignored for OpDestinationOut
}

// Surface is a raster buffer owned by exactly one drawing surface.
// Its size is fixed at creation.
type Surface interface {
	// Bounds returns the buffer rectangle, always anchored at (0, 0).
	Bounds() image.Rectangle

	// Fill replaces every pixel with the paint.
	Fill(p Paint)

	// CompositeLine strokes seg with round caps.
	CompositeLine(seg Segment)

	// CompositeCircle composites a filled circle.
	CompositeCircle(center vec.Vec2, radius float64, op Op, c color.NRGBA)

	// DrawText paints lines of text centred on the surface, one below the
	// other, using source-over.
	DrawText(lines []string, c color.NRGBA)

	// Image returns a snapshot of the current pixels. Later operations on
	// the surface do not affect the returned image.
	Image() image.Image
}
