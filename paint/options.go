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

package paint

import (
	"image/color"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/raster"
	"seehuhn.de/go/scratch/reward"
)

// Mode selects how brush strokes combine with the canvas.
type Mode int

const (
	// Draw paints the brush colour over the canvas.
	Draw Mode = iota

	// Erase clears the canvas to transparency under the brush.
	Erase
)

func (m Mode) String() string {
	if m == Erase {
		return "erase"
	}
	return "draw"
}

// ParseMode converts "draw" or "erase" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "draw":
		return Draw, true
	case "erase":
		return Erase, true
	}
	return Draw, false
}

// Options configure a drawing surface.
type Options struct {
	// Backend is the registered surface backend to allocate from.
	Backend string

	// Background is the opaque colour of a fresh or cleared canvas.
	Background color.NRGBA

	// Palette lists the selectable brush colours. The first entry is the
	// initial colour.
	Palette []color.NRGBA

	// Widths lists the selectable brush widths, in pixels.
	Widths []float64

	// DefaultWidth is the initial brush width; it must be one of Widths.
	DefaultWidth float64

	// ExportPrefix starts the file names written by ExportFile.
	ExportPrefix string

	// Notifier receives export results. Nil means scratch.Discard.
	Notifier scratch.Notifier

	// Resolver picks encouraging messages. Nil means the global source.
	Resolver *reward.Resolver

	// Encouragements are sent after a successful export.
	Encouragements []string

	// ClearMessage is sent by Clear. Empty disables it.
	ClearMessage string
}

// DefaultPalette is the colour palette of the drawing page.
var DefaultPalette = []color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0xFF, 0x00, 0x00, 0xFF}, // red
	{0x00, 0xFF, 0x00, 0xFF}, // lime
	{0x00, 0x00, 0xFF, 0xFF}, // blue
	{0xFF, 0xFF, 0x00, 0xFF}, // yellow
	{0xFF, 0x00, 0xFF, 0xFF}, // magenta
	{0x00, 0xFF, 0xFF, 0xFF}, // cyan
	{0xFF, 0xA5, 0x00, 0xFF}, // orange
	{0x80, 0x00, 0x80, 0xFF}, // purple
	{0xFF, 0xC0, 0xCB, 0xFF}, // pink
	{0xA5, 0x2A, 0x2A, 0xFF}, // brown
	{0x80, 0x80, 0x80, 0xFF}, // grey
	{0x90, 0xEE, 0x90, 0xFF}, // light green
	{0xFF, 0xE4, 0xB5, 0xFF}, // moccasin
	{0xDD, 0xA0, 0xDD, 0xFF}, // plum
}

// DefaultWidths are the brush sizes of the drawing page.
var DefaultWidths = []float64{2, 5, 10, 15, 20}

// DefaultOptions returns the settings of the drawing page.
func DefaultOptions() Options {
	return Options{
		Backend:        raster.BackendName,
		Background:     color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Palette:        DefaultPalette,
		Widths:         DefaultWidths,
		DefaultWidth:   5,
		ExportPrefix:   "mindcare-artwork",
		Encouragements: reward.PaintEncouragements,
		ClearMessage:   "Canvas cleared! Ready for new creativity! 🎨",
	}
}
