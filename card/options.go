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

package card

import (
	"image/color"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/ledger"
	"seehuhn.de/go/scratch/raster"
	"seehuhn.de/go/scratch/reward"
)

// Options configure a board.
type Options struct {
	// Backend is the registered surface backend for the card buffers.
	Backend string

	// Cards is the number of cards on the board.
	Cards int

	// Width and Height give the size of each card, in pixels.
	Width, Height int

	// Radius is the radius of the area cleared by one scratch.
	Radius float64

	// Overlay holds the colours of the diagonal overlay gradient.
	Overlay []color.NRGBA

	// Label is drawn centred on the overlay, one string per line.
	Label      []string
	LabelColor color.NRGBA

	// Table is the reward table; Resolver draws from it.
	Table    reward.Table
	Resolver *reward.Resolver

	// Ledger is credited with the amount of every revealed reward.
	Ledger ledger.Ledger

	// Notifier receives reward messages and encouragements.
	Notifier       scratch.Notifier
	Encouragements []string

	// ResetMessage is sent when new cards are dealt by Reset. Empty
	// disables it.
	ResetMessage string
}

// DefaultOptions returns the settings of the scratch game: six 200×150
// cards, a scratch radius of 20 and a fresh in-memory ledger holding the
// starting balance.
func DefaultOptions() Options {
	return Options{
		Backend: raster.BackendName,
		Cards:   6,
		Width:   200,
		Height:  150,
		Radius:  20,
		Overlay: []color.NRGBA{
			{0xC0, 0xC0, 0xC0, 0xFF},
			{0xFF, 0xFF, 0xFF, 0xFF},
			{0xE6, 0xE6, 0xE6, 0xFF},
		},
		Label:          []string{"Scratch to", "Reveal!"},
		LabelColor:     color.NRGBA{0x88, 0x88, 0x88, 0xFF},
		Table:          reward.DefaultTable(),
		Ledger:         ledger.NewMemory(ledger.StartingCoins),
		Encouragements: reward.ScratchEncouragements,
		ResetMessage:   "New scratch cards ready! Good luck! 🍀",
	}
}
