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

// Package card implements scratch-off cards: per-card overlay buffers which
// pointer gestures erase, and the board which reveals a random reward when
// a scratching gesture ends.
//
// Each card moves through Hidden → Scratching → Revealed. Only a board
// reset brings cards back to Hidden, as a new generation of cards. Reveal
// happens on gesture end, however little of the overlay has been removed;
// ClearedFraction is measured for display only.
package card

import (
	"fmt"
	"image"

	"seehuhn.de/go/scratch/pointer"
	"seehuhn.de/go/scratch/reward"
	"seehuhn.de/go/scratch/surface"
)

// State is the reveal state of a card.
type State int

// Card states.
const (
	Hidden State = iota
	Scratching
	Revealed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Scratching:
		return "scratching"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Card is one scratch card of a board.
type Card struct {
	// ID is the index of the card on its board.
	ID int

	State State

	// ClearedFraction is the fraction of the overlay which has been
	// scratched away, as last measured.
	ClearedFraction float64

	// Reward is set exactly once, when the card is revealed.
	Reward *reward.Reward

	surf    surface.Surface
	session pointer.Session
}

// Revealed reports whether the card shows its reward.
func (c *Card) Revealed() bool {
	return c.State == Revealed
}

// Display returns the static reward display of a revealed card, e.g.
// "🪙 +10". It is empty while the card is covered.
func (c *Card) Display() string {
	if c.State != Revealed || c.Reward == nil {
		return ""
	}
	return fmt.Sprintf("%s +%d", c.Reward.Icon, c.Reward.Amount)
}

// Image returns a snapshot of the overlay, or nil once the card has been
// revealed or if no buffer could be allocated.
func (c *Card) Image() image.Image {
	if c.surf == nil {
		return nil
	}
	return c.surf.Image()
}

// release ends any gesture and frees the overlay buffer.
func (c *Card) release() {
	c.session = pointer.Session{}
	if c.surf != nil {
		surface.Release(c.surf)
		c.surf = nil
	}
}
