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

// Package reward implements the reward table of the scratch-card game and
// the uniform random draw from it.
package reward

import (
	"math/rand/v2"

	"seehuhn.de/go/scratch/internal/errors"
)

// Kind classifies a reward.
type Kind string

// Reward kinds of the default table.
const (
	Coin    Kind = "coin"
	Boost   Kind = "boost"
	Heart   Kind = "heart"
	Rainbow Kind = "rainbow"
)

// Reward is one entry of a reward table.
type Reward struct {
	Kind    Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Amount  int    `json:"amount" yaml:"amount" toml:"amount"`
	Icon    string `json:"icon" yaml:"icon" toml:"icon"`
	Message string `json:"message" yaml:"message" toml:"message"`
}

// Table is a list of rewards, each equally likely.
type Table []Reward

// DefaultTable returns the reward table of the game.
func DefaultTable() Table {
	return Table{
		{Kind: Coin, Amount: 10, Icon: "🪙", Message: "Found 10 gold coins! 💰"},
		{Kind: Coin, Amount: 25, Icon: "💎", Message: "Amazing! 25 diamonds discovered! ✨"},
		{Kind: Coin, Amount: 50, Icon: "🌟", Message: "Incredible! 50 star coins! 🌟"},
		{Kind: Boost, Amount: 5, Icon: "⚡", Message: "Energy boost! +5 power-ups! ⚡"},
		{Kind: Heart, Amount: 1, Icon: "❤️", Message: "You found a heart! Wellness +1! 💖"},
		{Kind: Rainbow, Amount: 100, Icon: "🌈", Message: "RAINBOW JACKPOT! 100 coins! 🎉"},
	}
}

// ScratchEncouragements are shown after a card has been revealed.
var ScratchEncouragements = []string{
	"Every scratch reveals something special! ✨",
	"You're amazing at this game! Keep going! 🌟",
	"Your positive energy is bringing good luck! 💫",
	"What a wonderful discovery! You deserve it! 🎊",
	"Your persistence is paying off! 🌈",
	"You're spreading joy with every scratch! 😊",
}

// PaintEncouragements are shown after a drawing has been saved.
var PaintEncouragements = []string{
	"Beautiful work! Your creativity is shining! ✨",
	"Art is a wonderful way to express yourself! 🎨",
	"Keep creating - there's no wrong way to make art! 🌈",
	"Your creative spirit is amazing! 💖",
	"Art helps heal the heart - keep going! 🌟",
}

// Source is a source of uniformly distributed integers.
// *rand.Rand from math/rand/v2 implements it.
type Source interface {
	// IntN returns a value in [0, n). n is positive.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Resolver draws rewards. It keeps no memory of earlier draws.
type Resolver struct {
	src Source
}

// NewResolver returns a resolver using src. If src is nil, the
// automatically seeded global generator of math/rand/v2 is used.
func NewResolver(src Source) *Resolver {
	if src == nil {
		src = globalSource{}
	}
	return &Resolver{src: src}
}

// NewSeeded returns a resolver with a reproducible PCG source.
func NewSeeded(seed uint64) *Resolver {
	return NewResolver(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Resolve returns one entry of t, chosen uniformly at random.
func (r *Resolver) Resolve(t Table) (Reward, error) {
	if len(t) == 0 {
		return Reward{}, errors.New(errors.ErrCodeInvalidInput, "empty reward table")
	}
	return t[r.src.IntN(len(t))], nil
}

// Pick returns one of msgs, chosen uniformly at random, or "" if msgs is
// empty.
func (r *Resolver) Pick(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[r.src.IntN(len(msgs))]
}

// Amounts returns the distinct amounts in t, in table order.
func (t Table) Amounts() []int {
	var out []int
	seen := make(map[int]bool, len(t))
	for _, w := range t {
		if !seen[w.Amount] {
			seen[w.Amount] = true
			out = append(out, w.Amount)
		}
	}
	return out
}
