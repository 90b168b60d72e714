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
	"context"
	"image/color"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/pointer"
	"seehuhn.de/go/scratch/reward"
	"seehuhn.de/go/scratch/surface"
)

// Board is a set of independent scratch cards, indexed by card ID.
// A Board is not safe for concurrent use.
type Board struct {
	opts       Options
	cards      []*Card
	generation uuid.UUID
}

// NewBoard returns a board holding a first generation of hidden cards.
func NewBoard(opts Options) *Board {
	if opts.Notifier == nil {
		opts.Notifier = scratch.Discard
	}
	if opts.Resolver == nil {
		opts.Resolver = reward.NewResolver(nil)
	}
	b := &Board{opts: opts}
	b.deal()
	return b
}

// Reset discards all cards, including their rewards and any gesture in
// progress, deals a new generation of hidden cards and sends
// Options.ResetMessage.
func (b *Board) Reset(ctx context.Context) {
	for _, c := range b.cards {
		c.release()
	}
	b.deal()
	if b.opts.ResetMessage != "" {
		b.opts.Notifier.Notify(ctx, b.opts.ResetMessage)
	}
}

func (b *Board) deal() {
	b.generation = uuid.New()
	b.cards = make([]*Card, b.opts.Cards)
	for i := range b.cards {
		b.cards[i] = b.newCard(i)
	}
	scratch.Logger().Info("cards dealt", "generation", b.generation, "cards", len(b.cards))
}

// newCard allocates the buffer of card id and paints the overlay.
// If no buffer is available the card still plays, without pixels.
func (b *Board) newCard(id int) *Card {
	c := &Card{ID: id}

	backend, err := surface.Lookup(b.opts.Backend)
	if err == nil {
		c.surf, err = backend(b.opts.Width, b.opts.Height)
	}
	if err != nil {
		c.surf = nil
		scratch.Logger().Warn("card surface unavailable", "card", id, "error", err)
		return c
	}
	c.surf.Fill(surface.DiagonalGradient(b.opts.Width, b.opts.Height, b.opts.Overlay...))
	c.surf.DrawText(b.opts.Label, b.opts.LabelColor)
	return c
}

// Generation identifies the current set of cards.
func (b *Board) Generation() uuid.UUID {
	return b.generation
}

// Len returns the number of cards.
func (b *Board) Len() int {
	return len(b.cards)
}

// CardSize returns the size of each card, in pixels.
func (b *Board) CardSize() (width, height int) {
	return b.opts.Width, b.opts.Height
}

// Card returns the card with the given id.
func (b *Board) Card(id int) (*Card, bool) {
	if id < 0 || id >= len(b.cards) {
		return nil, false
	}
	return b.cards[id], true
}

// Cards returns the cards of the current generation, in id order.
func (b *Board) Cards() []*Card {
	out := make([]*Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Dirty reports whether any card has left the Hidden state, i.e. whether
// dealing new cards would change anything.
func (b *Board) Dirty() bool {
	for _, c := range b.cards {
		if c.State != Hidden {
			return true
		}
	}
	return false
}

// Begin starts a scratching gesture on card id at p. The overlay is not
// touched until the pointer moves.
func (b *Board) Begin(ctx context.Context, id int, p vec.Vec2) {
	c, ok := b.Card(id)
	if !ok || c.State == Revealed {
		scratch.Logger().DebugContext(ctx, "gesture on unavailable card ignored", "card", id)
		return
	}
	c.State = Scratching
	c.session = pointer.Session{Active: true, Last: p}
}

// Scratch clears a disc around p on card id. It is ignored unless a
// gesture begun with Begin is active on the card, and reports whether the
// card was scratched.
func (b *Board) Scratch(id int, p vec.Vec2) bool {
	c, ok := b.Card(id)
	if !ok || c.State == Revealed || !c.session.Active {
		scratch.Logger().Debug("scratch ignored", "card", id, "code", errors.ErrCodeInvalidGesture)
		return false
	}
	c.State = Scratching
	c.session.Last = p
	if c.surf != nil {
		c.surf.CompositeCircle(p, b.opts.Radius, surface.OpDestinationOut, color.NRGBA{})
		c.ClearedFraction = max(c.ClearedFraction, surface.Cleared(c.surf))
	}
	return true
}

// End finishes the gesture on card id and finalizes the card. It does
// nothing if no gesture is active on the card.
func (b *Board) End(ctx context.Context, id int) {
	c, ok := b.Card(id)
	if !ok || !c.session.Active {
		return
	}
	c.session.Active = false
	b.Finalize(ctx, id)
}

// Finalize reveals card id: a reward is drawn, attached to the card and
// credited to the ledger, and the overlay buffer is released. Only a card
// in the Scratching state is finalized; for any other card Finalize is a
// no-op and reports false.
func (b *Board) Finalize(ctx context.Context, id int) (reward.Reward, bool) {
	c, ok := b.Card(id)
	if !ok || c.State != Scratching {
		scratch.Logger().DebugContext(ctx, "finalize ignored", "card", id)
		return reward.Reward{}, false
	}

	w, err := b.opts.Resolver.Resolve(b.opts.Table)
	if err != nil {
		scratch.Logger().WarnContext(ctx, "no reward for card", "card", id, "error", err)
		return reward.Reward{}, false
	}
	c.Reward = &w
	c.State = Revealed
	c.release()
	scratch.Logger().InfoContext(ctx, "card revealed",
		"card", id, "kind", w.Kind, "amount", w.Amount, "cleared", c.ClearedFraction)

	if b.opts.Ledger != nil {
		if err := b.opts.Ledger.AddPoints(ctx, w.Amount); err != nil {
			scratch.Logger().WarnContext(ctx, "ledger update failed", "card", id, "amount", w.Amount, "error", err)
			b.opts.Notifier.Notify(ctx, "Your reward could not be saved right now.")
		}
	}
	b.opts.Notifier.Notify(ctx, w.Message)
	if msg := b.opts.Resolver.Pick(b.opts.Encouragements); msg != "" {
		b.opts.Notifier.Notify(ctx, msg)
	}
	return w, true
}

// Total returns the ledger balance, or 0 without a ledger.
func (b *Board) Total(ctx context.Context) (int, error) {
	if b.opts.Ledger == nil {
		return 0, nil
	}
	return b.opts.Ledger.Total(ctx)
}

// Target returns a pointer target scratching card id.
func (b *Board) Target(id int) pointer.Target {
	return cardTarget{b: b, id: id}
}

type cardTarget struct {
	b  *Board
	id int
}

func (t cardTarget) Begin(ctx context.Context, p vec.Vec2) { t.b.Begin(ctx, t.id, p) }

func (t cardTarget) Extend(_ context.Context, p vec.Vec2) { t.b.Scratch(t.id, p) }

func (t cardTarget) End(ctx context.Context) { t.b.End(ctx, t.id) }
