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

package replay

import (
	"context"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/card"
	"seehuhn.de/go/scratch/config"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/paint"
	"seehuhn.de/go/scratch/pointer"
	"seehuhn.de/go/scratch/surface"
)

// Layout places the elements on the page, in page coordinates. Viewport
// positions are page positions minus the scroll offset.
type Layout struct {
	// Canvas is the top-left corner of the drawing canvas.
	Canvas vec.Vec2

	// Board is the top-left corner of the first card. Cards are arranged
	// in rows of Columns cards, separated by Gap pixels.
	Board   vec.Vec2
	Columns int
	Gap     float64
}

// DefaultLayout is a three-column board below a page header.
var DefaultLayout = Layout{
	Canvas:  vec.Vec2{X: 0, Y: 80},
	Board:   vec.Vec2{X: 0, Y: 80},
	Columns: 3,
	Gap:     16,
}

// Stats summarizes a replay.
type Stats struct {
	Steps      int
	Samples    int
	Suppressed int
	Exports    []string
}

// Player feeds scripts to a paint surface and a scratch board.
// Either may be nil, in which case steps addressing it fail.
type Player struct {
	Paint *paint.Surface
	Board *card.Board

	// ExportDir receives exported images. Format is used for export steps
	// without a format.
	ExportDir string
	Format    surface.Format

	// Now stamps export file names; nil means time.Now.
	Now func() time.Time

	layout Layout
	scroll vec.Vec2
	canvas *pointer.Tracker
	cards  map[int]*pointer.Tracker
}

// NewPlayer returns a player for the given surfaces.
func NewPlayer(p *paint.Surface, b *card.Board, layout Layout) *Player {
	if layout.Columns <= 0 {
		layout.Columns = 1
	}
	pl := &Player{
		Paint:  p,
		Board:  b,
		Format: surface.FormatPNG,
		layout: layout,
		cards:  make(map[int]*pointer.Tracker),
	}
	if p != nil {
		pl.canvas = pointer.NewTracker(pointer.ElementFunc(func() vec.Vec2 {
			return pl.layout.Canvas.Sub(pl.scroll)
		}), p)
	}
	return pl
}

// Scroll returns the current scroll offset of the page.
func (pl *Player) Scroll() vec.Vec2 {
	return pl.scroll
}

// cardOrigin returns the page position of card id.
func (pl *Player) cardOrigin(id int) vec.Vec2 {
	w, h := pl.Board.CardSize()
	col := id % pl.layout.Columns
	row := id / pl.layout.Columns
	return pl.layout.Board.Add(vec.Vec2{
		X: float64(col) * (float64(w) + pl.layout.Gap),
		Y: float64(row) * (float64(h) + pl.layout.Gap),
	})
}

func (pl *Player) cardTracker(id int) (*pointer.Tracker, error) {
	if pl.Board == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scratch board")
	}
	if id < 0 || id >= pl.Board.Len() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no card %d", id)
	}
	t, ok := pl.cards[id]
	if !ok {
		t = pointer.NewTracker(pointer.ElementFunc(func() vec.Vec2 {
			return pl.cardOrigin(id).Sub(pl.scroll)
		}), pl.Board.Target(id))
		pl.cards[id] = t
	}
	return t, nil
}

// Play runs sc and stops at the first failing step.
func (pl *Player) Play(ctx context.Context, sc Script) (Stats, error) {
	var st Stats
	for i := range sc {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		if err := pl.step(ctx, &sc[i], &st); err != nil {
			return st, errors.Wrap(errors.ErrCodeInvalidInput, err, "step %d", i)
		}
		st.Steps++
	}
	scratch.Logger().InfoContext(ctx, "replay done",
		"steps", st.Steps, "samples", st.Samples, "exports", len(st.Exports))
	return st, nil
}

func (pl *Player) step(ctx context.Context, s *Step, st *Stats) error {
	if s.ScrollX != nil {
		pl.scroll.X = *s.ScrollX
	}
	if s.ScrollY != nil {
		pl.scroll.Y = *s.ScrollY
	}

	ev, isPointer, err := s.Pointer()
	if err != nil {
		return err
	}
	if isPointer {
		return pl.dispatch(ctx, s, ev, st)
	}

	switch normalize(s.Event) {
	case ActionClear:
		if pl.Paint == nil {
			return errors.New(errors.ErrCodeInvalidInput, "no paint surface")
		}
		pl.Paint.Clear(ctx)
	case ActionReset:
		if pl.Board == nil {
			return errors.New(errors.ErrCodeInvalidInput, "no scratch board")
		}
		pl.Board.Reset(ctx)
	case ActionBrush:
		return pl.brush(s)
	case ActionExport:
		if pl.Paint == nil {
			return errors.New(errors.ErrCodeInvalidInput, "no paint surface")
		}
		f := pl.Format
		if s.Format != "" {
			if f, err = surface.ParseFormat(s.Format); err != nil {
				return err
			}
		}
		now := time.Now
		if pl.Now != nil {
			now = pl.Now
		}
		path, err := pl.Paint.ExportFile(ctx, pl.ExportDir, now(), f)
		if err != nil {
			return err
		}
		st.Exports = append(st.Exports, path)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown event %q", s.Event)
	}
	return nil
}

func (pl *Player) dispatch(ctx context.Context, s *Step, ev pointer.Event, st *Stats) error {
	if s.Target == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s event without target", s.Event)
	}

	var t *pointer.Tracker
	if *s.Target == Paint {
		if pl.canvas == nil {
			return errors.New(errors.ErrCodeInvalidInput, "no paint surface")
		}
		t = pl.canvas
	} else {
		var err error
		if t, err = pl.cardTracker(int(*s.Target)); err != nil {
			return err
		}
	}

	if t.SuppressDefault(ev) {
		st.Suppressed++
	}
	if smp, ok := t.Handle(ctx, ev); ok {
		st.Samples++
		scratch.Logger().DebugContext(ctx, "sample",
			"target", s.Target.String(), "phase", smp.Phase, "x", smp.Point.X, "y", smp.Point.Y)
	}
	return nil
}

func (pl *Player) brush(s *Step) error {
	if pl.Paint == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no paint surface")
	}
	if s.Color != "" {
		c, err := config.ParseColor(s.Color)
		if err != nil {
			return err
		}
		if err := pl.Paint.SetColor(c); err != nil {
			return err
		}
	}
	if s.Width != 0 {
		if err := pl.Paint.SetWidth(s.Width); err != nil {
			return err
		}
	}
	if s.Mode != "" {
		m, ok := paint.ParseMode(normalize(s.Mode))
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown brush mode %q", s.Mode)
		}
		pl.Paint.SetMode(m)
	}
	return nil
}
