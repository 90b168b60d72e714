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

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/card"
	"seehuhn.de/go/scratch/replay"
	"seehuhn.de/go/scratch/reward"
)

func newScratchCmd(a *app) *cobra.Command {
	var (
		script string
		seed   uint64
		cards  int
	)

	cmd := &cobra.Command{
		Use:   "scratch",
		Short: "Play a board of scratch cards",
		Long: `Play a board of scratch cards.

Without a script every card is scratched once across its middle. The
revealed rewards are credited to the configured ledger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cards > 0 {
				a.cfg.Cards.Count = cards
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runScratch(cmd.Context(), a, cmd.OutOrStdout(), script, seed)
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "pointer script (.json or .yaml)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the reward draw (0 for random)")
	cmd.Flags().IntVarP(&cards, "cards", "n", 0, "number of cards (default from config)")

	return cmd
}

func runScratch(ctx context.Context, a *app, w io.Writer, script string, seed uint64) error {
	logger := loggerFromContext(ctx)

	var sc replay.Script
	if script != "" {
		var err error
		if sc, err = replay.Load(script); err != nil {
			return err
		}
	}

	l, closeLedger, err := a.cfg.OpenLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger()

	opts := a.cfg.CardOptions(l)
	if seed != 0 {
		opts.Resolver = reward.NewSeeded(seed)
	}
	opts.Notifier = scratch.NotifierFunc(func(_ context.Context, msg string) {
		printInfo(w, "%s", msg)
	})
	b := card.NewBoard(opts)
	logger.Debug("board dealt", "generation", b.Generation(), "cards", b.Len())

	if sc != nil {
		pl := replay.NewPlayer(nil, b, replay.DefaultLayout)
		if _, err := pl.Play(ctx, sc); err != nil {
			return err
		}
	} else {
		scratchAll(ctx, b)
	}

	total, err := b.Total(ctx)
	if err != nil {
		printWarning(w, "balance unavailable: %v", err)
	}
	fmt.Fprintln(w, renderBoard(b.Cards(), total))
	return nil
}

// scratchAll drags a pointer across the middle of every card.
func scratchAll(ctx context.Context, b *card.Board) {
	width, height := b.CardSize()
	y := float64(height) / 2
	for id := range b.Len() {
		b.Begin(ctx, id, vec.Vec2{X: 0, Y: y})
		for x := 0; x <= width; x += 10 {
			b.Scratch(id, vec.Vec2{X: float64(x), Y: y})
		}
		b.End(ctx, id)
	}
}
