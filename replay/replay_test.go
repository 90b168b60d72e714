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
	"image"
	"image/color"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/card"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/paint"
	"seehuhn.de/go/scratch/reward"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func newPaint(t *testing.T) *paint.Surface {
	t.Helper()
	p := paint.New(paint.DefaultOptions())
	p.Initialize(200, 150)
	if !p.Available() {
		t.Fatal("paint surface unavailable")
	}
	return p
}

func newBoard() *card.Board {
	opts := card.DefaultOptions()
	opts.Cards = 2
	opts.Resolver = reward.NewSeeded(3)
	return card.NewBoard(opts)
}

func mustDecode(t *testing.T, src string) Script {
	t.Helper()
	sc, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestDecodeJSON(t *testing.T) {
	sc := mustDecode(t, `[
		{"target": "paint", "event": "down", "x": 1, "y": 2},
		{"target": 1, "event": "move", "device": "touch", "scroll_y": 5},
		{"event": "clear"}
	]`)
	if len(sc) != 3 {
		t.Fatalf("got %d steps", len(sc))
	}
	if *sc[0].Target != Paint || sc[0].X != 1 || sc[0].Y != 2 {
		t.Errorf("step 0 = %+v", sc[0])
	}
	if *sc[1].Target != 1 || sc[1].ScrollY == nil || *sc[1].ScrollY != 5 || sc[1].ScrollX != nil {
		t.Errorf("step 1 = %+v", sc[1])
	}
	if sc[2].Target != nil {
		t.Errorf("step 2 has target %v", *sc[2].Target)
	}
}

func TestDecodeYAML(t *testing.T) {
	sc := mustDecode(t, `
- {target: paint, event: down, x: 1, y: 2}
- {target: 3, event: Leave}
- {event: brush, color: "#FF0000", width: 10, mode: erase}
`)
	if len(sc) != 3 || *sc[1].Target != 3 || sc[2].Mode != "erase" {
		t.Errorf("script = %+v", sc)
	}
	ev, ok, err := sc[1].Pointer()
	if err != nil || !ok || ev.Kind.String() != "leave" {
		t.Errorf("Pointer() = %v, %t, %v", ev, ok, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"no target":      `- {event: down, x: 1, y: 1}`,
		"bad target":     `- {target: canvas, event: down}`,
		"negative card":  `[{"target": -2, "event": "down"}]`,
		"unknown event":  `- {event: undo}`,
		"unknown device": `- {target: paint, event: down, device: pen}`,
		"not a list":     `event: down`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(src))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Decode() error = %v", err)
			}
		})
	}
}

func TestPaintStroke(t *testing.T) {
	p := newPaint(t)
	pl := NewPlayer(p, nil, DefaultLayout)

	sc := mustDecode(t, `
- {target: paint, event: down, x: 20, y: 100}
- {target: paint, event: move, x: 80, y: 100}
- {target: paint, event: up}
- {event: brush, color: "#0000FF", width: 20}
- {target: paint, event: down, x: 20, y: 100, scroll_y: 40}
- {target: paint, event: move, x: 20, y: 100}
- {target: paint, event: leave}
`)
	st, err := pl.Play(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if st.Steps != len(sc) || st.Samples != 6 {
		t.Errorf("stats = %+v", st)
	}

	img := p.Image()
	if got := rgbaAt(img, 50, 20); got != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Errorf("stroke pixel = %v", got)
	}
	// With the page scrolled by 40, the dot lands 40 pixels lower.
	if got := rgbaAt(img, 20, 60); got != (color.RGBA{0, 0, 0xFF, 0xFF}) {
		t.Errorf("dot pixel = %v", got)
	}
	if got := rgbaAt(img, 150, 120); got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("background pixel = %v", got)
	}
}

func TestScratchCard(t *testing.T) {
	b := newBoard()
	pl := NewPlayer(nil, b, DefaultLayout)

	// Card 1 sits at page position (216, 80).
	sc := mustDecode(t, `
- {target: 1, event: down, device: touch, x: 300, y: 130}
- {target: 1, event: move, device: touch, x: 310, y: 130}
- {target: 1, event: move, device: mouse, x: 100, y: 100}
- {target: 1, event: up, device: touch}
`)
	st, err := pl.Play(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if st.Suppressed != 3 || st.Samples != 3 {
		t.Errorf("stats = %+v", st)
	}

	c0, _ := b.Card(0)
	c1, _ := b.Card(1)
	if c0.State != card.Hidden {
		t.Errorf("card 0 state = %v", c0.State)
	}
	if !c1.Revealed() || c1.Reward == nil {
		t.Errorf("card 1 state = %v", c1.State)
	}
}

func TestResetAndClear(t *testing.T) {
	var msgs []string
	note := scratch.NotifierFunc(func(_ context.Context, msg string) {
		msgs = append(msgs, msg)
	})
	popts := paint.DefaultOptions()
	popts.Notifier = note
	p := paint.New(popts)
	p.Initialize(200, 150)
	bopts := card.DefaultOptions()
	bopts.Cards = 2
	bopts.Resolver = reward.NewSeeded(3)
	bopts.Notifier = note
	b := card.NewBoard(bopts)
	pl := NewPlayer(p, b, DefaultLayout)

	gen := b.Generation()
	sc := mustDecode(t, `
- {target: 0, event: down, x: 50, y: 100}
- {target: 0, event: up}
- {event: reset}
- {target: paint, event: down, x: 50, y: 120}
- {target: paint, event: up}
- {event: clear}
`)
	if _, err := pl.Play(context.Background(), sc); err != nil {
		t.Fatal(err)
	}
	if b.Generation() == gen || b.Dirty() {
		t.Error("board was not reset")
	}
	if got := rgbaAt(p.Image(), 50, 40); got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("pixel after clear = %v", got)
	}
	if !slices.Contains(msgs, bopts.ResetMessage) || msgs[len(msgs)-1] != popts.ClearMessage {
		t.Errorf("notifications = %q", msgs)
	}
}

func TestExport(t *testing.T) {
	pl := NewPlayer(newPaint(t), nil, DefaultLayout)
	pl.ExportDir = t.TempDir()
	pl.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	sc := mustDecode(t, `
- {event: export}
- {event: export, format: bmp}
`)
	st, err := pl.Play(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Exports) != 2 {
		t.Fatalf("exports = %v", st.Exports)
	}
	for _, path := range st.Exports {
		if _, err := os.Stat(path); err != nil {
			t.Error(err)
		}
	}
	if !strings.HasSuffix(st.Exports[1], ".bmp") {
		t.Errorf("export path = %s", st.Exports[1])
	}
}

func TestPlayErrors(t *testing.T) {
	cases := map[string]struct {
		paint, board bool
		src          string
	}{
		"no board":    {true, false, `- {target: 0, event: down}`},
		"no card":     {false, true, `- {target: 5, event: down}`},
		"no paint":    {false, true, `- {target: paint, event: down}`},
		"bad colour":  {true, false, `- {event: brush, color: "#XYZ"}`},
		"off palette": {true, false, `- {event: brush, color: "#123456"}`},
		"bad width":   {true, false, `- {event: brush, width: 3}`},
		"bad mode":    {true, false, `- {event: brush, mode: blur}`},
		"clear nil":   {false, true, `- {event: clear}`},
		"reset nil":   {true, false, `- {event: reset}`},
		"bad format":  {true, false, `- {event: export, format: gif}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var p *paint.Surface
			var b *card.Board
			if tc.paint {
				p = newPaint(t)
			}
			if tc.board {
				b = newBoard()
			}
			_, err := NewPlayer(p, b, DefaultLayout).Play(context.Background(), mustDecode(t, tc.src))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Play() error = %v", err)
			}
		})
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pl := NewPlayer(newPaint(t), nil, DefaultLayout)
	_, err := pl.Play(ctx, mustDecode(t, `- {event: clear}`))
	if err != context.Canceled {
		t.Errorf("Play() error = %v", err)
	}
}
