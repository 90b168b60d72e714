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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/card"
	"seehuhn.de/go/scratch/config"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/reward"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLedger, config.LedgerMemory)
	t.Setenv("SCRATCH_CONFIG", "")
	t.Cleanup(func() { scratch.SetLogger(nil) })

	var out, logs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(append([]string{"--env="}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLibraryLogsReachLogger(t *testing.T) {
	t.Cleanup(func() { scratch.SetLogger(nil) })

	var buf bytes.Buffer
	installLogger(newLogger(&buf, log.InfoLevel))
	scratch.Logger().Info("cards dealt", "cards", 6)
	if !strings.Contains(buf.String(), "cards dealt") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected default logger")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("expected attached logger")
	}
}

func TestRewardsCommand(t *testing.T) {
	out, err := run(t, "rewards")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range reward.DefaultTable() {
		if !strings.Contains(out, r.Message) {
			t.Errorf("output lacks %q", r.Message)
		}
	}
}

func TestScratchCommand(t *testing.T) {
	out, err := run(t, "scratch", "--seed", "5", "--cards", "4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "#4") || strings.Contains(out, "#5") {
		t.Errorf("unexpected board:\n%s", out)
	}
	if !strings.Contains(out, "coins") {
		t.Errorf("no balance in output:\n%s", out)
	}
}

func TestScratchScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "s.yaml")
	err := os.WriteFile(script, []byte(`
- {target: 0, event: down, x: 40, y: 120}
- {target: 0, event: move, x: 90, y: 120}
- {target: 0, event: up}
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "scratch", "--script", script, "--seed", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "hidden") {
		t.Errorf("expected covered cards:\n%s", out)
	}
}

func TestPaintCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "s.json")
	err := os.WriteFile(script, []byte(`[
		{"target": "paint", "event": "down", "x": 10, "y": 100},
		{"target": "paint", "event": "move", "x": 200, "y": 150},
		{"target": "paint", "event": "up"}
	]`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "paint", "--script", script, "--out", dir, "--format", "bmp")
	if err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "mindcare-artwork-*.bmp"))
	if len(matches) != 1 {
		t.Fatalf("exports = %v", matches)
	}
	if !strings.Contains(out, matches[0]) {
		t.Errorf("output does not name %s:\n%s", matches[0], out)
	}
}

func TestPaintErrors(t *testing.T) {
	if _, err := run(t, "paint"); err == nil {
		t.Error("paint without --script succeeded")
	}

	_, err := run(t, "paint", "--script", "x.yaml", "--backend", "opengl")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown backend: %v", err)
	}

	_, err = run(t, "paint", "--script", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing script: %v", err)
	}
}

func TestBadConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "rewards")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v", err)
	}
}

func TestRenderBoard(t *testing.T) {
	opts := card.DefaultOptions()
	opts.Cards = 4
	opts.Resolver = reward.NewSeeded(2)
	b := card.NewBoard(opts)

	ctx := context.Background()
	b.Begin(ctx, 2, vec.Vec2{X: 10, Y: 10})
	b.End(ctx, 2)
	c, _ := b.Card(2)
	if !c.Revealed() {
		t.Fatal("card not revealed")
	}

	out := renderBoard(b.Cards(), 300)
	for _, want := range []string{"#1", "#4", c.Display(), "300", "hidden"} {
		if !strings.Contains(out, want) {
			t.Errorf("board lacks %q:\n%s", want, out)
		}
	}
}
