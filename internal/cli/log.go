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

// Package cli implements the scratchpad command-line interface.
//
// The commands replay pointer scripts against a drawing canvas (paint),
// play a board of scratch cards (scratch) and list the reward table
// (rewards). Log output goes to stderr through charmbracelet/log, which
// also receives the library's slog records.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"seehuhn.de/go/scratch"
)

// newLogger returns a logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// installLogger routes the slog output of this module and of the gg
// backend through l.
func installLogger(l *log.Logger) {
	sl := slog.New(l)
	scratch.SetLogger(sl)
	gg.SetLogger(sl)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
