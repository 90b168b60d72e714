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
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/paint"
	"seehuhn.de/go/scratch/replay"
	"seehuhn.de/go/scratch/surface"
)

func newPaintCmd(a *app) *cobra.Command {
	var (
		script  string
		outDir  string
		backend string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "paint",
		Short: "Replay a pointer script on the drawing canvas and export the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend != "" {
				a.cfg.Backend = backend
			}
			if format != "" {
				a.cfg.Paint.Format = format
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runPaint(cmd.Context(), a, cmd.OutOrStdout(), script, outDir)
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "pointer script (.json or .yaml)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&backend, "backend", "", "surface backend: "+strings.Join(surface.Backends(), ", "))
	cmd.Flags().StringVarP(&format, "format", "f", "", "image format: png, jpeg, bmp or tiff")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func runPaint(ctx context.Context, a *app, w io.Writer, script, outDir string) error {
	logger := loggerFromContext(ctx)
	start := time.Now()

	sc, err := replay.Load(script)
	if err != nil {
		return err
	}

	opts := a.cfg.PaintOptions()
	opts.Notifier = scratch.NotifierFunc(func(_ context.Context, msg string) {
		printInfo(w, "%s", msg)
	})
	p := paint.New(opts)
	p.Initialize(a.cfg.Paint.Width, a.cfg.Paint.Height)
	if !p.Available() {
		return errors.New(errors.ErrCodeUnavailable, "no %s surface of size %dx%d",
			a.cfg.Backend, a.cfg.Paint.Width, a.cfg.Paint.Height)
	}

	pl := replay.NewPlayer(p, nil, replay.DefaultLayout)
	pl.ExportDir = outDir
	pl.Format = a.cfg.Format()
	st, err := pl.Play(ctx, sc)
	if err != nil {
		return err
	}

	if len(st.Exports) == 0 {
		path, err := p.ExportFile(ctx, outDir, time.Now(), pl.Format)
		if err != nil {
			return err
		}
		st.Exports = append(st.Exports, path)
	}

	logger.Infof("replayed %d steps (%s)", st.Steps, time.Since(start).Round(time.Millisecond))
	for _, path := range st.Exports {
		printFile(w, path)
	}
	return nil
}
