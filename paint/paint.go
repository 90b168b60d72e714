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

// Package paint implements the freehand drawing surface: a persistent
// canvas on which pointer gestures draw or erase round-capped strokes.
//
// All operations are synchronous and a Surface is not safe for concurrent
// use. If no canvas could be allocated, every operation is a logged no-op
// and Export reports an Unavailable error.
package paint

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/pointer"
	"seehuhn.de/go/scratch/reward"
	"seehuhn.de/go/scratch/surface"
)

// Surface is a drawing canvas with a brush.
type Surface struct {
	opts Options
	surf surface.Surface

	color color.NRGBA
	width float64
	mode  Mode

	stroke pointer.Session
}

var _ pointer.Target = (*Surface)(nil)

// New returns a drawing surface without a canvas; call Initialize to
// allocate one. The brush starts with the first palette colour, the default
// width and Draw mode.
func New(opts Options) *Surface {
	if opts.Notifier == nil {
		opts.Notifier = scratch.Discard
	}
	s := &Surface{opts: opts, width: opts.DefaultWidth}
	if len(opts.Palette) > 0 {
		s.color = opts.Palette[0]
	}
	return s
}

// Initialize allocates a width×height canvas and fills it with the
// background colour. A previous canvas is released. If the size is empty
// or the backend fails, the surface stays inert.
func (s *Surface) Initialize(width, height int) {
	if s.surf != nil {
		surface.Release(s.surf)
		s.surf = nil
	}
	s.stroke = pointer.Session{}

	backend, err := surface.Lookup(s.opts.Backend)
	if err == nil {
		s.surf, err = backend(width, height)
	}
	if err != nil {
		s.surf = nil
		scratch.Logger().Warn("drawing surface unavailable", "width", width, "height", height, "error", err)
		return
	}
	s.surf.Fill(surface.Solid(s.opts.Background))
	scratch.Logger().Info("drawing surface ready", "backend", s.opts.Backend, "width", width, "height", height)
}

// Available reports whether the surface has a canvas.
func (s *Surface) Available() bool {
	return s.surf != nil
}

// Bounds returns the canvas rectangle, or the empty rectangle.
func (s *Surface) Bounds() image.Rectangle {
	if s.surf == nil {
		return image.Rectangle{}
	}
	return s.surf.Bounds()
}

// BeginStroke opens a stroke at p without marking any pixels.
func (s *Surface) BeginStroke(p vec.Vec2) {
	if s.surf == nil {
		return
	}
	s.stroke = pointer.Session{Active: true, Last: p}
}

// ExtendStroke draws from the last point of the open stroke to p with the
// current brush. If p equals the last point, a dot is drawn.
func (s *Surface) ExtendStroke(p vec.Vec2) {
	if s.surf == nil {
		return
	}
	if !s.stroke.Active {
		scratch.Logger().Debug("stroke extended without begin", "x", p.X, "y", p.Y)
		return
	}
	seg := surface.Segment{
		From:  s.stroke.Last,
		To:    p,
		Width: s.width,
		Op:    surface.OpSourceOver,
		Color: s.color,
	}
	if s.mode == Erase {
		seg.Op = surface.OpDestinationOut
	}
	s.surf.CompositeLine(seg)
	s.stroke.Last = p
}

// EndStroke closes the open stroke. It does nothing if no stroke is open.
func (s *Surface) EndStroke() {
	s.stroke.Active = false
}

// Stroking reports whether a stroke is open.
func (s *Surface) Stroking() bool {
	return s.stroke.Active
}

// Begin implements [pointer.Target].
func (s *Surface) Begin(_ context.Context, p vec.Vec2) { s.BeginStroke(p) }

// Extend implements [pointer.Target].
func (s *Surface) Extend(_ context.Context, p vec.Vec2) { s.ExtendStroke(p) }

// End implements [pointer.Target].
func (s *Surface) End(context.Context) { s.EndStroke() }

// Clear refills the canvas with the background colour and sends
// Options.ClearMessage. There is no undo.
func (s *Surface) Clear(ctx context.Context) {
	if s.surf == nil {
		return
	}
	s.surf.Fill(surface.Solid(s.opts.Background))
	if s.opts.ClearMessage != "" {
		s.opts.Notifier.Notify(ctx, s.opts.ClearMessage)
	}
}

// SetColor selects a palette colour and switches back to Draw mode.
func (s *Surface) SetColor(c color.NRGBA) error {
	if !slices.Contains(s.opts.Palette, c) {
		return errors.New(errors.ErrCodeInvalidInput, "colour #%02X%02X%02X is not in the palette", c.R, c.G, c.B)
	}
	s.color = c
	s.mode = Draw
	return nil
}

// SetWidth selects a brush width.
func (s *Surface) SetWidth(w float64) error {
	if !slices.Contains(s.opts.Widths, w) {
		return errors.New(errors.ErrCodeInvalidInput, "brush width %g is not available", w)
	}
	s.width = w
	return nil
}

// SetMode switches between drawing and erasing.
func (s *Surface) SetMode(m Mode) {
	s.mode = m
}

// Brush returns the current brush settings.
func (s *Surface) Brush() (c color.NRGBA, width float64, m Mode) {
	return s.color, s.width, s.mode
}

// Image returns a snapshot of the canvas, or nil if there is none.
func (s *Surface) Image() image.Image {
	if s.surf == nil {
		return nil
	}
	return s.surf.Image()
}

// Export writes the canvas to w. Failures are reported to the notifier as
// well as returned; the canvas is unaffected either way.
func (s *Surface) Export(ctx context.Context, w io.Writer, f surface.Format) error {
	err := s.export(w, f)
	if err != nil {
		scratch.Logger().WarnContext(ctx, "export failed", "format", f, "error", err)
		s.opts.Notifier.Notify(ctx, "Could not save your artwork. Please try again.")
	}
	return err
}

func (s *Surface) export(w io.Writer, f surface.Format) error {
	if s.surf == nil {
		return errors.New(errors.ErrCodeUnavailable, "no drawing surface")
	}
	return surface.Encode(w, s.surf.Image(), f)
}

// ExportFile writes the canvas to a new file in dir, named after the
// export prefix and now. On success an encouraging message is sent to the
// notifier. The returned path is that of the written file.
func (s *Surface) ExportFile(ctx context.Context, dir string, now time.Time, f surface.Format) (path string, err error) {
	path = filepath.Join(dir, surface.ExportName(s.opts.ExportPrefix, now, f))

	fd, err := os.Create(path)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeExport, err, "creating %s", path)
		scratch.Logger().WarnContext(ctx, "export failed", "path", path, "error", err)
		s.opts.Notifier.Notify(ctx, "Could not save your artwork. Please try again.")
		return "", err
	}
	err = s.Export(ctx, fd, f)
	if cerr := fd.Close(); err == nil && cerr != nil {
		err = errors.Wrap(errors.ErrCodeExport, cerr, "closing %s", path)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	scratch.Logger().InfoContext(ctx, "artwork saved", "path", path)
	if msg := s.resolver().Pick(s.opts.Encouragements); msg != "" {
		s.opts.Notifier.Notify(ctx, msg)
	}
	return path, nil
}

func (s *Surface) resolver() *reward.Resolver {
	if s.opts.Resolver == nil {
		s.opts.Resolver = reward.NewResolver(nil)
	}
	return s.opts.Resolver
}
