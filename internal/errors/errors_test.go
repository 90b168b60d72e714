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

package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestCodes(t *testing.T) {
	err := Wrap(ErrCodeExport, io.ErrShortWrite, "writing %s", "a.png")
	if got := err.Error(); got != "EXPORT_FAILED: writing a.png: short write" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, io.ErrShortWrite) {
		t.Error("cause lost")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeExport) {
		t.Error("code not found through wrapping")
	}
	if Is(wrapped, ErrCodeLedger) {
		t.Error("unexpected code match")
	}
	if GetCode(io.EOF) != "" {
		t.Error("plain errors have no code")
	}

	plain := New(ErrCodeUnavailable, "size %dx%d", 0, 0)
	if plain.Error() != "UNAVAILABLE: size 0x0" {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestIsNested(t *testing.T) {
	inner := New(ErrCodeExport, "encoding")
	outer := Wrap(ErrCodeInvalidInput, inner, "step %d", 3)
	if !Is(outer, ErrCodeInvalidInput) || !Is(outer, ErrCodeExport) {
		t.Error("nested codes not found")
	}
	if Is(outer, ErrCodeLedger) {
		t.Error("unexpected code match")
	}
	if GetCode(outer) != ErrCodeInvalidInput {
		t.Errorf("GetCode() = %s", GetCode(outer))
	}
}
