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

// Package scratch holds the shared plumbing of the pointer-driven raster
// surfaces in this module: the package-wide logger and the Notifier used to
// surface non-fatal messages to the user.
//
// The interesting code lives in the sub-packages:
//   - raster: scanline coverage rasteriser and the software surface backend
//   - surface: the raster surface capability, backend registry and export
//   - pointer: pointer/touch normalisation into gestures
//   - paint: the freehand drawing surface
//   - card: scratch-off cards and the card board
//   - reward: random reward resolution
//   - ledger: points ledgers credited by revealed cards
package scratch
