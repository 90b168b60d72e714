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

package surface

import (
	"slices"
	"sync"

	"seehuhn.de/go/scratch/internal/errors"
)

// Backend allocates a new surface of the given size. Sizes below 1×1 must
// fail with an ErrCodeUnavailable error.
type Backend func(width, height int) (Surface, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{}
)

// Register makes a backend available under name. Backend packages call it
// from init. Register panics if name is registered twice or b is nil.
func Register(name string, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if b == nil {
		panic("surface: Register backend is nil")
	}
	if _, dup := backends[name]; dup {
		panic("surface: Register called twice for backend " + name)
	}
	backends[name] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	backendsMu.RLock()
	b, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeUnavailable, "unknown surface backend %q (forgotten import?)", name)
	}
	return b, nil
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
