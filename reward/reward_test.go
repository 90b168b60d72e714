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

package reward

import (
	"slices"
	"testing"

	"seehuhn.de/go/scratch/internal/errors"
)

// fixed is a Source returning a predetermined sequence.
type fixed struct {
	vals []int
	next int
}

func (f *fixed) IntN(n int) int {
	v := f.vals[f.next%len(f.vals)] % n
	f.next++
	return v
}

func TestDefaultTable(t *testing.T) {
	got := DefaultTable().Amounts()
	want := []int{10, 25, 50, 5, 1, 100}
	if !slices.Equal(got, want) {
		t.Errorf("amounts %v, want %v", got, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	table := DefaultTable()
	r := NewResolver(&fixed{vals: []int{5, 0, 3}})

	wantKinds := []Kind{Rainbow, Coin, Boost, Rainbow}
	for i, want := range wantKinds {
		got, err := r.Resolve(table)
		if err != nil {
			t.Fatal(err)
		}
		if got.Kind != want {
			t.Errorf("draw %d: kind %s, want %s", i, got.Kind, want)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	r := NewResolver(&fixed{vals: []int{0}})
	if _, err := r.Resolve(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestResolveUniform(t *testing.T) {
	table := DefaultTable()
	r := NewSeeded(1)

	const n = 60000
	counts := make(map[int]int)
	for range n {
		w, err := r.Resolve(table)
		if err != nil {
			t.Fatal(err)
		}
		counts[w.Amount]++
	}
	for _, amount := range table.Amounts() {
		c := counts[amount]
		if c < n/6-600 || c > n/6+600 {
			t.Errorf("amount %d drawn %d times out of %d", amount, c, n)
		}
	}
}

func TestSeededReproducible(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for range 20 {
		x, _ := a.Resolve(DefaultTable())
		y, _ := b.Resolve(DefaultTable())
		if x != y {
			t.Fatalf("seeded resolvers diverged: %v != %v", x, y)
		}
	}
}

func TestPick(t *testing.T) {
	r := NewResolver(&fixed{vals: []int{2}})
	if got := r.Pick(ScratchEncouragements); got != ScratchEncouragements[2] {
		t.Errorf("Pick = %q", got)
	}
	if got := r.Pick(nil); got != "" {
		t.Errorf("Pick(nil) = %q, want empty", got)
	}
	if got := NewResolver(nil).Pick(PaintEncouragements); !slices.Contains(PaintEncouragements, got) {
		t.Errorf("global source picked %q", got)
	}
}
