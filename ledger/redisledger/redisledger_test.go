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

package redisledger

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// The test needs a running server; set SCRATCH_REDIS_ADDR to enable it.
func TestLedger(t *testing.T) {
	addr := os.Getenv("SCRATCH_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCRATCH_REDIS_ADDR not set")
	}
	ctx := context.Background()
	key := "scratch:test:" + uuid.NewString()

	l, err := New(ctx, Config{Addr: addr, Key: key, Initial: 245})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		l.client.Del(ctx, key)
		l.Close()
	}()

	if err := l.AddPoints(ctx, 25); err != nil {
		t.Fatal(err)
	}
	// a second New must not reset the balance
	l2, err := New(ctx, Config{Addr: addr, Key: key, Initial: 0})
	if err != nil {
		t.Fatal(err)
	}
	defer l2.Close()

	total, err := l2.Total(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != 270 {
		t.Errorf("total %d, want 270", total)
	}
}

func TestDefaultKey(t *testing.T) {
	l := NewFromClient(nil, "")
	if l.key != DefaultKey {
		t.Errorf("key %q, want %q", l.key, DefaultKey)
	}
}
