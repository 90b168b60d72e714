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

package pgledger

import (
	"context"
	"os"
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestAddQuery(t *testing.T) {
	sqlStr, args, err := addQuery("alice", 245, 25).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	want := "INSERT INTO ledger (account,total) VALUES ($1,$2) " +
		"ON CONFLICT (account) DO UPDATE SET total = ledger.total + $3 RETURNING total"
	if sqlStr != want {
		t.Errorf("sql:\n got %s\nwant %s", sqlStr, want)
	}
	if !slices.Equal(args, []any{"alice", int64(270), int64(25)}) {
		t.Errorf("args %v", args)
	}
}

func TestTotalQuery(t *testing.T) {
	sqlStr, args, err := totalQuery("bob").ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if want := "SELECT total FROM ledger WHERE account = $1"; sqlStr != want {
		t.Errorf("sql %q, want %q", sqlStr, want)
	}
	if len(args) != 1 || args[0] != "bob" {
		t.Errorf("args %v", args)
	}
}

// The test needs a database; set SCRATCH_PG_DSN to enable it.
func TestLedger(t *testing.T) {
	dsn := os.Getenv("SCRATCH_PG_DSN")
	if dsn == "" {
		t.Skip("SCRATCH_PG_DSN not set")
	}
	ctx := context.Background()
	account := uuid.NewString()

	l, err := New(ctx, Config{DSN: dsn, Account: account, Initial: 245})
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	if total, err := l.Total(ctx); err != nil || total != 245 {
		t.Fatalf("opening balance %d, %v", total, err)
	}
	for _, amount := range []int{10, 100} {
		if err := l.AddPoints(ctx, amount); err != nil {
			t.Fatal(err)
		}
	}
	if total, err := l.Total(ctx); err != nil || total != 355 {
		t.Errorf("balance %d, %v; want 355", total, err)
	}
}
