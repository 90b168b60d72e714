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

// Package ledger defines the points ledger credited when a scratch card is
// revealed, with an in-memory implementation.
//
// Persistent implementations live in sub-packages:
//   - redisledger: a Redis counter, for ledgers shared between processes
//   - pgledger: a row in a PostgreSQL table
package ledger

import (
	"context"
	"sync"
)

// StartingCoins is the balance of a new player.
const StartingCoins = 245

// Ledger accumulates reward points.
type Ledger interface {
	// AddPoints credits amount to the balance.
	AddPoints(ctx context.Context, amount int) error

	// Total returns the current balance.
	Total(ctx context.Context) (int, error)
}

// Memory is a Ledger held in process memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	total   int
	credits []int
}

var _ Ledger = (*Memory)(nil)

// NewMemory returns a ledger with the given opening balance.
func NewMemory(initial int) *Memory {
	return &Memory{total: initial}
}

// AddPoints implements [Ledger].
func (m *Memory) AddPoints(_ context.Context, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total += amount
	m.credits = append(m.credits, amount)
	return nil
}

// Total implements [Ledger].
func (m *Memory) Total(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}

// Credits returns the amounts credited so far, oldest first.
func (m *Memory) Credits() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.credits))
	copy(out, m.credits)
	return out
}
