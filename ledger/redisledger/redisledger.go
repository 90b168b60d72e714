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

// Package redisledger keeps the points balance in a Redis counter.
//
// Usage:
//
//	l, err := redisledger.New(ctx, redisledger.Config{
//	    Addr: "localhost:6379",
//	})
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
package redisledger

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	scerrors "seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/ledger"
)

// DefaultKey is the counter key used when Config.Key is empty.
const DefaultKey = "scratch:coins"

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int

	// Key is the Redis key of the counter.
	Key string

	// Initial is the opening balance, set only if the key does not exist.
	Initial int
}

// Ledger is a [ledger.Ledger] stored under one Redis key.
type Ledger struct {
	client *redis.Client
	key    string
}

var _ ledger.Ledger = (*Ledger)(nil)

// New connects to Redis and seeds the counter with cfg.Initial unless it
// already exists.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, scerrors.Wrap(scerrors.ErrCodeLedger, err, "connecting to redis at %s", cfg.Addr)
	}

	l := NewFromClient(client, cfg.Key)
	if err := client.SetNX(ctx, l.key, cfg.Initial, 0).Err(); err != nil {
		_ = client.Close()
		return nil, scerrors.Wrap(scerrors.ErrCodeLedger, err, "seeding %s", l.key)
	}
	return l, nil
}

// NewFromClient wraps an existing client. The counter is not seeded.
func NewFromClient(client *redis.Client, key string) *Ledger {
	if key == "" {
		key = DefaultKey
	}
	return &Ledger{client: client, key: key}
}

// AddPoints implements [ledger.Ledger] with INCRBY.
func (l *Ledger) AddPoints(ctx context.Context, amount int) error {
	if err := l.client.IncrBy(ctx, l.key, int64(amount)).Err(); err != nil {
		return scerrors.Wrap(scerrors.ErrCodeLedger, err, "adding %d points", amount)
	}
	return nil
}

// Total implements [ledger.Ledger]. A missing key counts as zero.
func (l *Ledger) Total(ctx context.Context) (int, error) {
	n, err := l.client.Get(ctx, l.key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, scerrors.Wrap(scerrors.ErrCodeLedger, err, "reading %s", l.key)
	}
	return n, nil
}

// Close closes the Redis client.
func (l *Ledger) Close() error {
	return l.client.Close()
}
