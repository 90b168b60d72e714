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

// Package pgledger keeps points balances in a PostgreSQL table, one row per
// account.
package pgledger

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	scerrors "seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/ledger"
)

const (
	table      = "ledger"
	colAccount = "account"
	colTotal   = "total"
)

// Schema creates the ledger table.
const Schema = `CREATE TABLE IF NOT EXISTS ` + table + ` (
	` + colAccount + ` TEXT PRIMARY KEY,
	` + colTotal + ` BIGINT NOT NULL
)`

// DefaultAccount is used when Config.Account is empty.
const DefaultAccount = "default"

// Config holds the connection settings.
type Config struct {
	DSN     string
	Account string

	// Initial is the opening balance of an account without a row.
	Initial int
}

// Ledger is a [ledger.Ledger] backed by one row of the ledger table.
type Ledger struct {
	dbc     *pgxpool.Pool
	account string
	initial int
}

var _ ledger.Ledger = (*Ledger)(nil)

// New opens a connection pool and creates the table if needed.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	dbc, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, scerrors.Wrap(scerrors.ErrCodeLedger, err, "creating pool")
	}
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		return nil, scerrors.Wrap(scerrors.ErrCodeLedger, err, "connecting to postgres")
	}
	if _, err := dbc.Exec(ctx, Schema); err != nil {
		dbc.Close()
		return nil, scerrors.Wrap(scerrors.ErrCodeLedger, err, "creating table %s", table)
	}
	return NewFromPool(dbc, cfg.Account, cfg.Initial), nil
}

// NewFromPool uses an existing pool. The table must exist.
func NewFromPool(dbc *pgxpool.Pool, account string, initial int) *Ledger {
	if account == "" {
		account = DefaultAccount
	}
	return &Ledger{dbc: dbc, account: account, initial: initial}
}

// AddPoints implements [ledger.Ledger]. The first credit of an account
// creates its row with the opening balance.
func (l *Ledger) AddPoints(ctx context.Context, amount int) error {
	sqlStr, args, err := addQuery(l.account, l.initial, amount).ToSql()
	if err != nil {
		return scerrors.Wrap(scerrors.ErrCodeLedger, err, "building query")
	}

	var total int64
	if err := l.dbc.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return scerrors.Wrap(scerrors.ErrCodeLedger, err, "adding %d points", amount)
	}
	return nil
}

// Total implements [ledger.Ledger].
func (l *Ledger) Total(ctx context.Context) (int, error) {
	sqlStr, args, err := totalQuery(l.account).ToSql()
	if err != nil {
		return 0, scerrors.Wrap(scerrors.ErrCodeLedger, err, "building query")
	}

	var total int64
	err = l.dbc.QueryRow(ctx, sqlStr, args...).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return l.initial, nil
	}
	if err != nil {
		return 0, scerrors.Wrap(scerrors.ErrCodeLedger, err, "reading balance of %s", l.account)
	}
	return int(total), nil
}

// Close closes the pool.
func (l *Ledger) Close() {
	l.dbc.Close()
}

func addQuery(account string, initial, amount int) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colAccount, colTotal).
		Values(account, int64(initial+amount)).
		Suffix("ON CONFLICT ("+colAccount+") DO UPDATE SET "+colTotal+" = "+table+"."+colTotal+" + ? RETURNING "+colTotal, int64(amount)).
		PlaceholderFormat(sq.Dollar)
}

func totalQuery(account string) sq.SelectBuilder {
	return sq.Select(colTotal).
		From(table).
		Where(sq.Eq{colAccount: account}).
		PlaceholderFormat(sq.Dollar)
}
