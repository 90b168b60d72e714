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

// Package config loads the settings of the drawing page, the scratch board
// and the points ledger.
//
// Files are TOML or YAML, chosen by extension, and are decoded over
// [Default]. Environment variables, optionally read from a .env file,
// override the ledger settings:
//
//	SCRATCH_LEDGER       memory | redis | postgres
//	SCRATCH_REDIS_ADDR   host:port of the Redis server
//	SCRATCH_PG_DSN       PostgreSQL connection string
package config

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/scratch/card"
	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/ledger"
	"seehuhn.de/go/scratch/ledger/pgledger"
	"seehuhn.de/go/scratch/ledger/redisledger"
	"seehuhn.de/go/scratch/paint"
	"seehuhn.de/go/scratch/raster"
	"seehuhn.de/go/scratch/reward"
	"seehuhn.de/go/scratch/surface"
)

// Environment variables read by LoadEnv.
const (
	EnvLedger    = "SCRATCH_LEDGER"
	EnvRedisAddr = "SCRATCH_REDIS_ADDR"
	EnvPGDSN     = "SCRATCH_PG_DSN"
)

// Ledger kinds.
const (
	LedgerMemory   = "memory"
	LedgerRedis    = "redis"
	LedgerPostgres = "postgres"
)

// Config is the complete configuration.
type Config struct {
	// Backend names the surface backend, "software" or "gg".
	Backend string       `toml:"backend" yaml:"backend"`
	Paint   Paint        `toml:"paint" yaml:"paint"`
	Cards   Cards        `toml:"cards" yaml:"cards"`
	Rewards reward.Table `toml:"rewards" yaml:"rewards"`
	Ledger  Ledger       `toml:"ledger" yaml:"ledger"`
}

// Paint configures the drawing page. Colours are hex strings like "#FF0000".
type Paint struct {
	Width        int       `toml:"width" yaml:"width"`
	Height       int       `toml:"height" yaml:"height"`
	Background   string    `toml:"background" yaml:"background"`
	Palette      []string  `toml:"palette" yaml:"palette"`
	Widths       []float64 `toml:"widths" yaml:"widths"`
	DefaultWidth float64   `toml:"default_width" yaml:"default_width"`
	ExportPrefix string    `toml:"export_prefix" yaml:"export_prefix"`
	Format       string    `toml:"format" yaml:"format"`
}

// Cards configures the scratch board.
type Cards struct {
	Count      int      `toml:"count" yaml:"count"`
	Width      int      `toml:"width" yaml:"width"`
	Height     int      `toml:"height" yaml:"height"`
	Radius     float64  `toml:"radius" yaml:"radius"`
	Overlay    []string `toml:"overlay" yaml:"overlay"`
	Label      []string `toml:"label" yaml:"label"`
	LabelColor string   `toml:"label_color" yaml:"label_color"`
}

// Ledger selects and configures the points ledger.
type Ledger struct {
	Kind      string `toml:"kind" yaml:"kind"`
	Initial   int    `toml:"initial" yaml:"initial"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	RedisKey  string `toml:"redis_key" yaml:"redis_key"`
	PGDSN     string `toml:"pg_dsn" yaml:"pg_dsn"`
	Account   string `toml:"account" yaml:"account"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: raster.BackendName,
		Paint: Paint{
			Width:      800,
			Height:     600,
			Background: "#FFFFFF",
			Palette: []string{
				"#000000", "#FF0000", "#00FF00", "#0000FF", "#FFFF00",
				"#FF00FF", "#00FFFF", "#FFA500", "#800080", "#FFC0CB",
				"#A52A2A", "#808080", "#90EE90", "#FFE4B5", "#DDA0DD",
			},
			Widths:       []float64{2, 5, 10, 15, 20},
			DefaultWidth: 5,
			ExportPrefix: "mindcare-artwork",
			Format:       "png",
		},
		Cards: Cards{
			Count:      6,
			Width:      200,
			Height:     150,
			Radius:     20,
			Overlay:    []string{"#C0C0C0", "#FFFFFF", "#E6E6E6"},
			Label:      []string{"Scratch to", "Reveal!"},
			LabelColor: "#888888",
		},
		Rewards: reward.DefaultTable(),
		Ledger: Ledger{
			Kind:    LedgerMemory,
			Initial: ledger.StartingCoins,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
	}
	if err := cfg.decode(data, filepath.Ext(path)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(c)
		if err != nil {
			return err
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			names := make([]string, len(keys))
			for i, k := range keys {
				names[i] = k.String()
			}
			return errors.New(errors.ErrCodeInvalidConfig, "unknown keys %s", strings.Join(names, ", "))
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(c)
		if err == io.EOF {
			return nil
		}
		return err
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", ext)
}

// LoadEnv applies the environment overrides. If envFile is not empty and
// exists, it is loaded first; variables already set in the process take
// precedence over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "loading %s", envFile)
		}
	}
	if v := os.Getenv(EnvLedger); v != "" {
		c.Ledger.Kind = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Ledger.RedisAddr = v
	}
	if v := os.Getenv(EnvPGDSN); v != "" {
		c.Ledger.PGDSN = v
	}
	return c.Validate()
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ParseColor converts a CSS-style hex colour (#RGB, #RGBA, #RRGGBB or
// #RRGGBBAA, the leading '#' optional) to a colour.
func ParseColor(s string) (color.NRGBA, error) {
	if !hexColor.MatchString(s) {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig, "invalid colour %q", s)
	}
	c := gg.Hex(s)
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}, nil
}

func parseColors(field string, ss []string) ([]color.NRGBA, error) {
	res := make([]color.NRGBA, len(ss))
	for i, s := range ss {
		c, err := ParseColor(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s[%d]", field, i)
		}
		res[i] = c
	}
	return res, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := surface.Lookup(c.Backend); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "backend")
	}

	p := &c.Paint
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "paint size %dx%d", p.Width, p.Height)
	}
	if _, err := ParseColor(p.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "paint.background")
	}
	if len(p.Palette) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "paint.palette is empty")
	}
	if _, err := parseColors("paint.palette", p.Palette); err != nil {
		return err
	}
	for _, w := range p.Widths {
		if w <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "paint.widths: invalid width %g", w)
		}
	}
	if !slices.Contains(p.Widths, p.DefaultWidth) {
		return errors.New(errors.ErrCodeInvalidConfig, "paint.default_width %g not in widths", p.DefaultWidth)
	}
	if _, err := surface.ParseFormat(p.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "paint.format")
	}

	k := &c.Cards
	if k.Count <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cards.count must be positive")
	}
	if k.Width <= 0 || k.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "card size %dx%d", k.Width, k.Height)
	}
	if k.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cards.radius must be positive")
	}
	if len(k.Overlay) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cards.overlay is empty")
	}
	if _, err := parseColors("cards.overlay", k.Overlay); err != nil {
		return err
	}
	if _, err := ParseColor(k.LabelColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cards.label_color")
	}

	if len(c.Rewards) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "rewards table is empty")
	}

	switch c.Ledger.Kind {
	case LedgerMemory:
	case LedgerRedis:
		if c.Ledger.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis ledger needs %s", EnvRedisAddr)
		}
	case LedgerPostgres:
		if c.Ledger.PGDSN == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "postgres ledger needs %s", EnvPGDSN)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown ledger %q", c.Ledger.Kind)
	}
	return nil
}

// Format returns the export format of the drawing page.
func (c *Config) Format() surface.Format {
	f, err := surface.ParseFormat(c.Paint.Format)
	if err != nil {
		return surface.FormatPNG
	}
	return f
}

// PaintOptions converts the paint section. The configuration must be valid.
func (c *Config) PaintOptions() paint.Options {
	opts := paint.DefaultOptions()
	opts.Backend = c.Backend
	opts.Background, _ = ParseColor(c.Paint.Background)
	opts.Palette, _ = parseColors("paint.palette", c.Paint.Palette)
	opts.Widths = slices.Clone(c.Paint.Widths)
	opts.DefaultWidth = c.Paint.DefaultWidth
	if c.Paint.ExportPrefix != "" {
		opts.ExportPrefix = c.Paint.ExportPrefix
	}
	return opts
}

// CardOptions converts the cards and rewards sections, crediting l.
// The configuration must be valid.
func (c *Config) CardOptions(l ledger.Ledger) card.Options {
	opts := card.DefaultOptions()
	opts.Backend = c.Backend
	opts.Cards = c.Cards.Count
	opts.Width = c.Cards.Width
	opts.Height = c.Cards.Height
	opts.Radius = c.Cards.Radius
	opts.Overlay, _ = parseColors("cards.overlay", c.Cards.Overlay)
	opts.Label = slices.Clone(c.Cards.Label)
	opts.LabelColor, _ = ParseColor(c.Cards.LabelColor)
	opts.Table = slices.Clone(c.Rewards)
	if l != nil {
		opts.Ledger = l
	}
	return opts
}

// OpenLedger opens the configured ledger. The returned function releases
// its connections.
func (c *Config) OpenLedger(ctx context.Context) (ledger.Ledger, func(), error) {
	lc := c.Ledger
	switch lc.Kind {
	case LedgerRedis:
		l, err := redisledger.New(ctx, redisledger.Config{
			Addr:    lc.RedisAddr,
			Key:     lc.RedisKey,
			Initial: lc.Initial,
		})
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = l.Close() }, nil
	case LedgerPostgres:
		l, err := pgledger.New(ctx, pgledger.Config{
			DSN:     lc.PGDSN,
			Account: lc.Account,
			Initial: lc.Initial,
		})
		if err != nil {
			return nil, nil, err
		}
		return l, l.Close, nil
	case LedgerMemory:
		return ledger.NewMemory(lc.Initial), func() {}, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "unknown ledger %q", lc.Kind)
}
