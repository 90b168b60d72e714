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

// Package replay drives paint surfaces and scratch boards from recorded
// pointer scripts.
//
// A script is a list of steps, decoded from JSON or YAML:
//
//	- {target: paint, event: down, x: 10, y: 10}
//	- {target: paint, event: move, x: 60, y: 10}
//	- {target: paint, event: up}
//	- {event: brush, color: "#0000FF", width: 20, mode: erase}
//	- {target: 2, event: down, device: touch, x: 150, y: 40, scroll_y: 30}
//	- {event: export}
//
// Coordinates are viewport positions. The target element of a pointer
// event is either "paint" or the index of a card.
package replay

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/scratch/internal/errors"
	"seehuhn.de/go/scratch/pointer"
)

// Paint is the Target of the drawing page.
const Paint Target = -1

// Target selects the element a pointer event is delivered to: Paint or a
// card index.
type Target int

func (t Target) String() string {
	if t == Paint {
		return "paint"
	}
	return strconv.Itoa(int(t))
}

func parseTarget(s string) (Target, error) {
	if s == "paint" {
		return Paint, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid target %q", s)
	}
	return Target(n), nil
}

// UnmarshalJSON accepts "paint" or a card index.
func (t *Target) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := parseTarget(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalYAML accepts "paint" or a card index.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseTarget(node.Value)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Step kinds besides the pointer events down, move, up and leave.
const (
	ActionClear  = "clear"
	ActionReset  = "reset"
	ActionBrush  = "brush"
	ActionExport = "export"
)

// Step is one entry of a script.
type Step struct {
	// Target is required for pointer events.
	Target *Target `json:"target,omitempty" yaml:"target,omitempty"`
	Event  string `json:"event" yaml:"event"`
	Device string `json:"device,omitempty" yaml:"device,omitempty"`

	X float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y float64 `json:"y,omitempty" yaml:"y,omitempty"`

	// ScrollX and ScrollY, if set, scroll the page before the step.
	ScrollX *float64 `json:"scroll_x,omitempty" yaml:"scroll_x,omitempty"`
	ScrollY *float64 `json:"scroll_y,omitempty" yaml:"scroll_y,omitempty"`

	// Brush settings.
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Width float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Mode  string  `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Format is the export format; empty means the player's default.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

var kinds = map[string]pointer.Kind{
	"down":  pointer.Down,
	"move":  pointer.Move,
	"up":    pointer.Up,
	"leave": pointer.Leave,
}

// Pointer returns the pointer event of s, if s is a pointer step.
func (s *Step) Pointer() (pointer.Event, bool, error) {
	kind, ok := kinds[normalize(s.Event)]
	if !ok {
		return pointer.Event{}, false, nil
	}
	ev := pointer.Event{Kind: kind, ClientX: s.X, ClientY: s.Y}
	switch normalize(s.Device) {
	case "", "mouse":
		ev.Device = pointer.Mouse
	case "touch":
		ev.Device = pointer.Touch
	default:
		return pointer.Event{}, false, errors.New(errors.ErrCodeInvalidInput, "unknown device %q", s.Device)
	}
	return ev, true, nil
}

// Script is a sequence of steps.
type Script []Step

// Validate checks that every step has a known kind.
func (sc Script) Validate() error {
	for i := range sc {
		s := &sc[i]
		_, isPointer, err := s.Pointer()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "step %d", i)
		}
		if isPointer && s.Target == nil {
			return errors.New(errors.ErrCodeInvalidInput, "step %d: %s event without target", i, s.Event)
		}
		switch normalize(s.Event) {
		case "down", "move", "up", "leave",
			ActionClear, ActionReset, ActionBrush, ActionExport:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "step %d: unknown event %q", i, s.Event)
		}
	}
	return nil
}

// Decode reads a script. JSON input is recognised by its leading '[';
// anything else is parsed as YAML.
func Decode(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading script")
	}

	var sc Script
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &sc)
	} else if len(trimmed) > 0 {
		err = yaml.Unmarshal(trimmed, &sc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing script")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Load reads the script at path.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "opening %s", filepath.Base(path))
	}
	defer f.Close()
	return Decode(f)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
