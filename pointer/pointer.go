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

// Package pointer turns raw mouse and touch input into gesture samples in
// surface-local coordinates.
//
// A [Tracker] receives viewport-relative [Event] values, subtracts the
// current origin of the tracked [Element] and drives a [Target] through
// exactly one Begin, any number of Extend calls and exactly one End per
// gesture. Pointer-up and pointer-leave both end a gesture, whichever comes
// first.
package pointer

import (
	"context"

	"seehuhn.de/go/geom/vec"
)

// Kind is the type of a raw input event.
type Kind int

// Input event kinds. Touch start/move/end map to Down/Move/Up.
const (
	Down Kind = iota
	Move
	Up
	Leave
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Leave:
		return "leave"
	default:
		return "unknown"
	}
}

// Device tells mouse input from touch input.
type Device int

// Input devices.
const (
	Mouse Device = iota
	Touch
)

func (d Device) String() string {
	if d == Touch {
		return "touch"
	}
	return "mouse"
}

// Event is a raw input event in viewport coordinates.
type Event struct {
	Kind    Kind
	Device  Device
	ClientX float64
	ClientY float64
}

// Element is the on-screen element a surface is mounted in.
type Element interface {
	// Origin returns the current viewport position of the element's
	// top-left corner. It is queried for every event, since the element
	// may move under scrolling or layout changes.
	Origin() vec.Vec2
}

// ElementFunc adapts a function to the Element interface.
type ElementFunc func() vec.Vec2

// Origin implements [Element].
func (f ElementFunc) Origin() vec.Vec2 {
	return f()
}

// Static is an element which never moves.
type Static vec.Vec2

// Origin implements [Element].
func (s Static) Origin() vec.Vec2 {
	return vec.Vec2(s)
}

// Target receives the gestures recognised by a Tracker. Points are in
// surface-local coordinates.
type Target interface {
	Begin(ctx context.Context, p vec.Vec2)
	Extend(ctx context.Context, p vec.Vec2)
	End(ctx context.Context)
}

// Phase is the position of a sample within its gesture.
type Phase int

// Gesture phases.
const (
	Start Phase = iota
	Continue
	End
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Continue:
		return "move"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Sample is one step of a gesture.
type Sample struct {
	Phase Phase
	Point vec.Vec2
}

// Session is the state of the current gesture.
type Session struct {
	Active bool
	Last   vec.Vec2
}
