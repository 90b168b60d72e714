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

package pointer

import (
	"context"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scratch"
)

// Tracker recognises gestures on one element and forwards them to a
// Target. A Tracker is not safe for concurrent use.
type Tracker struct {
	el      Element
	target  Target
	session Session
	device  Device
}

// NewTracker returns a tracker for target, mounted in el.
func NewTracker(el Element, target Target) *Tracker {
	return &Tracker{el: el, target: target}
}

// Session returns the state of the current gesture.
func (t *Tracker) Session() Session {
	return t.session
}

// Local converts the viewport position of ev to element coordinates.
func (t *Tracker) Local(ev Event) vec.Vec2 {
	o := t.el.Origin()
	return vec.Vec2{X: ev.ClientX - o.X, Y: ev.ClientY - o.Y}
}

// Handle processes one input event. If the event belongs to a gesture, the
// target is called and the resulting sample is returned with ok set.
//
// A Down while a gesture is active is ignored, as are events from a
// different device than the one which started the gesture. Up and Leave end
// the gesture at its last sampled point.
func (t *Tracker) Handle(ctx context.Context, ev Event) (s Sample, ok bool) {
	switch ev.Kind {
	case Down:
		if t.session.Active {
			scratch.Logger().Debug("second pointer ignored", "device", ev.Device)
			return Sample{}, false
		}
		p := t.Local(ev)
		t.session = Session{Active: true, Last: p}
		t.device = ev.Device
		t.target.Begin(ctx, p)
		return Sample{Phase: Start, Point: p}, true

	case Move:
		if !t.session.Active || ev.Device != t.device {
			return Sample{}, false
		}
		p := t.Local(ev)
		t.target.Extend(ctx, p)
		t.session.Last = p
		return Sample{Phase: Continue, Point: p}, true

	case Up, Leave:
		if !t.session.Active || ev.Device != t.device {
			return Sample{}, false
		}
		t.session.Active = false
		t.target.End(ctx)
		return Sample{Phase: End, Point: t.session.Last}, true
	}
	return Sample{}, false
}

// SuppressDefault reports whether the default action of ev (page scrolling
// for touch input) should be prevented. This is the case for touch events
// which start, continue or end a gesture. Call it before passing ev to
// Handle.
func (t *Tracker) SuppressDefault(ev Event) bool {
	if ev.Device != Touch {
		return false
	}
	return ev.Kind == Down || t.session.Active
}
