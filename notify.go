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

package scratch

import "context"

// Notifier shows short, non-blocking messages to the user, e.g. as toasts.
type Notifier interface {
	Notify(ctx context.Context, msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg string)

// Notify calls f(ctx, msg).
func (f NotifierFunc) Notify(ctx context.Context, msg string) {
	f(ctx, msg)
}

// Discard is a Notifier which drops all messages.
var Discard Notifier = NotifierFunc(func(context.Context, string) {})

// LogNotifier sends messages to the package logger at info level.
var LogNotifier Notifier = NotifierFunc(func(ctx context.Context, msg string) {
	Logger().InfoContext(ctx, "notify", "msg", msg)
})
