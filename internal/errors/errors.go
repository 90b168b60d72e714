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

// Package errors defines the coded errors used across the module.
//
// Codes classify failures so that callers can decide how to degrade:
//   - UNAVAILABLE: no rendering surface could be allocated; operations on
//     the affected surface become no-ops
//   - INVALID_GESTURE: an operation arrived in a state where it has no
//     meaning (scratching a revealed card, finalizing without a gesture)
//   - EXPORT_FAILED: serializing a surface to an image failed
//   - INVALID_CONFIG, INVALID_INPUT: bad configuration or scripts
//   - LEDGER: the points ledger could not be updated
//
// Usage:
//
//	err := errors.New(errors.ErrCodeUnavailable, "surface size %dx%d", w, h)
//	if errors.Is(err, errors.ErrCodeUnavailable) {
//	    // degrade
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

// Error codes.
const (
	ErrCodeUnavailable    Code = "UNAVAILABLE"
	ErrCodeInvalidGesture Code = "INVALID_GESTURE"
	ErrCodeExport         Code = "EXPORT_FAILED"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeLedger         Code = "LEDGER"
)

// Error is an error carrying a Code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause, for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with the given cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err, or the cause of any *Error in its chain, carries
// the given code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
