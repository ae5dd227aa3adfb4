// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativevsync

import (
	"errors"
	"fmt"
)

// Common errors returned by vsync operations.
var (
	// ErrInvalidArgs is returned when a caller-supplied value violates a
	// precondition that is checked before any native call is made.
	ErrInvalidArgs = errors.New("nativevsync: invalid arguments")

	// ErrCreateFailed is returned when the native service does not yield a
	// usable connection handle.
	ErrCreateFailed = errors.New("nativevsync: native vsync creation failed")
)

// RawError carries a nonzero status code returned by the native service.
// The code is passed through verbatim; its meaning is defined by the
// platform's vsync documentation, not by this package.
//
// Match with errors.As:
//
//	var raw nativevsync.RawError
//	if errors.As(err, &raw) {
//		log.Printf("native status: %d", int32(raw))
//	}
type RawError int32

// Error implements the error interface.
func (e RawError) Error() string {
	return fmt.Sprintf("nativevsync: native call failed with status %d", int32(e))
}
