// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativevsync

import (
	"fmt"
	"math"
)

// Vsync is the exclusive owner of one native vsync connection.
//
// A Vsync is either owned or released. While owned, Close destroys the
// underlying handle exactly once. Release and RequestFrameOwned move
// ownership elsewhere and disarm Close. Using a released Vsync for anything
// other than Close is a programming error and panics.
//
// Vsync is not safe for concurrent use. It holds no locks because exactly
// one logical owner is supposed to exist at a time; share it between
// goroutines only through Release/Adopt.
type Vsync struct {
	svc      Service
	raw      Handle
	released bool
}

// fitsUint32 reports whether a name byte length fits the native create
// call's unsigned 32-bit length parameter.
func fitsUint32(n uint64) bool {
	return n <= math.MaxUint32
}

// Create opens a vsync connection against the default service. The name
// identifies the connection to the native side for diagnostics and routing.
//
// Returns ErrInvalidArgs if the name's byte length does not fit in a uint32
// (checked before any native call), and ErrCreateFailed if the service does
// not yield a handle.
func Create(name string) (*Vsync, error) {
	return CreateWith(DefaultService(), name)
}

// CreateWith is Create against an explicit service. This is the injection
// point for tests and for applications that manage multiple services.
func CreateWith(svc Service, name string) (*Vsync, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: nil service", ErrInvalidArgs)
	}
	if !fitsUint32(uint64(len(name))) {
		return nil, fmt.Errorf("%w: name length %d exceeds uint32", ErrInvalidArgs, len(name))
	}
	raw := svc.Create(name)
	if raw == 0 {
		return nil, ErrCreateFailed
	}
	return &Vsync{svc: svc, raw: raw}, nil
}

// Adopt takes exclusive ownership of an already-live handle, typically one
// that a callback received as its user data after RequestFrameOwned.
//
// The caller attests that raw refers to a live connection issued by svc and
// that no other owner exists or will destroy it. Neither precondition can
// be verified here; Adopt only panics on the outright invalid inputs of a
// nil service or a zero handle.
func Adopt(svc Service, raw Handle) *Vsync {
	if svc == nil {
		panic("nativevsync: Adopt with nil service")
	}
	if raw == 0 {
		panic("nativevsync: Adopt of zero handle")
	}
	return &Vsync{svc: svc, raw: raw}
}

// handle returns the raw handle, guarding every owned-state operation
// against use after Release or Close.
func (v *Vsync) handle() Handle {
	if v.released {
		panic("nativevsync: use of released vsync connection")
	}
	return v.raw
}

// Release consumes the Vsync's ownership and returns the raw handle. Close
// becomes a no-op; the returned handle is now the sole ownership token until
// it is passed to Adopt or destroyed externally.
//
// This is the escape hatch for moving the connection into a context the
// wrapper cannot express directly — most commonly as the user data of a
// requested callback, which RequestFrameOwned automates.
func (v *Vsync) Release() Handle {
	raw := v.handle()
	v.released = true
	return raw
}

// RequestFrame arms a one-shot callback for the next vsync tick, forwarding
// data to it verbatim. The Vsync retains ownership, so it must stay alive
// until the callback fires if the handle is needed afterward.
//
// The caller attests that anything reachable through data remains valid
// until the callback fires and is safe to touch from the service's signal
// thread. Issuing another request before the previous one fires is passed
// through to the native service unmodified; no queueing or serialization
// happens here.
func (v *Vsync) RequestFrame(cb FrameCallback, data uintptr) error {
	if status := v.svc.RequestFrame(v.handle(), cb, data); status != 0 {
		return RawError(status)
	}
	return nil
}

// RequestFrameOwned arms a one-shot callback and moves ownership of the
// connection into it: the callback's data argument is the raw handle, ready
// for Adopt. The Vsync is consumed either way.
//
// Ownership only transfers if the native request succeeds. On failure the
// request never became pending, so the handle is destroyed here before the
// error is returned — otherwise it would leak, since no callback will ever
// adopt it.
func (v *Vsync) RequestFrameOwned(cb FrameCallback) error {
	raw := v.handle()
	v.released = true
	if status := v.svc.RequestFrame(raw, cb, uintptr(raw)); status != 0 {
		v.svc.Destroy(raw)
		return RawError(status)
	}
	return nil
}

// Period reports the refresh period in nanoseconds.
//
// A nonzero native status is returned as a RawError and logged at debug
// level. On success the native service guarantees a positive period; a
// violation is logged at warn level and the value returned as-is, since no
// recovery is meaningful.
func (v *Vsync) Period() (uint64, error) {
	status, period := v.svc.GetPeriod(v.handle())
	if status != 0 {
		Logger().Debug("vsync period query failed", "status", status)
		return 0, RawError(status)
	}
	if period <= 0 {
		Logger().Warn("native service reported non-positive vsync period", "period", period)
	}
	return uint64(period), nil
}

// Close destroys the connection. The first call on an owned Vsync destroys
// the handle; every later call, and any call after Release or a successful
// RequestFrameOwned, is a no-op. This makes the usual
//
//	defer v.Close()
//
// pattern safe regardless of how ownership left the wrapper.
//
// Closing while a borrowed-form request is still pending is undefined by
// the native service's contract and is the caller's responsibility to
// avoid; there is no way to cancel a pending request.
func (v *Vsync) Close() {
	if v.released {
		return
	}
	v.released = true
	v.svc.Destroy(v.raw)
}
