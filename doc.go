// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package nativevsync provides ownership-safe bindings to a platform's
// native vsync service.
//
// # Overview
//
// A vsync connection is an opaque native handle. The native side issues it,
// expects exactly one destroy call for it, and delivers requested frame
// callbacks on a signal thread it controls. Vsync wraps that handle so that
// application code gets exactly-once destruction and an explicit, auditable
// way to move ownership into a pending callback and back out again.
//
// # Quick Start
//
//	v, err := nativevsync.Create("compositor")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer v.Close()
//
//	period, err := v.Period()
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Printf("refresh period: %s", time.Duration(period))
//
//	err = v.RequestFrame(func(timestamp int64, data uintptr) {
//		// runs on the native signal thread
//	}, 0)
//
// # Ownership
//
// Every Vsync is the sole owner of its handle. Close destroys the handle
// exactly once; calling it again is a no-op. Release consumes that ownership
// and hands back the raw handle, and Adopt reconstructs an owner from a raw
// handle. RequestFrameOwned combines the two: it parks ownership inside the
// pending callback, which receives the raw handle as its user data and can
// Adopt it to continue the cycle. FrameLoop packages that cycle up as a
// channel of frame timestamps.
//
// # Services
//
// All native calls go through the Service interface. On OpenHarmony builds
// (the "ohos" build tag) the real binding registers itself automatically;
// everywhere else the default is SoftwareService, a timer-driven simulation,
// so the library is usable on any platform. Tests inject their own Service
// via CreateWith.
//
// # Concurrency
//
// Vsync itself carries no locks. One logical owner exists at a time, and the
// Release/Adopt pair is the only supported way to move that ownership across
// goroutines, including into a callback. Frame callbacks arrive on a
// goroutine (or native thread) owned by the service, never on the requesting
// goroutine.
package nativevsync
