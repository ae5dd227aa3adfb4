// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativevsync

import "sync"

// Handle is an opaque reference to a native vsync connection. It is
// meaningful only to the Service that issued it. A zero Handle is never a
// valid connection.
type Handle uintptr

// FrameCallback is invoked by a Service when a requested vsync tick occurs.
// The timestamp is in nanoseconds on the native service's clock. The data
// value is the user data supplied with the request, forwarded verbatim.
//
// Callbacks run on a goroutine or native thread owned by the service, never
// on the goroutine that requested the frame. Anything the callback touches
// through data must remain valid until the callback fires and must be safe
// to use from that thread.
type FrameCallback func(timestamp int64, data uintptr)

// Service is the seam to the platform's native vsync facility. It mirrors
// the native contract exactly: handles in, raw status codes out, with zero
// meaning success. The wrapper layer (Vsync) owns the translation of status
// codes into errors.
//
// Implementations must tolerate calls from any goroutine, but concurrent
// calls on the same Handle are the caller's problem to serialize — the
// native service documents no guarantee there, and neither does this
// interface.
type Service interface {
	// Create allocates a new connection named for diagnostics and routing.
	// A zero Handle reports failure.
	Create(name string) Handle

	// Destroy releases a connection. Must be called exactly once per
	// live Handle.
	Destroy(h Handle)

	// RequestFrame arms a one-shot callback for the next vsync tick.
	// A nil callback is passed through to the native side unmodified.
	// Returns zero on success, a native status code otherwise.
	RequestFrame(h Handle, cb FrameCallback, data uintptr) int32

	// GetPeriod reports the refresh period in nanoseconds. The period is
	// only meaningful when status is zero.
	GetPeriod(h Handle) (status int32, periodNanos int64)
}

// Service registration. A platform binding (such as the OpenHarmony binding
// built under the "ohos" tag) registers itself from init(); when nothing is
// registered, the software simulation is the fallback so the library works
// everywhere.
var (
	serviceMu       sync.RWMutex
	platformService Service

	fallbackOnce sync.Once
	fallback     *SoftwareService
)

// RegisterService installs s as the default service returned by
// DefaultService. It is typically called from an init() function in a
// platform binding. Registering a second service replaces the first;
// registering nil restores the software fallback.
func RegisterService(s Service) {
	serviceMu.Lock()
	defer serviceMu.Unlock()
	platformService = s
}

// DefaultService returns the registered platform service, or the shared
// SoftwareService when no platform binding is present.
func DefaultService() Service {
	serviceMu.RLock()
	s := platformService
	serviceMu.RUnlock()
	if s != nil {
		return s
	}
	fallbackOnce.Do(func() {
		fallback = NewSoftwareService(0)
	})
	return fallback
}
