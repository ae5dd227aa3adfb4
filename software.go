// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativevsync

import (
	"sync"
	"time"
)

// defaultSoftwarePeriod approximates a 60 Hz display.
const defaultSoftwarePeriod = 16_666_667 * time.Nanosecond

// Status codes reported by SoftwareService. Nonzero values surface through
// the wrapper as RawError, the same as native codes would.
const (
	softwareStatusOK            int32 = 0
	softwareStatusUnknownHandle int32 = -1
)

// SoftwareService is a pure-Go Service that simulates vsync with wall-clock
// timers. It exists for the same reason the gg software backend does: the
// full API stays usable on hosts without the platform facility, which also
// makes it the default service on non-OpenHarmony builds.
//
// Ticks are aligned to each connection's creation time, so two requests in
// the same interval fire together at the next boundary. Callbacks run on
// timer goroutines, mirroring the native service's dedicated signal thread.
type SoftwareService struct {
	period time.Duration

	mu    sync.Mutex
	next  Handle
	conns map[Handle]*softwareConn
}

type softwareConn struct {
	name  string
	epoch time.Time
}

// NewSoftwareService creates a software service with the given simulated
// refresh period. A non-positive period selects the 60 Hz default.
func NewSoftwareService(period time.Duration) *SoftwareService {
	if period <= 0 {
		period = defaultSoftwarePeriod
	}
	return &SoftwareService{
		period: period,
		conns:  make(map[Handle]*softwareConn),
	}
}

// Create allocates a simulated connection. Handles are never reused within
// one service, so a stale handle from a destroyed connection cannot alias a
// live one.
func (s *SoftwareService) Create(name string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.conns[s.next] = &softwareConn{name: name, epoch: time.Now()}
	return s.next
}

// Destroy releases a simulated connection. Requests still pending at this
// point are silently dropped rather than fired; the native contract leaves
// destroy-with-pending undefined, and dropping is the simulation's choice.
func (s *SoftwareService) Destroy(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, h)
}

// RequestFrame schedules cb for the connection's next tick boundary.
func (s *SoftwareService) RequestFrame(h Handle, cb FrameCallback, data uintptr) int32 {
	s.mu.Lock()
	c, ok := s.conns[h]
	s.mu.Unlock()
	if !ok {
		return softwareStatusUnknownHandle
	}

	delay := s.period - time.Since(c.epoch)%s.period
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, alive := s.conns[h]
		s.mu.Unlock()
		if !alive || cb == nil {
			return
		}
		cb(time.Now().UnixNano(), data)
	})
	return softwareStatusOK
}

// GetPeriod reports the simulated refresh period.
func (s *SoftwareService) GetPeriod(h Handle) (int32, int64) {
	s.mu.Lock()
	_, ok := s.conns[h]
	s.mu.Unlock()
	if !ok {
		return softwareStatusUnknownHandle, 0
	}
	return softwareStatusOK, int64(s.period)
}
