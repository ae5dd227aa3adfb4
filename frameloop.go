// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativevsync

import (
	"sync"
	"sync/atomic"
)

// FrameLoop turns one-shot frame callbacks into a stream of ticks. It owns
// a vsync connection and keeps it parked inside a pending callback: each
// tick, the callback adopts the handle from its user data, publishes the
// timestamp, and either re-arms the next request or destroys the handle if
// the loop has been stopped. This is the canonical use of the
// RequestFrameOwned/Adopt round trip.
//
// Ticks are delivered on a buffered channel and dropped when the receiver
// is not keeping up; a vsync tick that nobody consumed in time is stale by
// definition.
type FrameLoop struct {
	svc    Service
	frames chan int64
	done   chan struct{}
	stop   atomic.Bool

	errMu    sync.Mutex
	err      error
	finished bool
}

// StartFrameLoop takes ownership of v and arms the first frame request.
// On error the connection has already been destroyed (consuming-request
// semantics) and no loop exists.
func StartFrameLoop(v *Vsync) (*FrameLoop, error) {
	l := &FrameLoop{
		svc:    v.svc,
		frames: make(chan int64, 1),
		done:   make(chan struct{}),
	}
	if err := v.RequestFrameOwned(l.onFrame); err != nil {
		return nil, err
	}
	return l, nil
}

// Frames returns the tick channel. It is closed when the loop ends, so it
// can be ranged over.
func (l *FrameLoop) Frames() <-chan int64 {
	return l.frames
}

// Done is closed once the loop has ended and the connection is destroyed.
func (l *FrameLoop) Done() <-chan struct{} {
	return l.done
}

// Stop requests shutdown. The native service offers no cancellation, so the
// already-armed request still fires; the handle is destroyed from inside
// that final callback, after which Done is closed. Stop may be called from
// any goroutine, more than once.
func (l *FrameLoop) Stop() {
	l.stop.Store(true)
}

// Err reports why the loop ended: nil after a clean Stop, or the re-arm
// error otherwise. Only meaningful once Done is closed.
func (l *FrameLoop) Err() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	return l.err
}

// onFrame runs on the service's signal thread, exactly once per armed
// request, so sends and the finish transition never race with themselves.
func (l *FrameLoop) onFrame(timestamp int64, data uintptr) {
	v := Adopt(l.svc, Handle(data))

	select {
	case l.frames <- timestamp:
	default:
	}

	if l.stop.Load() {
		v.Close()
		l.finish(nil)
		return
	}
	if err := v.RequestFrameOwned(l.onFrame); err != nil {
		l.finish(err)
	}
}

func (l *FrameLoop) finish(err error) {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	if l.finished {
		return
	}
	l.finished = true
	l.err = err
	close(l.frames)
	close(l.done)
}
