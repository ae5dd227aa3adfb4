// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativevsync

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// tickingStub is a Service whose requests fire on their own goroutine after
// a short delay, like a real signal thread would. failAfter makes the n-th
// request (1-based) fail, for re-arm error paths; zero disables failures.
type tickingStub struct {
	mu        sync.Mutex
	handle    Handle
	requests  int
	destroys  []Handle
	failAfter int
	failCode  int32
	clock     int64
}

func (s *tickingStub) Create(name string) Handle {
	return s.handle
}

func (s *tickingStub) Destroy(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroys = append(s.destroys, h)
}

func (s *tickingStub) RequestFrame(h Handle, cb FrameCallback, data uintptr) int32 {
	s.mu.Lock()
	s.requests++
	if s.failAfter > 0 && s.requests >= s.failAfter {
		s.mu.Unlock()
		return s.failCode
	}
	s.clock++
	ts := s.clock
	s.mu.Unlock()

	go func() {
		time.Sleep(time.Millisecond)
		cb(ts, data)
	}()
	return 0
}

func (s *tickingStub) GetPeriod(h Handle) (int32, int64) {
	return 0, int64(time.Millisecond)
}

func (s *tickingStub) destroyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.destroys)
}

func TestFrameLoopDeliversFrames(t *testing.T) {
	stub := &tickingStub{handle: 0x77}
	v, err := CreateWith(stub, "loop")
	if err != nil {
		t.Fatalf("CreateWith() error = %v", err)
	}

	loop, err := StartFrameLoop(v)
	if err != nil {
		t.Fatalf("StartFrameLoop() error = %v", err)
	}

	var last int64
	for i := 0; i < 3; i++ {
		select {
		case ts := <-loop.Frames():
			if ts <= last {
				t.Errorf("timestamp %d not increasing (prev %d)", ts, last)
			}
			last = ts
		case <-time.After(time.Second):
			t.Fatalf("frame %d did not arrive within 1s", i)
		}
	}

	loop.Stop()
	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not finish within 1s of Stop")
	}

	if err := loop.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after clean Stop", err)
	}
	if got := stub.destroyCount(); got != 1 {
		t.Fatalf("destroy count = %d, want 1", got)
	}
	if stub.destroys[0] != 0x77 {
		t.Errorf("destroyed handle = %#x, want 0x77", uintptr(stub.destroys[0]))
	}
}

func TestFrameLoopFramesChannelCloses(t *testing.T) {
	stub := &tickingStub{handle: 0x77}
	v, err := CreateWith(stub, "loop")
	if err != nil {
		t.Fatalf("CreateWith() error = %v", err)
	}
	loop, err := StartFrameLoop(v)
	if err != nil {
		t.Fatalf("StartFrameLoop() error = %v", err)
	}

	loop.Stop()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-loop.Frames():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Frames() not closed within 1s of Stop")
		}
	}
}

func TestFrameLoopStartFailure(t *testing.T) {
	stub := &tickingStub{handle: 0x77, failAfter: 1, failCode: 5}
	v, err := CreateWith(stub, "loop")
	if err != nil {
		t.Fatalf("CreateWith() error = %v", err)
	}

	loop, err := StartFrameLoop(v)
	var raw RawError
	if !errors.As(err, &raw) || int32(raw) != 5 {
		t.Fatalf("StartFrameLoop() error = %v, want RawError(5)", err)
	}
	if loop != nil {
		t.Error("StartFrameLoop() returned a loop alongside an error")
	}
	// Consuming-request semantics: the failed arm destroyed the handle.
	if got := stub.destroyCount(); got != 1 {
		t.Errorf("destroy count = %d, want 1", got)
	}
}

func TestFrameLoopRearmFailure(t *testing.T) {
	stub := &tickingStub{handle: 0x77, failAfter: 3, failCode: 9}
	v, err := CreateWith(stub, "loop")
	if err != nil {
		t.Fatalf("CreateWith() error = %v", err)
	}
	loop, err := StartFrameLoop(v)
	if err != nil {
		t.Fatalf("StartFrameLoop() error = %v", err)
	}

	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not finish within 1s of re-arm failure")
	}

	var raw RawError
	if !errors.As(loop.Err(), &raw) || int32(raw) != 9 {
		t.Errorf("Err() = %v, want RawError(9)", loop.Err())
	}
	if got := stub.destroyCount(); got != 1 {
		t.Errorf("destroy count = %d, want 1", got)
	}
}

func TestFrameLoopWithSoftwareService(t *testing.T) {
	svc := NewSoftwareService(time.Millisecond)
	v, err := CreateWith(svc, "loop")
	if err != nil {
		t.Fatalf("CreateWith() error = %v", err)
	}
	loop, err := StartFrameLoop(v)
	if err != nil {
		t.Fatalf("StartFrameLoop() error = %v", err)
	}

	select {
	case ts := <-loop.Frames():
		if ts <= 0 {
			t.Errorf("timestamp = %d, want positive", ts)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame within 1s")
	}

	loop.Stop()
	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not finish within 1s of Stop")
	}
	if err := loop.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
