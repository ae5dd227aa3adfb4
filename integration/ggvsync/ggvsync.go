// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggvsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/nativevsync"
)

// Common errors returned by Run.
var (
	// ErrNilDraw is returned when the draw function is nil.
	ErrNilDraw = errors.New("ggvsync: nil draw function")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ggvsync: invalid dimensions")
)

// Frame carries the timing of one vsync tick to the draw function.
type Frame struct {
	// Timestamp is the tick time in nanoseconds on the service's clock.
	Timestamp int64
	// Delta is the time since the previous delivered frame. Zero for the
	// first frame.
	Delta time.Duration
	// Index counts delivered frames from zero. Ticks dropped because the
	// draw function was still busy do not advance it.
	Index uint64
}

// DrawFunc draws one frame. Returning false ends the loop.
type DrawFunc func(dc *gg.Context, f Frame) bool

// Run drives draw once per vsync tick until it returns false or ctx is
// done. It blocks for the duration of the loop and owns the drawing
// context and the vsync connection it creates; both are released before
// Run returns.
//
// A nil svc selects nativevsync.DefaultService.
func Run(ctx context.Context, svc nativevsync.Service, width, height int, draw DrawFunc) error {
	if draw == nil {
		return ErrNilDraw
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if svc == nil {
		svc = nativevsync.DefaultService()
	}

	v, err := nativevsync.CreateWith(svc, "ggvsync")
	if err != nil {
		return fmt.Errorf("ggvsync: create connection: %w", err)
	}
	if period, err := v.Period(); err == nil {
		nativevsync.Logger().Debug("ggvsync loop starting",
			"period", time.Duration(period), "width", width, "height", height)
	}

	loop, err := nativevsync.StartFrameLoop(v)
	if err != nil {
		return fmt.Errorf("ggvsync: start frame loop: %w", err)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	stop := func() {
		loop.Stop()
		<-loop.Done()
	}

	var (
		prev  int64
		index uint64
	)
	for {
		select {
		case <-ctx.Done():
			stop()
			return ctx.Err()
		case ts, ok := <-loop.Frames():
			if !ok {
				return loop.Err()
			}
			f := Frame{Timestamp: ts, Index: index}
			if prev != 0 && ts > prev {
				f.Delta = time.Duration(ts - prev)
			}
			prev = ts
			index++
			if !draw(dc, f) {
				stop()
				return nil
			}
		}
	}
}
