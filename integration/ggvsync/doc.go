// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggvsync paces gg drawing at the display refresh rate.
//
// It connects a nativevsync frame loop to a gg.Context: the draw function
// runs once per vsync tick with frame timing metadata, instead of free
// running or sleeping on a guessed interval.
//
//	err := ggvsync.Run(ctx, nil, 800, 600,
//		func(dc *gg.Context, f ggvsync.Frame) bool {
//			dc.ClearWithColor(gg.White)
//			// ... draw using f.Delta for animation ...
//			return f.Index < 600 // stop after 600 frames
//		})
//
// Pass a nil Service to use the platform default (the real binding on
// OpenHarmony, the software simulation elsewhere).
package ggvsync
