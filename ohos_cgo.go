// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build ohos && cgo

package nativevsync

// C glue for ohos.go. Files with //export directives cannot define C
// functions in their preamble, so the request wrappers live here.

/*
#include <stdint.h>
#include <native_vsync/native_vsync.h>

extern void goNativeVsyncFrame(long long timestamp, void *data);

int nativevsyncRequestFrame(OH_NativeVSync *vsync, uintptr_t slot) {
	return OH_NativeVSync_RequestFrame(
		vsync, (OH_NativeVSync_FrameCallback)goNativeVsyncFrame, (void *)slot);
}

int nativevsyncRequestFrameNull(OH_NativeVSync *vsync, void *data) {
	return OH_NativeVSync_RequestFrame(vsync, NULL, data);
}
*/
import "C"
