// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build ohos && cgo

package nativevsync

/*
#cgo LDFLAGS: -lnative_vsync

#include <stdint.h>
#include <stdlib.h>
#include <native_vsync/native_vsync.h>

int nativevsyncRequestFrame(OH_NativeVSync *vsync, uintptr_t slot);
int nativevsyncRequestFrameNull(OH_NativeVSync *vsync, void *data);
*/
import "C"

import (
	"unsafe"

	"github.com/gogpu/nativevsync/internal/slots"
)

// ohosService binds Service to OpenHarmony's libnative_vsync.so.
type ohosService struct{}

func init() {
	RegisterService(ohosService{})
}

// pendingFrame is the Go-side state of one armed request. It rides through
// the native user-data pointer as a slot id; the trampoline takes the slot
// exactly once when the tick fires.
type pendingFrame struct {
	cb   FrameCallback
	data uintptr
}

var frameSlots = slots.New()

func nv(h Handle) *C.OH_NativeVSync {
	return (*C.OH_NativeVSync)(unsafe.Pointer(h))
}

func (ohosService) Create(name string) Handle {
	// The native side takes an explicit length; no trailing NUL is
	// required, but CString keeps the buffer alive for the call.
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	raw := C.OH_NativeVSync_Create(cname, C.uint(len(name)))
	return Handle(uintptr(unsafe.Pointer(raw)))
}

func (ohosService) Destroy(h Handle) {
	C.OH_NativeVSync_Destroy(nv(h))
}

func (ohosService) RequestFrame(h Handle, cb FrameCallback, data uintptr) int32 {
	if cb == nil {
		// Null callback is part of the native contract; pass it through
		// without burning a slot.
		return int32(C.nativevsyncRequestFrameNull(nv(h), unsafe.Pointer(data)))
	}
	id := frameSlots.Put(pendingFrame{cb: cb, data: data})
	status := int32(C.nativevsyncRequestFrame(nv(h), C.uintptr_t(id)))
	if status != 0 {
		// The request never became pending; reclaim the slot so it
		// cannot leak.
		frameSlots.Take(id)
	}
	return status
}

func (ohosService) GetPeriod(h Handle) (int32, int64) {
	var period C.longlong = -1
	status := int32(C.OH_NativeVSync_GetPeriod(nv(h), &period))
	return status, int64(period)
}

// goNativeVsyncFrame is the single trampoline the native service calls on
// its signal thread for every armed request.
//
//export goNativeVsyncFrame
func goNativeVsyncFrame(timestamp C.longlong, data unsafe.Pointer) {
	v, ok := frameSlots.Take(uintptr(data))
	if !ok {
		return
	}
	p := v.(pendingFrame)
	p.cb(int64(timestamp), p.data)
}
