package wlclient

/*
#include "wlclient.h"
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

//export wlcHandleGlobal
func wlcHandleGlobal(handle C.uintptr_t, registry *C.struct_wl_registry, name C.uint32_t, iface *C.char, version C.uint32_t) {
	d := cgo.Handle(uintptr(handle)).Value().(*Display)

	switch C.GoString(iface) {
	case "wl_compositor":
		d.compositor = (*C.struct_wl_compositor)(C.wl_registry_bind(registry, name, &C.wl_compositor_interface, min(version, 4)))
	case "xdg_wm_base":
		d.wmBase = (*C.struct_xdg_wm_base)(C.wl_registry_bind(registry, name, &C.xdg_wm_base_interface, 1))
		C.xdg_wm_base_add_listener(d.wmBase, &C.wlc_wm_base_listener, unsafe.Pointer(uintptr(handle)))
	case "wl_seat":
		d.seat = (*C.struct_wl_seat)(C.wl_registry_bind(registry, name, &C.wl_seat_interface, 1))
		C.wl_seat_add_listener(d.seat, &C.wlc_seat_listener, unsafe.Pointer(uintptr(handle)))
	case "wl_output":
		d.output = (*C.struct_wl_output)(C.wl_registry_bind(registry, name, &C.wl_output_interface, min(version, 2)))
		C.wl_output_add_listener(d.output, &C.wlc_output_listener, unsafe.Pointer(uintptr(handle)))
	}
}

//export wlcHandleToplevelConfigure
func wlcHandleToplevelConfigure(handle C.uintptr_t, width, height C.int32_t) {
	w := cgo.Handle(uintptr(handle)).Value().(*Window)
	w.pendingWidth, w.pendingHeight = width, height
}

//export wlcHandleSurfaceConfigure
func wlcHandleSurfaceConfigure(handle C.uintptr_t, serial C.uint32_t) {
	w := cgo.Handle(uintptr(handle)).Value().(*Window)
	C.xdg_surface_ack_configure(w.xdgSurface, serial)
	w.handler.Configure(int(w.pendingWidth), int(w.pendingHeight))
}

//export wlcHandleToplevelClose
func wlcHandleToplevelClose(handle C.uintptr_t) {
	w := cgo.Handle(uintptr(handle)).Value().(*Window)
	w.handler.Closed()
}
