/*
Package wlclient is a thin cgo client for the Wayland protocol pieces
a single xdg-shell toplevel needs: registry binding, surface and
window creation, blocking event dispatch and the wl_egl_window native
handle EGL renders into.

Event callbacks run on the thread calling Dispatch.
*/
package wlclient

/*
#cgo LDFLAGS: -lwayland-client -lwayland-egl

#include <stdlib.h>
#include "wlclient.h"
*/
import "C"

import (
	"errors"
	"runtime/cgo"
	"unsafe"
)

/* Display owns the server connection and the bound globals */
type Display struct {
	d          *C.struct_wl_display
	registry   *C.struct_wl_registry
	compositor *C.struct_wl_compositor
	wmBase     *C.struct_xdg_wm_base
	seat       *C.struct_wl_seat
	output     *C.struct_wl_output

	handle cgo.Handle
}

/*
Connect connects to the wayland server named by WAYLAND_DISPLAY and
binds the required globals. A missing compositor or xdg_wm_base is an
unrecoverable environment error.
*/
func Connect() (*Display, error) {
	d := C.wl_display_connect(nil)
	if d == nil {
		return nil, errors.New("unable to connect to wayland server")
	}

	disp := &Display{d: d}
	disp.handle = cgo.NewHandle(disp)

	disp.registry = C.wl_display_get_registry(d)
	if disp.registry == nil {
		disp.Close()
		return nil, errors.New("unable to get registry")
	}
	C.wl_registry_add_listener(disp.registry, &C.wlc_registry_listener, unsafe.Pointer(uintptr(disp.handle)))

	/* first roundtrip delivers the globals, second flushes the binds */
	C.wl_display_roundtrip(d)
	C.wl_display_roundtrip(d)

	if disp.compositor == nil {
		disp.Close()
		return nil, errors.New("wl_compositor not available")
	}
	if disp.wmBase == nil {
		disp.Close()
		return nil, errors.New("xdg_wm_base not available")
	}
	return disp, nil
}

/*
Dispatch blocks until the server sends events and delivers them. An
error means the connection broke; there is no recovery for a client.
*/
func (d *Display) Dispatch() error {
	if C.wl_display_dispatch(d.d) < 0 {
		return errors.New("wayland connection closed")
	}
	return nil
}

/* Roundtrip blocks until the server has processed all pending requests */
func (d *Display) Roundtrip() {
	C.wl_display_roundtrip(d.d)
}

/* Native exposes the wl_display pointer, the EGL native display handle */
func (d *Display) Native() unsafe.Pointer {
	return unsafe.Pointer(d.d)
}

/* Close releases the globals and disconnects. Windows go first. */
func (d *Display) Close() {
	if d.output != nil {
		C.wl_output_destroy(d.output)
		d.output = nil
	}
	if d.seat != nil {
		C.wl_seat_destroy(d.seat)
		d.seat = nil
	}
	if d.wmBase != nil {
		C.xdg_wm_base_destroy(d.wmBase)
		d.wmBase = nil
	}
	if d.compositor != nil {
		C.wl_compositor_destroy(d.compositor)
		d.compositor = nil
	}
	if d.registry != nil {
		C.wl_registry_destroy(d.registry)
		d.registry = nil
	}
	C.wl_display_disconnect(d.d)
	d.d = nil

	if d.handle != 0 {
		d.handle.Delete()
		d.handle = 0
	}
}
