package wlclient

/*
#include <stdlib.h>
#include "wlclient.h"
*/
import "C"

import (
	"errors"
	"runtime/cgo"
	"unsafe"
)

/*
WindowHandler receives the window events a client must react to.
Configure carries the size proposed by the compositor, 0,0 when it
has no preference; it is delivered after the configure has been
acknowledged, so the handler may render immediately.
*/
type WindowHandler interface {
	Configure(width, height int)
	Closed()
}

/* Window is an xdg-shell toplevel over a wl_surface */
type Window struct {
	d       *Display
	handler WindowHandler

	surface    *C.struct_wl_surface
	xdgSurface *C.struct_xdg_surface
	toplevel   *C.struct_xdg_toplevel
	eglWin     *C.struct_wl_egl_window

	handle cgo.Handle

	/* size from the last xdg_toplevel.configure, applied on ack */
	pendingWidth, pendingHeight C.int32_t
}

/*
NewWindow creates a toplevel window with the given metadata and
commits it. The compositor answers with the first configure event;
nothing should be drawn before that arrives.
*/
func (d *Display) NewWindow(title, appID string, minWidth, minHeight int, handler WindowHandler) (*Window, error) {
	win := &Window{d: d, handler: handler}

	win.surface = C.wl_compositor_create_surface(d.compositor)
	if win.surface == nil {
		return nil, errors.New("unable to create surface")
	}

	win.xdgSurface = C.xdg_wm_base_get_xdg_surface(d.wmBase, win.surface)
	if win.xdgSurface == nil {
		win.Destroy()
		return nil, errors.New("unable to get xdg_surface")
	}
	win.toplevel = C.xdg_surface_get_toplevel(win.xdgSurface)
	if win.toplevel == nil {
		win.Destroy()
		return nil, errors.New("unable to get xdg_toplevel")
	}

	win.handle = cgo.NewHandle(win)
	C.xdg_surface_add_listener(win.xdgSurface, &C.wlc_xdg_surface_listener, unsafe.Pointer(uintptr(win.handle)))
	C.xdg_toplevel_add_listener(win.toplevel, &C.wlc_xdg_toplevel_listener, unsafe.Pointer(uintptr(win.handle)))

	ctitle := C.CString(title)
	defer C.free(unsafe.Pointer(ctitle))
	C.xdg_toplevel_set_title(win.toplevel, ctitle)

	cappid := C.CString(appID)
	defer C.free(unsafe.Pointer(cappid))
	C.xdg_toplevel_set_app_id(win.toplevel, cappid)

	C.xdg_toplevel_set_min_size(win.toplevel, C.int32_t(minWidth), C.int32_t(minHeight))

	C.wl_surface_commit(win.surface)
	return win, nil
}

/*
EGLWindow returns the native window handle for EGL surface creation,
creating the wl_egl_window on first use.
*/
func (w *Window) EGLWindow(width, height int) (unsafe.Pointer, error) {
	if w.eglWin == nil {
		w.eglWin = C.wl_egl_window_create(w.surface, C.int(width), C.int(height))
		if w.eglWin == nil {
			return nil, errors.New("unable to create wl_egl_window")
		}
	} else {
		C.wl_egl_window_resize(w.eglWin, C.int(width), C.int(height), 0, 0)
	}
	return unsafe.Pointer(w.eglWin), nil
}

/* ResizeBuffer adjusts the backing size of the wl_egl_window */
func (w *Window) ResizeBuffer(width, height int) {
	if w.eglWin != nil {
		C.wl_egl_window_resize(w.eglWin, C.int(width), C.int(height), 0, 0)
	}
}

/* Commit publishes the currently attached buffer */
func (w *Window) Commit() {
	C.wl_surface_commit(w.surface)
}

/*
Destroy tears the window down. The caller must have destroyed any
rendering context referencing it first.
*/
func (w *Window) Destroy() {
	if w.eglWin != nil {
		C.wl_egl_window_destroy(w.eglWin)
		w.eglWin = nil
	}
	if w.toplevel != nil {
		C.xdg_toplevel_destroy(w.toplevel)
		w.toplevel = nil
	}
	if w.xdgSurface != nil {
		C.xdg_surface_destroy(w.xdgSurface)
		w.xdgSurface = nil
	}
	if w.surface != nil {
		C.wl_surface_destroy(w.surface)
		w.surface = nil
	}
	if w.handle != 0 {
		w.handle.Delete()
		w.handle = 0
	}
}
