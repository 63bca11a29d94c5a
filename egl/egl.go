/*
Package egl wraps the small slice of EGL that creating an OpenGL ES 2
context on a native window requires: display setup, config selection,
context and window-surface creation, buffer swaps and the
proc-address loader.
*/
package egl

/*
#cgo LDFLAGS: -lEGL

#include <stdlib.h>
#include <EGL/egl.h>

// EGLNativeDisplayType and EGLNativeWindowType are platform typedefs;
// route the casts through C so the Go side only handles pointers.
static EGLDisplay egl_get_display(void *native) {
	return eglGetDisplay((EGLNativeDisplayType)native);
}

static EGLSurface egl_create_window_surface(EGLDisplay dpy, EGLConfig cfg, void *native, const EGLint *attribs) {
	return eglCreateWindowSurface(dpy, cfg, (EGLNativeWindowType)native, attribs);
}

// The EGL_NO_* sentinels are cast-expression macros cgo cannot
// evaluate; comparing and producing them happens on the C side.
static int egl_is_no_display(EGLDisplay dpy) { return dpy == EGL_NO_DISPLAY; }
static int egl_is_no_context(EGLContext ctx) { return ctx == EGL_NO_CONTEXT; }
static int egl_is_no_surface(EGLSurface surf) { return surf == EGL_NO_SURFACE; }
static EGLContext egl_no_context(void) { return EGL_NO_CONTEXT; }
static EGLSurface egl_no_surface(void) { return EGL_NO_SURFACE; }
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

var ErrNoConfig = errors.New("no matching EGL config")

/* Error returns the last EGL error of the calling thread */
func Error() error {
	code := C.eglGetError()
	switch code {
	case C.EGL_SUCCESS:
		return nil
	case C.EGL_NOT_INITIALIZED:
		return errors.New("EGL_NOT_INITIALIZED")
	case C.EGL_BAD_ACCESS:
		return errors.New("EGL_BAD_ACCESS")
	case C.EGL_BAD_ALLOC:
		return errors.New("EGL_BAD_ALLOC")
	case C.EGL_BAD_ATTRIBUTE:
		return errors.New("EGL_BAD_ATTRIBUTE")
	case C.EGL_BAD_CONFIG:
		return errors.New("EGL_BAD_CONFIG")
	case C.EGL_BAD_CONTEXT:
		return errors.New("EGL_BAD_CONTEXT")
	case C.EGL_BAD_CURRENT_SURFACE:
		return errors.New("EGL_BAD_CURRENT_SURFACE")
	case C.EGL_BAD_DISPLAY:
		return errors.New("EGL_BAD_DISPLAY")
	case C.EGL_BAD_MATCH:
		return errors.New("EGL_BAD_MATCH")
	case C.EGL_BAD_NATIVE_PIXMAP:
		return errors.New("EGL_BAD_NATIVE_PIXMAP")
	case C.EGL_BAD_NATIVE_WINDOW:
		return errors.New("EGL_BAD_NATIVE_WINDOW")
	case C.EGL_BAD_PARAMETER:
		return errors.New("EGL_BAD_PARAMETER")
	case C.EGL_BAD_SURFACE:
		return errors.New("EGL_BAD_SURFACE")
	case C.EGL_CONTEXT_LOST:
		return errors.New("EGL_CONTEXT_LOST")
	default:
		return fmt.Errorf("EGL error %#x", int(code))
	}
}

/* Display is an initialized EGL display connection */
type Display struct {
	dpy C.EGLDisplay
}

/*
NewDisplay initializes EGL on a native display handle, for Wayland
the wl_display pointer of the connection the window lives on.
*/
func NewDisplay(native unsafe.Pointer) (*Display, error) {
	dpy := C.egl_get_display(native)
	if C.egl_is_no_display(dpy) != 0 {
		return nil, errors.New("unable to get EGL display")
	}
	if C.eglInitialize(dpy, nil, nil) == C.EGL_FALSE {
		return nil, fmt.Errorf("unable to initialize EGL: %w", Error())
	}
	return &Display{dpy: dpy}, nil
}

/* Version reports the EGL version string of the display */
func (d *Display) Version() string {
	return C.GoString(C.eglQueryString(d.dpy, C.EGL_VERSION))
}

type Config = C.EGLConfig

/*
ChooseConfig selects the first framebuffer configuration with at
least 8 bits per color channel including alpha, window-surface
support and OpenGL ES 2 renderability.
*/
func (d *Display) ChooseConfig() (Config, error) {
	attribs := [...]C.EGLint{
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_SURFACE_TYPE, C.EGL_WINDOW_BIT,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_ES2_BIT,
		C.EGL_NONE,
	}
	var cfg C.EGLConfig
	var count C.EGLint
	if C.eglChooseConfig(d.dpy, &attribs[0], &cfg, 1, &count) == C.EGL_FALSE {
		var none Config
		return none, fmt.Errorf("unable to choose EGL config: %w", Error())
	}
	if count == 0 {
		var none Config
		return none, ErrNoConfig
	}
	return cfg, nil
}

/* Context is an OpenGL ES 2 context with its window surface */
type Context struct {
	d    *Display
	ctx  C.EGLContext
	surf C.EGLSurface
}

/* NewContext binds the OpenGL ES API and creates an ES 2 context */
func (d *Display) NewContext(cfg Config) (*Context, error) {
	if C.eglBindAPI(C.EGL_OPENGL_ES_API) == C.EGL_FALSE {
		return nil, fmt.Errorf("unable to bind OpenGL ES API: %w", Error())
	}
	attribs := [...]C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, 2,
		C.EGL_NONE,
	}
	ctx := C.eglCreateContext(d.dpy, cfg, C.egl_no_context(), &attribs[0])
	if C.egl_is_no_context(ctx) != 0 {
		return nil, fmt.Errorf("unable to create EGL context: %w", Error())
	}
	return &Context{d: d, ctx: ctx, surf: C.egl_no_surface()}, nil
}

/* CreateWindowSurface binds the context to a native window handle */
func (c *Context) CreateWindowSurface(cfg Config, native unsafe.Pointer) error {
	surf := C.egl_create_window_surface(c.d.dpy, cfg, native, nil)
	if C.egl_is_no_surface(surf) != 0 {
		return fmt.Errorf("unable to create EGL surface: %w", Error())
	}
	c.surf = surf
	return nil
}

/* MakeCurrent makes the context current on the calling thread */
func (c *Context) MakeCurrent() error {
	if C.eglMakeCurrent(c.d.dpy, c.surf, c.surf, c.ctx) == C.EGL_FALSE {
		return fmt.Errorf("unable to make EGL context current: %w", Error())
	}
	return nil
}

/* SwapInterval of 0 requests non-blocking presentation */
func (d *Display) SwapInterval(interval int) {
	C.eglSwapInterval(d.dpy, C.EGLint(interval))
}

func (c *Context) SwapBuffers() error {
	if C.eglSwapBuffers(c.d.dpy, c.surf) == C.EGL_FALSE {
		return fmt.Errorf("unable to swap buffers: %w", Error())
	}
	return nil
}

/*
Destroy unbinds and releases surface and context. The display stays
initialized until Terminate.
*/
func (c *Context) Destroy() {
	C.eglMakeCurrent(c.d.dpy, C.egl_no_surface(), C.egl_no_surface(), C.egl_no_context())
	if C.egl_is_no_surface(c.surf) == 0 {
		C.eglDestroySurface(c.d.dpy, c.surf)
		c.surf = C.egl_no_surface()
	}
	C.eglDestroyContext(c.d.dpy, c.ctx)
}

func (d *Display) Terminate() {
	C.eglTerminate(d.dpy)
}

/*
ProcAddress resolves a GL entry point, the loader function for
gles2.InitWithProcAddrFunc.
*/
func ProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.eglGetProcAddress(cname))
}
