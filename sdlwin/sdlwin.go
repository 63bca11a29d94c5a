/*
Package sdlwin runs the clear-color window through SDL2, which owns
both the window and the context creation. The window events SDL
reports are mapped onto the same state machine as the direct EGL
path: the initial drawable size acts as the first configure, size
changes redraw, a close request ends the loop.
*/
package sdlwin

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/friedelschoen/glclear"
)

func Run(opts glclear.Options) error {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("unable to initialize SDL: %w", err)
	}
	defer sdl.Quit()

	/* the same minimal pixel format the EGL path requests */
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_ES)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 0)
	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	win, err := sdl.CreateWindow(opts.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(opts.Width), int32(opts.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE|sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("unable to create window: %w", err)
	}
	defer win.Destroy()
	win.SetMinimumSize(int32(opts.Width), int32(opts.Height))

	app := glclear.NewApp(opts, func(width, height int) (glclear.Context, error) {
		return newContext(opts, win, width, height)
	})
	defer app.Close()

	/* SDL has no compositor-driven first configure; the created
	 * window's drawable size takes that role */
	w, h := win.GLGetDrawableSize()
	if err := app.Configure(int(w), int(h)); err != nil {
		return err
	}

	for !app.Exiting() {
		event := sdl.WaitEvent()
		if event == nil {
			continue
		}
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			app.RequestClose()
		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_CLOSE:
				app.RequestClose()
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				if err := app.Configure(int(ev.Data1), int(ev.Data2)); err != nil {
					return err
				}
			}
		}
	}
	log.Debug("close requested, exiting")
	return nil
}

/* context wraps the SDL-created GL context */
type context struct {
	opts glclear.Options
	win  *sdl.Window
	ctx  sdl.GLContext
}

func newContext(opts glclear.Options, win *sdl.Window, width, height int) (glclear.Context, error) {
	ctx, err := win.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("unable to create GL context: %w", err)
	}
	if err := win.GLMakeCurrent(ctx); err != nil {
		sdl.GLDeleteContext(ctx)
		return nil, fmt.Errorf("unable to make GL context current: %w", err)
	}

	if err := gles2.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		return sdl.GLGetProcAddress(name)
	}); err != nil {
		sdl.GLDeleteContext(ctx)
		return nil, fmt.Errorf("unable to load GL: %w", err)
	}
	log.Info("context ready",
		"gl-version", gles2.GoStr(gles2.GetString(gles2.VERSION)),
		"gl-renderer", gles2.GoStr(gles2.GetString(gles2.RENDERER)))

	gles2.Viewport(0, 0, int32(width), int32(height))

	return &context{opts: opts, win: win, ctx: ctx}, nil
}

func (c *context) Draw() error {
	clear := c.opts.Clear
	gles2.ClearColor(
		float32(clear.R)/0xff,
		float32(clear.G)/0xff,
		float32(clear.B)/0xff,
		float32(clear.A)/0xff)
	gles2.Clear(gles2.COLOR_BUFFER_BIT)

	c.win.GLSwap()
	return nil
}

/* SDL resizes the drawable itself; only the viewport needs updating */
func (c *context) Resize(width, height int) error {
	gles2.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (c *context) Destroy() {
	sdl.GLDeleteContext(c.ctx)
}
