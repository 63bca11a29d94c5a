/*
Package glwin runs the clear-color window on Wayland with a context
created through the EGL bindings directly.
*/
package glwin

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v3.1/gles2"

	"github.com/friedelschoen/glclear"
	"github.com/friedelschoen/glclear/egl"
	"github.com/friedelschoen/glclear/wlclient"
)

/*
Run opens the window and blocks dispatching events until the
compositor asks it to close. Any display or GPU error is returned;
there is no fallback rendering path.
*/
func Run(opts glclear.Options) error {
	/* the EGL context is bound to this thread */
	runtime.LockOSThread()

	display, err := wlclient.Connect()
	if err != nil {
		return err
	}
	defer display.Close()

	var win *wlclient.Window
	app := glclear.NewApp(opts, func(width, height int) (glclear.Context, error) {
		return newContext(opts, display, win, width, height)
	})

	win, err = display.NewWindow(opts.Title, opts.AppID, opts.Width, opts.Height, &handler{app: app})
	if err != nil {
		return err
	}
	defer win.Destroy()

	/* context teardown must precede window teardown */
	defer app.Close()

	/* the first configure triggers the first draw */
	for !app.Exiting() {
		if err := display.Dispatch(); err != nil {
			return err
		}
	}
	log.Debug("close requested, exiting")
	return nil
}

/* handler feeds window events into the state machine */
type handler struct {
	app *glclear.App
}

func (h *handler) Configure(width, height int) {
	if err := h.app.Configure(width, height); err != nil {
		log.Fatal("configure failed", "err", err)
	}
}

func (h *handler) Closed() {
	h.app.RequestClose()
}

/* context is an EGL-backed glclear.Context */
type context struct {
	opts    glclear.Options
	display *egl.Display
	ctx     *egl.Context
	win     *wlclient.Window
}

func newContext(opts glclear.Options, display *wlclient.Display, win *wlclient.Window, width, height int) (glclear.Context, error) {
	native, err := win.EGLWindow(width, height)
	if err != nil {
		return nil, err
	}

	d, err := egl.NewDisplay(display.Native())
	if err != nil {
		return nil, err
	}
	log.Debug("EGL initialized", "version", d.Version())

	cfg, err := d.ChooseConfig()
	if err != nil {
		d.Terminate()
		return nil, err
	}

	ctx, err := d.NewContext(cfg)
	if err != nil {
		d.Terminate()
		return nil, err
	}
	if err := ctx.CreateWindowSurface(cfg, native); err != nil {
		ctx.Destroy()
		d.Terminate()
		return nil, err
	}
	if err := ctx.MakeCurrent(); err != nil {
		ctx.Destroy()
		d.Terminate()
		return nil, err
	}

	/* non-blocking presentation */
	d.SwapInterval(0)

	if err := gles2.InitWithProcAddrFunc(egl.ProcAddress); err != nil {
		ctx.Destroy()
		d.Terminate()
		return nil, fmt.Errorf("unable to load GL: %w", err)
	}
	log.Info("context ready",
		"gl-version", gles2.GoStr(gles2.GetString(gles2.VERSION)),
		"gl-renderer", gles2.GoStr(gles2.GetString(gles2.RENDERER)))

	gles2.Viewport(0, 0, int32(width), int32(height))

	return &context{opts: opts, display: d, ctx: ctx, win: win}, nil
}

func (c *context) Draw() error {
	clear := c.opts.Clear
	gles2.ClearColor(
		float32(clear.R)/0xff,
		float32(clear.G)/0xff,
		float32(clear.B)/0xff,
		float32(clear.A)/0xff)
	gles2.Clear(gles2.COLOR_BUFFER_BIT)

	if err := c.ctx.SwapBuffers(); err != nil {
		return err
	}
	c.win.Commit()
	return nil
}

func (c *context) Resize(width, height int) error {
	c.win.ResizeBuffer(width, height)
	gles2.Viewport(0, 0, int32(width), int32(height))
	return nil
}

/* release order: context and surface, then the EGL display */
func (c *context) Destroy() {
	c.ctx.Destroy()
	c.display.Terminate()
}
