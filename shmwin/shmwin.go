/*
Package shmwin runs the clear-color window without a GPU. The frame
lives in a shared-memory pool the compositor maps directly, and the
clear color is written into it on the CPU. The Wayland session is
spoken over a plain socket, no C libraries involved.
*/
package shmwin

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/daaku/swizzle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	xdg_shell "github.com/rajveermalviya/go-wayland/wayland/stable/xdg-shell"
	"golang.org/x/sys/unix"

	"github.com/friedelschoen/glclear"
)

type globals struct {
	display    *client.Display
	registry   *client.Registry
	compositor *client.Compositor
	shm        *client.Shm
	wmBase     *xdg_shell.WmBase
}

func connect() (*globals, error) {
	d, err := client.Connect("")
	if err != nil {
		return nil, fmt.Errorf("unable to connect to wayland server: %w", err)
	}
	g := &globals{display: d}

	g.registry, err = d.GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("unable to get registry: %w", err)
	}
	g.registry.SetGlobalHandler(func(e client.RegistryGlobalEvent) {
		switch e.Interface {
		case "wl_compositor":
			g.compositor = client.NewCompositor(d.Context())
			g.registry.Bind(e.Name, e.Interface, e.Version, g.compositor)
		case "wl_shm":
			g.shm = client.NewShm(d.Context())
			g.registry.Bind(e.Name, e.Interface, e.Version, g.shm)
		case "xdg_wm_base":
			g.wmBase = xdg_shell.NewWmBase(d.Context())
			g.registry.Bind(e.Name, e.Interface, e.Version, g.wmBase)
		}
	})

	/* first pass announces globals, second guarantees the binds landed */
	if err := g.roundtrip(); err != nil {
		return nil, err
	}
	if err := g.roundtrip(); err != nil {
		return nil, err
	}

	if g.compositor == nil || g.shm == nil || g.wmBase == nil {
		return nil, errors.New("compositor is missing wl_compositor, wl_shm or xdg_wm_base")
	}
	g.wmBase.SetPingHandler(func(e xdg_shell.WmBasePingEvent) {
		g.wmBase.Pong(e.Serial)
	})
	return g, nil
}

func (g *globals) roundtrip() error {
	callback, err := g.display.Sync()
	if err != nil {
		return fmt.Errorf("unable to sync display: %w", err)
	}
	defer callback.Destroy()

	done := false
	callback.SetDoneHandler(func(client.CallbackDoneEvent) {
		done = true
	})
	for !done {
		if err := g.display.Context().Dispatch(); err != nil {
			return fmt.Errorf("unable to dispatch events: %w", err)
		}
	}
	return nil
}

func (g *globals) close() {
	g.display.Destroy()
	g.display.Context().Close()
}

func Run(opts glclear.Options) error {
	g, err := connect()
	if err != nil {
		return err
	}
	defer g.close()

	surface, err := g.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("unable to create surface: %w", err)
	}
	defer surface.Destroy()

	xdgSurface, err := g.wmBase.GetXdgSurface(surface)
	if err != nil {
		return fmt.Errorf("unable to create xdg surface: %w", err)
	}
	defer xdgSurface.Destroy()

	toplevel, err := xdgSurface.GetToplevel()
	if err != nil {
		return fmt.Errorf("unable to create toplevel: %w", err)
	}
	defer toplevel.Destroy()

	toplevel.SetTitle(opts.Title)
	toplevel.SetAppId(opts.AppID)
	toplevel.SetMinSize(int32(opts.Width), int32(opts.Height))

	app := glclear.NewApp(opts, func(width, height int) (glclear.Context, error) {
		return newContext(opts, g.shm, surface, width, height)
	})
	defer app.Close()

	/* the toplevel only proposes a size, it becomes current once the
	 * xdg surface configure is acked */
	var pendingWidth, pendingHeight int32
	toplevel.SetConfigureHandler(func(e xdg_shell.ToplevelConfigureEvent) {
		pendingWidth, pendingHeight = e.Width, e.Height
	})
	toplevel.SetCloseHandler(func(xdg_shell.ToplevelCloseEvent) {
		app.RequestClose()
	})
	xdgSurface.SetConfigureHandler(func(e xdg_shell.SurfaceConfigureEvent) {
		xdgSurface.AckConfigure(e.Serial)
		if err := app.Configure(int(pendingWidth), int(pendingHeight)); err != nil {
			log.Fatal("unable to configure window", "err", err)
		}
	})

	if err := surface.Commit(); err != nil {
		return fmt.Errorf("unable to commit surface: %w", err)
	}

	for !app.Exiting() {
		if err := g.display.Context().Dispatch(); err != nil {
			return fmt.Errorf("unable to dispatch events: %w", err)
		}
	}
	log.Debug("close requested, exiting")
	return nil
}

func createTmpfile(size int64) (*os.File, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return nil, errors.New("XDG_RUNTIME_DIR is not defined in env")
	}
	file, err := os.CreateTemp(dir, "glclear_shm_*")
	if err != nil {
		return nil, err
	}
	if err := file.Truncate(size); err != nil {
		file.Close()
		return nil, err
	}
	/* the mapping keeps the file alive, no name needed */
	if err := os.Remove(file.Name()); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

/*
frame is one shm buffer with its backing file and mapping. The
compositor scans the attached buffer out until it sends a release
event, so a superseded frame is only marked stale and freed when
that release arrives.
*/
type frame struct {
	file *os.File
	pix  []byte
	pool *client.ShmPool
	buf  *client.Buffer

	busy  bool /* attached, not yet released by the compositor */
	stale bool /* superseded, destroy on release */
}

/* retire marks the frame superseded; reports whether it can be
 * destroyed right away */
func (f *frame) retire() bool {
	if f.busy {
		f.stale = true
		return false
	}
	return true
}

/* released handles the compositor letting go of the buffer; reports
 * whether a stale frame can be destroyed now */
func (f *frame) released() bool {
	f.busy = false
	return f.stale
}

func (f *frame) destroy() {
	if f.buf != nil {
		f.buf.Destroy()
		f.buf = nil
	}
	if f.pool != nil {
		f.pool.Destroy()
		f.pool = nil
	}
	if f.pix != nil {
		unix.Munmap(f.pix)
		f.pix = nil
	}
	if f.file != nil {
		f.file.Close()
		f.file = nil
	}
}

/* context renders by filling a shared-memory buffer on the CPU */
type context struct {
	opts    glclear.Options
	shm     *client.Shm
	surface *client.Surface

	width, height int
	cur           *frame
}

func newContext(opts glclear.Options, shm *client.Shm, surface *client.Surface, width, height int) (glclear.Context, error) {
	c := &context{opts: opts, shm: shm, surface: surface}
	if err := c.allocate(width, height); err != nil {
		return nil, err
	}
	log.Info("shared-memory buffer ready", "width", width, "height", height)
	return c, nil
}

func (c *context) allocate(width, height int) error {
	size := Stride(width) * height
	f := &frame{}

	var err error
	f.file, err = createTmpfile(int64(size))
	if err != nil {
		return fmt.Errorf("unable to create a temporary file: %w", err)
	}
	f.pix, err = unix.Mmap(int(f.file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.destroy()
		return fmt.Errorf("unable to create mapping: %w", err)
	}
	f.pool, err = c.shm.CreatePool(int(f.file.Fd()), int32(size))
	if err != nil {
		f.destroy()
		return fmt.Errorf("unable to create shm pool: %w", err)
	}
	f.buf, err = f.pool.CreateBuffer(0, int32(width), int32(height), int32(Stride(width)), uint32(client.ShmFormatArgb8888))
	if err != nil {
		f.destroy()
		return fmt.Errorf("unable to create buffer: %w", err)
	}
	f.buf.SetReleaseHandler(func(client.BufferReleaseEvent) {
		if f.released() {
			f.destroy()
		}
	})

	c.cur = f
	c.width, c.height = width, height
	return nil
}

func (c *context) Draw() error {
	Fill(c.cur.pix, c.opts.Clear)

	if err := c.surface.Attach(c.cur.buf, 0, 0); err != nil {
		return fmt.Errorf("unable to attach buffer: %w", err)
	}
	if err := c.surface.Damage(0, 0, int32(c.width), int32(c.height)); err != nil {
		return fmt.Errorf("unable to damage surface: %w", err)
	}
	if err := c.surface.Commit(); err != nil {
		return fmt.Errorf("unable to commit surface: %w", err)
	}
	c.cur.busy = true
	return nil
}

func (c *context) Resize(width, height int) error {
	old := c.cur
	if err := c.allocate(width, height); err != nil {
		return err
	}
	if old.retire() {
		old.destroy()
	}
	return nil
}

/* Destroy frees the current frame; the connection is being torn
 * down, so stale frames go with it */
func (c *context) Destroy() {
	c.cur.destroy()
}

/* Stride is the byte width of one row of ARGB8888 pixels. */
func Stride(width int) int {
	return width * 4
}

/* Fill writes the given color into every pixel of an ARGB8888
 * little-endian buffer. */
func Fill(pix []byte, clear color.NRGBA) {
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = clear.R
		pix[i+1] = clear.G
		pix[i+2] = clear.B
		pix[i+3] = clear.A
	}
	swizzle.BGRA(pix)
}
