/*
Package glclear drives a single desktop window that is cleared to a
solid color. The windowing system owns the pacing: nothing is drawn
until the compositor proposes a first size, and afterwards only a
changed size triggers another frame.
*/
package glclear

import (
	"fmt"
	"image/color"
)

/* Options configures the window and the frame drawn into it */
type Options struct {
	Title string /* toplevel title */
	AppID string /* application id reported to the compositor */

	/* fallback size, also announced as the window minimum */
	Width, Height int

	Clear color.NRGBA /* color the framebuffer is cleared to */
}

/* DefaultOptions returns a small blue window */
func DefaultOptions() Options {
	return Options{
		Title:  "glclear window",
		AppID:  "com.friedelschoen.glclear",
		Width:  256,
		Height: 256,
		Clear:  color.NRGBA{B: 0xff, A: 0xff},
	}
}

/*
Context is a rendering context bound to the window. Draw clears the
color buffer and presents it; Resize must be called before the next
Draw after any size change; Destroy releases the context and must
happen before the window it references is torn down.
*/
type Context interface {
	Draw() error
	Resize(width, height int) error
	Destroy()
}

/*
ContextFunc creates a Context sized to the given pixel dimensions. It
is called at most once per App, on the first configure event.
*/
type ContextFunc func(width, height int) (Context, error)

/*
App reacts to the events a backend delivers: configure, close request
and nothing else. A nil ctx means no context exists yet; the context
and the current size are only ever set together.
*/
type App struct {
	opts   Options
	create ContextFunc

	width, height int
	ctx           Context
	exit          bool
}

func NewApp(opts Options, create ContextFunc) *App {
	return &App{opts: opts, create: create}
}

/*
Configure handles a size proposal from the windowing system. Zero
dimensions mean the compositor has no preference and the fallback
size applies. The first configure creates the context and draws one
frame; later ones redraw only if the size actually changed.
*/
func (app *App) Configure(width, height int) error {
	if width == 0 {
		width = app.opts.Width
	}
	if height == 0 {
		height = app.opts.Height
	}

	if app.ctx == nil {
		ctx, err := app.create(width, height)
		if err != nil {
			return fmt.Errorf("unable to create context: %w", err)
		}
		app.ctx = ctx
		app.width, app.height = width, height
		return app.ctx.Draw()
	}

	if width == app.width && height == app.height {
		return nil
	}

	app.width, app.height = width, height
	if err := app.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("unable to resize context: %w", err)
	}
	return app.ctx.Draw()
}

/* RequestClose marks the app as exiting; checked once per loop pass */
func (app *App) RequestClose() {
	app.exit = true
}

func (app *App) Exiting() bool {
	return app.exit
}

/* Ready reports whether the first configure has arrived */
func (app *App) Ready() bool {
	return app.ctx != nil
}

func (app *App) Size() (int, int) {
	return app.width, app.height
}

/*
Close releases the context. Backends call this before destroying the
window the context renders into. Safe to call more than once.
*/
func (app *App) Close() {
	if app.ctx != nil {
		app.ctx.Destroy()
		app.ctx = nil
	}
}
