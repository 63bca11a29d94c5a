package glclear

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

/* fakeContext records every call the state machine makes */
type fakeContext struct {
	calls         *[]string
	width, height int
	resizeErr     error
	drawErr       error
}

func (c *fakeContext) Draw() error {
	*c.calls = append(*c.calls, "draw")
	return c.drawErr
}

func (c *fakeContext) Resize(width, height int) error {
	*c.calls = append(*c.calls, "resize")
	c.width, c.height = width, height
	return c.resizeErr
}

func (c *fakeContext) Destroy() {
	*c.calls = append(*c.calls, "destroy")
}

func newFakeApp(t *testing.T) (*App, *fakeContext, *[]string) {
	t.Helper()

	calls := []string{}
	ctx := &fakeContext{calls: &calls}
	created := 0
	app := NewApp(DefaultOptions(), func(width, height int) (Context, error) {
		created++
		if created > 1 {
			t.Fatalf("context created %d times", created)
		}
		ctx.width, ctx.height = width, height
		return ctx, nil
	})
	return app, ctx, &calls
}

func TestAppFirstConfigureUsesFallbackSize(t *testing.T) {
	assert := assert.New(t)

	app, ctx, calls := newFakeApp(t)
	assert.False(app.Ready())

	/* compositor proposes no size at all */
	assert.NoError(app.Configure(0, 0))
	assert.True(app.Ready())

	w, h := app.Size()
	assert.Equal(256, w)
	assert.Equal(256, h)
	assert.Equal(256, ctx.width)
	assert.Equal([]string{"draw"}, *calls)
}

func TestAppResizeRedrawsOnce(t *testing.T) {
	assert := assert.New(t)

	app, ctx, calls := newFakeApp(t)
	assert.NoError(app.Configure(0, 0))
	assert.NoError(app.Configure(300, 300))

	w, h := app.Size()
	assert.Equal(300, w)
	assert.Equal(300, h)
	assert.Equal(300, ctx.width)
	assert.Equal([]string{"draw", "resize", "draw"}, *calls)

	/* same size again: nothing happens */
	assert.NoError(app.Configure(300, 300))
	assert.Equal([]string{"draw", "resize", "draw"}, *calls)
}

func TestAppCloseRequest(t *testing.T) {
	assert := assert.New(t)

	app, _, calls := newFakeApp(t)
	assert.NoError(app.Configure(400, 200))
	assert.False(app.Exiting())

	app.RequestClose()
	assert.True(app.Exiting())

	/* shutdown releases the context exactly once */
	app.Close()
	app.Close()
	assert.Equal([]string{"draw", "destroy"}, *calls)
}

func TestAppScenario(t *testing.T) {
	assert := assert.New(t)

	app, _, calls := newFakeApp(t)

	assert.NoError(app.Configure(0, 0))
	assert.NoError(app.Configure(300, 300))
	assert.NoError(app.Configure(300, 300))
	app.RequestClose()
	app.Close()

	assert.Equal([]string{"draw", "resize", "draw", "destroy"}, *calls)
}

func TestAppContextErrors(t *testing.T) {
	assert := assert.New(t)

	fail := errors.New("no config")
	app := NewApp(DefaultOptions(), func(width, height int) (Context, error) {
		return nil, fail
	})
	err := app.Configure(0, 0)
	assert.ErrorIs(err, fail)
	assert.False(app.Ready())

	calls := []string{}
	ctx := &fakeContext{calls: &calls, resizeErr: errors.New("lost surface")}
	app = NewApp(DefaultOptions(), func(width, height int) (Context, error) {
		return ctx, nil
	})
	assert.NoError(app.Configure(100, 100))
	assert.Error(app.Configure(200, 200))
	/* the failed resize must not be followed by a draw */
	assert.Equal([]string{"draw", "resize"}, calls)
}
