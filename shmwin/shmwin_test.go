package shmwin

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStride(t *testing.T) {
	assert.Equal(t, 1024, Stride(256))
	assert.Equal(t, 4, Stride(1))
}

func TestFill(t *testing.T) {
	pix := make([]byte, 3*4)
	Fill(pix, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	/* ARGB8888 is stored little endian, so bytes run B, G, R, A */
	for i := 0; i < len(pix); i += 4 {
		assert.Equal(t, byte(0x30), pix[i+0])
		assert.Equal(t, byte(0x20), pix[i+1])
		assert.Equal(t, byte(0x10), pix[i+2])
		assert.Equal(t, byte(0xff), pix[i+3])
	}
}

func TestFillEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		Fill(nil, color.NRGBA{B: 0xff, A: 0xff})
	})
}

func TestFrameRetireIdle(t *testing.T) {
	/* never attached, safe to free immediately */
	f := &frame{}
	assert.True(t, f.retire())
}

func TestFrameRetireBusy(t *testing.T) {
	/* the compositor still scans the buffer out; freeing waits for
	 * its release event */
	f := &frame{busy: true}
	assert.False(t, f.retire())
	assert.True(t, f.released())
}

func TestFrameReleasedCurrent(t *testing.T) {
	/* a release on the frame still in use must not free it */
	f := &frame{busy: true}
	assert.False(t, f.released())
	assert.True(t, f.retire())
}

func TestFrameDestroyEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		f := &frame{}
		f.destroy()
	})
}
