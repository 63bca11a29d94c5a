package glclear

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	assert := assert.New(t)

	for _, tt := range []struct {
		in   string
		want color.NRGBA
	}{
		{"#00f", color.NRGBA{B: 0xff, A: 0xff}},
		{"#00f8", color.NRGBA{B: 0xff, A: 0x88}},
		{"#0000ff", color.NRGBA{B: 0xff, A: 0xff}},
		{"#0000ff80", color.NRGBA{B: 0xff, A: 0x80}},
		{"2E3436", color.NRGBA{R: 0x2e, G: 0x34, B: 0x36, A: 0xff}},
		{"blue", color.NRGBA{B: 0xff, A: 0xff}},
		/* colornames carries the SVG 1.1 palette, matched case-insensitively */
		{"Salmon", color.NRGBA{R: 0xfa, G: 0x80, B: 0x72, A: 0xff}},
	} {
		got, err := ParseColor(tt.in)
		assert.NoError(err, tt.in)
		assert.Equal(tt.want, got, tt.in)
	}

	for _, in := range []string{"", "#12345", "#gggggg", "notacolor"} {
		_, err := ParseColor(in)
		assert.Error(err, in)
	}
}
