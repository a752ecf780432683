package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromImageLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})

	g := FromImage(img)
	assert.Equal(t, 2, g.W)
	assert.Equal(t, 1, g.H)
	assert.Equal(t, uint8(255), g.At(0, 0))
	assert.Equal(t, uint8(0), g.At(1, 0))
}

func TestGrayAtOutOfBounds(t *testing.T) {
	g := NewGray(4, 4)
	assert.Equal(t, uint8(0), g.At(-1, 0))
	assert.Equal(t, uint8(0), g.At(0, 4))
}

func TestGrayRoundTrip(t *testing.T) {
	g := NewGray(3, 2)
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 40)
	}
	out := FromImage(g.ToImage())
	assert.Equal(t, g.Pix, out.Pix)
}

func TestGrayResize(t *testing.T) {
	g := NewGray(8, 8)
	small := g.Resize(4, 4)
	assert.Equal(t, 4, small.W)
	assert.Equal(t, 4, small.H)
	assert.Len(t, small.Pix, 16)
}

func TestGrayMean(t *testing.T) {
	g := NewGray(2, 2)
	g.Pix = []uint8{0, 100, 100, 200}
	assert.InDelta(t, 100.0, g.Mean(), 1e-9)
}
