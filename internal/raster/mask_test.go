package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRect(m *Mask, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Bits[y*m.W+x] = true
		}
	}
}

func TestMaskCount(t *testing.T) {
	m := NewMask(4, 4)
	assert.Equal(t, 0, m.Count())
	setRect(m, 0, 0, 2, 2)
	assert.Equal(t, 4, m.Count())
}

func TestMaskOr(t *testing.T) {
	a := NewMask(4, 1)
	b := NewMask(4, 1)
	a.Bits[0] = true
	b.Bits[3] = true
	c := a.Or(b)
	assert.True(t, c.Bits[0])
	assert.True(t, c.Bits[3])
	assert.False(t, c.Bits[1])
}

func TestMaskDilateGrowsRegion(t *testing.T) {
	m := NewMask(5, 5)
	m.Bits[2*5+2] = true

	d := m.Dilate(3, 1)
	assert.Equal(t, 9, d.Count())
	assert.True(t, d.At(1, 1))
	assert.True(t, d.At(3, 3))
	assert.False(t, d.At(0, 0))
}

func TestMaskErodeShrinksRegion(t *testing.T) {
	m := NewMask(5, 5)
	setRect(m, 1, 1, 4, 4)

	e := m.Erode(3, 1)
	assert.Equal(t, 1, e.Count())
	assert.True(t, e.At(2, 2))
}

func TestMaskCloseFillsHole(t *testing.T) {
	m := NewMask(7, 7)
	setRect(m, 1, 1, 6, 6)
	m.Bits[3*7+3] = false

	c := m.Close(3)
	assert.True(t, c.At(3, 3))
}

func TestMaskOpenRemovesSpeckle(t *testing.T) {
	m := NewMask(9, 9)
	setRect(m, 1, 1, 6, 6)
	m.Bits[8*9+8] = true

	o := m.Open(3)
	assert.False(t, o.At(8, 8))
	assert.True(t, o.At(3, 3))
}

func TestMaskAtOutOfBounds(t *testing.T) {
	m := NewMask(2, 2)
	assert.False(t, m.At(-1, 0))
	assert.False(t, m.At(2, 0))
}
