package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxNormalizesCorners(t *testing.T) {
	b := NewBox(10, 20, 4, 6)
	assert.InDelta(t, 4.0, b.MinX, 1e-9)
	assert.InDelta(t, 6.0, b.MinY, 1e-9)
	assert.InDelta(t, 10.0, b.MaxX, 1e-9)
	assert.InDelta(t, 20.0, b.MaxY, 1e-9)
}

func TestBoxDimensions(t *testing.T) {
	b := NewBox(0, 0, 40, 30)
	assert.InDelta(t, 40.0, b.Width(), 1e-9)
	assert.InDelta(t, 30.0, b.Height(), 1e-9)
	assert.InDelta(t, 1200.0, b.Area(), 1e-9)
	assert.InDelta(t, 4.0/3.0, b.AspectRatio(), 1e-9)
}

func TestBoxAspectRatioZeroHeight(t *testing.T) {
	b := NewBox(0, 0, 40, 0)
	assert.Equal(t, 0.0, b.AspectRatio())
}

func TestBoxExpandClampsToImage(t *testing.T) {
	b := NewBox(10, 10, 90, 90)
	e := b.Expand(20, 20, 100, 100)
	assert.InDelta(t, 0.0, e.MinX, 1e-9)
	assert.InDelta(t, 0.0, e.MinY, 1e-9)
	assert.InDelta(t, 100.0, e.MaxX, 1e-9)
	assert.InDelta(t, 100.0, e.MaxY, 1e-9)
}

func TestBoxExpandPixelMargins(t *testing.T) {
	b := NewBox(100, 100, 300, 250)
	e := b.Expand(0.1*b.Width(), 0.1*b.Height(), 400, 300)
	assert.InDelta(t, 80.0, e.MinX, 1e-9)
	assert.InDelta(t, 85.0, e.MinY, 1e-9)
	assert.InDelta(t, 320.0, e.MaxX, 1e-9)
	assert.InDelta(t, 265.0, e.MaxY, 1e-9)
}

func TestBoxToRect(t *testing.T) {
	b := NewBox(10.4, 20.6, 30.2, 40.8)
	r := b.ToRect(image.Rect(0, 0, 100, 100))
	assert.True(t, r.In(image.Rect(0, 0, 100, 100)))
	assert.Positive(t, r.Dx())
	assert.Positive(t, r.Dy())
}

func TestBoundingBox(t *testing.T) {
	pts := []Point{{X: 5, Y: 7}, {X: 1, Y: 9}, {X: 3, Y: 2}}
	b := BoundingBox(pts)
	assert.InDelta(t, 1.0, b.MinX, 1e-9)
	assert.InDelta(t, 2.0, b.MinY, 1e-9)
	assert.InDelta(t, 5.0, b.MaxX, 1e-9)
	assert.InDelta(t, 9.0, b.MaxY, 1e-9)
}

func TestScalePoints(t *testing.T) {
	pts := []Point{{X: 2, Y: 4}}
	scaled := ScalePoints(pts, 0.5, 2)
	require.Len(t, scaled, 1)
	assert.InDelta(t, 1.0, scaled[0].X, 1e-9)
	assert.InDelta(t, 8.0, scaled[0].Y, 1e-9)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}), 1e-9)
}
