package rectify

import (
	"image"
	"image/color"
	"testing"

	"github.com/MeKo-Tech/ergsnap/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHomographyIdentity(t *testing.T) {
	src := [4]utils.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	h, ok := computeHomography(src, src)
	require.True(t, ok)

	for _, p := range src {
		x, y := applyHomography(h, p.X, p.Y)
		assert.InDelta(t, p.X, x, 1e-6)
		assert.InDelta(t, p.Y, y, 1e-6)
	}
	// Interior points map to themselves too.
	x, y := applyHomography(h, 3.5, 7.25)
	assert.InDelta(t, 3.5, x, 1e-6)
	assert.InDelta(t, 7.25, y, 1e-6)
}

func TestComputeHomographyMapsCorners(t *testing.T) {
	src := [4]utils.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 80}, {X: 0, Y: 80}}
	dst := [4]utils.Point{{X: 12, Y: 7}, {X: 95, Y: 15}, {X: 105, Y: 88}, {X: 5, Y: 70}}

	h, ok := computeHomography(src, dst)
	require.True(t, ok)
	for i := range src {
		x, y := applyHomography(h, src[i].X, src[i].Y)
		assert.InDelta(t, dst[i].X, x, 1e-6)
		assert.InDelta(t, dst[i].Y, y, 1e-6)
	}
}

func TestComputeHomographyDegenerate(t *testing.T) {
	// All source points collinear.
	src := [4]utils.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	dst := [4]utils.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	_, ok := computeHomography(src, dst)
	assert.False(t, ok)
}

func TestWarpQuadExtractsRegion(t *testing.T) {
	// Source image: left half black, right half white. Warping the right
	// half should produce an all-white output.
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			src.Set(x, y, color.White)
		}
	}

	quad := utils.QuadFromRect(image.Rect(52, 2, 98, 98))
	out := warpQuad(src, quad, 46, 96)
	require.NotNil(t, out)

	b := out.Bounds()
	assert.Equal(t, 46, b.Dx())
	assert.Equal(t, 96, b.Dy())
	r, g, bl, _ := out.At(23, 48).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), bl)
}
