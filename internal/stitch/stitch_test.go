package stitch

import (
	"image"
	"image/color"
	"testing"

	"github.com/MeKo-Tech/ergsnap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStitchEmpty(t *testing.T) {
	_, err := Stitch(nil)
	require.ErrorIs(t, err, ErrNoImages)
}

func TestStitchSingleImageUnchanged(t *testing.T) {
	img := testutil.UniformImage(100, 80, color.White)
	out, err := Stitch([]image.Image{img})
	require.NoError(t, err)
	assert.Equal(t, image.Image(img), out)
}

func TestStitchSameWidthHeightsSum(t *testing.T) {
	a := testutil.UniformImage(100, 60, color.White)
	b := testutil.UniformImage(100, 40, color.Black)

	out, err := Stitch([]image.Image{a, b})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())

	// Top region comes from the first image, bottom from the second.
	r, _, _, _ := out.At(50, 30).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	r, _, _, _ = out.At(50, 80).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestStitchResizesToFirstWidth(t *testing.T) {
	a := testutil.UniformImage(100, 50, color.White)
	b := testutil.UniformImage(200, 100, color.Black)

	out, err := Stitch([]image.Image{a, b})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	// The second image scales to 100x50, so 50 + 50 total.
	assert.Equal(t, 100, out.Bounds().Dy())
}

func TestStitchPreservesOrder(t *testing.T) {
	imgs := []image.Image{
		testutil.UniformImage(50, 10, color.RGBA{255, 0, 0, 255}),
		testutil.UniformImage(50, 10, color.RGBA{0, 255, 0, 255}),
		testutil.UniformImage(50, 10, color.RGBA{0, 0, 255, 255}),
	}
	out, err := Stitch(imgs)
	require.NoError(t, err)
	assert.Equal(t, 30, out.Bounds().Dy())

	r, g, b, _ := out.At(25, 5).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
	r, g, b, _ = out.At(25, 15).RGBA()
	assert.Equal(t, []uint32{0, 0xffff, 0}, []uint32{r, g, b})
	r, g, b, _ = out.At(25, 25).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
}
