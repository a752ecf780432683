package rectify

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/MeKo-Tech/ergsnap/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brightScene(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: 200}}, image.Point{}, draw.Src)
	return img
}

func TestNormalizeAxisAlignedQuad(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)
	quad := utils.QuadFromRect(image.Rect(50, 50, 250, 200))

	out, err := n.Normalize(brightScene(400, 300), quad)
	require.NoError(t, err)

	// Width follows the longer horizontal edge, height is width * 3/4.
	// A uniformly bright source keeps content refinement from cropping.
	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 150, out.Bounds().Dy())
}

func TestNormalizeEnforcesTargetAspect(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)
	// A quad taller than 4:3 still maps to a 4:3 output.
	quad := utils.QuadFromRect(image.Rect(10, 10, 110, 290))

	out, err := n.Normalize(brightScene(320, 300), quad)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 75, out.Bounds().Dy())
}

func TestNormalizeUnorderedCorners(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)
	quad := utils.Quad{
		{X: 250, Y: 200}, // bottom-right first
		{X: 50, Y: 50},
		{X: 250, Y: 50},
		{X: 50, Y: 200},
	}
	out, err := n.Normalize(brightScene(400, 300), quad)
	require.NoError(t, err)
	assert.Equal(t, 200, out.Bounds().Dx())
}

func TestNormalizeDegenerateQuad(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)
	quad := utils.Quad{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	_, err := n.Normalize(brightScene(50, 50), quad)
	require.Error(t, err)
}

func TestRefineContentCropsToScreen(t *testing.T) {
	// Dark frame with a bright centered screen region.
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: 20}}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(20, 15, 180, 135), &image.Uniform{color.Gray{Y: 220}}, image.Point{}, draw.Src)

	n := NewNormalizer(DefaultConfig(), nil)
	out := n.refineContent(img)

	// Cropped to the bright region plus padding, smaller than the frame.
	assert.Less(t, out.Bounds().Dx(), 200)
	assert.Greater(t, out.Bounds().Dx(), 150)
	assert.Less(t, out.Bounds().Dy(), 150)
}

func TestRefineContentPaddedCoverageGate(t *testing.T) {
	// The bright region alone covers ~24% of the frame, under the 25% gate;
	// with the 8% padding applied it covers ~32%. The gate judges the
	// padded crop, so refinement must still shrink the frame.
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: 10}}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(50, 40, 160, 105), &image.Uniform{color.Gray{Y: 220}}, image.Point{}, draw.Src)

	n := NewNormalizer(DefaultConfig(), nil)
	out := n.refineContent(img)

	assert.Equal(t, 128, out.Bounds().Dx())
	assert.Equal(t, 77, out.Bounds().Dy())
}

func TestRefineContentKeepsFrameWithoutContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 75))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: 10}}, image.Point{}, draw.Src)

	n := NewNormalizer(DefaultConfig(), nil)
	out := n.refineContent(img)
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func TestRefineContentGlareGate(t *testing.T) {
	// A tiny bright spot covers well under the coverage gate.
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: 10}}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(90, 70, 110, 85), &image.Uniform{color.White}, image.Point{}, draw.Src)

	n := NewNormalizer(DefaultConfig(), nil)
	out := n.refineContent(img)
	assert.Equal(t, img.Bounds().Dx(), out.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dy(), out.Bounds().Dy())
}
