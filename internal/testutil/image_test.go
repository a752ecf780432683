package testutil

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMonitorScene(t *testing.T) {
	cfg := DefaultSceneConfig()
	img := GenerateMonitorScene(cfg)

	assert.Equal(t, cfg.Width, img.Bounds().Dx())
	assert.Equal(t, cfg.Height, img.Bounds().Dy())

	// Background outside, bright screen inside a dark frame.
	assert.Equal(t, color.RGBAModel.Convert(cfg.Background), img.At(10, 10))

	screenX := (cfg.Monitor.Min.X + cfg.Monitor.Max.X) / 2
	r, g, b, _ := img.At(screenX, cfg.Monitor.Min.Y+2).RGBA()
	assert.Greater(t, r, uint32(0x8000))
	assert.Greater(t, g, uint32(0x8000))
	assert.Greater(t, b, uint32(0x8000))

	fr, fg, fb, _ := img.At(cfg.Monitor.Min.X-2, cfg.Monitor.Min.Y-2).RGBA()
	assert.Less(t, fr+fg+fb, uint32(0x3000), "frame pixels are dark")
}

func TestUniformAndNoiseImages(t *testing.T) {
	u := UniformImage(20, 10, color.Gray{Y: 50})
	assert.Equal(t, 20, u.Bounds().Dx())
	assert.Equal(t, u.At(0, 0), u.At(19, 9))

	n := NoiseImage(20, 10)
	assert.NotEqual(t, n.At(0, 0), n.At(1, 0))
}

func TestEncodeBase64PNG(t *testing.T) {
	encoded := EncodeBase64PNG(t, UniformImage(8, 6, color.White))

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}
