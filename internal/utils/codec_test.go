package utils

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 11), 128, 255})
		}
	}
	return img
}

func TestEncodeDecodeRoundTripPreservesDimensions(t *testing.T) {
	src := testImage(64, 48)

	encoded, err := EncodeBase64Image(src)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	decoded, err := DecodeBase64Image(encoded)
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 48, decoded.Bounds().Dy())
}

func TestDecodeBase64ImageDataURIPrefix(t *testing.T) {
	encoded, err := EncodeBase64Image(testImage(8, 8))
	require.NoError(t, err)

	decoded, err := DecodeBase64Image("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestDecodeBase64ImageErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"invalid base64", "!!!not-base64!!!"},
		{"valid base64 invalid image", "aGVsbG8gd29ybGQ="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBase64Image(tt.input)
			require.Error(t, err)

			var perr *ImageProcessingError
			assert.True(t, errors.As(err, &perr))
			assert.Equal(t, "decode", perr.Operation)
		})
	}
}

func TestEncodeImageBytesNil(t *testing.T) {
	_, err := EncodeImageBytes(nil)
	require.Error(t, err)
}

func TestDecodeImageBytesEmpty(t *testing.T) {
	_, err := DecodeImageBytes(nil)
	require.Error(t, err)
}
