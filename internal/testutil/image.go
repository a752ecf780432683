// Package testutil provides synthetic images and document analysis fixtures
// for tests.
package testutil

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// SceneConfig describes a synthetic photo of a monitor: a bright screen
// rectangle with text rows on a dark background.
type SceneConfig struct {
	Width      int
	Height     int
	Monitor    image.Rectangle
	Background color.Color
	Screen     color.Color
	TextRows   []string
}

// DefaultSceneConfig returns a scene with a centered 4:3 monitor and a few
// rows of workout-style numbers.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Width:      640,
		Height:     480,
		Monitor:    image.Rect(160, 120, 480, 360),
		Background: color.Gray{Y: 40},
		Screen:     color.Gray{Y: 230},
		TextRows: []string{
			"time meter /500m s/m",
			"2:00.0  500  2:00.0  28",
			"4:00.0 1000  2:00.0  29",
			"6:00.0 1500  2:00.0  28",
		},
	}
}

// GenerateMonitorScene renders the scene. The screen is drawn with a dark
// frame so edge based detection has a clean rectangle to find.
func GenerateMonitorScene(cfg SceneConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{cfg.Background}, image.Point{}, draw.Src)

	// Frame then screen
	frame := cfg.Monitor.Inset(-4)
	draw.Draw(img, frame, &image.Uniform{color.Black}, image.Point{}, draw.Src)
	draw.Draw(img, cfg.Monitor, &image.Uniform{cfg.Screen}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	lineHeight := cfg.Monitor.Dy() / (len(cfg.TextRows) + 1)
	for i, row := range cfg.TextRows {
		drawer.Dot = fixed.P(cfg.Monitor.Min.X+10, cfg.Monitor.Min.Y+(i+1)*lineHeight)
		drawer.DrawString(row)
	}
	return img
}

// GenerateMonitorImage renders a typical monitor photo with defaults.
func GenerateMonitorImage() *image.RGBA {
	return GenerateMonitorScene(DefaultSceneConfig())
}

// UniformImage returns a flat single-color image, which no detection
// technique should accept.
func UniformImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// NoiseImage returns an image with a deterministic high-frequency pattern.
func NoiseImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*31 + y*17) % 251)
			img.Set(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// EncodeBase64PNG encodes the image as the API expects uploads.
func EncodeBase64PNG(t *testing.T, img image.Image) string {
	t.Helper()
	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	require.NoError(t, png.Encode(enc, img))
	require.NoError(t, enc.Close())
	return sb.String()
}
