// Package stitch merges multiple normalized monitor views into one tall
// composite so a workout spanning several photos needs only a single OCR call.
package stitch

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/MeKo-Tech/ergsnap/internal/utils"
)

// ErrNoImages is returned when Stitch is called with an empty input.
var ErrNoImages = errors.New("stitch: no images to stitch")

// Stitch resizes every image to the width of the first one, preserving aspect
// ratio, and concatenates them vertically in input order. A single image is
// returned unchanged.
func Stitch(images []image.Image) (image.Image, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) == 1 {
		return images[0], nil
	}

	width := images[0].Bounds().Dx()
	if width <= 0 {
		return nil, fmt.Errorf("stitch: first image has invalid width %d", width)
	}

	resized := make([]image.Image, len(images))
	totalHeight := 0
	for i, img := range images {
		r, err := utils.ResizeToWidth(img, width)
		if err != nil {
			return nil, fmt.Errorf("stitch: resizing image %d: %w", i, err)
		}
		resized[i] = r
		totalHeight += r.Bounds().Dy()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, totalHeight))
	y := 0
	for _, r := range resized {
		h := r.Bounds().Dy()
		draw.Draw(out, image.Rect(0, y, width, y+h), r, r.Bounds().Min, draw.Src)
		y += h
	}
	return out, nil
}
