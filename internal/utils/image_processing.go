package utils

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Readability enhancement strengths, matching the monitor capture app's
// contrast/sharpness boost of 1.5x each.
const (
	contrastBoostPercent = 50.0
	sharpenSigma         = 1.0
)

// EnhanceReadability boosts contrast and sharpness to make monitor text
// easier for the OCR model to read.
func EnhanceReadability(img image.Image) (image.Image, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "enhance", Err: errors.New("input image is nil")}
	}
	out := imaging.AdjustContrast(img, contrastBoostPercent)
	out = imaging.Sharpen(out, sharpenSigma)
	return out, nil
}

// ResizeToWidth resizes an image to the target width preserving aspect
// ratio, using Lanczos resampling for high quality.
func ResizeToWidth(img image.Image, width int) (image.Image, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "resize", Err: errors.New("input image is nil")}
	}
	if width <= 0 {
		return nil, &ImageProcessingError{Operation: "resize", Err: errors.New("target width must be positive")}
	}
	b := img.Bounds()
	if b.Dx() == width {
		return img, nil
	}
	height := int(float64(width) * float64(b.Dy()) / float64(b.Dx()))
	if height < 1 {
		height = 1
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// CropImageRect crops an image to the given rectangle, clamped to bounds.
func CropImageRect(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return imaging.New(1, 1, color.Black)
	}
	return imaging.Crop(img, rect)
}

// CropImageBox crops an image using a float Box.
func CropImageBox(img image.Image, box Box) image.Image {
	return CropImageRect(img, box.ToRect(img.Bounds()))
}

// CenterCrop removes the given fraction from each edge of the image.
// Used as the conservative fallback when monitor detection fails for a
// single-image request.
func CenterCrop(img image.Image, margin float64) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	x0 := b.Min.X + int(float64(w)*margin)
	y0 := b.Min.Y + int(float64(h)*margin)
	x1 := b.Min.X + int(float64(w)*(1-margin))
	y1 := b.Min.Y + int(float64(h)*(1-margin))
	return CropImageRect(img, image.Rect(x0, y0, x1, y1))
}
