// Package raster implements the scalar image operations the screen
// detection cascade is built from: grayscale planes, blur, edge maps,
// thresholding, binary morphology, connected components, contour tracing
// and Hough segment detection. All operations are pure functions over
// row-major planes and allocate their results.
package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Gray is an 8-bit single-channel plane in row-major order.
type Gray struct {
	Pix []uint8
	W   int
	H   int
}

// NewGray allocates a zeroed plane.
func NewGray(w, h int) *Gray {
	return &Gray{Pix: make([]uint8, w*h), W: w, H: h}
}

// FromImage converts an image to a grayscale plane using the standard
// BT.601 luminance weights.
func FromImage(img image.Image) *Gray {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	g := NewGray(w, h)
	for y := 0; y < h; y++ {
		row := y * nrgba.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			r := nrgba.Pix[i]
			gr := nrgba.Pix[i+1]
			bl := nrgba.Pix[i+2]
			g.Pix[y*w+x] = uint8((299*uint32(r) + 587*uint32(gr) + 114*uint32(bl)) / 1000)
		}
	}
	return g
}

// At returns the value at (x, y); out-of-bounds reads return 0.
func (g *Gray) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0
	}
	return g.Pix[y*g.W+x]
}

// ToImage converts the plane back to an image.Gray.
func (g *Gray) ToImage() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(out.Pix, g.Pix)
	return out
}

// Resize scales the plane to the given dimensions using Lanczos resampling.
func (g *Gray) Resize(w, h int) *Gray {
	resized := imaging.Resize(g.ToImage(), w, h, imaging.Lanczos)
	return FromImage(resized)
}

// Mean returns the average pixel value.
func (g *Gray) Mean() float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range g.Pix {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(g.Pix))
}
