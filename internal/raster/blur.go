package raster

import (
	"github.com/MeKo-Tech/ergsnap/internal/mempool"
)

// gauss5 is the separable 5-tap binomial kernel (1 4 6 4 1)/16 used to
// suppress sensor noise before edge detection.
var gauss5 = [5]uint32{1, 4, 6, 4, 1}

// GaussianBlur applies a 5x5 binomial blur as two separable passes.
// Borders are handled by clamping coordinates.
func GaussianBlur(g *Gray) *Gray {
	tmpPix := mempool.GetUint8(g.W * g.H)
	defer mempool.PutUint8(tmpPix)
	tmp := &Gray{Pix: tmpPix, W: g.W, H: g.H}
	out := NewGray(g.W, g.H)

	// Horizontal pass
	for y := 0; y < g.H; y++ {
		row := y * g.W
		for x := 0; x < g.W; x++ {
			var sum uint32
			for k := -2; k <= 2; k++ {
				xx := clamp(x+k, 0, g.W-1)
				sum += gauss5[k+2] * uint32(g.Pix[row+xx])
			}
			tmp.Pix[row+x] = uint8(sum / 16)
		}
	}

	// Vertical pass
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum uint32
			for k := -2; k <= 2; k++ {
				yy := clamp(y+k, 0, g.H-1)
				sum += gauss5[k+2] * uint32(tmp.Pix[yy*g.W+x])
			}
			out.Pix[y*g.W+x] = uint8(sum / 16)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
