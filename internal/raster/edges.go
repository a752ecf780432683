package raster

import (
	"container/list"
	"math"

	"github.com/MeKo-Tech/ergsnap/internal/mempool"
)

// Canny computes an edge mask using Sobel gradients with hysteresis
// thresholding. Pixels with magnitude >= hi seed the edge set; pixels with
// magnitude >= lo are kept when 8-connected to a seed.
func Canny(g *Gray, lo, hi float64) *Mask {
	mag := mempool.GetFloat64(g.W * g.H)
	defer mempool.PutFloat64(mag)
	clear(mag)
	sobelMagnitude(g, mag)
	out := NewMask(g.W, g.H)

	// Seed strong edges
	q := list.New()
	for i, v := range mag {
		if v >= hi {
			out.Bits[i] = true
			q.PushBack(i)
		}
	}

	// Grow weak edges connected to strong ones
	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue
		}
		cx, cy := ci%g.W, ci/g.W
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := cx+dx, cy+dy
				if nx < 0 || ny < 0 || nx >= g.W || ny >= g.H {
					continue
				}
				ni := ny*g.W + nx
				if !out.Bits[ni] && mag[ni] >= lo {
					out.Bits[ni] = true
					q.PushBack(ni)
				}
			}
		}
	}
	return out
}

// sobelMagnitude fills mag with the gradient magnitude from 3x3 Sobel
// kernels. mag must be zeroed and hold W*H elements.
func sobelMagnitude(g *Gray, mag []float64) {
	for y := 1; y < g.H-1; y++ {
		for x := 1; x < g.W-1; x++ {
			tl := float64(g.Pix[(y-1)*g.W+x-1])
			tc := float64(g.Pix[(y-1)*g.W+x])
			tr := float64(g.Pix[(y-1)*g.W+x+1])
			ml := float64(g.Pix[y*g.W+x-1])
			mr := float64(g.Pix[y*g.W+x+1])
			bl := float64(g.Pix[(y+1)*g.W+x-1])
			bc := float64(g.Pix[(y+1)*g.W+x])
			br := float64(g.Pix[(y+1)*g.W+x+1])

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			mag[y*g.W+x] = math.Hypot(gx, gy)
		}
	}
}
