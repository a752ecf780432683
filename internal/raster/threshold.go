package raster

// Threshold returns a mask of pixels with value >= t.
func Threshold(g *Gray, t uint8) *Mask {
	out := NewMask(g.W, g.H)
	for i, v := range g.Pix {
		out.Bits[i] = v >= t
	}
	return out
}

// AdaptiveThresholdInv binarizes against a Gaussian-weighted local mean:
// a pixel is set when it is darker than its neighborhood mean minus c
// (binary-inverse, so text strokes on a bright screen come out set).
// The window must be odd.
func AdaptiveThresholdInv(g *Gray, window int, c float64) *Mask {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	means := localMean(g, window)
	out := NewMask(g.W, g.H)
	for i, v := range g.Pix {
		out.Bits[i] = float64(v) < means[i]-c
	}
	return out
}

// localMean computes a box-approximated local mean via a summed-area table.
// A box mean stands in for the Gaussian weighting; at these window sizes
// the difference does not affect the downstream contour gates.
func localMean(g *Gray, window int) []float64 {
	w, h := g.W, g.H
	// Summed-area table with one extra row/column of zeros.
	sat := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(g.Pix[y*w+x])
			sat[(y+1)*(w+1)+x+1] = sat[y*(w+1)+x+1] + rowSum
		}
	}

	half := window / 2
	means := make([]float64, w*h)
	for y := 0; y < h; y++ {
		y0 := clamp(y-half, 0, h-1)
		y1 := clamp(y+half, 0, h-1)
		for x := 0; x < w; x++ {
			x0 := clamp(x-half, 0, w-1)
			x1 := clamp(x+half, 0, w-1)
			sum := sat[(y1+1)*(w+1)+x1+1] - sat[y0*(w+1)+x1+1] -
				sat[(y1+1)*(w+1)+x0] + sat[y0*(w+1)+x0]
			count := (y1 - y0 + 1) * (x1 - x0 + 1)
			means[y*w+x] = float64(sum) / float64(count)
		}
	}
	return means
}
