package raster

import "math"

// LocalStdDev computes the standard deviation over non-overlapping
// window x window blocks and paints each block with its value, normalized
// to the 0-255 range across the whole plane. High values mark regions of
// strong local contrast, which is typical for lit LCD text on a dark body.
func LocalStdDev(g *Gray, window int) *Gray {
	if window < 1 {
		window = 1
	}
	out := NewGray(g.W, g.H)
	raw := make([]float64, 0, (g.H/window+1)*(g.W/window+1))
	type block struct {
		x0, y0, x1, y1 int
		std            float64
	}
	blocks := make([]block, 0, cap(raw))

	maxStd := 0.0
	for y := 0; y < g.H; y += window {
		y1 := min(y+window, g.H)
		for x := 0; x < g.W; x += window {
			x1 := min(x+window, g.W)
			std := stdDevRegion(g, x, y, x1, y1)
			blocks = append(blocks, block{x0: x, y0: y, x1: x1, y1: y1, std: std})
			if std > maxStd {
				maxStd = std
			}
		}
	}
	if maxStd <= 0 {
		return out
	}
	for _, b := range blocks {
		v := uint8(math.Round(b.std / maxStd * 255))
		for yy := b.y0; yy < b.y1; yy++ {
			row := yy * g.W
			for xx := b.x0; xx < b.x1; xx++ {
				out.Pix[row+xx] = v
			}
		}
	}
	return out
}

func stdDevRegion(g *Gray, x0, y0, x1, y1 int) float64 {
	n := (x1 - x0) * (y1 - y0)
	if n <= 0 {
		return 0
	}
	var sum, sumSq float64
	for y := y0; y < y1; y++ {
		row := y * g.W
		for x := x0; x < x1; x++ {
			v := float64(g.Pix[row+x])
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Variance returns the pixel variance over a rectangular region.
func Variance(g *Gray, x0, y0, x1, y1 int) float64 {
	std := stdDevRegion(g, x0, y0, x1, y1)
	return std * std
}
