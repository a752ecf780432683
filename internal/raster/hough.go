package raster

import (
	"math"
	"math/rand"
)

// Segment is a line segment in pixel coordinates.
type Segment struct {
	X1, Y1 int
	X2, Y2 int
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(float64(s.X2-s.X1), float64(s.Y2-s.Y1))
}

// HoughConfig controls probabilistic line-segment detection.
type HoughConfig struct {
	Threshold     int // accumulator votes required to accept a line
	MinLineLength int // shortest segment kept, in pixels
	MaxGap        int // largest run of off pixels bridged within a segment
}

// DefaultHoughConfig returns parameters tuned for monitor edges.
func DefaultHoughConfig() HoughConfig {
	return HoughConfig{Threshold: 80, MinLineLength: 100, MaxGap: 10}
}

// HoughSegments detects line segments in an edge mask using a progressive
// probabilistic Hough transform. Edge pixels are consumed in random order;
// once a (theta, rho) bin reaches the vote threshold, the supporting line is
// walked in both directions, bridging gaps up to MaxGap, and the covered
// pixels are removed from further voting.
func HoughSegments(edges *Mask, cfg HoughConfig) []Segment {
	const numAngles = 180
	w, h := edges.W, edges.H
	maxRho := int(math.Ceil(math.Hypot(float64(w), float64(h))))

	sinTab := make([]float64, numAngles)
	cosTab := make([]float64, numAngles)
	for t := 0; t < numAngles; t++ {
		theta := float64(t) * math.Pi / float64(numAngles)
		sinTab[t] = math.Sin(theta)
		cosTab[t] = math.Cos(theta)
	}

	points := make([]int, 0, edges.Count())
	for i, b := range edges.Bits {
		if b {
			points = append(points, i)
		}
	}
	if len(points) == 0 {
		return nil
	}

	// Deterministic shuffle keeps results reproducible across runs.
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })

	live := make([]bool, w*h)
	for _, i := range points {
		live[i] = true
	}

	acc := make([]int, numAngles*(2*maxRho+1))
	var segs []Segment

	for _, idx := range points {
		if !live[idx] {
			continue
		}
		x, y := idx%w, idx/w

		bestT, bestVotes := -1, cfg.Threshold-1
		for t := 0; t < numAngles; t++ {
			rho := int(math.Round(float64(x)*cosTab[t]+float64(y)*sinTab[t])) + maxRho
			a := t*(2*maxRho+1) + rho
			acc[a]++
			if acc[a] > bestVotes {
				bestVotes = acc[a]
				bestT = t
			}
		}
		if bestT < 0 {
			continue
		}

		// Walk along the line direction (perpendicular to the normal).
		dx, dy := -sinTab[bestT], cosTab[bestT]
		x1, y1 := walkLine(live, w, h, x, y, dx, dy, cfg.MaxGap)
		x2, y2 := walkLine(live, w, h, x, y, -dx, -dy, cfg.MaxGap)

		seg := Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}
		if seg.Length() < float64(cfg.MinLineLength) {
			continue
		}
		segs = append(segs, seg)
		unvote(live, acc, w, h, seg, maxRho, sinTab, cosTab)
	}
	return segs
}

// walkLine steps from (x, y) along (dx, dy) collecting live edge pixels,
// stopping once the gap of consecutive misses exceeds maxGap. It returns the
// endpoint of the run.
func walkLine(live []bool, w, h, x, y int, dx, dy float64, maxGap int) (int, int) {
	endX, endY := x, y
	gap := 0
	fx, fy := float64(x), float64(y)
	for {
		fx += dx
		fy += dy
		px, py := int(math.Round(fx)), int(math.Round(fy))
		if px < 0 || py < 0 || px >= w || py >= h {
			break
		}
		if live[py*w+px] {
			endX, endY = px, py
			gap = 0
		} else {
			gap++
			if gap > maxGap {
				break
			}
		}
	}
	return endX, endY
}

// unvote removes a segment's pixels from the live set and subtracts their
// accumulator contributions.
func unvote(live []bool, acc []int, w, h int, seg Segment, maxRho int, sinTab, cosTab []float64) {
	numAngles := len(sinTab)
	forEachSegmentPixel(seg, func(px, py int) {
		if px < 0 || py < 0 || px >= w || py >= h {
			return
		}
		i := py*w + px
		if !live[i] {
			return
		}
		live[i] = false
		for t := 0; t < numAngles; t++ {
			rho := int(math.Round(float64(px)*cosTab[t]+float64(py)*sinTab[t])) + maxRho
			a := t*(2*maxRho+1) + rho
			if acc[a] > 0 {
				acc[a]--
			}
		}
	})
}

// RasterizeSegments draws the segments into a fresh mask of the given size.
func RasterizeSegments(segs []Segment, w, h int) *Mask {
	out := NewMask(w, h)
	for _, s := range segs {
		forEachSegmentPixel(s, func(x, y int) {
			if x >= 0 && y >= 0 && x < w && y < h {
				out.Bits[y*w+x] = true
			}
		})
	}
	return out
}

// forEachSegmentPixel visits every pixel on the segment using Bresenham's
// algorithm.
func forEachSegmentPixel(s Segment, fn func(x, y int)) {
	x1, y1, x2, y2 := s.X1, s.Y1, s.X2, s.Y2
	dx := absInt(x2 - x1)
	dy := -absInt(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		fn(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
