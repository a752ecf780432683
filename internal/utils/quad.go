package utils

import (
	"image"
	"math"
)

// Quad is a four-point polygon approximating the monitor screen boundary,
// stored in top-left, top-right, bottom-right, bottom-left order.
type Quad [4]Point

// OrderQuadPoints arranges four arbitrary points into TL/TR/BR/BL order.
// The top-left point has the smallest coordinate sum, the bottom-right the
// largest; the top-right has the smallest y-x difference and the bottom-left
// the largest.
func OrderQuadPoints(pts []Point) Quad {
	var q Quad
	if len(pts) != 4 {
		return q
	}
	minSum, maxSum := math.Inf(1), math.Inf(-1)
	minDiff, maxDiff := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		sum := p.X + p.Y
		diff := p.Y - p.X
		if sum < minSum {
			minSum = sum
			q[0] = p // top-left
		}
		if sum > maxSum {
			maxSum = sum
			q[2] = p // bottom-right
		}
		if diff < minDiff {
			minDiff = diff
			q[1] = p // top-right
		}
		if diff > maxDiff {
			maxDiff = diff
			q[3] = p // bottom-left
		}
	}
	return q
}

// QuadFromRect builds an axis-aligned quad from an image rectangle.
func QuadFromRect(r image.Rectangle) Quad {
	return Quad{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}

// TopWidth returns the length of the top edge.
func (q Quad) TopWidth() float64 { return Distance(q[0], q[1]) }

// BottomWidth returns the length of the bottom edge.
func (q Quad) BottomWidth() float64 { return Distance(q[3], q[2]) }

// LeftHeight returns the length of the left edge.
func (q Quad) LeftHeight() float64 { return Distance(q[0], q[3]) }

// RightHeight returns the length of the right edge.
func (q Quad) RightHeight() float64 { return Distance(q[1], q[2]) }

// Diagonals returns the TL-BR and TR-BL diagonal lengths.
func (q Quad) Diagonals() (float64, float64) {
	return Distance(q[0], q[2]), Distance(q[1], q[3])
}

// Area returns the polygon area via the shoelace formula.
func (q Quad) Area() float64 { return PolygonArea(q[:]) }

// Points returns the quad corners as a slice.
func (q Quad) Points() []Point { return []Point{q[0], q[1], q[2], q[3]} }
