package raster

import "github.com/MeKo-Tech/ergsnap/internal/utils"

// TraceContour extracts a boundary polygon for the given labeled component
// using Moore-Neighbor tracing. The search is restricted to the component's
// bounding box. Returned points are pixel-center coordinates with collinear
// runs collapsed.
func TraceContour(labels []int, w, h int, comp Component) []utils.Point {
	if comp.Label <= 0 || len(labels) != w*h {
		return nil
	}

	sx, sy := findStartPixel(labels, w, h, comp)
	if sx == -1 {
		return nil
	}

	pts := make([]utils.Point, 0, 64)
	addPoint := func(x, y int) {
		p := utils.Point{X: float64(x), Y: float64(y)}
		n := len(pts)
		if n >= 2 {
			a := pts[n-2]
			b := pts[n-1]
			v1x, v1y := b.X-a.X, b.Y-a.Y
			v2x, v2y := p.X-b.X, p.Y-b.Y
			if v1x*v2y-v1y*v2x == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack to the left of start
	addPoint(cx, cy)

	startCx, startCy := cx, cy
	startBx, startBy := bx, by
	maxSteps := w*h*4 + 8

	for steps := 0; steps < maxSteps; steps++ {
		nx, ny, nbx, nby, found := nextBoundaryPixel(labels, w, h, comp.Label, cx, cy, bx, by)
		if !found {
			break
		}
		bx, by = nbx, nby
		cx, cy = nx, ny

		if last := pts[len(pts)-1]; last.X != float64(cx) || last.Y != float64(cy) {
			addPoint(cx, cy)
		}
		if cx == startCx && cy == startCy && bx == startBx && by == startBy {
			break
		}
	}

	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// findStartPixel locates the first boundary pixel inside the component's
// bounding box, falling back to any labeled pixel.
func findStartPixel(labels []int, w, h int, comp Component) (int, int) {
	for y := comp.MinY; y <= comp.MaxY; y++ {
		for x := comp.MinX; x <= comp.MaxX; x++ {
			if isBoundaryPixel(labels, w, h, comp.Label, x, y) {
				return x, y
			}
		}
	}
	for y := comp.MinY; y <= comp.MaxY; y++ {
		for x := comp.MinX; x <= comp.MaxX; x++ {
			if isLabelPixel(labels, w, h, comp.Label, x, y) {
				return x, y
			}
		}
	}
	return -1, -1
}

func isBoundaryPixel(labels []int, w, h, label, x, y int) bool {
	if !isLabelPixel(labels, w, h, label, x, y) {
		return false
	}
	return !isLabelPixel(labels, w, h, label, x+1, y) ||
		!isLabelPixel(labels, w, h, label, x-1, y) ||
		!isLabelPixel(labels, w, h, label, x, y+1) ||
		!isLabelPixel(labels, w, h, label, x, y-1)
}

func isLabelPixel(labels []int, w, h, label, x, y int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return labels[y*w+x] == label
}

// nextBoundaryPixel finds the next labeled pixel in the Moore neighborhood,
// scanning clockwise from the backtrack position. The returned backtrack is
// the last empty neighbor visited before the hit, which keeps the clockwise
// scan anchored outside the component.
func nextBoundaryPixel(labels []int, w, h, label, cx, cy, bx, by int) (int, int, int, int, bool) {
	// 8-neighborhood clockwise order: E, SE, S, SW, W, NW, N, NE
	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}

	start := 0
	dx, dy := bx-cx, by-cy
	for i := 0; i < 8; i++ {
		if ndx[i] == dx && ndy[i] == dy {
			start = (i + 1) % 8
			break
		}
	}

	prevX, prevY := bx, by
	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+ndx[i], cy+ndy[i]
		if isLabelPixel(labels, w, h, label, tx, ty) {
			return tx, ty, prevX, prevY, true
		}
		prevX, prevY = tx, ty
	}
	return 0, 0, 0, 0, false
}
