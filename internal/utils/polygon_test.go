package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonArea(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 100.0, PolygonArea(square), 1e-9)

	triangle := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	assert.InDelta(t, 50.0, PolygonArea(triangle), 1e-9)

	assert.Equal(t, 0.0, PolygonArea([]Point{{X: 1, Y: 1}, {X: 2, Y: 2}}))
}

func TestArcLength(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 40.0, ArcLength(square), 1e-9)
}

func TestSimplifyPolygonDropsNearCollinear(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 2, Y: 0.1}, {X: 5, Y: -0.1}, {X: 8, Y: 0.1}, {X: 10, Y: 0},
	}
	simplified := SimplifyPolygon(pts, 0.5)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, simplified)
}

func TestSimplifyPolygonKeepsCorners(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 5, Y: 0.1}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 10, Y: 10},
	}
	simplified := SimplifyPolygon(pts, 0.5)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, simplified)
}

func TestSimplifyPolygonTiny(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.Equal(t, pts, SimplifyPolygon(pts, 1.0))
}
