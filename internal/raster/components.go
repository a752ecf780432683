package raster

import "container/list"

// Component describes one 4-connected region of set pixels in a Mask.
type Component struct {
	Label int
	Area  int
	MinX  int
	MinY  int
	MaxX  int
	MaxY  int
}

// Width returns the bounding-box width of the component in pixels.
func (c Component) Width() int { return c.MaxX - c.MinX + 1 }

// Height returns the bounding-box height of the component in pixels.
func (c Component) Height() int { return c.MaxY - c.MinY + 1 }

// BoxArea returns the bounding-box area of the component in pixels.
func (c Component) BoxArea() int { return c.Width() * c.Height() }

// ConnectedComponents labels 4-connected regions of set pixels and returns
// per-component stats plus the label plane (0 means background, labels
// start at 1).
func ConnectedComponents(m *Mask) ([]Component, []int) {
	labels := make([]int, m.W*m.H)
	var comps []Component
	label := 1

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if m.Bits[idx] && labels[idx] == 0 {
				comps = append(comps, componentBFS(m, labels, x, y, label))
				label++
			}
		}
	}
	return comps, labels
}

// componentBFS floods a single component starting from a seed pixel.
func componentBFS(m *Mask, labels []int, startX, startY, label int) Component {
	c := Component{Label: label, MinX: startX, MinY: startY, MaxX: startX, MaxY: startY}
	start := startY*m.W + startX
	labels[start] = label

	q := list.New()
	q.PushBack(start)

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue
		}
		cx, cy := ci%m.W, ci/m.W

		c.Area++
		if cx < c.MinX {
			c.MinX = cx
		}
		if cy < c.MinY {
			c.MinY = cy
		}
		if cx > c.MaxX {
			c.MaxX = cx
		}
		if cy > c.MaxY {
			c.MaxY = cy
		}

		for _, d := range dirs {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
				continue
			}
			ni := ny*m.W + nx
			if m.Bits[ni] && labels[ni] == 0 {
				labels[ni] = label
				q.PushBack(ni)
			}
		}
	}
	return c
}

// ComponentMask extracts the pixels of one labeled component into its own Mask.
func ComponentMask(labels []int, w, h, label int) *Mask {
	out := NewMask(w, h)
	for i, l := range labels {
		if l == label {
			out.Bits[i] = true
		}
	}
	return out
}
