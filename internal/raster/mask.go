package raster

// Mask is a binary plane in row-major order.
type Mask struct {
	Bits []bool
	W    int
	H    int
}

// NewMask allocates a cleared mask.
func NewMask(w, h int) *Mask {
	return &Mask{Bits: make([]bool, w*h), W: w, H: h}
}

// At returns the bit at (x, y); out-of-bounds reads return false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Bits[y*m.W+x]
}

// Count returns the number of set bits.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Or returns the pixel-wise union of two masks of identical dimensions.
func (m *Mask) Or(other *Mask) *Mask {
	out := NewMask(m.W, m.H)
	for i := range m.Bits {
		out.Bits[i] = m.Bits[i] || other.Bits[i]
	}
	return out
}

// Dilate expands set regions using a square kernel of the given size,
// applied for the given number of iterations.
func (m *Mask) Dilate(kernelSize, iterations int) *Mask {
	out := m
	for i := 0; i < max(iterations, 0); i++ {
		out = out.morph(kernelSize, true)
	}
	return out
}

// Erode shrinks set regions using a square kernel of the given size,
// applied for the given number of iterations.
func (m *Mask) Erode(kernelSize, iterations int) *Mask {
	out := m
	for i := 0; i < max(iterations, 0); i++ {
		out = out.morph(kernelSize, false)
	}
	return out
}

// Close fills gaps (dilate then erode).
func (m *Mask) Close(kernelSize int) *Mask {
	return m.Dilate(kernelSize, 1).Erode(kernelSize, 1)
}

// Open removes small noise (erode then dilate).
func (m *Mask) Open(kernelSize int) *Mask {
	return m.Erode(kernelSize, 1).Dilate(kernelSize, 1)
}

// morph applies one dilation (any set neighbor) or erosion (all in-bounds
// neighbors set) pass with a square kernel.
func (m *Mask) morph(kernelSize int, dilate bool) *Mask {
	if kernelSize <= 1 {
		return m
	}
	out := NewMask(m.W, m.H)
	half := kernelSize / 2
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			out.Bits[y*m.W+x] = m.kernelVote(x, y, half, dilate)
		}
	}
	return out
}

func (m *Mask) kernelVote(x, y, half int, dilate bool) bool {
	for ky := -half; ky <= half; ky++ {
		for kx := -half; kx <= half; kx++ {
			nx, ny := x+kx, y+ky
			if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
				continue
			}
			if m.Bits[ny*m.W+nx] == dilate {
				return dilate
			}
		}
	}
	return !dilate
}
