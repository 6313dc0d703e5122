package mask

import "image"

// Padded canvas cell values.
const (
	background byte = 0
	reached    byte = 128
	drawn      byte = 255
)

// EnclosureMask marks the pixels enclosed by drawn lines.
type EnclosureMask struct {
	// Width is the mask width in pixels.
	Width int

	// Height is the mask height in pixels.
	Height int

	// Pix holds Width*Height values in row-major order: 1 for enclosed
	// pixels, 0 for everything else.
	Pix []float32
}

// Empty returns an all-zero mask of the given size.
func Empty(width, height int) *EnclosureMask {
	return &EnclosureMask{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}
}

// At returns the mask value at (x, y), or 0 outside the mask.
func (m *EnclosureMask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Count returns the number of enclosed pixels.
func (m *EnclosureMask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Gray renders the mask as a grayscale image: 255 where enclosed, 0 elsewhere.
func (m *EnclosureMask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v != 0 {
			img.Pix[i] = 255
		}
	}
	return img
}

// Resolver classifies the pixels of a DrawnLineMap as enclosed or open.
//
// The zero value uses 4-connectivity.
type Resolver struct {
	// Connectivity is 4 (edge neighbors) or 8 (edge and corner neighbors).
	// Any other value selects 4.
	Connectivity int
}

var (
	offsets4 = []image.Point{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}
	offsets8 = []image.Point{
		{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0},
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
)

// ResolveEnclosure returns the mask of pixels that cannot be reached from the
// image border without crossing a drawn pixel, using 4-connectivity.
//
// Drawn pixels are never enclosed. A map with no drawn pixels, or a nil map,
// yields an all-zero mask.
func ResolveEnclosure(m *DrawnLineMap) *EnclosureMask {
	return Resolver{}.Resolve(m)
}

// Resolve is ResolveEnclosure with the resolver's connectivity.
func (r Resolver) Resolve(m *DrawnLineMap) *EnclosureMask {
	if m == nil {
		return Empty(0, 0)
	}
	c := pad(m)
	c.floodFromBorder(c.borderSeeds(), r.offsets())
	return c.classify()
}

func (r Resolver) offsets() []image.Point {
	if r.Connectivity == 8 {
		return offsets8
	}
	return offsets4
}

// canvas is a DrawnLineMap embedded in a one-cell background border.
type canvas struct {
	width  int
	height int
	cells  []byte
}

func pad(m *DrawnLineMap) *canvas {
	c := &canvas{
		width:  m.Width + 2,
		height: m.Height + 2,
	}
	c.cells = make([]byte, c.width*c.height)
	for y := 0; y < m.Height; y++ {
		row := (y+1)*c.width + 1
		for x := 0; x < m.Width; x++ {
			if m.Pix[y*m.Width+x] {
				c.cells[row+x] = drawn
			}
		}
	}
	return c
}

// borderSeeds lists every cell index on the canvas edge: left and right
// columns, then top and bottom rows. Corners appear twice.
func (c *canvas) borderSeeds() []int {
	seeds := make([]int, 0, 2*c.height+2*c.width)
	for y := 0; y < c.height; y++ {
		seeds = append(seeds, y*c.width, y*c.width+c.width-1)
	}
	for x := 0; x < c.width; x++ {
		seeds = append(seeds, x, (c.height-1)*c.width+x)
	}
	return seeds
}

// floodFromBorder fills from each seed that is still background. A single
// fill does not reach background components that only touch other edges, so
// every seed is tried.
func (c *canvas) floodFromBorder(seeds []int, offsets []image.Point) {
	var stack []int
	for _, s := range seeds {
		if c.cells[s] == background {
			stack = c.fill(s, offsets, stack[:0])
		}
	}
}

// fill marks every background cell connected to start as reached. It uses an
// explicit stack so that large images cannot exhaust the goroutine stack.
// The stack's backing array is returned for reuse.
func (c *canvas) fill(start int, offsets []image.Point, stack []int) []int {
	stack = append(stack, start)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.cells[i] != background {
			continue
		}
		c.cells[i] = reached

		x, y := i%c.width, i/c.width
		for _, d := range offsets {
			nx, ny := x+d.X, y+d.Y
			if nx < 0 || ny < 0 || nx >= c.width || ny >= c.height {
				continue
			}
			n := ny*c.width + nx
			if c.cells[n] == background {
				stack = append(stack, n)
			}
		}
	}
	return stack
}

// classify strips the border and marks cells never reached as enclosed.
func (c *canvas) classify() *EnclosureMask {
	w, h := c.width-2, c.height-2
	out := Empty(w, h)
	for y := 0; y < h; y++ {
		row := (y+1)*c.width + 1
		for x := 0; x < w; x++ {
			if c.cells[row+x] == background {
				out.Pix[y*w+x] = 1
			}
		}
	}
	return out
}
