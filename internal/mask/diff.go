package mask

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultThreshold is the summed per-channel difference (0-765 scale) a pixel
// must exceed to be marked as drawn.
const DefaultThreshold = 30

// ErrDimensionMismatch is returned when the original and edited images do not
// share the same width and height.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DrawnLineMap marks the pixels that differ between an original and an edited
// image beyond the noise threshold.
type DrawnLineMap struct {
	// Width is the map width in pixels.
	Width int

	// Height is the map height in pixels.
	Height int

	// Pix holds Width*Height entries in row-major order.
	Pix []bool
}

// NewDrawnLineMap returns an empty map of the given size.
func NewDrawnLineMap(width, height int) *DrawnLineMap {
	return &DrawnLineMap{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is drawn.
// Coordinates outside the map report false.
func (m *DrawnLineMap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set marks or clears the pixel at (x, y). Out-of-range coordinates are ignored.
func (m *DrawnLineMap) Set(x, y int, drawn bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = drawn
}

// Count returns the number of drawn pixels.
func (m *DrawnLineMap) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Detector compares an original and an edited image pixel by pixel.
//
// The zero value uses DefaultThreshold.
type Detector struct {
	// Threshold is the summed absolute channel difference a pixel must
	// exceed (strictly) to count as drawn. Zero or negative selects
	// DefaultThreshold.
	Threshold int
}

// DetectDrawnLines marks every pixel whose summed absolute RGB difference
// between original and edited exceeds DefaultThreshold.
//
// Both images must have the same width and height; otherwise an error
// wrapping ErrDimensionMismatch is returned and no pixel is read. The images'
// bounds need not start at the origin. Alpha is ignored.
func DetectDrawnLines(original, edited image.Image) (*DrawnLineMap, error) {
	return Detector{}.Detect(original, edited)
}

// Detect is DetectDrawnLines with the detector's threshold.
func (d Detector) Detect(original, edited image.Image) (*DrawnLineMap, error) {
	ob, eb := original.Bounds(), edited.Bounds()
	if ob.Dx() != eb.Dx() || ob.Dy() != eb.Dy() {
		return nil, fmt.Errorf("%w: original is %dx%d, edited is %dx%d",
			ErrDimensionMismatch, ob.Dx(), ob.Dy(), eb.Dx(), eb.Dy())
	}

	threshold := d.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	width, height := ob.Dx(), ob.Dy()
	m := NewDrawnLineMap(width, height)

	o := asNRGBA(original)
	e := asNRGBA(edited)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			oi := o.PixOffset(o.Rect.Min.X+x, o.Rect.Min.Y+y)
			ei := e.PixOffset(e.Rect.Min.X+x, e.Rect.Min.Y+y)
			diff := absDiff(o.Pix[oi], e.Pix[ei]) +
				absDiff(o.Pix[oi+1], e.Pix[ei+1]) +
				absDiff(o.Pix[oi+2], e.Pix[ei+2])
			if diff > threshold {
				m.Pix[y*width+x] = true
			}
		}
	}

	return m, nil
}

// asNRGBA returns img as un-premultiplied 8-bit RGBA, copying only when the
// image is in another color model.
func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a) - int(b)
	}
	return int(b) - int(a)
}
