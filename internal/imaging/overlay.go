package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/paint-editor-node/internal/mask"
)

// DefaultOverlayColor is the tint used when no overlay color is configured.
const DefaultOverlayColor = "#FF0000"

// MaskOverlay tints the enclosed pixels of m over img so a user can check
// which regions the mask selected.
//
// Parameters:
//   - img: The image to draw over; it must have the mask's dimensions.
//   - m: The enclosure mask.
//   - hexColor: Tint as "#RGB" or "#RRGGBB". Invalid values fall back to
//     DefaultOverlayColor.
//   - opacity: Tint opacity in [0, 1]. Values outside are clamped.
//
// Pixels outside the mask are left unchanged.
func MaskOverlay(img image.Image, m *mask.EnclosureMask, hexColor string, opacity float64) (*image.RGBA, error) {
	base := ToRGB(img)
	if base.Rect.Dx() != m.Width || base.Rect.Dy() != m.Height {
		return nil, fmt.Errorf("overlay: image is %dx%d, mask is %dx%d",
			base.Rect.Dx(), base.Rect.Dy(), m.Width, m.Height)
	}

	tint, err := colorful.Hex(hexColor)
	if err != nil {
		tint, _ = colorful.Hex(DefaultOverlayColor)
	}
	r, g, b := tint.RGB255()

	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := uint8(opacity*255 + 0.5)

	// bild reads *image.RGBA pixels as straight alpha and converts any other
	// type by premultiplying, so the layer holds unpremultiplied values.
	layer := image.NewRGBA(base.Rect)
	for i, v := range m.Pix {
		if v != 0 {
			layer.Pix[i*4] = r
			layer.Pix[i*4+1] = g
			layer.Pix[i*4+2] = b
			layer.Pix[i*4+3] = a
		}
	}

	return blend.Normal(base, layer), nil
}
