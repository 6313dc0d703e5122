package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// ToRGB converts img to an opaque 8-bit image with bounds at the origin.
//
// Color channels are taken un-premultiplied and alpha is then forced to 255,
// which drops transparency the way an RGBA to RGB mode conversion does rather
// than compositing over a background.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// MatchSize resamples img to width x height with a Lanczos filter.
// Images already of that size are returned unchanged.
func MatchSize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
