package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/paint-editor-node/internal/mask"
)

// Tensor is a dense float32 array in the host's row-major layout.
type Tensor struct {
	// Shape is [1, H, W, 3] for images and [1, H, W] for masks.
	Shape []int `json:"shape"`

	// Data holds the values in row-major order.
	Data []float32 `json:"data"`
}

// ToImageTensor converts img to a [1, H, W, 3] tensor with values in [0, 1].
func ToImageTensor(img image.Image) *Tensor {
	rgb := ToRGB(img)
	w, h := rgb.Rect.Dx(), rgb.Rect.Dy()

	data := make([]float32, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := rgb.Pix[y*rgb.Stride : y*rgb.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			data = append(data,
				float32(row[x])/255,
				float32(row[x+1])/255,
				float32(row[x+2])/255,
			)
		}
	}

	return &Tensor{Shape: []int{1, h, w, 3}, Data: data}
}

// MaskToTensor converts m to a [1, H, W] tensor. Values are copied unchanged.
func MaskToTensor(m *mask.EnclosureMask) *Tensor {
	data := make([]float32, len(m.Pix))
	copy(data, m.Pix)
	return &Tensor{Shape: []int{1, m.Height, m.Width}, Data: data}
}

// TensorToImage converts a [1, H, W, 3] tensor back to an image. Values are
// clamped to [0, 1] and rounded to the nearest 8-bit level, so tensors made
// by ToImageTensor convert back exactly.
func TensorToImage(t *Tensor) (*image.NRGBA, error) {
	if len(t.Shape) != 4 || t.Shape[0] != 1 || t.Shape[3] != 3 {
		return nil, fmt.Errorf("unsupported tensor shape %v, want [1 H W 3]", t.Shape)
	}
	h, w := t.Shape[1], t.Shape[2]
	if len(t.Data) != h*w*3 {
		return nil, fmt.Errorf("tensor has %d values, shape %v needs %d", len(t.Data), t.Shape, h*w*3)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4] = toByte(t.Data[i*3])
		img.Pix[i*4+1] = toByte(t.Data[i*3+1])
		img.Pix[i*4+2] = toByte(t.Data[i*3+2])
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

func toByte(v float32) uint8 {
	f := math.Round(float64(v) * 255)
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
