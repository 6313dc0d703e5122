package imaging

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/paint-editor-node/internal/mask"
)

// assertRGBA checks each channel of got against want, allowing one step of
// rounding
func assertRGBA(t *testing.T, want color.RGBA, got color.Color, msgAndArgs ...interface{}) {
	t.Helper()
	c := color.RGBAModel.Convert(got).(color.RGBA)
	assert.InDelta(t, want.R, c.R, 1, msgAndArgs...)
	assert.InDelta(t, want.G, c.G, 1, msgAndArgs...)
	assert.InDelta(t, want.B, c.B, 1, msgAndArgs...)
	assert.InDelta(t, want.A, c.A, 1, msgAndArgs...)
}

func TestMaskOverlay(t *testing.T) {
	img := createInMemoryImage(4, 4, color.White)
	m := mask.Empty(4, 4)
	m.Pix[1*4+1] = 1

	out, err := MaskOverlay(img, m, "#0000FF", 0.5)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), out.Bounds())

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0), "unmasked pixel should be unchanged")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(3, 3), "unmasked pixel should be unchanged")
	assertRGBA(t, color.RGBA{127, 127, 255, 255}, out.At(1, 1), "masked pixel should be half blue")
}

func TestMaskOverlay_OpacityIsLinear(t *testing.T) {
	img := createInMemoryImage(1, 1, color.Black)
	m := mask.Empty(1, 1)
	m.Pix[0] = 1

	tests := []struct {
		opacity float64
		want    uint8
	}{
		{0, 0},
		{0.25, 64},
		{0.5, 128},
		{0.75, 191},
		{1, 255},
	}

	for _, tt := range tests {
		out, err := MaskOverlay(img, m, "#0000FF", tt.opacity)
		require.NoError(t, err)
		assertRGBA(t, color.RGBA{0, 0, tt.want, 255}, out.At(0, 0), "opacity %v", tt.opacity)
	}
}

func TestMaskOverlay_FullOpacityAndFallbackColor(t *testing.T) {
	img := createInMemoryImage(2, 1, color.White)
	m := mask.Empty(2, 1)
	m.Pix[0] = 1

	out, err := MaskOverlay(img, m, "not-a-color", 3)
	require.NoError(t, err)

	red, err := colorful.Hex(DefaultOverlayColor)
	require.NoError(t, err)
	r, g, b := red.RGB255()
	assert.Equal(t, color.RGBA{r, g, b, 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(1, 0))
}

func TestMaskOverlay_NegativeOpacity(t *testing.T) {
	img := createInMemoryImage(1, 1, color.White)
	m := mask.Empty(1, 1)
	m.Pix[0] = 1

	out, err := MaskOverlay(img, m, "#00FF00", -2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0))
}

func TestMaskOverlay_SizeMismatch(t *testing.T) {
	_, err := MaskOverlay(createInMemoryImage(3, 3, color.White), mask.Empty(2, 2), "#FF0000", 0.5)
	assert.Error(t, err)
}
