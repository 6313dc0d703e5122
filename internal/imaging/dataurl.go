package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrInvalidDataURL is returned when an edited-image payload is not a
// base64 data URL.
var ErrInvalidDataURL = errors.New("invalid data URL")

// DecodeDataURL decodes a payload of the form "data:image/png;base64,<data>"
// as produced by a browser canvas.
//
// Only the part after the first comma is decoded; the header is not
// inspected, and the image format is detected from the decoded bytes.
func DecodeDataURL(payload string) (image.Image, error) {
	_, data, ok := strings.Cut(payload, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing ',' separator", ErrInvalidDataURL)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode edited image: %w", err)
	}
	return img, nil
}

// EncodeDataURL encodes img as a PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	enc, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:" + enc.MimeType + ";base64," + enc.ImageBase64, nil
}
