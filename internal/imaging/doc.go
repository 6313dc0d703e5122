// Package imaging provides the raster I/O around the mask engine: loading
// input images, decoding edited bitmaps posted by the browser editor,
// normalizing and resampling them, and converting results into the host's
// formats.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Normalized images always
// have bounds starting at the origin.
//
// # Color Mode
//
// The mask engine compares 3-channel 8-bit color. ToRGB converts any decoded
// image (paletted, grayscale, 16-bit, premultiplied) into an opaque
// *image.NRGBA; alpha is discarded rather than composited.
//
// # Supported Formats
//
// PNG, JPEG, GIF, BMP and WebP are decoded. Results are always encoded as PNG.
//
// # Host Tensors
//
// The host represents an image batch as a float32 tensor of shape
// [1, H, W, 3] with values in [0, 1], and a mask batch as [1, H, W].
// Conversions in both directions are exact for 8-bit channel values.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless.
package imaging
