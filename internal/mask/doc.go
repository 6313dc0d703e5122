// Package mask derives an enclosure mask from an original image and a
// user-edited copy of it.
//
// Derivation runs in two stages:
//
//  1. Detection: every pixel whose summed absolute RGB difference between the
//     original and the edited image exceeds a threshold (30 on a 0-765 scale
//     by default) is marked as drawn. The result is a DrawnLineMap.
//
//  2. Resolution: the DrawnLineMap is embedded in a canvas padded by one
//     background pixel on every side. A flood fill seeded from every border
//     cell marks all background reachable from outside without crossing a
//     drawn pixel. Background that was never reached is enclosed. The result
//     is an EnclosureMask holding 1 for enclosed pixels and 0 elsewhere.
//
// # Connectivity
//
// The flood fill uses 4-connectivity (up, down, left, right) unless a Resolver
// is configured for 8. With 4-connectivity a diagonal one-pixel stroke still
// seals a region, which matches how freehand canvas strokes are rasterized.
//
// # Gaps
//
// A stroke that almost closes leaves a gap the flood escapes through, so the
// region it surrounds is not enclosed. A loop whose stroke lies on the edge
// row or column still encloses its interior, since the padding lets the flood
// run around the outside of the image but never through the stroke. A region
// bounded only by the image edge itself is open.
//
// # Determinism
//
// The resolver computes the set of background cells reachable from the
// border. The set does not depend on seed or neighbor order, so the mask is a
// pure function of the DrawnLineMap.
//
// # Thread Safety
//
// All functions are stateless and may be called concurrently on independent
// inputs.
package mask
