package mask

import "image"

// Engine runs detection and resolution with configurable parameters.
type Engine struct {
	Detector Detector
	Resolver Resolver
}

// Compute derives the enclosure mask for an original/edited image pair.
func (e Engine) Compute(original, edited image.Image) (*EnclosureMask, error) {
	lines, err := e.Detector.Detect(original, edited)
	if err != nil {
		return nil, err
	}
	return e.Resolver.Resolve(lines), nil
}

// Compute derives the enclosure mask with the default threshold and
// 4-connectivity.
func Compute(original, edited image.Image) (*EnclosureMask, error) {
	return Engine{}.Compute(original, edited)
}
