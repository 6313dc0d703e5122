package editor

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"github.com/ironsheep/paint-editor-node/internal/imaging"
	"github.com/ironsheep/paint-editor-node/internal/mask"
	"github.com/ironsheep/paint-editor-node/internal/session"
)

// ErrMissingData is returned by Save when the node id or payload is empty.
var ErrMissingData = errors.New("missing data")

// MaskEngine derives an enclosure mask from an original/edited pair.
// mask.Engine is the production implementation.
type MaskEngine interface {
	Compute(original, edited image.Image) (*mask.EnclosureMask, error)
}

// Result holds the node's outputs.
type Result struct {
	// Edited is the edited image resampled to the original size, or the
	// original when no usable edit exists.
	Edited image.Image

	// Mask marks the regions enclosed by the user's strokes.
	Mask *mask.EnclosureMask

	// Original is the input image normalized to RGB.
	Original image.Image

	// HasEdit reports whether a saved edit was decoded and applied.
	HasEdit bool
}

// Tensors converts the outputs to the host's tensor layout.
func (r *Result) Tensors() (edited, enclosed, original *imaging.Tensor) {
	return imaging.ToImageTensor(r.Edited), imaging.MaskToTensor(r.Mask), imaging.ToImageTensor(r.Original)
}

// Node is the paint editor node. It is safe for concurrent use.
type Node struct {
	inputDir       string
	store          session.Store
	cache          *imaging.ImageCache
	engine         MaskEngine
	overlayColor   string
	overlayOpacity float64
	log            zerolog.Logger
}

// Option configures a Node.
type Option func(*Node)

// WithEngine replaces the default mask engine.
func WithEngine(e MaskEngine) Option {
	return func(n *Node) { n.engine = e }
}

// WithCache shares an image cache between nodes.
func WithCache(c *imaging.ImageCache) Option {
	return func(n *Node) { n.cache = c }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(n *Node) { n.log = log }
}

// WithOverlay sets the tint used by Preview.
func WithOverlay(hexColor string, opacity float64) Option {
	return func(n *Node) {
		n.overlayColor = hexColor
		n.overlayOpacity = opacity
	}
}

// New creates a node reading input images from inputDir and edits from store.
func New(inputDir string, store session.Store, opts ...Option) *Node {
	n := &Node{
		inputDir:       inputDir,
		store:          store,
		cache:          imaging.NewImageCache(),
		engine:         mask.Engine{},
		overlayColor:   imaging.DefaultOverlayColor,
		overlayOpacity: 0.5,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Execute runs the node for the chosen input file.
//
// When nodeID has a saved, decodable edit, the edit is normalized to RGB,
// resampled to the original size with a Lanczos filter and compared with the
// original to derive the mask. Otherwise the original is returned as both
// images with an all-zero mask.
//
// # Errors
//
//   - The input file name is invalid, or the file cannot be loaded
//   - The resampled edit does not match the original size (wraps
//     mask.ErrDimensionMismatch)
func (n *Node) Execute(ctx context.Context, imageFile, nodeID string) (*Result, error) {
	original, err := n.loadOriginal(imageFile)
	if err != nil {
		return nil, err
	}
	w, h := original.Rect.Dx(), original.Rect.Dy()

	unedited := &Result{
		Edited:   original,
		Mask:     mask.Empty(w, h),
		Original: original,
	}

	log := n.log.With().Str("node_id", nodeID).Str("image_file", imageFile).Logger()

	payload := n.payload(ctx, nodeID, log)
	if payload == "" {
		return unedited, nil
	}

	decoded, err := imaging.DecodeDataURL(payload)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load edited image, returning original")
		return unedited, nil
	}

	edited := imaging.ToRGB(decoded)
	if edited.Rect.Dx() != w || edited.Rect.Dy() != h {
		log.Debug().
			Int("edited_width", edited.Rect.Dx()).
			Int("edited_height", edited.Rect.Dy()).
			Msg("resampling edited image to original size")
		edited = imaging.ToRGB(imaging.MatchSize(edited, w, h))
	}

	enclosed, err := n.computeMask(original, edited)
	if errors.Is(err, mask.ErrDimensionMismatch) {
		return nil, fmt.Errorf("edited image after resampling: %w", err)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to create mask, using empty mask")
		enclosed = mask.Empty(w, h)
	}

	log.Debug().Int("enclosed_pixels", enclosed.Count()).Msg("edit applied")

	return &Result{
		Edited:   edited,
		Mask:     enclosed,
		Original: original,
		HasEdit:  true,
	}, nil
}

// IsChanged returns a token for the host's result cache. The token changes
// whenever a different edit is saved for nodeID or, without an edit, when a
// different input file is chosen.
func (n *Node) IsChanged(ctx context.Context, imageFile, nodeID string) string {
	if payload := n.payload(ctx, nodeID, n.log); payload != "" {
		return "edit:" + session.VersionToken(payload)
	}
	return "file:" + imageFile
}

// Save stores the edited-image payload posted for nodeID, replacing any
// earlier edit.
func (n *Node) Save(ctx context.Context, nodeID, payload string) error {
	if nodeID == "" || payload == "" {
		return ErrMissingData
	}
	if err := n.store.Put(ctx, nodeID, payload); err != nil {
		return err
	}
	n.log.Info().Str("node_id", nodeID).Int("payload_bytes", len(payload)).Msg("saved edited image")
	return nil
}

// Inputs lists the images the user can choose from.
func (n *Node) Inputs() ([]string, error) {
	return imaging.ListInputImages(n.inputDir)
}

// InputPath resolves an input file name to its path on disk.
func (n *Node) InputPath(imageFile string) (string, error) {
	return imaging.ResolveInputPath(n.inputDir, imageFile)
}

// Preview executes the node and tints the mask over the edited image.
func (n *Node) Preview(ctx context.Context, imageFile, nodeID string) (*image.RGBA, *Result, error) {
	res, err := n.Execute(ctx, imageFile, nodeID)
	if err != nil {
		return nil, nil, err
	}
	overlay, err := imaging.MaskOverlay(res.Edited, res.Mask, n.overlayColor, n.overlayOpacity)
	if err != nil {
		return nil, nil, err
	}
	return overlay, res, nil
}

func (n *Node) loadOriginal(imageFile string) (*image.NRGBA, error) {
	path, err := n.InputPath(imageFile)
	if err != nil {
		return nil, err
	}
	img, _, err := n.cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", imageFile, err)
	}
	return imaging.ToRGB(img), nil
}

// payload returns the saved edit for nodeID, or "" when there is none.
// Store errors are logged and treated as no edit.
func (n *Node) payload(ctx context.Context, nodeID string, log zerolog.Logger) string {
	if nodeID == "" {
		return ""
	}
	payload, ok, err := n.store.Get(ctx, nodeID)
	if err != nil {
		log.Warn().Err(err).Str("node_id", nodeID).Msg("failed to read edit session")
		return ""
	}
	if !ok {
		return ""
	}
	return payload
}

// computeMask runs the engine, turning panics and malformed results into
// errors so Execute can fall back to an empty mask.
func (n *Node) computeMask(original, edited image.Image) (m *mask.EnclosureMask, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("mask engine panicked: %v", r)
		}
	}()

	m, err = n.engine.Compute(original, edited)
	if err != nil {
		return nil, err
	}
	b := original.Bounds()
	if m == nil || m.Width != b.Dx() || m.Height != b.Dy() || len(m.Pix) != m.Width*m.Height {
		return nil, fmt.Errorf("mask engine returned a malformed mask")
	}
	return m, nil
}
