// Package editor implements the paint editor node executed by the host.
//
// A Node loads an input image, applies the edited bitmap most recently saved
// for the node id, and derives an enclosure mask from the difference. It
// returns three outputs: the edited image, the mask, and the original.
//
// Execution never fails because of a bad edit. A missing, empty or
// undecodable payload yields the original image as both outputs with an
// all-zero mask; a failed mask computation yields an all-zero mask beside
// the decoded edit. Both cases are logged. Only a missing input image or a
// size mismatch after resampling is returned as an error.
package editor
