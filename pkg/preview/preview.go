// Package preview presents decoded images: written to a file, or served over
// HTTP from a store that many images can be decoded into concurrently.
package preview

import (
	"github.com/pkg/errors"
	"github.com/wagpa/qoiview/pkg/qoi"
)

// Presenter shows a decoded image. rgba holds width*height pixels as
// R, G, B, A bytes and must not be modified by the presenter.
type Presenter interface {
	Present(title string, width, height int, rgba []byte) error
}

// Show hands img to p.
func Show(p Presenter, title string, img *qoi.Image) error {
	return p.Present(title, int(img.Header.Width), int(img.Header.Height), img.Pix)
}

// toImage wraps a presented buffer without copying.
func toImage(width, height int, rgba []byte) (*qoi.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(qoi.ErrInvalidDimensions, "%dx%d", width, height)
	}
	h := qoi.Header{Width: uint32(width), Height: uint32(height), Channels: qoi.RGBA, Colorspace: qoi.SRGB}
	if uint64(len(rgba)) != h.Pixels()*4 {
		return nil, errors.Errorf("buffer holds %d bytes, %dx%d pixels need %d", len(rgba), width, height, h.Pixels()*4)
	}
	return &qoi.Image{Header: h, Pix: rgba}, nil
}
