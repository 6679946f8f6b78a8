package qoi

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Channels is the number of channels stored in a file.
type Channels uint8

const (
	RGB  Channels = 3
	RGBA Channels = 4
)

func (c Channels) String() string {
	switch c {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	}
	return fmt.Sprintf("Channels(%d)", uint8(c))
}

func (c Channels) valid() bool {
	return c == RGB || c == RGBA
}

// Colorspace is informative only, it does not change how pixels are decoded.
type Colorspace uint8

const (
	// SRGB is sRGB with linear alpha.
	SRGB Colorspace = 0
	// Linear means all channels are linear.
	Linear Colorspace = 1
)

func (c Colorspace) String() string {
	switch c {
	case SRGB:
		return "sRGB"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("Colorspace(%d)", uint8(c))
}

func (c Colorspace) valid() bool {
	return c == SRGB || c == Linear
}

// Header is the header data of a QuiteOk image.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	Colorspace Colorspace
}

// Pixels returns width*height.
func (h Header) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// Validate checks the fields against the values the format allows.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", h.Width, h.Height)
	}
	if !h.Channels.valid() {
		return errors.Wrapf(ErrInvalidChannelCount, "expected 3 or 4, actual %d", uint8(h.Channels))
	}
	if !h.Colorspace.valid() {
		return errors.Wrapf(ErrInvalidColorspace, "expected 0 or 1, actual %d", uint8(h.Colorspace))
	}
	return nil
}

// AppendBinary appends the 14 byte encoding of the header to buf.
func (h Header) AppendBinary(buf []byte) []byte {
	buf = append(buf, Magic...)
	buf = binary.BigEndian.AppendUint32(buf, h.Width)
	buf = binary.BigEndian.AppendUint32(buf, h.Height)
	return append(buf, byte(h.Channels), byte(h.Colorspace))
}

// readHeader consumes exactly HeaderSize bytes from the cursor.
func readHeader(c *cursor) (Header, error) {
	buf, err := c.readBytes(HeaderSize)
	if err != nil {
		return Header{}, errors.Wrap(err, "reading header")
	}
	return parseHeader(buf)
}

func parseHeader(buf []byte) (Header, error) {
	if magic := string(buf[0:4]); magic != Magic {
		return Header{}, errors.Wrapf(ErrBadMagic, "expected %q, actual %q", Magic, magic)
	}
	h := Header{
		Width:      binary.BigEndian.Uint32(buf[4:8]),
		Height:     binary.BigEndian.Uint32(buf[8:12]),
		Channels:   Channels(buf[12]),
		Colorspace: Colorspace(buf[13]),
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
