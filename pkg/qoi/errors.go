package qoi

import "github.com/pkg/errors"

// Every decoding failure wraps exactly one of these. Use errors.Is to tell them apart.
var (
	// ErrUnexpectedEOF is returned when the header or end marker is cut short.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")
	// ErrBadMagic is returned when the stream does not start with "qoif".
	ErrBadMagic = errors.New("invalid magic")
	// ErrInvalidDimensions is returned for a zero width or height, or an image above the pixel limit.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidChannelCount is returned for a channel count other than 3 or 4.
	ErrInvalidChannelCount = errors.New("invalid channel count")
	// ErrInvalidColorspace is returned for a colorspace other than 0 or 1.
	ErrInvalidColorspace = errors.New("invalid colorspace")
	// ErrMalformedStream is returned when the chunks do not describe exactly width*height pixels.
	ErrMalformedStream = errors.New("malformed chunk stream")
	// ErrBadEndMarker is returned when the 8 bytes after the last pixel are not the end marker.
	ErrBadEndMarker = errors.New("invalid end marker")
)
