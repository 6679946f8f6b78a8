package qoi

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/pkg/errors"
)

// EncoderOption configures Encode.
type EncoderOption func(e *encoder)

// EncodeChannels sets the channel count written to the header. The default is RGBA.
// With RGB the alpha channel of the image is expected to be opaque.
func EncodeChannels(ch Channels) EncoderOption {
	return func(e *encoder) {
		e.header.Channels = ch
	}
}

// EncodeColorspace sets the colorspace written to the header. The default is SRGB.
func EncodeColorspace(cs Colorspace) EncoderOption {
	return func(e *encoder) {
		e.header.Colorspace = cs
	}
}

type encoder struct {
	w      *bufio.Writer
	header Header
	at     func(i int) Pixel
}

// Encode encodes a given image to the QuiteOk image format and writes the encoded bytes to the writer.
func Encode(w io.Writer, img image.Image, opts ...EncoderOption) error {
	bounds := img.Bounds()
	if uint64(bounds.Dx()) > math.MaxUint32 || uint64(bounds.Dy()) > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", bounds.Dx(), bounds.Dy())
	}
	e := &encoder{
		header: Header{
			Width:      uint32(bounds.Dx()),
			Height:     uint32(bounds.Dy()),
			Channels:   RGBA,
			Colorspace: SRGB,
		},
		at: pixelSource(img),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e.encode(w)
}

// EncodeBuffer encodes width*height pixels given as R, G, B, A bytes,
// the layout of Image.Pix.
func EncodeBuffer(w io.Writer, h Header, rgba []byte) error {
	if uint64(len(rgba)) != h.Pixels()*4 {
		return errors.Errorf("buffer holds %d bytes, %dx%d pixels need %d", len(rgba), h.Width, h.Height, h.Pixels()*4)
	}
	e := &encoder{
		header: h,
		at:     (&Image{Header: h, Pix: rgba}).PixelAt,
	}
	return e.encode(w)
}

// pixelSource returns a row-major pixel accessor for img.
func pixelSource(img image.Image) func(i int) Pixel {
	bounds := img.Bounds()
	width := bounds.Dx()
	switch src := img.(type) {
	case *Image:
		return src.PixelAt
	case *image.NRGBA:
		return func(i int) Pixel {
			off := src.PixOffset(bounds.Min.X+i%width, bounds.Min.Y+i/width)
			p := src.Pix[off : off+4 : off+4]
			return Pixel{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
	}
	return func(i int) Pixel {
		return color.NRGBAModel.Convert(img.At(bounds.Min.X+i%width, bounds.Min.Y+i/width)).(color.NRGBA)
	}
}

func (e *encoder) encode(w io.Writer) error {
	if err := e.header.Validate(); err != nil {
		return err
	}
	e.w = bufio.NewWriter(w)
	if _, err := e.w.Write(e.header.AppendBinary(make([]byte, 0, HeaderSize))); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := e.encodePixels(); err != nil {
		return err
	}
	if _, err := e.w.Write(eof[:]); err != nil {
		return errors.Wrap(err, "writing end marker")
	}
	return errors.Wrap(e.w.Flush(), "flushing encoded image")
}

func (e *encoder) encodePixels() error {
	last := startPixel
	seen := pixelCache{}
	run := 0
	size := int(e.header.Pixels())

	for i := 0; i < size; i++ {
		curr := e.at(i)
		if e.header.Channels == RGB {
			curr.A = last.A
		}

		// handle run
		if run >= MaxRun || (run >= 1 && last != curr) {
			if err := e.w.WriteByte(OpRun | byte(run-1)); err != nil {
				return errors.Wrap(err, "writing run")
			}
			run = 0
		}

		// OpRun
		if last == curr {
			run++
			continue
		}

		// OpIndex
		hash := hashColor(curr)
		if seen[hash] == curr {
			if err := e.w.WriteByte(OpIndex | hash); err != nil {
				return errors.Wrap(err, "writing index")
			}
			last = curr
			continue
		}
		seen[hash] = curr

		if err := e.writeColor(last, curr); err != nil {
			return err
		}
		last = curr
	}

	if run >= 1 {
		if err := e.w.WriteByte(OpRun | byte(run-1)); err != nil {
			return errors.Wrap(err, "writing run")
		}
	}
	return nil
}

// writeColor writes the smallest of OpDiff, OpLuma, OpRgb and OpRgba that turns last into curr.
func (e *encoder) writeColor(last, curr Pixel) error {
	var chunk []byte
	if curr.A == last.A {
		// differences wrap around, 254 and 255 are -2 and -1
		dr := curr.R - last.R
		dg := curr.G - last.G
		db := curr.B - last.B
		drDg := dr - dg
		dbDg := db - dg

		switch {
		case (254 <= dr || dr <= 1) && (254 <= dg || dg <= 1) && (254 <= db || db <= 1):
			chunk = []byte{OpDiff | (dr+2)<<4 | (dg+2)<<2 | (db + 2)}
		case (224 <= dg || dg <= 31) && (248 <= drDg || drDg <= 7) && (248 <= dbDg || dbDg <= 7):
			chunk = []byte{OpLuma | (dg + 32), (drDg+8)<<4 | (dbDg + 8)}
		default:
			chunk = []byte{OpRgb, curr.R, curr.G, curr.B}
		}
	} else {
		chunk = []byte{OpRgba, curr.R, curr.G, curr.B, curr.A}
	}
	_, err := e.w.Write(chunk)
	return errors.Wrap(err, "writing pixel")
}
