package qoi

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DecoderOption configures a Decoder.
type DecoderOption func(d *Decoder) error

// WithChannels sets the channel layout of DecodeToBuffer. The default is RGBA.
func WithChannels(ch Channels) DecoderOption {
	return func(d *Decoder) error {
		if !ch.valid() {
			return errors.Wrapf(ErrInvalidChannelCount, "output channels %d", uint8(ch))
		}
		d.channels = ch
		return nil
	}
}

// WithLenientEndMarker accepts images whose end marker is missing or wrong.
// A warning is logged instead of failing with ErrBadEndMarker.
func WithLenientEndMarker() DecoderOption {
	return func(d *Decoder) error {
		d.lenient = true
		return nil
	}
}

// WithMaxPixels limits width*height. Headers above the limit fail with ErrInvalidDimensions.
func WithMaxPixels(n uint64) DecoderOption {
	return func(d *Decoder) error {
		d.maxPixels = n
		return nil
	}
}

// WithLogger sets the logger, logrus.StandardLogger() by default.
func WithLogger(log logrus.FieldLogger) DecoderOption {
	return func(d *Decoder) error {
		d.log = log
		return nil
	}
}

// Decoder decodes a single QOI stream. The header is read by NewDecoder,
// the pixels by Decode or DecodeToBuffer, which may only be called once.
type Decoder struct {
	cur       *cursor
	header    Header
	channels  Channels
	lenient   bool
	maxPixels uint64
	log       logrus.FieldLogger

	prev    Pixel
	cache   pixelCache
	run     int
	decoded uint64
	total   uint64
	used    bool
}

// NewDecoder reads and validates the header from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	return newDecoder(newCursor(r), opts)
}

// DecodeBytes decodes a complete in-memory QOI file.
func DecodeBytes(data []byte, opts ...DecoderOption) (*Image, error) {
	d, err := newDecoder(newBytesCursor(data), opts)
	if err != nil {
		return nil, err
	}
	return d.Decode()
}

func newDecoder(c *cursor, opts []DecoderOption) (*Decoder, error) {
	d := &Decoder{
		cur:       c,
		channels:  RGBA,
		maxPixels: DefaultMaxPixels,
		log:       logrus.StandardLogger(),
		prev:      startPixel,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	header, err := readHeader(c)
	if err != nil {
		return nil, err
	}
	if header.Pixels() > d.maxPixels {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d exceeds the limit of %d pixels", header.Width, header.Height, d.maxPixels)
	}
	d.header = header
	d.total = header.Pixels()

	d.log.WithFields(logrus.Fields{
		"width":      header.Width,
		"height":     header.Height,
		"channels":   header.Channels,
		"colorspace": header.Colorspace,
	}).Debug("read qoi header")
	return d, nil
}

// Header returns the header read by NewDecoder.
func (d *Decoder) Header() Header {
	return d.header
}

// Decode decodes all pixels and the end marker.
func (d *Decoder) Decode() (*Image, error) {
	if d.used {
		return nil, errors.New("qoi: stream already decoded")
	}
	d.used = true

	img := NewImage(d.header)
	pix := img.Pix
	for off := 0; off < len(pix); off += 4 {
		px, err := d.next()
		if err != nil {
			return nil, err
		}
		pix[off+0] = px.R
		pix[off+1] = px.G
		pix[off+2] = px.B
		pix[off+3] = px.A
	}

	if err := d.readEndMarker(); err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeToBuffer decodes all pixels into a buffer laid out in the channels set by WithChannels.
func (d *Decoder) DecodeToBuffer() ([]byte, error) {
	img, err := d.Decode()
	if err != nil {
		return nil, err
	}
	return img.Bytes(d.channels), nil
}

// next returns the next pixel, reading a new chunk unless a run is in progress.
func (d *Decoder) next() (Pixel, error) {
	if d.run > 0 {
		d.run--
		d.decoded++
		return d.prev, nil
	}

	start := d.cur.position()
	tag, err := d.cur.readByte()
	if err != nil {
		return Pixel{}, d.truncated(err, start)
	}

	// the 8-bit tags overlap the OpRun range and must be checked first
	px := d.prev
	switch {
	case tag == OpRgb:
		buf, err := d.cur.readBytes(3)
		if err != nil {
			return Pixel{}, d.truncated(err, start)
		}
		px.R = buf[0]
		px.G = buf[1]
		px.B = buf[2]
	case tag == OpRgba:
		buf, err := d.cur.readBytes(4)
		if err != nil {
			return Pixel{}, d.truncated(err, start)
		}
		px = Pixel{R: buf[0], G: buf[1], B: buf[2], A: buf[3]}
	case tag&OpMask == OpIndex:
		px = d.cache.lookup(tag)
	case tag&OpMask == OpDiff:
		px.R += (tag>>4)&0x3 - 2
		px.G += (tag>>2)&0x3 - 2
		px.B += (tag>>0)&0x3 - 2
	case tag&OpMask == OpLuma:
		b, err := d.cur.readByte()
		if err != nil {
			return Pixel{}, d.truncated(err, start)
		}
		dg := tag&payloadMask - 32
		px.R += dg - 8 + b>>4
		px.G += dg
		px.B += dg - 8 + b&0x0f
	default:
		// OpRun, the payload is 0..61 since 62 and 63 are OpRgb and OpRgba
		run := uint64(tag&payloadMask) + 1
		if d.decoded+run > d.total {
			return Pixel{}, errors.Wrapf(ErrMalformedStream, "run of %d at offset %d exceeds the remaining %d pixels", run, start, d.total-d.decoded)
		}
		d.run = int(run - 1)
	}

	// rewriting the slot is a no-op for runs and indexes of pixels already
	// in the cache, so every chunk inserts and the cache never goes stale
	d.cache.insert(px)
	d.prev = px
	d.decoded++
	return px, nil
}

func (d *Decoder) truncated(err error, start int64) error {
	if errors.Is(err, ErrUnexpectedEOF) {
		return errors.Wrapf(ErrMalformedStream, "chunk at offset %d is truncated after %d of %d pixels", start, d.decoded, d.total)
	}
	return err
}

// readEndMarker validates the 8 bytes following the last pixel.
func (d *Decoder) readEndMarker() error {
	buf, err := d.cur.readBytes(len(eof))
	if err == nil && !bytes.Equal(buf, eof[:]) {
		err = errors.Wrapf(ErrBadEndMarker, "expected %v, actual %v", eof, buf)
	}
	if err != nil {
		if !d.lenient || !(errors.Is(err, ErrBadEndMarker) || errors.Is(err, ErrUnexpectedEOF)) {
			return errors.Wrap(err, "reading end marker")
		}
		d.log.WithError(err).Warn("accepting qoi image without a valid end marker")
		return nil
	}

	if _, err := d.cur.peekByte(); err == nil {
		d.log.WithField("offset", d.cur.position()).Debug("ignoring trailing bytes after end marker")
	}
	return nil
}
