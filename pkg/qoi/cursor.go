package qoi

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// cursor reads a QOI stream front to back. It never seeks, so it works the
// same for in-memory data and for streams.
type cursor struct {
	r   *bufio.Reader
	pos int64
	buf [HeaderSize]byte
}

func newCursor(r io.Reader) *cursor {
	if br, ok := r.(*bufio.Reader); ok {
		return &cursor{r: br}
	}
	return &cursor{r: bufio.NewReader(r)}
}

func newBytesCursor(data []byte) *cursor {
	// a reader sized to the data never needs a second fill
	size := len(data)
	if size < 16 {
		size = 16
	}
	return &cursor{r: bufio.NewReaderSize(bytes.NewReader(data), size)}
}

// readBytes returns the next n bytes. The slice is only valid until the next call.
func (c *cursor) readBytes(n int) ([]byte, error) {
	if n > len(c.buf) {
		return nil, errors.Errorf("cannot read %d bytes at once", n)
	}
	read, err := io.ReadFull(c.r, c.buf[:n])
	c.pos += int64(read)
	if err != nil {
		return nil, c.wrap(err, n)
	}
	return c.buf[:n], nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, c.wrap(err, 1)
	}
	c.pos++
	return b, nil
}

func (c *cursor) peekByte() (byte, error) {
	b, err := c.r.Peek(1)
	if err != nil {
		return 0, c.wrap(err, 1)
	}
	return b[0], nil
}

// position returns the number of bytes consumed so far.
func (c *cursor) position() int64 {
	return c.pos
}

func (c *cursor) wrap(err error, n int) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrUnexpectedEOF, "reading %d bytes at offset %d", n, c.pos)
	}
	return errors.Wrapf(err, "reading %d bytes at offset %d", n, c.pos)
}
