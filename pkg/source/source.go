// Package source opens the byte streams images are read from and written to.
// Files may be plain or wrapped in a zstd frame; zstd input is detected by its
// magic number, zstd output is chosen by a ".zst" extension.
package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Reader is an opened input stream. Close releases every underlying resource.
type Reader struct {
	io.Reader
	Compressed bool

	closers []func() error
}

// Open opens the file at path for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed opening source")
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closers = append(r.closers, f.Close)
	return r, nil
}

// NewReader wraps r, unwrapping zstd framing when present. Closing the
// returned Reader does not close r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed sniffing source")
	}
	if !bytes.Equal(magic, zstdMagic) {
		return &Reader{Reader: br}, nil
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating zstd reader")
	}
	return &Reader{
		Reader:     zr,
		Compressed: true,
		closers: []func() error{func() error {
			zr.Close()
			return nil
		}},
	}, nil
}

// Close releases the stream. It is safe to call more than once.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// Writer is an opened output stream. Close flushes and releases it.
type Writer struct {
	io.Writer
	Compressed bool

	closers []func() error
}

// Create creates or truncates the file at path. Paths ending in ".zst" are zstd compressed.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating destination")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".zst") {
		return &Writer{Writer: f, closers: []func() error{f.Close}}, nil
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed creating zstd writer")
	}
	return &Writer{
		Writer:     zw,
		Compressed: true,
		closers:    []func() error{zw.Close, f.Close},
	}, nil
}

// Close flushes pending data and closes the file. It is safe to call more than once.
func (w *Writer) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = errors.Wrap(err, "failed closing destination")
		}
	}
	w.closers = nil
	return first
}
