package qoi

import (
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("qoi", Magic, Decode, DecodeConfig)
}

// Decode reads a QOI image from r. It is registered with image.Decode.
func Decode(r io.Reader) (image.Image, error) {
	d, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	img, err := d.Decode()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeConfig reads only the header of a QOI image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(newCursor(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(h.Width),
		Height:     int(h.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}
