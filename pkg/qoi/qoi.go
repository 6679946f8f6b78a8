// Package qoi decodes and encodes images in the "Quite OK Image" format.
//
// A file is a 14 byte header followed by a stream of byte aligned chunks and
// an 8 byte end marker. Every chunk starts with a 2- or 8-bit tag; the 8-bit
// tags OpRgb and OpRgba take precedence over the 2-bit OpRun tag they overlap.
// Decoding keeps the previous pixel and a 64 slot cache of seen pixels for
// the whole stream and always produces 4 channels per pixel:
//
//	dec, err := qoi.NewDecoder(r)
//	if err != nil {
//		return err
//	}
//	img, err := dec.Decode()
//
// The package registers itself with the image package, so image.Decode
// recognises QOI files as well.
package qoi

import (
	"image/color"
)

// Pixel is a single non-premultiplied RGBA value.
type Pixel = color.NRGBA

// startPixel is the previous pixel at the beginning of every stream.
var startPixel = Pixel{A: 255}

// Generates a hash from the provided color. It is a number between 0 and 63.
func hashColor(pixel Pixel) byte {
	return (pixel.R*3 + pixel.G*5 + pixel.B*7 + pixel.A*11) % cacheSize
}
