package qoi

import (
	"image"
	"image/color"
)

// Image is a decoded QuiteOk image. It implements the image.Image interface.
type Image struct {
	Header Header
	// Pix holds width*height pixels as R, G, B, A bytes, row by row from the top left.
	// The layout does not depend on Header.Channels.
	Pix []byte
}

// NewImage allocates a fully transparent image for the header.
func NewImage(h Header) *Image {
	return &Image{
		Header: h,
		Pix:    make([]byte, h.Pixels()*4),
	}
}

func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(img.Header.Width), int(img.Header.Height))
}

func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.NRGBA{}
	}
	return img.PixelAt(x + y*int(img.Header.Width))
}

// PixelAt returns the i-th pixel in row-major order.
func (img *Image) PixelAt(i int) Pixel {
	p := img.Pix[i*4 : i*4+4 : i*4+4]
	return Pixel{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// NRGBA wraps the pixels in an image.NRGBA without copying.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * int(img.Header.Width),
		Rect:   img.Bounds(),
	}
}

// Bytes returns the pixels with the given number of channels. RGBA returns Pix
// itself, RGB returns a copy without the alpha channel.
func (img *Image) Bytes(ch Channels) []byte {
	if ch != RGB {
		return img.Pix
	}
	out := make([]byte, 0, len(img.Pix)/4*3)
	for off := 0; off < len(img.Pix); off += 4 {
		out = append(out, img.Pix[off:off+3]...)
	}
	return out
}
