package qoi

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestImage(t *testing.T) {
	// given
	img := NewImage(Header{Width: 2, Height: 2, Channels: RGBA})
	copy(img.Pix, []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	})

	// then
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("invalid bounds %v", img.Bounds())
	}
	if c := img.At(1, 1); c != (color.NRGBA{R: 13, G: 14, B: 15, A: 16}) {
		t.Fatalf("invalid pixel %+v", c)
	}
	if c := img.At(2, 0); c != (color.NRGBA{}) {
		t.Fatalf("expected zero pixel outside the bounds, actual %+v", c)
	}
	if c := img.NRGBA().NRGBAAt(0, 1); c != (color.NRGBA{R: 9, G: 10, B: 11, A: 12}) {
		t.Fatalf("invalid NRGBA pixel %+v", c)
	}
	if rgb := img.Bytes(RGB); !bytes.Equal(rgb, []byte{1, 2, 3, 5, 6, 7, 9, 10, 11, 13, 14, 15}) {
		t.Fatalf("invalid RGB bytes %v", rgb)
	}
	if rgba := img.Bytes(RGBA); &rgba[0] != &img.Pix[0] {
		t.Fatal("expected RGBA bytes to share the pixel buffer")
	}
}
