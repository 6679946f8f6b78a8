package qoi

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

// testImages stand in for the reference images of the format. Each one leans
// on a different set of chunks.
var testImages = map[string]func() *image.NRGBA{
	"testcard":      testcard,
	"testcard_rgba": testcardAlpha,
	"noise":         noise,
	"palette":       palette,
	"flat":          flat,
	"single":        single,
	"wide":          wide,
}

// testcard is a smooth gradient, decoded mostly through OpDiff and OpLuma.
func testcard() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 67, 41))
	for y := 0; y < 41; y++ {
		for x := 0; x < 67; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}
	return img
}

// testcardAlpha adds a changing alpha channel, which needs OpRgba.
func testcardAlpha() *image.NRGBA {
	img := testcard()
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i / 97)
	}
	return img
}

// noise defeats every prediction and falls back to literals.
func noise() *image.NRGBA {
	rnd := rand.New(rand.NewSource(8))
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	rnd.Read(img.Pix)
	return img
}

// palette repeats a handful of colors, which needs OpIndex and OpRun.
func palette() *image.NRGBA {
	colors := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 128},
		{R: 10, G: 20, B: 30, A: 40},
		{},
	}
	rnd := rand.New(rand.NewSource(23))
	img := image.NewNRGBA(image.Rect(0, 0, 50, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 50; {
			c := colors[rnd.Intn(len(colors))]
			for n := 1 + rnd.Intn(3); n > 0 && x < 50; n-- {
				img.SetNRGBA(x, y, c)
				x++
			}
		}
	}
	return img
}

// flat is a single opaque black area, i.e. nothing but runs longer than MaxRun.
func flat() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 10))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func single() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	return img
}

// wide is a single row with an offset origin.
func wide() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(5, 7, 300, 8))
	for x := 5; x < 300; x++ {
		img.SetNRGBA(x, 7, color.NRGBA{R: uint8(x / 7), G: uint8(x / 11), B: uint8(x / 13), A: 255})
	}
	return img
}

// qoiFile assembles a file from a header, raw chunk bytes and the end marker.
func qoiFile(h Header, chunks ...byte) []byte {
	file := h.AppendBinary(nil)
	file = append(file, chunks...)
	return append(file, eof[:]...)
}

func encodeTestImage(t testing.TB, img image.Image, opts ...EncoderOption) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, img, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func comparePixels(t *testing.T, expected image.Image, actual image.Image) {
	t.Helper()
	eb, ab := expected.Bounds(), actual.Bounds()
	if eb.Dx() != ab.Dx() || eb.Dy() != ab.Dy() {
		t.Fatalf("invalid bounds: expected %v, actual %v", eb, ab)
	}
	for y := 0; y < eb.Dy(); y++ {
		for x := 0; x < eb.Dx(); x++ {
			e := color.NRGBAModel.Convert(expected.At(eb.Min.X+x, eb.Min.Y+y))
			a := color.NRGBAModel.Convert(actual.At(ab.Min.X+x, ab.Min.Y+y))
			if e != a {
				t.Fatalf("invalid pixel at (%d, %d): expected %+v, actual %+v", x, y, e, a)
			}
		}
	}
}
