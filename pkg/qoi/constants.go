package qoi

// A List of opcodes used in the file. They specify how the bytes are encoded.
const (
	OpRgb   = byte(0b11111110)
	OpRgba  = byte(0b11111111)
	OpIndex = byte(0b00000000)
	OpDiff  = byte(0b01000000)
	OpLuma  = byte(0b10000000)
	OpRun   = byte(0b11000000)
	// OpMask is the mask for 2-bit op codes
	OpMask = byte(0b11000000)
)

const (
	// Magic is the magic code used for files of the QuiteOk image format.
	Magic = "qoif"
	// HeaderSize is the size of the file header in bytes.
	HeaderSize = 14
	// MaxRun is the longest run a single OpRun can encode.
	MaxRun = 62
	// DefaultMaxPixels bounds width*height of a decoded image. With at most 5 bytes per pixel it keeps files below 2GB.
	DefaultMaxPixels = 400_000_000

	payloadMask = byte(0b00111111)
	cacheSize   = 64
)

// eof is the end of file code used by files of the QuiteOk image format
var eof = [...]byte{0, 0, 0, 0, 0, 0, 0, 1}
