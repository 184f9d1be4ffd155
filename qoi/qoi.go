// Package qoi implements an encoder and decoder for the QOI (Quite OK
// Image) lossless raster image format.
//
// QOI compresses RGB/RGBA pixel data using a small set of single- and
// multi-byte chunks plus a 64-entry running hash index of recently seen
// pixels. The format spec is at https://qoiformat.org/qoi-specification.pdf.
package qoi

// Channels is the pixel channel layout declared in a Header. Its numeric
// value is the on-wire byte. It is metadata only: pixels are always
// handled as four-channel values, whatever Channels says.
type Channels uint8

const (
	ChannelsRGB  Channels = 3
	ChannelsRGBA Channels = 4
)

// Colorspace is passthrough metadata carried in a Header. It never
// transforms sample values.
type Colorspace uint8

const (
	ColorspaceSRGB   Colorspace = 0
	ColorspaceLinear Colorspace = 1
)

const magic = "qoif"

const headerLen = 14

// endMarker is the fixed 8-byte sequence that terminates every QOI stream.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Header describes the dimensions and metadata of a QOI image. Width and
// Height must both be non-zero.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	Colorspace Colorspace
}

// Pixel is a single RGBA sample. Pixels crossing the API boundary are
// always four channels wide; Header.Channels does not change that, and the
// image.Image convenience layer always yields color.NRGBA.
type Pixel struct {
	R, G, B, A byte
}

// seedPixel is the previous-pixel register's initial value: opaque black.
// This differs from the index array's zero value (fully transparent
// black); both are specified, not a bug.
var seedPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// index is the 64-entry running cache of recently seen pixels shared by
// the encoder and decoder. Slots start as the zero Pixel (transparent
// black), distinct from seedPixel.
type index [64]Pixel

func (idx *index) observe(p Pixel) {
	idx[Hash(p)] = p
}

// Hash computes the running index position for a pixel: a number in
// [0, 63]. This is part of the wire format and must never change — a
// decoder built against a different hash would silently diverge from
// every compliant encoder.
func Hash(p Pixel) byte {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) & 0x3f
}

const (
	tagRGB   byte = 0b1111_1110
	tagRGBA  byte = 0b1111_1111
	tagIndex byte = 0b0000_0000
	tagDiff  byte = 0b0100_0000
	tagLuma  byte = 0b1000_0000
	tagRun   byte = 0b1100_0000

	tagMask2 byte = 0b1100_0000
)

const maxRunLength = 62
