package qoi

import (
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("qoi", magic, Decode, DecodeConfig)
}

// Image is an image.Image backed by a decoded QOI pixel buffer. Its color
// model is always color.NRGBAModel regardless of the header's declared
// Channels, since image.Image has no narrower 3-channel color model in the
// standard library.
type Image struct {
	Header Header
	Pixels []Pixel
}

func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(m.Header.Width), int(m.Header.Height))
}

func (m *Image) At(x, y int) color.Color {
	p := m.Pixels[y*int(m.Header.Width)+x]
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Decode reads a QOI image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	h, pixels, err := DecodePixels(r)
	if err != nil {
		return nil, err
	}
	return &Image{Header: h, Pixels: pixels}, nil
}

// DecodeConfig returns the color model and dimensions of a QOI image
// without decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := decodeHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// Encoder configures encoding an image.Image as QOI. The zero value
// encodes as ChannelsRGBA / ColorspaceSRGB.
type Encoder struct {
	Channels   Channels
	Colorspace Colorspace
}

// Encode writes m to w in QOI format using the Encoder's configuration.
//
// Every pixel is converted through color.NRGBAModel before encoding, so a
// source image already in unpremultiplied form (e.g. image.NRGBA) round
// trips exactly. A premultiplied source (e.g. image.RGBA) with partial
// alpha does not: premultiply-then-unpremultiply loses precision, the
// same way it would encoding to PNG.
func (enc Encoder) Encode(w io.Writer, m image.Image) error {
	channels := enc.Channels
	if channels == 0 {
		channels = ChannelsRGBA
	}

	b := m.Bounds()
	h := Header{
		Width:      uint32(b.Dx()),
		Height:     uint32(b.Dy()),
		Channels:   channels,
		Colorspace: enc.Colorspace,
	}

	pixels := make([]Pixel, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pixels = append(pixels, Pixel{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}

	_, err := EncodePixels(w, h, pixels)
	return err
}

// Encode writes m to w in QOI format with ChannelsRGBA / ColorspaceSRGB.
func Encode(w io.Writer, m image.Image) error {
	var enc Encoder
	return enc.Encode(w, m)
}
