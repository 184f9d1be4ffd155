package qoi

import (
	"encoding/binary"
	"io"
)

// EncodePixels writes h and pixels to w as a complete QOI stream: the
// 14-byte header, the chunk stream, and the 8-byte end marker. It returns
// the total number of bytes written.
//
// len(pixels) must equal int(h.Width)*int(h.Height); the header and pixel
// count are validated before any bytes are written.
func EncodePixels(w io.Writer, h Header, pixels []Pixel) (int64, error) {
	if h.Width == 0 || h.Height == 0 {
		return 0, ErrInvalidDimensions
	}
	if h.Channels != ChannelsRGB && h.Channels != ChannelsRGBA {
		return 0, ErrInvalidHeader
	}
	if h.Colorspace != ColorspaceSRGB && h.Colorspace != ColorspaceLinear {
		return 0, InvalidColorspaceError{Value: byte(h.Colorspace)}
	}
	if uint64(len(pixels)) != uint64(h.Width)*uint64(h.Height) {
		return 0, ErrPixelCount
	}

	cw := &countingWriter{w: w}
	writeHeader(cw, h)
	if cw.err != nil {
		return cw.n, cw.err
	}

	e := &encoder{w: cw, prev: seedPixel}
	for _, p := range pixels {
		e.put(p)
		if cw.err != nil {
			return cw.n, cw.err
		}
	}
	e.flushRun()
	if cw.err != nil {
		return cw.n, cw.err
	}

	cw.write(endMarker[:])
	return cw.n, cw.err
}

// countingWriter forwards to w, recording the first error and the total
// number of bytes successfully written.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) write(b []byte) {
	if cw.err != nil {
		return
	}
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	cw.err = err
}

func writeHeader(cw *countingWriter, h Header) {
	var buf [headerLen]byte
	copy(buf[:4], magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Width)
	binary.BigEndian.PutUint32(buf[8:12], h.Height)
	buf[12] = byte(h.Channels)
	buf[13] = byte(h.Colorspace)
	cw.write(buf[:])
}

// encoder holds the running state shared between successive pixels: the
// previous-pixel register, the 64-entry index, and any pending run.
type encoder struct {
	w    *countingWriter
	idx  index
	prev Pixel
	run  byte
}

func (e *encoder) put(p Pixel) {
	if p == e.prev {
		e.run++
		if e.run == maxRunLength {
			e.flushRun()
		}
		return
	}
	e.flushRun()

	if e.idx[Hash(p)] == p {
		e.w.write([]byte{tagIndex | Hash(p)})
	} else if p.A == e.prev.A {
		e.writeDiffLumaOrRGB(p)
	} else {
		e.w.write([]byte{tagRGBA, p.R, p.G, p.B, p.A})
	}

	e.idx.observe(p)
	e.prev = p
}

func (e *encoder) writeDiffLumaOrRGB(p Pixel) {
	dr := int8(p.R - e.prev.R)
	dg := int8(p.G - e.prev.G)
	db := int8(p.B - e.prev.B)

	if inDiffRange(dr) && inDiffRange(dg) && inDiffRange(db) {
		chunk := tagDiff | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2)
		e.w.write([]byte{chunk})
		return
	}

	drdg := dr - dg
	dbdg := db - dg
	if inLumaGreenRange(dg) && inLumaRange(drdg) && inLumaRange(dbdg) {
		e.w.write([]byte{
			tagLuma | byte(dg+32),
			byte(drdg+8)<<4 | byte(dbdg+8),
		})
		return
	}

	e.w.write([]byte{tagRGB, p.R, p.G, p.B})
}

func inDiffRange(d int8) bool {
	return d >= -2 && d <= 1
}

func inLumaRange(d int8) bool {
	return d >= -8 && d <= 7
}

func inLumaGreenRange(d int8) bool {
	return d >= -32 && d <= 31
}

// flushRun emits any pending run as a single chunk and resets the counter.
func (e *encoder) flushRun() {
	if e.run == 0 {
		return
	}
	e.w.write([]byte{tagRun | (e.run - 1)})
	e.run = 0
}
