package qoi_test

import (
	"testing"

	"github.com/j-arens/qoi/qoi"
)

func wantHash(r, g, b, a byte) byte {
	return (r*3 + g*5 + b*7 + a*11) & 0x3f
}

func TestHash(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		px   qoi.Pixel
		want byte
	}{
		{"zero pixel", qoi.Pixel{}, 0},
		{"seed pixel", qoi.Pixel{A: 255}, (255 * 11) & 0x3f},
		{"arbitrary pixel", qoi.Pixel{R: 10, G: 20, B: 30, A: 255},
			wantHash(10, 20, 30, 255)},
		{"wraps at 8 bits", qoi.Pixel{R: 255, G: 255, B: 255, A: 255},
			wantHash(255, 255, 255, 255)},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := qoi.Hash(c.px)
			if got != c.want {
				t.Fatalf("Hash(%+v) = %d, want %d", c.px, got, c.want)
			}
			if got > 63 {
				t.Fatalf("Hash(%+v) = %d, out of range [0,63]", c.px, got)
			}
		})
	}
}
