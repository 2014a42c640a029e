// Package palette assigns display colors to particle color indices.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette maps a color index in [0, m) to an evenly spaced hue.
type Palette []colorful.Color

// New builds m fully saturated colors around the hue wheel.
func New(m int) Palette {
	p := make(Palette, m)
	for i := range p {
		p[i] = colorful.Hsv(float64(i)/float64(m)*360, 1, 1)
	}
	return p
}

// At returns the color for index i, white when i is outside the palette.
func (p Palette) At(i uint32) colorful.Color {
	if int(i) >= len(p) {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return p[i]
}

// RGB returns 8-bit channels for index i.
func (p Palette) RGB(i uint32) (r, g, b uint8) {
	return p.At(i).RGB255()
}
