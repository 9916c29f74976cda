// pkg/render/color.go
package render

import "image/color"

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// RGB builds an opaque color from a config triple.
func RGB(v [3]uint8) color.RGBA {
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 255}
}

// toRGBA converts any color to 8-bit channels.
func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

var placeholderPalette = []color.RGBA{
	{214, 170, 60, 255},
	{120, 160, 60, 255},
	{80, 140, 200, 255},
	{150, 110, 90, 255},
	{230, 150, 170, 255},
	{110, 110, 120, 255},
}
