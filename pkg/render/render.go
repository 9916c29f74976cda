// Package render defines the drawing contract the simulation core talks to
// and its ebiten implementation.
package render

import (
	"image"
	"image/color"
)

// Image is an opaque picture handle obtained from Assets.
type Image interface {
	Bounds() image.Rectangle
}

// Surface receives imperative draw calls. Coordinates are pixels with the
// origin at the top-left corner of the surface.
type Surface interface {
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	// FillHexagon fills a pointy-top hexagon with corner radius r.
	FillHexagon(cx, cy, r float64, c color.Color)
	// DrawImage stretches img over the rectangle, multiplied by alpha in [0,1].
	DrawImage(img Image, x, y, w, h, alpha float64)
	// DrawImageHexagon draws img clipped to a pointy-top hexagon.
	DrawImageHexagon(img Image, cx, cy, r float64)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y float64, c color.Color)
	MeasureText(s string) (w, h float64)
	// DrawCanvas copies an off-screen canvas made by the same backend.
	DrawCanvas(src Canvas, x, y float64)
}

// Canvas is an off-screen Surface.
type Canvas interface {
	Surface
	Size() (w, h int)
}

// Backend creates canvases.
type Backend interface {
	NewCanvas(w, h int) Canvas
}

// Assets resolves image names to handles.
type Assets interface {
	ImageFor(name string) (Image, bool)
}

// StaticAssets is an Assets backed by a map.
type StaticAssets map[string]Image

func (a StaticAssets) ImageFor(name string) (Image, bool) {
	img, ok := a[name]
	return img, ok
}

// Releaser is implemented by canvases that hold GPU memory.
type Releaser interface {
	Release()
}
