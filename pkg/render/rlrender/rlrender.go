// Package rlrender implements the render contract on top of raylib, for the
// raylib viewer.
package rlrender

import (
	"fmt"
	"image"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-tile-sandbox/pkg/render"
)

// Texture is a loaded raylib texture.
type Texture struct {
	rl.Texture2D
}

func (t Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(t.Width), int(t.Height))
}

// Surface draws either to the window (target nil) or to a render texture.
type Surface struct {
	target   *rl.RenderTexture2D
	w, h     int
	font     rl.Font
	fontSize float32
}

// NewScreen returns a surface for the window back buffer. Must be used
// between rl.BeginDrawing and rl.EndDrawing.
func NewScreen(font rl.Font, fontSize float32) *Surface {
	return &Surface{
		w:        int(rl.GetScreenWidth()),
		h:        int(rl.GetScreenHeight()),
		font:     font,
		fontSize: fontSize,
	}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) begin() {
	if s.target != nil {
		rl.BeginTextureMode(*s.target)
	}
}

func (s *Surface) end() {
	if s.target != nil {
		rl.EndTextureMode()
	}
}

func (s *Surface) Clear(c color.Color) {
	s.begin()
	rl.ClearBackground(colorToRL(c))
	s.end()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.begin()
	rl.DrawRectangleV(rl.NewVector2(float32(x), float32(y)), rl.NewVector2(float32(w), float32(h)), colorToRL(c))
	s.end()
}

func (s *Surface) FillHexagon(cx, cy, r float64, c color.Color) {
	s.begin()
	// Rotation 30 puts the first corner at 30 degrees: pointy top.
	rl.DrawPoly(rl.NewVector2(float32(cx), float32(cy)), 6, float32(r), 30, colorToRL(c))
	s.end()
}

func (s *Surface) DrawImage(img render.Image, x, y, w, h, alpha float64) {
	tex, ok := img.(Texture)
	if !ok {
		return
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	s.begin()
	rl.DrawTexturePro(tex.Texture2D, src, dst, rl.NewVector2(0, 0), 0, rl.ColorAlpha(rl.White, float32(alpha)))
	s.end()
}

// DrawImageHexagon fills the hexagon and draws the picture over the band
// between its two vertical edges, which lies entirely inside the hexagon.
func (s *Surface) DrawImageHexagon(img render.Image, cx, cy, r float64) {
	w := math.Sqrt(3) * r
	s.FillHexagon(cx, cy, r, color.RGBA{40, 40, 40, 255})
	s.DrawImage(img, cx-w/2, cy-r/2, w, r, 1)
}

func (s *Surface) DrawText(str string, x, y float64, c color.Color) {
	s.begin()
	rl.DrawTextEx(s.font, str, rl.NewVector2(float32(x), float32(y)), s.fontSize, 1, colorToRL(c))
	s.end()
}

func (s *Surface) MeasureText(str string) (float64, float64) {
	v := rl.MeasureTextEx(s.font, str, s.fontSize, 1)
	return float64(v.X), float64(v.Y)
}

func (s *Surface) DrawCanvas(src render.Canvas, x, y float64) {
	c, ok := src.(*Surface)
	if !ok || c.target == nil {
		return
	}
	tex := c.target.Texture
	// Render textures are stored upside down.
	srcRec := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(tex.Width), float32(tex.Height))
	s.begin()
	rl.DrawTexturePro(tex, srcRec, dst, rl.NewVector2(0, 0), 0, rl.White)
	s.end()
}

// Backend creates render-texture canvases.
type Backend struct {
	Font     rl.Font
	FontSize float32
}

func (b *Backend) NewCanvas(w, h int) render.Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	target := rl.LoadRenderTexture(int32(w), int32(h))
	return &Surface{target: &target, w: w, h: h, font: b.Font, fontSize: b.FontSize}
}

// LoadAssets loads every file in paths as a texture.
func LoadAssets(paths map[string]string) (render.StaticAssets, error) {
	assets := make(render.StaticAssets, len(paths))
	for name, path := range paths {
		tex := rl.LoadTexture(path)
		if tex.ID == 0 {
			return nil, fmt.Errorf("image %q: cannot load %s", name, path)
		}
		assets[name] = Texture{tex}
	}
	return assets, nil
}

// colorToRL преобразует стандартный color.Color в rl.Color
func colorToRL(c color.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// Release frees the render texture.
func (s *Surface) Release() {
	if s.target != nil {
		rl.UnloadRenderTexture(*s.target)
		s.target = nil
	}
}
