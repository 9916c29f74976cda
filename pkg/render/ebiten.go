package render

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	fillOnce sync.Once
	fillImg  *ebiten.Image
)

func fillImage() *ebiten.Image {
	fillOnce.Do(func() {
		fillImg = ebiten.NewImage(1, 1)
		fillImg.Fill(color.White)
	})
	return fillImg
}

// EbitenSurface draws onto an *ebiten.Image.
type EbitenSurface struct {
	dst    *ebiten.Image
	text   *TextRenderer
	fillVs []ebiten.Vertex
	fillIs []uint16
}

// NewEbitenSurface wraps dst. The same surface can be pointed at a new
// target every frame with Retarget.
func NewEbitenSurface(dst *ebiten.Image, tr *TextRenderer) *EbitenSurface {
	return &EbitenSurface{
		dst:    dst,
		text:   tr,
		fillVs: make([]ebiten.Vertex, 0, 18),
		fillIs: make([]uint16, 0, 18),
	}
}

// Retarget switches the destination image.
func (s *EbitenSurface) Retarget(dst *ebiten.Image) { s.dst = dst }

// Target returns the destination image.
func (s *EbitenSurface) Target() *ebiten.Image { return s.dst }

func (s *EbitenSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *EbitenSurface) DrawImage(img Image, x, y, w, h, alpha float64) {
	src, ok := img.(*ebiten.Image)
	if !ok {
		return
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(src, op)
}

func (s *EbitenSurface) DrawText(str string, x, y float64, c color.Color) {
	if s.text == nil {
		return
	}
	text.Draw(s.dst, str, s.text.face, int(x), int(y)+s.text.ascent, c)
}

func (s *EbitenSurface) MeasureText(str string) (float64, float64) {
	if s.text == nil {
		return 0, 0
	}
	return s.text.Width(str), float64(s.text.lineHeight)
}

func (s *EbitenSurface) DrawCanvas(src Canvas, x, y float64) {
	es, ok := src.(*EbitenSurface)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(es.dst, op)
}

// EbitenBackend creates ebiten off-screen canvases.
type EbitenBackend struct {
	Text *TextRenderer
}

func (b *EbitenBackend) NewCanvas(w, h int) Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return NewEbitenSurface(ebiten.NewImage(w, h), b.Text)
}

// Release frees the destination image.
func (s *EbitenSurface) Release() {
	s.dst.Deallocate()
}
