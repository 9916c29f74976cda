package render

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const textWidthCacheSize = 512

// TextRenderer holds a font face and caches string widths; the overlay
// measures the same labels every frame.
type TextRenderer struct {
	face       font.Face
	ascent     int
	lineHeight int
	widths     *lru.Cache[string, float64]
}

// NewTextRenderer loads a TrueType font. An empty path uses Go Regular.
func NewTextRenderer(path string, size float64) (*TextRenderer, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	cache, err := lru.New[string, float64](textWidthCacheSize)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &TextRenderer{
		face:       face,
		ascent:     m.Ascent.Ceil(),
		lineHeight: m.Height.Ceil(),
		widths:     cache,
	}, nil
}

// Width returns the advance width of s in pixels.
func (t *TextRenderer) Width(s string) float64 {
	if w, ok := t.widths.Get(s); ok {
		return w
	}
	b := text.BoundString(t.face, s)
	w := float64(b.Max.X - b.Min.X)
	t.widths.Add(s, w)
	return w
}

// LineHeight returns the face's line height in pixels.
func (t *TextRenderer) LineHeight() int { return t.lineHeight }
