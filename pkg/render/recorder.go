package render

import (
	"image"
	"image/color"
	"unicode/utf8"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string // clear, rect, hexagon, image, image-hexagon, text, canvas
	X, Y  float64
	W, H  float64
	Alpha float64
	Color color.Color
	Text  string
	Image Image
}

// Recorder is a Canvas that records calls instead of drawing. Used by tests
// and the headless runner.
type Recorder struct {
	W, H      int
	CharWidth float64
	LineH     float64
	Ops       []Op
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, CharWidth: 7, LineH: 16}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillHexagon(cx, cy, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "hexagon", X: cx, Y: cy, W: radius, Color: c})
}

func (r *Recorder) DrawImage(img Image, x, y, w, h, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "image", X: x, Y: y, W: w, H: h, Alpha: alpha, Image: img})
}

func (r *Recorder) DrawImageHexagon(img Image, cx, cy, radius float64) {
	r.Ops = append(r.Ops, Op{Kind: "image-hexagon", X: cx, Y: cy, W: radius, Alpha: 1, Image: img})
}

func (r *Recorder) DrawText(s string, x, y float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Text: s, Color: c})
}

func (r *Recorder) MeasureText(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * r.CharWidth, r.LineH
}

func (r *Recorder) DrawCanvas(src Canvas, x, y float64) {
	w, h := src.Size()
	r.Ops = append(r.Ops, Op{Kind: "canvas", X: x, Y: y, W: float64(w), H: float64(h)})
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the recorded strings in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset drops recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// RecorderBackend hands out Recorders and remembers them.
type RecorderBackend struct {
	Canvases []*Recorder
}

func (b *RecorderBackend) NewCanvas(w, h int) Canvas {
	c := NewRecorder(w, h)
	b.Canvases = append(b.Canvases, c)
	return c
}

// Last returns the most recently created canvas.
func (b *RecorderBackend) Last() *Recorder {
	if len(b.Canvases) == 0 {
		return nil
	}
	return b.Canvases[len(b.Canvases)-1]
}

// Sprite is a named placeholder image for headless use.
type Sprite struct {
	Name string
	W, H int
}

func (s Sprite) Bounds() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }
