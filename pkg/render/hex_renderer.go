package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hexCorners returns the six corners of a pointy-top hexagon.
func hexCorners(cx, cy, r float64) [6][2]float64 {
	var pts [6][2]float64
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) + math.Pi/6
		pts[i] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

func hexPath(cx, cy, r float64) *vector.Path {
	path := &vector.Path{}
	for i, p := range hexCorners(cx, cy, r) {
		if i == 0 {
			path.MoveTo(float32(p[0]), float32(p[1]))
		} else {
			path.LineTo(float32(p[0]), float32(p[1]))
		}
	}
	path.Close()
	return path
}

// FillHexagon заливает гексагон одним цветом через DrawTriangles.
func (s *EbitenSurface) FillHexagon(cx, cy, r float64, c color.Color) {
	fill := toRGBA(c)
	s.fillVs, s.fillIs = hexPath(cx, cy, r).AppendVerticesAndIndicesForFilling(s.fillVs[:0], s.fillIs[:0])
	for i := range s.fillVs {
		s.fillVs[i].SrcX = 0
		s.fillVs[i].SrcY = 0
		s.fillVs[i].ColorR = float32(fill.R) / 255
		s.fillVs[i].ColorG = float32(fill.G) / 255
		s.fillVs[i].ColorB = float32(fill.B) / 255
		s.fillVs[i].ColorA = float32(fill.A) / 255
	}
	s.dst.DrawTriangles(s.fillVs, s.fillIs, fillImage(), &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// DrawImageHexagon натягивает картинку на гексагон: центр плюс шесть
// треугольников веером, UV берутся из описанного прямоугольника.
func (s *EbitenSurface) DrawImageHexagon(img Image, cx, cy, r float64) {
	src, ok := img.(*ebiten.Image)
	if !ok {
		return
	}
	b := src.Bounds()
	w := math.Sqrt(3) * r
	left, top := cx-w/2, cy-r
	uv := func(x, y float64) (float32, float32) {
		u := float64(b.Min.X) + (x-left)/w*float64(b.Dx())
		v := float64(b.Min.Y) + (y-top)/(2*r)*float64(b.Dy())
		return float32(u), float32(v)
	}

	s.fillVs = s.fillVs[:0]
	s.fillIs = s.fillIs[:0]
	su, sv := uv(cx, cy)
	s.fillVs = append(s.fillVs, ebiten.Vertex{DstX: float32(cx), DstY: float32(cy), SrcX: su, SrcY: sv, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1})
	for _, p := range hexCorners(cx, cy, r) {
		u, v := uv(p[0], p[1])
		s.fillVs = append(s.fillVs, ebiten.Vertex{DstX: float32(p[0]), DstY: float32(p[1]), SrcX: u, SrcY: v, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1})
	}
	for i := uint16(1); i <= 6; i++ {
		next := i%6 + 1
		s.fillIs = append(s.fillIs, 0, i, next)
	}
	s.dst.DrawTriangles(s.fillVs, s.fillIs, src, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		Filter:    ebiten.FilterLinear,
	})
}
