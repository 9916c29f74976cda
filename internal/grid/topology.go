package grid

import (
	"image/color"
	"math"

	"go-tile-sandbox/pkg/hexmap"
	"go-tile-sandbox/pkg/render"
)

// Pos is a column/row cell position.
type Pos struct {
	X, Y int
}

// Topology decides cell shape, adjacency and pixel mapping. All pixel values
// are relative to the grid's top-left corner.
type Topology interface {
	Name() string
	// CellDims returns the bounding box of one cell for a nominal cell size.
	CellDims(cellSize float64) (w, h float64)
	// Extent returns the bounding box of the whole grid.
	Extent(cols, rows int, w, h float64) (float64, float64)
	CellCenter(x, y int, w, h float64) (float64, float64)
	PixelToCell(px, py, w, h float64) (x, y int)
	// Adjacent lists candidate neighbour positions, possibly out of bounds.
	Adjacent(x, y int) []Pos
	DrawCell(s render.Surface, cx, cy, w, h float64, fill color.Color, img render.Image)
}

// Square is a plain rectangular layout with 8-way adjacency.
type Square struct{}

var squareOffsets = []Pos{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (Square) Name() string { return "square" }

func (Square) CellDims(cellSize float64) (float64, float64) { return cellSize, cellSize }

func (Square) Extent(cols, rows int, w, h float64) (float64, float64) {
	return float64(cols) * w, float64(rows) * h
}

func (Square) CellCenter(x, y int, w, h float64) (float64, float64) {
	return float64(x)*w + w/2, float64(y)*h + h/2
}

func (Square) PixelToCell(px, py, w, h float64) (int, int) {
	return int(math.Floor(px / w)), int(math.Floor(py / h))
}

func (Square) Adjacent(x, y int) []Pos {
	out := make([]Pos, len(squareOffsets))
	for i, d := range squareOffsets {
		out[i] = Pos{x + d.X, y + d.Y}
	}
	return out
}

func (Square) DrawCell(s render.Surface, cx, cy, w, h float64, fill color.Color, img render.Image) {
	s.FillRect(cx-w/2, cy-h/2, w, h, fill)
	if img != nil {
		s.DrawImage(img, cx-w/2, cy-h/2, w, h, 1)
	}
}

// Hex is a pointy-top layout in odd-r offset coordinates: odd rows are
// shifted right by half a cell.
type Hex struct{}

func (Hex) Name() string { return "hex" }

// CellDims: the corner radius is half the cell size, so the cell is
// cellSize tall and √3/2 of that wide.
func (Hex) CellDims(cellSize float64) (float64, float64) {
	r := cellSize / 2
	return hexmap.Sqrt3 * r, 2 * r
}

func (Hex) Extent(cols, rows int, w, h float64) (float64, float64) {
	width := float64(cols) * w
	if rows > 1 {
		width += w / 2
	}
	return width, float64(rows-1)*h*3/4 + h
}

func (Hex) CellCenter(x, y int, w, h float64) (float64, float64) {
	cx, cy := hexmap.OffsetCenter(hexmap.Offset{Col: x, Row: y}, h/2)
	return cx + w/2, cy + h/2
}

func (Hex) PixelToCell(px, py, w, h float64) (int, int) {
	o := hexmap.PixelToOffset(px-w/2, py-h/2, h/2)
	return o.Col, o.Row
}

func (Hex) Adjacent(x, y int) []Pos {
	ns := hexmap.Offset{Col: x, Row: y}.Neighbors()
	out := make([]Pos, len(ns))
	for i, n := range ns {
		out[i] = Pos{n.Col, n.Row}
	}
	return out
}

func (Hex) DrawCell(s render.Surface, cx, cy, w, h float64, fill color.Color, img render.Image) {
	s.FillHexagon(cx, cy, h/2, fill)
	if img != nil {
		s.DrawImageHexagon(img, cx, cy, h/2)
	}
}

// TopologyByName maps a config value to a Topology.
func TopologyByName(name string) (Topology, bool) {
	switch name {
	case "square", "":
		return Square{}, true
	case "hex":
		return Hex{}, true
	}
	return nil, false
}
