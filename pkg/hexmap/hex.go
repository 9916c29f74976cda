// pkg/hexmap/hex.go
package hexmap

import (
	"go-tile-sandbox/pkg/utils"
)

// Hex представляет гекс в осевых координатах (Q, R)
type Hex struct {
	Q, R int
}

// NeighborDirections defines the 6 possible directions from a hex, starting from East and going counter-clockwise.
var NeighborDirections = []Hex{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// ToPixel конвертирует гекс в пиксельные координаты центра (pointy top ориентация)
func (h Hex) ToPixel(hexSize float64) (x, y float64) {
	x = hexSize * (Sqrt3*float64(h.Q) + Sqrt3/2*float64(h.R))
	y = hexSize * (3.0 / 2.0 * float64(h.R))
	return
}

// PixelToHex конвертирует пиксельные координаты относительно центра гекса (0,0) в гекс.
func PixelToHex(x, y, hexSize float64) Hex {
	q := (Sqrt3/3*x - 1.0/3*y) / hexSize
	r := (2.0 / 3 * y) / hexSize
	return axialRound(q, r)
}

// AllPossibleNeighbors возвращает всех возможных соседей гекса
func (h Hex) AllPossibleNeighbors() []Hex {
	neighbors := make([]Hex, 0, len(NeighborDirections))
	for _, d := range NeighborDirections {
		neighbors = append(neighbors, h.Add(d))
	}
	return neighbors
}

// Add возвращает сумму двух гексов
func (h Hex) Add(other Hex) Hex {
	return Hex{
		Q: h.Q + other.Q,
		R: h.R + other.R,
	}
}

// Subtract возвращает разность двух гексов
func (h Hex) Subtract(other Hex) Hex {
	return Hex{
		Q: h.Q - other.Q,
		R: h.R - other.R,
	}
}

// Distance вычисляет расстояние между гексами
func (h Hex) Distance(to Hex) int {
	d := h.Subtract(to)
	return (utils.Abs(d.Q) + utils.Abs(d.R) + utils.Abs(d.Q+d.R)) / 2
}
