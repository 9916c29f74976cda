package hexmap

// Offset is a column/row position in an "odd-r" layout: pointy-top hexes
// where every odd row is pushed right by half a hex.
type Offset struct {
	Col, Row int
}

// ToAxial converts odd-r offset coordinates to axial.
func (o Offset) ToAxial() Hex {
	q := o.Col - (o.Row-(o.Row&1))/2
	return Hex{Q: q, R: o.Row}
}

// ToOffset converts axial coordinates to odd-r offset.
func (h Hex) ToOffset() Offset {
	col := h.Q + (h.R-(h.R&1))/2
	return Offset{Col: col, Row: h.R}
}

// Neighbors returns the six offset positions around o. Even rows lean left,
// odd rows lean right. Bounds are the caller's problem.
func (o Offset) Neighbors() []Offset {
	axial := o.ToAxial().AllPossibleNeighbors()
	out := make([]Offset, len(axial))
	for i, h := range axial {
		out[i] = h.ToOffset()
	}
	return out
}

// PixelToOffset maps a point, measured from the centre of cell (0,0), to the
// odd-r cell containing it. size is the hex corner radius.
func PixelToOffset(x, y, size float64) Offset {
	return PixelToHex(x, y, size).ToOffset()
}

// OffsetCenter returns the centre of cell o relative to the centre of cell (0,0).
func OffsetCenter(o Offset, size float64) (x, y float64) {
	return o.ToAxial().ToPixel(size)
}
