package grid

import "image/color"

// Terrain is what a cell is made of. It colors the cell and decides what may
// be built on it.
type Terrain interface {
	Color() color.Color
	// Image names an asset drawn instead of the flat color; empty for none.
	Image() string
	CanPlace(item Item) bool
}

// TerrainUpdater is implemented by terrain that changes over time. It runs
// once per unpaused tick, before the cell's item.
type TerrainUpdater interface {
	UpdateCell(c *Cell, neighbors []Neighbor)
}

// Plain is a flat-colored terrain that accepts any item.
type Plain struct {
	Fill color.RGBA
}

func (p Plain) Color() color.Color { return p.Fill }

func (p Plain) Image() string { return "" }

func (p Plain) CanPlace(item Item) bool { return true }

// Cell is one grid slot. Cells live as long as their grid.
type Cell struct {
	X, Y    int
	item    Item
	terrain Terrain
	dirty   bool
	drawn   drawKey
}

type drawKey struct {
	valid   bool
	fill    color.Color
	terrain string
	item    string
}

// Item returns the hosted item, or nil.
func (c *Cell) Item() Item { return c.item }

// Empty reports whether the cell hosts nothing.
func (c *Cell) Empty() bool { return c.item == nil }

func (c *Cell) Terrain() Terrain { return c.terrain }

// CanPlace asks the terrain whether item may be placed here.
func (c *Cell) CanPlace(item Item) bool { return c.terrain.CanPlace(item) }

// MarkDirty schedules a redraw of this cell on the next render.
func (c *Cell) MarkDirty() { c.dirty = true }

// Neighbor is one adjacent cell as seen from an item's update.
type Neighbor struct {
	X, Y int
	Cell *Cell
	Item Item
}
