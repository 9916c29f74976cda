// Package grid holds the tile grid: cells, the items placed on them, the
// square and hex topologies, and incremental rendering.
package grid

import (
	"fmt"

	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/pkg/render"
	"go-tile-sandbox/pkg/utils"
)

// Config describes a grid at construction time.
type Config struct {
	Rows, Cols int
	CellSize   float64
	MinScale   float64
	MaxScale   float64
	Topology   Topology
	Terrain    Terrain // initial terrain of every cell
}

// Grid is a cols x rows array of cells indexed [x][y].
type Grid struct {
	rows, cols int
	cellSize   float64
	scale      float64
	minScale   float64
	maxScale   float64
	topo       Topology
	cells      [][]*Cell

	offsetX, offsetY float64
	viewW, viewH     float64
	dirty            bool

	backend render.Backend
	assets  render.Assets
	canvas  render.Canvas
	events  *event.Dispatcher
}

// New builds a grid with every cell set to cfg.Terrain.
func New(cfg Config, backend render.Backend, assets render.Assets, events *event.Dispatcher) (*Grid, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("grid: invalid size %dx%d", cfg.Cols, cfg.Rows)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("grid: invalid cell size %v", cfg.CellSize)
	}
	if cfg.Topology == nil {
		cfg.Topology = Square{}
	}
	if cfg.Terrain == nil {
		cfg.Terrain = Plain{}
	}
	if cfg.MinScale <= 0 {
		cfg.MinScale = 0.25
	}
	if cfg.MaxScale < cfg.MinScale {
		cfg.MaxScale = 4
	}
	if assets == nil {
		assets = render.StaticAssets{}
	}
	g := &Grid{
		rows:     cfg.Rows,
		cols:     cfg.Cols,
		cellSize: cfg.CellSize,
		scale:    utils.Clamp(1, cfg.MinScale, cfg.MaxScale),
		minScale: cfg.MinScale,
		maxScale: cfg.MaxScale,
		topo:     cfg.Topology,
		backend:  backend,
		assets:   assets,
		events:   events,
		dirty:    true,
	}
	g.cells = make([][]*Cell, cfg.Cols)
	for x := range g.cells {
		g.cells[x] = make([]*Cell, cfg.Rows)
		for y := range g.cells[x] {
			g.cells[x][y] = &Cell{X: x, Y: y, terrain: cfg.Terrain, dirty: true}
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Topology() Topology { return g.topo }

// Inside reports whether (x, y) is a valid cell position.
func (g *Grid) Inside(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// CellAt returns the cell at (x, y). The position must be inside the grid.
func (g *Grid) CellAt(x, y int) *Cell {
	return g.cells[x][y]
}

// Each visits cells column by column.
func (g *Grid) Each(fn func(c *Cell)) {
	for x := 0; x < g.cols; x++ {
		for y := 0; y < g.rows; y++ {
			fn(g.cells[x][y])
		}
	}
}

// SetTerrainAt swaps the terrain of a cell in place.
func (g *Grid) SetTerrainAt(x, y int, t Terrain) error {
	if !g.Inside(x, y) {
		return fmt.Errorf("set terrain (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	c := g.cells[x][y]
	c.terrain = t
	c.dirty = true
	return nil
}

// Place puts item on (x, y), replacing whatever was there. No cost or
// placement checks happen here. An item already on the grid moves. The
// replaced occupant is detached, not destroyed.
func (g *Grid) Place(item Item, x, y int) error {
	if !g.Inside(x, y) {
		return fmt.Errorf("place (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	b := item.base()
	b.bind(item, "")
	if b.state == Destroyed {
		return fmt.Errorf("place %s: %w", b.Kind(), ErrItemDestroyed)
	}
	if b.state == Placed && b.grid != nil {
		if old := b.grid.cells[b.x][b.y]; old.item != nil && old.item.base() == b {
			old.item = nil
			old.dirty = true
		}
	}

	c := g.cells[x][y]
	if prev := c.item; prev != nil && prev.base() != b {
		pb := prev.base()
		pb.grid = nil
		pb.state = Detached
	}
	c.item = item
	c.dirty = true
	b.x, b.y = x, y
	b.grid = g
	b.state = Placed

	g.events.Dispatch(event.Event{
		Type: event.ItemPlaced,
		Data: event.ItemInfo{ID: b.id, Kind: b.Kind(), X: x, Y: y},
	})
	return nil
}

// Remove empties (x, y) and returns what was there. The item is detached,
// not destroyed; use BaseItem.Destroy for that.
func (g *Grid) Remove(x, y int) Item {
	if !g.Inside(x, y) {
		return nil
	}
	c := g.cells[x][y]
	item := c.item
	if item == nil {
		return nil
	}
	c.item = nil
	c.dirty = true
	b := item.base()
	if b.state == Placed {
		b.state = Detached
		b.grid = nil
	}
	return item
}

// NeighborPositionsAt lists in-bounds adjacent positions of (x, y).
func (g *Grid) NeighborPositionsAt(x, y int) []Pos {
	adj := g.topo.Adjacent(x, y)
	out := adj[:0]
	for _, p := range adj {
		if g.Inside(p.X, p.Y) && (p.X != x || p.Y != y) {
			out = append(out, p)
		}
	}
	return out
}

// NeighborsAt returns the adjacent cells of (x, y) with their items.
func (g *Grid) NeighborsAt(x, y int) []Neighbor {
	positions := g.NeighborPositionsAt(x, y)
	out := make([]Neighbor, len(positions))
	for i, p := range positions {
		c := g.cells[p.X][p.Y]
		out[i] = Neighbor{X: p.X, Y: p.Y, Cell: c, Item: c.item}
	}
	return out
}

// Update runs one simulation step: terrain hooks and item updates, column by
// column, top to bottom. An item placed or moved during the scan onto a cell
// later in the order is updated in the same step; destroyed items are not.
func (g *Grid) Update() {
	for x := 0; x < g.cols; x++ {
		for y := 0; y < g.rows; y++ {
			c := g.cells[x][y]
			var neighbors []Neighbor
			if u, ok := c.terrain.(TerrainUpdater); ok {
				neighbors = g.NeighborsAt(x, y)
				u.UpdateCell(c, neighbors)
			}
			item := c.item
			if item == nil || item.base().state != Placed {
				continue
			}
			if neighbors == nil {
				neighbors = g.NeighborsAt(x, y)
			} else {
				// Terrain hooks may have changed neighbouring items.
				for i := range neighbors {
					neighbors[i].Item = neighbors[i].Cell.item
				}
			}
			item.Update(neighbors)
		}
	}
}
