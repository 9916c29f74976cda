package grid

import (
	"image/color"
	"math"

	"go-tile-sandbox/pkg/render"
	"go-tile-sandbox/pkg/utils"
)

// CellDims returns the current on-screen size of one cell.
func (g *Grid) CellDims() (w, h float64) {
	return g.topo.CellDims(g.cellSize * g.scale)
}

// Size returns the on-screen size of the whole grid.
func (g *Grid) Size() (w, h float64) {
	cw, ch := g.CellDims()
	return g.topo.Extent(g.cols, g.rows, cw, ch)
}

// SetViewport tells the grid how large the screen is; the grid is centred in
// it and then shifted by the pan offset.
func (g *Grid) SetViewport(w, h float64) {
	if g.viewW == w && g.viewH == h {
		return
	}
	g.viewW, g.viewH = w, h
	g.dirty = true
}

// Origin returns the screen position of the grid's top-left corner.
func (g *Grid) Origin() (x, y float64) {
	w, h := g.Size()
	return g.viewW/2 - w/2 + g.offsetX, g.viewH/2 - h/2 + g.offsetY
}

// Offset returns the pan offset.
func (g *Grid) Offset() (x, y float64) { return g.offsetX, g.offsetY }

// Pan shifts the grid by (dx, dy) pixels.
func (g *Grid) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	g.offsetX += dx
	g.offsetY += dy
	g.dirty = true
}

func (g *Grid) Scale() float64 { return g.scale }

// SetScale sets the zoom factor, clamped to the configured range.
func (g *Grid) SetScale(s float64) {
	s = utils.Clamp(s, g.minScale, g.maxScale)
	if s == g.scale {
		return
	}
	g.scale = s
	g.dirty = true
}

// ZoomAt multiplies the scale by factor keeping the grid point under
// (px, py) in place.
func (g *Grid) ZoomAt(factor, px, py float64) {
	old := g.scale
	ox, oy := g.Origin()
	g.SetScale(old * factor)
	if g.scale == old {
		return
	}
	k := g.scale / old
	nx := px - (px-ox)*k
	ny := py - (py-oy)*k
	w, h := g.Size()
	g.offsetX = nx - (g.viewW/2 - w/2)
	g.offsetY = ny - (g.viewH/2 - h/2)
}

// ConvertCoord maps a screen pixel to a cell position. The result may be
// outside the grid.
func (g *Grid) ConvertCoord(px, py float64) (x, y int) {
	ox, oy := g.Origin()
	w, h := g.CellDims()
	return g.topo.PixelToCell(px-ox, py-oy, w, h)
}

// CellAtPx returns the cell under a screen pixel, if any.
func (g *Grid) CellAtPx(px, py float64) (*Cell, bool) {
	x, y := g.ConvertCoord(px, py)
	if !g.Inside(x, y) {
		return nil, false
	}
	return g.cells[x][y], true
}

// CellCenter returns the screen position of the centre of (x, y).
func (g *Grid) CellCenter(x, y int) (float64, float64) {
	ox, oy := g.Origin()
	w, h := g.CellDims()
	cx, cy := g.topo.CellCenter(x, y, w, h)
	return ox + cx, oy + cy
}

// MarkDirty forces a full redraw on the next Render.
func (g *Grid) MarkDirty() { g.dirty = true }

// Render redraws changed cells into the grid canvas and copies the canvas to
// screen once. A cell is redrawn when it was marked dirty, when the picture it
// should show changed, or when the whole grid is dirty.
func (g *Grid) Render(screen render.Surface) {
	if g.backend == nil {
		return
	}
	w, h := g.Size()
	cw, ch := int(math.Ceil(w)), int(math.Ceil(h))
	if g.canvas == nil {
		g.canvas = g.backend.NewCanvas(cw, ch)
		g.dirty = true
	} else if pw, ph := g.canvas.Size(); pw != cw || ph != ch {
		if r, ok := g.canvas.(render.Releaser); ok {
			r.Release()
		}
		g.canvas = g.backend.NewCanvas(cw, ch)
		g.dirty = true
	}
	if g.dirty {
		g.canvas.Clear(color.Transparent)
	}

	cellW, cellH := g.CellDims()
	for x := 0; x < g.cols; x++ {
		for y := 0; y < g.rows; y++ {
			c := g.cells[x][y]
			key := g.drawKeyFor(c)
			if !g.dirty && !c.dirty && key == c.drawn {
				continue
			}
			g.drawCell(c, key, cellW, cellH)
			c.drawn = key
			c.dirty = false
		}
	}
	g.dirty = false

	ox, oy := g.Origin()
	screen.DrawCanvas(g.canvas, ox, oy)
}

func (g *Grid) drawKeyFor(c *Cell) drawKey {
	k := drawKey{valid: true, fill: c.terrain.Color(), terrain: c.terrain.Image()}
	if c.item != nil {
		k.item = c.item.Image()
	}
	return k
}

func (g *Grid) drawCell(c *Cell, k drawKey, w, h float64) {
	cx, cy := g.topo.CellCenter(c.X, c.Y, w, h)
	var img render.Image
	name := k.item
	if name == "" {
		name = k.terrain
	}
	if name != "" {
		if found, ok := g.assets.ImageFor(name); ok {
			img = found
		}
	}
	g.topo.DrawCell(g.canvas, cx, cy, w, h, k.fill, img)
}
