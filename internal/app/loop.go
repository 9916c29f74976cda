// internal/app/loop.go
package app

import (
	"math"
	"time"

	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/ui"
	"go-tile-sandbox/pkg/render"
)

// Input is everything the host collected since the previous frame.
type Input struct {
	MouseX, MouseY float64
	Moved          bool    // cursor moved
	Clicked        bool    // left click released without a drag
	DragDX, DragDY float64 // pan since the previous frame
	Wheel          float64 // positive zooms in
}

// Frame runs one tick. The order never changes: the clock advances (timers
// fire here), input is applied, the grid updates unless paused, the grid
// renders, then the overlay renders on top.
func (g *Game) Frame(dt time.Duration, in Input, screen render.Surface) {
	g.Step(dt, in)
	g.Draw(screen)
}

// Step is the simulation half of Frame. Hosts that separate update from
// draw call Step then Draw once per frame.
func (g *Game) Step(dt time.Duration, in Input) {
	if dt > 0 {
		g.clock.Advance(dt)
	}
	g.applyInput(in)
	if !g.Paused() {
		g.Grid.Update()
	}
	g.frames++
}

// Draw is the rendering half of Frame.
func (g *Game) Draw(screen render.Surface) {
	if sw, sh, ok := screenSize(screen); ok {
		g.screenW, g.screenH = sw, sh
		g.Grid.SetViewport(sw, sh)
	}
	screen.Clear(g.background)
	g.Grid.Render(screen)
	g.renderOverlay(screen)
}

func (g *Game) applyInput(in Input) {
	if g.menuOpen {
		g.mouseX, g.mouseY = in.MouseX, in.MouseY
		g.layoutMenu()
		if in.Clicked {
			g.clickMenu(in.MouseX, in.MouseY)
		}
		return
	}
	if in.Moved {
		g.HoverAt(in.MouseX, in.MouseY)
	}
	if in.DragDX != 0 || in.DragDY != 0 {
		g.Drag(in.DragDX, in.DragDY)
	}
	if in.Wheel != 0 {
		g.Zoom(in.Wheel, in.MouseX, in.MouseY)
	}
	if in.Clicked {
		if err := g.ClickAt(in.MouseX, in.MouseY); err != nil {
			g.log.Debug("click refused", "err", err)
		}
	}
}

// Drag pans the grid.
func (g *Game) Drag(dx, dy float64) { g.Grid.Pan(dx, dy) }

// Zoom scales the grid around (px, py) by ZoomStep per wheel notch.
func (g *Game) Zoom(notches, px, py float64) {
	step := g.cfg.Simulation.ZoomStep
	if step <= 1 {
		step = config.ZoomStep
	}
	g.Grid.ZoomAt(math.Pow(step, notches), px, py)
}

// SetMenu installs the shop menu.
func (g *Game) SetMenu(m *ui.Menu) { g.menu = m }

// Menu returns the shop menu, or nil.
func (g *Game) Menu() *ui.Menu { return g.menu }

// MenuOpen reports whether the shop menu is shown.
func (g *Game) MenuOpen() bool { return g.menuOpen }

// OpenMenu shows the shop and pauses the simulation.
func (g *Game) OpenMenu() {
	if g.menu == nil || g.menuOpen {
		return
	}
	g.menuOpen = true
	g.menuPaused = !g.Paused()
	g.overlay.SetTooltip("", 0, 0)
	g.layoutMenu()
	g.Pause()
}

// CloseMenu hides the shop. The simulation resumes unless it was already
// paused when the menu opened.
func (g *Game) CloseMenu() {
	if !g.menuOpen {
		return
	}
	g.menuOpen = false
	if g.menuPaused {
		g.menuPaused = false
		g.Resume()
	}
}

func (g *Game) layoutMenu() {
	g.menu.Layout(g.Econ, g.screenW, g.screenH)
}

// clickMenu handles a click while the menu is open. Any enabled entry closes
// the menu after it runs, like the Close entry does.
func (g *Game) clickMenu(px, py float64) {
	entry, ok := g.menu.EntryAt(px, py)
	if !ok {
		return
	}
	if entry.Target != nil {
		if err := g.TryBuy(entry.Target); err != nil {
			g.log.Debug("menu purchase refused", "entry", entry.Label, "err", err)
		}
	}
	g.CloseMenu()
}

func (g *Game) renderOverlay(screen render.Surface) {
	if bp := g.selected; bp != nil && !g.menuOpen {
		w, h := g.Grid.CellDims()
		g.overlay.SetPreview(&ui.Preview{
			Image:      bp.Image(),
			Cost:       bp.Cost(),
			Affordable: g.Econ.CanAfford(bp.Cost()),
			X:          g.mouseX,
			Y:          g.mouseY,
			Size:       math.Min(w, h),
		})
	} else {
		g.overlay.SetPreview(nil)
	}
	g.overlay.Render(screen, g.assets)

	if g.menuOpen {
		g.menu.Render(screen, g.mouseX, g.mouseY)
	}
}

func screenSize(s render.Surface) (float64, float64, bool) {
	c, ok := s.(interface{ Size() (int, int) })
	if !ok {
		return 0, 0, false
	}
	w, h := c.Size()
	return float64(w), float64(h), true
}

var _ ui.Shop = (*economy.Economy)(nil)
