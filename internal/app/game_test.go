package app

import (
	"errors"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/internal/grid"
	"go-tile-sandbox/internal/ui"
	"go-tile-sandbox/pkg/render"
)

type crate struct {
	grid.BaseItem
	price   economy.Cost
	clicks  int
	placed  int
	updates int
}

func (c *crate) Cost() economy.Cost { return c.price }

func (c *crate) Info() string { return "crate" }

func (c *crate) Image() string { return "crate" }

func (c *crate) OnClick() { c.clicks++ }

func (c *crate) OnPlace() { c.placed++ }

func (c *crate) Update([]grid.Neighbor) { c.updates++ }

type blocked struct{}

func (blocked) Color() color.Color { return color.Black }

func (blocked) Image() string { return "" }

func (blocked) CanPlace(grid.Item) bool { return false }

func newTestGame(t *testing.T) (*Game, *render.Recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = 400, 300
	cfg.Grid = config.Grid{Topology: "square", Rows: 4, Cols: 4, CellSize: 50, MinScale: 0.5, MaxScale: 2}
	cfg.Resources = []config.Resource{{Name: "gold", Glyph: "G", Initial: 10}}
	assets := render.StaticAssets{"crate": render.Sprite{Name: "crate", W: 8, H: 8}}
	g, err := New(cfg, &render.RecorderBackend{}, assets,
		WithSeed(1),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, render.NewRecorder(400, 300)
}

func crateBlueprint(price float64, built *[]*crate) *grid.Blueprint {
	return grid.NewBlueprint("crate", func() grid.Item {
		c := grid.NewItem("crate", &crate{price: economy.Cost{"gold": price}})
		if built != nil {
			*built = append(*built, c)
		}
		return c
	})
}

func gold(g *Game) float64 { return g.Econ.Ledger().Amount("gold") }

func TestClickBuildsSelectedItem(t *testing.T) {
	g, _ := newTestGame(t)
	var built []*crate
	bp := crateBlueprint(3, &built)
	if err := g.TryBuy(bp); err != nil {
		t.Fatalf("TryBuy: %v", err)
	}
	if g.Selected() != bp {
		t.Fatalf("blueprint not selected")
	}

	px, py := g.Grid.CellCenter(1, 2)
	if err := g.ClickAt(px, py); err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	item := g.Grid.CellAt(1, 2).Item()
	if item == nil || len(built) != 2 || item != grid.Item(built[1]) {
		t.Fatalf("item not placed: %v (built %d)", item, len(built))
	}
	c := built[1]
	if c.placed != 1 || gold(g) != 7 {
		t.Fatalf("placed=%d gold=%v", c.placed, gold(g))
	}

	// a second click goes to the item and costs nothing
	if err := g.ClickAt(px, py); err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if c.clicks != 1 || gold(g) != 7 {
		t.Fatalf("clicks=%d gold=%v", c.clicks, gold(g))
	}
}

func TestClickUnaffordable(t *testing.T) {
	g, _ := newTestGame(t)
	var failures []event.PurchaseFailure
	g.Events.Subscribe(event.PurchaseFailed, event.ListenerFunc(func(e event.Event) {
		failures = append(failures, e.Data.(event.PurchaseFailure))
	}))

	g.Select(crateBlueprint(20, nil))
	px, py := g.Grid.CellCenter(0, 0)
	err := g.ClickAt(px, py)
	if !errors.Is(err, economy.ErrInsufficientFunds) {
		t.Fatalf("err = %v", err)
	}
	if !g.Grid.CellAt(0, 0).Empty() || gold(g) != 10 {
		t.Fatalf("state changed on failed purchase")
	}
	msgs := g.Overlay().Messages()
	if len(msgs) != 1 || msgs[0] != "You can't afford this (G 20)" {
		t.Fatalf("messages = %v", msgs)
	}
	if len(failures) != 1 || failures[0].Name != "crate" {
		t.Fatalf("failures = %+v", failures)
	}
}

func TestClickIllegalPlacement(t *testing.T) {
	g, _ := newTestGame(t)
	if err := g.Grid.SetTerrainAt(2, 2, blocked{}); err != nil {
		t.Fatal(err)
	}
	g.Select(crateBlueprint(1, nil))
	px, py := g.Grid.CellCenter(2, 2)
	if err := g.ClickAt(px, py); !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("err = %v", err)
	}
	if gold(g) != 10 {
		t.Fatalf("gold = %v, nothing should be spent", gold(g))
	}
	if msgs := g.Overlay().Messages(); len(msgs) != 1 || msgs[0] != "This can't be placed here" {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestClickOutsideClearsSelection(t *testing.T) {
	g, _ := newTestGame(t)
	g.Select(crateBlueprint(1, nil))
	if err := g.ClickAt(-500, -500); err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if g.Selected() != nil {
		t.Fatalf("selection kept after clicking outside the grid")
	}
}

func TestFrameSkipsUpdateWhilePaused(t *testing.T) {
	g, screen := newTestGame(t)
	c := grid.NewItem("crate", &crate{})
	if err := g.Grid.Place(c, 0, 0); err != nil {
		t.Fatal(err)
	}

	g.Frame(16*time.Millisecond, Input{}, screen)
	g.Pause()
	g.Frame(16*time.Millisecond, Input{}, screen)
	g.Frame(16*time.Millisecond, Input{}, screen)
	g.Resume()
	g.Frame(16*time.Millisecond, Input{}, screen)

	if c.updates != 2 {
		t.Fatalf("updates = %d, want 2", c.updates)
	}
	// render and overlay still run while paused
	if n := screen.Count("canvas"); n != 4 {
		t.Fatalf("grid blits = %d, want 4", n)
	}
	if n := screen.Count("clear"); n != 4 {
		t.Fatalf("clears = %d, want 4", n)
	}
	if g.Frames() != 4 {
		t.Fatalf("frames = %d", g.Frames())
	}
}

func TestInputAppliesWhilePaused(t *testing.T) {
	g, screen := newTestGame(t)
	c := grid.NewItem("crate", &crate{price: economy.Cost{"gold": 1}})
	if err := g.Grid.Place(c, 1, 1); err != nil {
		t.Fatal(err)
	}
	g.Pause()

	px, py := g.Grid.CellCenter(1, 1)
	g.Frame(16*time.Millisecond, Input{MouseX: px, MouseY: py, Moved: true}, screen)
	if g.Overlay().Tooltip() != "crate" {
		t.Fatalf("tooltip = %q, want crate", g.Overlay().Tooltip())
	}

	g.Frame(16*time.Millisecond, Input{MouseX: px, MouseY: py, Clicked: true}, screen)
	if c.clicks != 1 {
		t.Fatalf("clicks = %d, want 1", c.clicks)
	}

	ox, oy := g.Grid.Offset()
	g.Frame(16*time.Millisecond, Input{MouseX: px, MouseY: py, DragDX: 10, DragDY: -5}, screen)
	if nx, ny := g.Grid.Offset(); nx != ox+10 || ny != oy-5 {
		t.Fatalf("offset = (%v,%v), want (%v,%v)", nx, ny, ox+10, oy-5)
	}

	if c.updates != 0 || !g.Paused() {
		t.Fatalf("updates = %d paused = %v", c.updates, g.Paused())
	}
}

func TestHarvestersFollowFrameTime(t *testing.T) {
	g, screen := newTestGame(t)
	if _, err := g.Econ.DefineHarvester("gold", func() float64 { return 1 }, 100*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	g.Frame(100*time.Millisecond, Input{}, screen)
	if gold(g) != 11 {
		t.Fatalf("gold = %v, want 11", gold(g))
	}
	g.Pause()
	g.Frame(time.Second, Input{}, screen)
	if gold(g) != 11 {
		t.Fatalf("gold = %v while paused", gold(g))
	}
	g.Resume()
	g.Frame(100*time.Millisecond, Input{}, screen)
	if gold(g) != 12 {
		t.Fatalf("gold = %v, want 12", gold(g))
	}
}

func TestMenuPausesAndBuys(t *testing.T) {
	g, screen := newTestGame(t)
	bought := false
	bonus := &economy.Bonus{Name: "Map", Price: economy.Cost{"gold": 4}, Effect: func() { bought = true }}
	g.SetMenu(ui.NewMenu("Shop", nil, nil, ui.Entry{Label: "Buy map", Target: bonus}))

	g.OpenMenu()
	if !g.MenuOpen() || !g.Paused() {
		t.Fatalf("menu should be open and the game paused")
	}

	// 400x300 screen, one entry plus Close: the first button spans
	// x 50..350, y 120..160.
	g.Frame(0, Input{MouseX: 100, MouseY: 130, Clicked: true}, screen)
	if !bought || gold(g) != 6 || !g.Econ.HasBonus("Map") {
		t.Fatalf("bonus not bought: bought=%v gold=%v", bought, gold(g))
	}
	if g.MenuOpen() || g.Paused() {
		t.Fatalf("menu should close and resume")
	}

	// a game paused before the menu opened stays paused after it closes
	g.Pause()
	g.OpenMenu()
	g.CloseMenu()
	if !g.Paused() {
		t.Fatalf("closing the menu resumed a game the player paused")
	}
}

func TestHoverShowsItemInfo(t *testing.T) {
	g, _ := newTestGame(t)
	if err := g.Grid.Place(grid.NewItem("crate", &crate{}), 3, 3); err != nil {
		t.Fatal(err)
	}
	px, py := g.Grid.CellCenter(3, 3)
	g.HoverAt(px, py)
	if got := g.Overlay().Tooltip(); got != "crate" {
		t.Fatalf("tooltip = %q", got)
	}
	px, py = g.Grid.CellCenter(0, 0)
	g.HoverAt(px, py)
	if got := g.Overlay().Tooltip(); got != "" {
		t.Fatalf("tooltip = %q over an empty cell", got)
	}
}

func TestPreviewFollowsSelection(t *testing.T) {
	g, screen := newTestGame(t)
	g.Select(crateBlueprint(50, nil))
	g.Frame(0, Input{MouseX: 20, MouseY: 20, Moved: true}, screen)

	var preview *render.Op
	for i := range screen.Ops {
		if screen.Ops[i].Kind == "image" {
			preview = &screen.Ops[i]
		}
	}
	if preview == nil {
		t.Fatalf("no preview drawn")
	}
	if preview.Alpha != 0.4 {
		t.Fatalf("alpha = %v, want 0.4 for an unaffordable item", preview.Alpha)
	}
}

func TestDragAndZoom(t *testing.T) {
	g, screen := newTestGame(t)
	g.Frame(0, Input{DragDX: 10, DragDY: -5}, screen)
	if x, y := g.Grid.Offset(); x != 10 || y != -5 {
		t.Fatalf("offset = %v,%v", x, y)
	}
	g.Zoom(1, 200, 150)
	if s := g.Grid.Scale(); s < 1.0999 || s > 1.1001 {
		t.Fatalf("scale = %v", s)
	}
	g.Zoom(20, 200, 150)
	if s := g.Grid.Scale(); s != 2 {
		t.Fatalf("scale = %v, want clamp at 2", s)
	}
}
