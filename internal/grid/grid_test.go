package grid

import (
	"errors"
	"image/color"
	"testing"

	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/pkg/render"
)

type token struct {
	BaseItem
	image     string
	updates   int
	destroyed int
	onUpdate  func(p *token, ns []Neighbor)
}

func (p *token) Cost() economy.Cost { return nil }

func (p *token) Info() string { return "token" }

func (p *token) Image() string { return p.image }

func (p *token) OnClick() {}

func (p *token) OnDestroy() { p.destroyed++ }

func (p *token) Update(ns []Neighbor) {
	p.updates++
	if p.onUpdate != nil {
		p.onUpdate(p, ns)
	}
}

func newToken() *token { return NewItem("token", &token{image: "token"}) }

func newTestGrid(t *testing.T, topo Topology, cols, rows int) (*Grid, *render.RecorderBackend) {
	t.Helper()
	backend := &render.RecorderBackend{}
	g, err := New(Config{
		Rows:     rows,
		Cols:     cols,
		CellSize: 80,
		Topology: topo,
		Terrain:  Plain{Fill: color.RGBA{247, 245, 165, 255}},
	}, backend, nil, event.NewDispatcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.SetViewport(1200, 900)
	return g, backend
}

func TestSquareNeighborCounts(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 10, 10)
	cases := []struct {
		x, y, want int
	}{
		{0, 0, 3}, {9, 9, 3}, {0, 9, 3},
		{5, 0, 5}, {0, 5, 5}, {9, 4, 5},
		{5, 5, 8}, {1, 1, 8},
	}
	for _, tc := range cases {
		got := g.NeighborPositionsAt(tc.x, tc.y)
		if len(got) != tc.want {
			t.Errorf("(%d,%d): %d neighbors, want %d: %v", tc.x, tc.y, len(got), tc.want, got)
		}
		for _, p := range got {
			if p.X == tc.x && p.Y == tc.y {
				t.Errorf("(%d,%d) lists itself", tc.x, tc.y)
			}
			if !g.Inside(p.X, p.Y) {
				t.Errorf("(%d,%d) lists out-of-bounds %v", tc.x, tc.y, p)
			}
		}
	}
}

func TestHexNeighborCounts(t *testing.T) {
	g, _ := newTestGrid(t, Hex{}, 10, 10)
	cases := []struct {
		x, y, want int
	}{
		{5, 5, 6}, {4, 4, 6},
		{0, 0, 2},
		{9, 1, 3},
		{0, 1, 5},
		{9, 0, 3},
	}
	for _, tc := range cases {
		if got := len(g.NeighborPositionsAt(tc.x, tc.y)); got != tc.want {
			t.Errorf("(%d,%d): %d neighbors, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestHexNeighborsAreMutual(t *testing.T) {
	g, _ := newTestGrid(t, Hex{}, 7, 7)
	for x := 0; x < 7; x++ {
		for y := 0; y < 7; y++ {
			for _, n := range g.NeighborPositionsAt(x, y) {
				found := false
				for _, back := range g.NeighborPositionsAt(n.X, n.Y) {
					if back.X == x && back.Y == y {
						found = true
					}
				}
				if !found {
					t.Fatalf("(%d,%d) lists %v but not the other way round", x, y, n)
				}
			}
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	for _, topo := range []Topology{Square{}, Hex{}} {
		g, _ := newTestGrid(t, topo, 10, 10)
		g.Pan(-37, 12)
		g.SetScale(1.3)
		for x := 0; x < 10; x++ {
			for y := 0; y < 10; y++ {
				px, py := g.CellCenter(x, y)
				c, ok := g.CellAtPx(px, py)
				if !ok || c.X != x || c.Y != y {
					t.Fatalf("%s: centre of (%d,%d) resolved to %v %v", topo.Name(), x, y, c, ok)
				}
			}
		}
		if _, ok := g.CellAtPx(-500, -500); ok {
			t.Fatalf("%s: far-away pixel resolved to a cell", topo.Name())
		}
	}
}

func TestPlaceAndOverwrite(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	a, b := newToken(), newToken()
	if err := g.Place(a, 1, 1); err != nil {
		t.Fatal(err)
	}
	if x, y := a.Pos(); x != 1 || y != 1 || a.Grid() != g || a.State() != Placed {
		t.Fatalf("placement not recorded: (%d,%d) state %v", x, y, a.State())
	}
	if err := g.Place(b, 1, 1); err != nil {
		t.Fatal(err)
	}
	if g.CellAt(1, 1).Item() != Item(b) {
		t.Fatalf("cell does not hold the new item")
	}
	if a.State() != Detached || a.Grid() != nil {
		t.Fatalf("displaced item still bound: %v", a.State())
	}
	if a.destroyed != 0 {
		t.Fatalf("overwrite fired OnDestroy")
	}
}

func TestPlaceMovesItem(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	a := newToken()
	_ = g.Place(a, 0, 0)
	_ = g.Place(a, 3, 2)
	if !g.CellAt(0, 0).Empty() {
		t.Fatalf("old cell still holds the item")
	}
	if g.CellAt(3, 2).Item() != Item(a) {
		t.Fatalf("new cell does not hold the item")
	}
}

func TestRemoveDetaches(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	a := newToken()
	if a.State() != Constructed {
		t.Fatalf("new item state = %v", a.State())
	}
	_ = g.Place(a, 2, 1)
	if got := g.Remove(2, 1); got != Item(a) {
		t.Fatalf("Remove returned %v", got)
	}
	if a.State() != Detached || a.Grid() != nil || a.destroyed != 0 {
		t.Fatalf("state = %v grid = %v destroyed = %d", a.State(), a.Grid(), a.destroyed)
	}
	if g.Remove(2, 1) != nil {
		t.Fatalf("second Remove returned an item")
	}

	// a detached item can go back on the grid
	if err := g.Place(a, 0, 3); err != nil {
		t.Fatal(err)
	}
	if a.State() != Placed || g.CellAt(0, 3).Item() != Item(a) {
		t.Fatalf("re-placement failed: %v", a.State())
	}
}

func TestLevelOnlyGrows(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	a := newToken()
	if a.Level() != 0 {
		t.Fatalf("level = %d, want 0", a.Level())
	}
	a.LevelUp()
	_ = g.Place(a, 1, 1)
	a.LevelUp()
	g.Remove(1, 1)
	_ = g.Place(a, 2, 2)
	if a.Level() != 2 {
		t.Fatalf("level = %d, want 2", a.Level())
	}
}

func TestPlaceErrors(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	if err := g.Place(newToken(), 4, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	p := newToken()
	p.Destroy()
	if err := g.Place(p, 0, 0); !errors.Is(err, ErrItemDestroyed) {
		t.Fatalf("err = %v, want ErrItemDestroyed", err)
	}
}

func TestDestroyDetachesOnce(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	var destroyedEvents int
	g.events.Subscribe(event.ItemDestroyed, event.ListenerFunc(func(event.Event) { destroyedEvents++ }))

	p := newToken()
	_ = g.Place(p, 2, 2)
	p.Destroy()
	p.Destroy()

	if !g.CellAt(2, 2).Empty() {
		t.Fatalf("cell still holds destroyed item")
	}
	if p.destroyed != 1 || destroyedEvents != 1 {
		t.Fatalf("OnDestroy ran %d times, %d events", p.destroyed, destroyedEvents)
	}
	g.Update()
	if p.updates != 0 {
		t.Fatalf("destroyed item was updated")
	}
}

func TestDestroyLeavesNewOccupant(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 4, 4)
	old, replacement := newToken(), newToken()
	_ = g.Place(old, 1, 0)
	_ = g.Place(replacement, 1, 0)
	old.Destroy()
	if g.CellAt(1, 0).Item() != Item(replacement) {
		t.Fatalf("destroying a displaced item cleared its old cell")
	}
}

func TestMissingRequiredMethodPanics(t *testing.T) {
	type bare struct{ BaseItem }
	item := NewItem("bare", &bare{})
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNotImplemented) {
			t.Fatalf("recovered %v, want ErrNotImplemented", r)
		}
	}()
	_ = item.Info()
}

func TestUpdateVisitsEachItemOnce(t *testing.T) {
	g, _ := newTestGrid(t, Hex{}, 5, 5)
	var tokens []*token
	for _, p := range []Pos{{0, 0}, {2, 3}, {4, 4}} {
		pr := newToken()
		_ = g.Place(pr, p.X, p.Y)
		tokens = append(tokens, pr)
	}
	g.Update()
	for _, pr := range tokens {
		if pr.updates != 1 {
			t.Fatalf("token updated %d times", pr.updates)
		}
	}
}

func TestSpawnLaterInScanIsUpdatedSamePass(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 3, 3)
	var spawned *token
	parent := newToken()
	parent.onUpdate = func(p *token, ns []Neighbor) {
		if spawned == nil {
			spawned = newToken()
			// (1,0) comes after (0,0) in column-major order.
			_ = g.Place(spawned, 1, 0)
		}
	}
	_ = g.Place(parent, 0, 0)
	g.Update()
	if spawned == nil || spawned.updates != 1 {
		t.Fatalf("spawned item should be updated in the same pass")
	}

	var early *token
	late := newToken()
	late.onUpdate = func(p *token, ns []Neighbor) {
		if early == nil {
			early = newToken()
			_ = g.Place(early, 0, 2)
		}
	}
	_ = g.Place(late, 2, 2)
	g.Update()
	if early.updates != 0 {
		t.Fatalf("item spawned behind the scan was updated in the same pass")
	}
}

type blocked struct{ Plain }

func (blocked) CanPlace(Item) bool { return false }

type growing struct {
	Plain
	ticks *int
}

func (g growing) UpdateCell(c *Cell, ns []Neighbor) { *g.ticks++ }

func TestTerrain(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 3, 3)
	if err := g.SetTerrainAt(1, 1, blocked{}); err != nil {
		t.Fatal(err)
	}
	if g.CellAt(1, 1).CanPlace(newToken()) {
		t.Fatalf("blocked terrain accepted an item")
	}
	if !g.CellAt(0, 0).CanPlace(newToken()) {
		t.Fatalf("plain terrain refused an item")
	}
	ticks := 0
	_ = g.SetTerrainAt(2, 2, growing{ticks: &ticks})
	g.Update()
	g.Update()
	if ticks != 2 {
		t.Fatalf("terrain hook ran %d times", ticks)
	}
	if err := g.SetTerrainAt(3, 0, Plain{}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
}

func TestRenderRedrawsOnlyDirtyCells(t *testing.T) {
	g, backend := newTestGrid(t, Hex{}, 10, 10)
	screen := render.NewRecorder(1200, 900)

	g.Render(screen)
	canvas := backend.Last()
	if got := canvas.Count("hexagon"); got != 100 {
		t.Fatalf("first render drew %d cells, want 100", got)
	}
	if screen.Count("canvas") != 1 {
		t.Fatalf("grid canvas not blitted")
	}

	canvas.Reset()
	g.Render(screen)
	if got := canvas.Count("hexagon"); got != 0 {
		t.Fatalf("idle render drew %d cells", got)
	}

	p := newToken()
	_ = g.Place(p, 3, 3)
	canvas.Reset()
	g.Render(screen)
	if got := canvas.Count("hexagon"); got != 1 {
		t.Fatalf("placing one item redrew %d cells", got)
	}

	// The image key changing is enough to trigger a redraw.
	p.image = "token-sparse"
	canvas.Reset()
	g.Render(screen)
	if got := canvas.Count("hexagon"); got != 1 {
		t.Fatalf("image change redrew %d cells", got)
	}

	g.Pan(5, 0)
	canvas.Reset()
	g.Render(screen)
	if got := canvas.Count("hexagon"); got != 100 {
		t.Fatalf("pan redrew %d cells, want all", got)
	}
	if screen.Count("canvas") != 5 {
		t.Fatalf("expected one blit per render, got %d", screen.Count("canvas"))
	}
}

func TestZoomResizesCanvasAndClamps(t *testing.T) {
	g, backend := newTestGrid(t, Square{}, 10, 10)
	screen := render.NewRecorder(1200, 900)
	g.Render(screen)
	if w, h := backend.Last().Size(); w != 800 || h != 800 {
		t.Fatalf("canvas %dx%d, want 800x800", w, h)
	}
	g.SetScale(100)
	if g.Scale() != 4 {
		t.Fatalf("scale = %v, want clamp to 4", g.Scale())
	}
	g.SetScale(0.5)
	g.Render(screen)
	if len(backend.Canvases) != 2 {
		t.Fatalf("zoom should allocate a new canvas")
	}
	if w, _ := backend.Last().Size(); w != 400 {
		t.Fatalf("canvas width %d, want 400", w)
	}
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	g, _ := newTestGrid(t, Square{}, 10, 10)
	px, py := g.CellCenter(7, 2)
	g.ZoomAt(1.5, px, py)
	c, ok := g.CellAtPx(px, py)
	if !ok || c.X != 7 || c.Y != 2 {
		t.Fatalf("cell under cursor changed to %v", c)
	}
}
