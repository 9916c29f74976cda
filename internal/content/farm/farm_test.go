package farm

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"go-tile-sandbox/internal/app"
	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/grid"
	"go-tile-sandbox/pkg/render"
)

func newFarm(t *testing.T, seed int64) (*Farm, *app.Game, *render.Recorder) {
	t.Helper()
	g, err := app.New(config.Default(), &render.RecorderBackend{}, nil,
		app.WithSeed(seed),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	f, err := Setup(g)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return f, g, render.NewRecorder(1200, 900)
}

func amount(g *app.Game, name string) float64 { return g.Econ.Ledger().Amount(name) }

func TestSetup(t *testing.T) {
	f, g, _ := newFarm(t, 1)
	if _, ok := g.Grid.CellAt(0, 0).Item().(*Wheat); !ok {
		t.Fatalf("no starting wheat at (0,0)")
	}
	if f.Wheats != 1 || f.Aqueducts != 0 || f.CashPerCrop != 100 {
		t.Fatalf("state = %+v", f)
	}
	if len(f.Harvesters) != 3 {
		t.Fatalf("harvesters = %d", len(f.Harvesters))
	}
	if g.Menu() == nil || g.Menu().Title != "Farm Mall" || len(g.Menu().Entries) != 5 {
		t.Fatalf("menu = %+v", g.Menu())
	}
}

func TestWaterHarvestNetsOnePerAqueductAndWheat(t *testing.T) {
	f, g, screen := newFarm(t, 1)
	if err := g.Econ.Ledger().Set("money", 25); err != nil {
		t.Fatal(err)
	}
	if err := g.TryBuy(f.AqueductBP); err != nil {
		t.Fatal(err)
	}
	px, py := g.Grid.CellCenter(3, 3)
	if err := g.ClickAt(px, py); err != nil {
		t.Fatalf("ClickAt: %v", err)
	}
	if f.Aqueducts != 1 || amount(g, "money") != 0 {
		t.Fatalf("aqueducts=%d money=%v", f.Aqueducts, amount(g, "money"))
	}

	g.Frame(2*time.Second, app.Input{}, screen)
	if w := amount(g, "water"); w != 101 {
		t.Fatalf("water = %v, want 101 (+2 -1)", w)
	}
	g.Frame(2*time.Second, app.Input{}, screen)
	if w := amount(g, "water"); w != 102 {
		t.Fatalf("water = %v, want 102", w)
	}
}

func TestWheatClicks(t *testing.T) {
	f, g, _ := newFarm(t, 1)
	w := g.Grid.CellAt(0, 0).Item().(*Wheat)
	px, py := g.Grid.CellCenter(0, 0)

	wantInfo := []string{"This wheat is running low", "This wheat is almost gone!"}
	for i, info := range wantInfo {
		if err := g.ClickAt(px, py); err != nil {
			t.Fatal(err)
		}
		if w.Info() != info || w.Image() != "sparse_wheat" {
			t.Fatalf("after %d clicks: info=%q image=%q", i+1, w.Info(), w.Image())
		}
	}
	if err := g.ClickAt(px, py); err != nil {
		t.Fatal(err)
	}
	if amount(g, "money") != 300 {
		t.Fatalf("money = %v, want 300", amount(g, "money"))
	}
	if !g.Grid.CellAt(0, 0).Empty() || w.State() != grid.Destroyed || f.Wheats != 0 {
		t.Fatalf("wheat should be gone: wheats=%d", f.Wheats)
	}
	if msgs := g.Overlay().Messages(); len(msgs) != 1 || msgs[0] != "You lost some wheat!" {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestBonuses(t *testing.T) {
	f, g, screen := newFarm(t, 1)
	if err := g.Econ.Ledger().Set("money", 150); err != nil {
		t.Fatal(err)
	}
	if err := g.TryBuy(f.Tractor); err != nil {
		t.Fatalf("tractor: %v", err)
	}
	if f.CashPerCrop != 200 {
		t.Fatalf("cash per crop = %v", f.CashPerCrop)
	}
	if err := g.TryBuy(f.Tractor); err == nil {
		t.Fatalf("tractor bought twice")
	}
	if err := g.TryBuy(f.IRA); err != nil {
		t.Fatalf("IRA: %v", err)
	}
	if amount(g, "money") != 0 || f.Investment != 0.1 {
		t.Fatalf("money=%v investment=%v", amount(g, "money"), f.Investment)
	}

	if err := g.Econ.Ledger().Set("money", 1000); err != nil {
		t.Fatal(err)
	}
	g.Frame(2*time.Second, app.Input{}, screen)
	if m := amount(g, "money"); m != 1100 {
		t.Fatalf("money = %v, want 1100 after one compounding tick", m)
	}

	g.Menu().Layout(g.Econ, 1200, 900)
	labels, _ := g.Menu().Visible()
	for _, l := range labels {
		if l == "Upgrade tractor" || l == "Open Roth IRA" {
			t.Fatalf("owned bonus %q still offered", l)
		}
	}
}

func TestWolfNearWaterFallsSickAndDies(t *testing.T) {
	f, g, screen := newFarm(t, 7)
	wolf := f.newWolf()
	if err := g.Grid.Place(wolf, 5, 5); err != nil {
		t.Fatal(err)
	}
	n := g.Grid.NeighborPositionsAt(5, 5)[0]
	if err := g.Grid.Place(f.newAqueduct(), n.X, n.Y); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000 && !wolf.Sick; i++ {
		g.Grid.Update()
	}
	if !wolf.Sick || wolf.Image() != "sick_wolf" || wolf.Info() != "not feeling well :(" {
		t.Fatalf("wolf never fell sick")
	}

	g.Frame(4*time.Second, app.Input{}, screen)
	if wolf.State() != grid.Placed {
		t.Fatalf("wolf died too early")
	}
	g.Frame(time.Second, app.Input{}, screen)
	if wolf.State() != grid.Destroyed || !g.Grid.CellAt(5, 5).Empty() {
		t.Fatalf("sick wolf should be gone after 5s")
	}
}

func TestWolfAwayFromWaterStaysHealthy(t *testing.T) {
	f, g, _ := newFarm(t, 3)
	wolf := f.newWolf()
	if err := g.Grid.Place(wolf, 5, 5); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		g.Grid.Update()
	}
	if wolf.Sick {
		t.Fatalf("wolf fell sick without water nearby")
	}
}

// Pigs eat wheat and turn into wolves at random; whatever the seed, the
// counters must match what is on the grid and every item must sit where it
// thinks it does.
func TestCountersMatchGridAfterLongRun(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		f, g, _ := newFarm(t, seed)
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				var it grid.Item = f.newWheat()
				if (x+y)%3 == 0 {
					it = f.newPig()
				}
				if x == 3 && y == 3 {
					it = f.newAqueduct()
				}
				if err := g.Grid.Place(it, x, y); err != nil {
					t.Fatal(err)
				}
				it.OnPlace()
			}
		}
		// the starting wheat at (0,0) was replaced without OnDestroy
		f.Wheats--

		for i := 0; i < 3000; i++ {
			g.Grid.Update()
		}

		wheats, aqueducts := 0, 0
		g.Grid.Each(func(c *grid.Cell) {
			it := c.Item()
			if it == nil {
				return
			}
			type positioned interface{ Pos() (int, int) }
			if x, y := it.(positioned).Pos(); x != c.X || y != c.Y {
				t.Fatalf("seed %d: %s at (%d,%d) thinks it is at (%d,%d)", seed, it.Kind(), c.X, c.Y, x, y)
			}
			switch it.(type) {
			case *Wheat:
				wheats++
			case *Aqueduct:
				aqueducts++
			}
		})
		if wheats != f.Wheats || aqueducts != f.Aqueducts {
			t.Fatalf("seed %d: counters wheat=%d aqueduct=%d, grid wheat=%d aqueduct=%d",
				seed, f.Wheats, f.Aqueducts, wheats, aqueducts)
		}
	}
}
