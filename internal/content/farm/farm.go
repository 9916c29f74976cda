// Package farm is the example content: wheat that pays when clicked, pigs
// that eat it, wolves that appear among pigs and aqueducts that water the
// fields.
package farm

import (
	"fmt"
	"time"

	"go-tile-sandbox/internal/app"
	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/grid"
	"go-tile-sandbox/internal/ui"
)

const harvestPeriod = 2 * time.Second

// Farm is the content state shared by every farm item.
type Farm struct {
	game *app.Game

	CashPerCrop float64
	Investment  float64
	Aqueducts   int
	Wheats      int

	WheatBP, PigBP, AqueductBP *grid.Blueprint
	Tractor, IRA               *economy.Bonus
	Harvesters                 []*economy.Harvester
}

// Setup installs the farm into g: blueprints, bonuses, harvesters, the shop
// menu and a starting wheat at (0, 0).
func Setup(g *app.Game) (*Farm, error) {
	f := &Farm{game: g, CashPerCrop: 100}

	f.WheatBP = grid.NewBlueprint("wheat", func() grid.Item { return f.newWheat() })
	f.PigBP = grid.NewBlueprint("pig", func() grid.Item { return f.newPig() })
	f.AqueductBP = grid.NewBlueprint("aqueduct", func() grid.Item { return f.newAqueduct() })

	f.Tractor = &economy.Bonus{
		Name:        "Powerful Tractor",
		Description: "A more powerful tractor",
		Price:       economy.Cost{"money": 50},
		Effect:      func() { f.CashPerCrop += 100 },
	}
	f.IRA = &economy.Bonus{
		Name:        "Roth IRA",
		Description: "Make your money work for you",
		Price:       economy.Cost{"money": 100},
		Effect:      func() { f.Investment = 0.1 },
	}

	harvesters := []struct {
		resource string
		yield    func() float64
	}{
		{"water", func() float64 { return 2 * float64(f.Aqueducts) }},
		{"water", func() float64 { return -float64(f.Wheats) }},
		{"money", func() float64 { return g.Econ.Ledger().Amount("money") * f.Investment }},
	}
	for _, h := range harvesters {
		hv, err := g.Econ.DefineHarvester(h.resource, h.yield, harvestPeriod)
		if err != nil {
			return nil, fmt.Errorf("farm: %w", err)
		}
		f.Harvesters = append(f.Harvesters, hv)
	}

	if err := g.Grid.Place(f.newWheat(), 0, 0); err != nil {
		return nil, fmt.Errorf("farm: starting wheat: %w", err)
	}
	f.Wheats++

	g.SetMenu(ui.NewMenu("Farm Mall", g.Econ.Ledger().Names(), g.Config().Glyphs(),
		ui.Entry{Label: "Buy wheat", Target: f.WheatBP},
		ui.Entry{Label: "Buy pig", Target: f.PigBP},
		ui.Entry{Label: "Buy aqueduct", Target: f.AqueductBP},
		ui.Entry{Label: "Upgrade tractor", Target: f.Tractor},
		ui.Entry{Label: "Open Roth IRA", Target: f.IRA},
	))

	g.Logger().Info("farm ready", "harvesters", len(f.Harvesters))
	return f, nil
}

func (f *Farm) newWheat() *Wheat { return grid.NewItem("wheat", &Wheat{farm: f}) }

func (f *Farm) newPig() *Pig { return grid.NewItem("pig", &Pig{farm: f}) }

func (f *Farm) newWolf() *Wolf { return grid.NewItem("wolf", &Wolf{farm: f}) }

func (f *Farm) newAqueduct() *Aqueduct { return grid.NewItem("aqueduct", &Aqueduct{farm: f}) }

func (f *Farm) earn(resource string, amount float64) {
	if err := f.game.Econ.Ledger().Add(resource, amount); err != nil {
		f.game.Logger().Warn("farm: earn", "resource", resource, "err", err)
	}
}

func (f *Farm) place(g *grid.Grid, item grid.Item, x, y int) {
	if g == nil {
		return
	}
	if err := g.Place(item, x, y); err != nil {
		f.game.Logger().Warn("farm: place", "kind", item.Kind(), "err", err)
	}
}
