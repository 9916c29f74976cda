package farm

import (
	"time"

	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/grid"
)

const (
	// WaterSource marks items that make nearby wolves sick.
	WaterSource grid.Capability = "water-source"
	// Crop marks items pigs spread onto.
	Crop grid.Capability = "crop"
)

const (
	wheatBushels     = 3
	pigSpreadP       = 0.01
	wolfSpawnP       = 0.005
	wolfSicknessP    = 0.05
	sickWolfLifetime = 5 * time.Second
)

type destroyer interface{ Destroy() }

// Wheat gives money when clicked until its bushels run out.
type Wheat struct {
	grid.BaseItem
	farm     *Farm
	Quantity int
}

func (w *Wheat) Init() {
	w.Quantity = wheatBushels
	w.Tag(Crop)
}

func (w *Wheat) Cost() economy.Cost { return economy.Cost{"water": 20, "nitrogen": 5} }

func (w *Wheat) Info() string {
	switch {
	case w.Quantity < 2:
		return "This wheat is almost gone!"
	case w.Quantity < 3:
		return "This wheat is running low"
	default:
		return "This is some nice wheat"
	}
}

func (w *Wheat) Image() string {
	if w.Quantity < wheatBushels {
		return "sparse_wheat"
	}
	return "wheat"
}

func (w *Wheat) OnClick() {
	w.Quantity--
	w.farm.earn("money", w.farm.CashPerCrop)
	if w.Quantity <= 0 {
		w.Destroy()
		w.farm.game.ShowMessage("You lost some wheat!")
	}
}

func (w *Wheat) OnPlace() { w.farm.Wheats++ }

func (w *Wheat) OnDestroy() { w.farm.Wheats-- }

// Pig spreads onto neighbouring crops and sometimes turns into a wolf.
type Pig struct {
	grid.BaseItem
	farm *Farm
}

func (p *Pig) Cost() economy.Cost { return economy.Cost{"money": 5} }

func (p *Pig) Info() string { return "piggy" }

func (p *Pig) Image() string { return "pig" }

func (p *Pig) OnClick() {}

func (p *Pig) Update(neighbors []grid.Neighbor) {
	g := p.Grid()
	rng := p.farm.game.Rng
	for _, n := range neighbors {
		if n.Item == nil || !n.Item.Has(Crop) {
			continue
		}
		if rng.Chance(pigSpreadP) {
			if d, ok := n.Item.(destroyer); ok {
				d.Destroy()
			}
			p.farm.place(g, p.farm.newPig(), n.X, n.Y)
		}
	}

	if rng.Chance(wolfSpawnP) {
		x, y := p.Pos()
		p.Destroy()
		p.farm.place(g, p.farm.newWolf(), x, y)
	}
}

// Wolf is free and cannot be bought. Next to a water source it may fall
// sick and die a few seconds later.
type Wolf struct {
	grid.BaseItem
	farm *Farm
	Sick bool
}

func (w *Wolf) Cost() economy.Cost { return economy.Cost{} }

func (w *Wolf) Info() string {
	if w.Sick {
		return "not feeling well :("
	}
	return "grrrr...."
}

func (w *Wolf) Image() string {
	if w.Sick {
		return "sick_wolf"
	}
	return "wolf"
}

func (w *Wolf) OnClick() {}

func (w *Wolf) Update(neighbors []grid.Neighbor) {
	if w.Sick {
		return
	}
	for _, n := range neighbors {
		if n.Item == nil || !n.Item.Has(WaterSource) {
			continue
		}
		if w.farm.game.Rng.Chance(wolfSicknessP) {
			w.Sick = true
			w.farm.game.Timers.Schedule(w.Destroy, sickWolfLifetime)
			return
		}
	}
}

// Aqueduct produces water through the farm's water harvester.
type Aqueduct struct {
	grid.BaseItem
	farm *Farm
}

func (a *Aqueduct) Init() { a.Tag(WaterSource) }

func (a *Aqueduct) Cost() economy.Cost { return economy.Cost{"money": 25} }

func (a *Aqueduct) Info() string { return "Cool aqueduct" }

func (a *Aqueduct) Image() string { return "aqueduct" }

func (a *Aqueduct) OnClick() {}

func (a *Aqueduct) OnPlace() { a.farm.Aqueducts++ }

func (a *Aqueduct) OnDestroy() { a.farm.Aqueducts-- }
