// internal/app/placement.go
package app

import (
	"errors"
	"fmt"

	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/internal/grid"
)

// ErrIllegalPlacement is returned when the target cell refuses the selected
// item.
var ErrIllegalPlacement = errors.New("illegal placement")

const (
	msgCantPlace  = "This can't be placed here"
	msgCantAfford = "You can't afford this (%s)"
	msgOwned      = "You already have this"
)

// Select makes bp the item placed by the next click on an empty cell.
func (g *Game) Select(bp *grid.Blueprint) {
	g.selected = bp
	g.Events.Dispatch(event.Event{Type: event.SelectionChanged, Data: event.Selection{Kind: bp.Name}})
}

// ClearSelection drops the selected item.
func (g *Game) ClearSelection() {
	if g.selected == nil {
		return
	}
	g.selected = nil
	g.Events.Dispatch(event.Event{Type: event.SelectionChanged, Data: event.Selection{}})
}

// Selected returns the selected blueprint, if any.
func (g *Game) Selected() *grid.Blueprint { return g.selected }

// TryBuy handles a shop entry. Items are only selected here and paid for
// when placed; bonuses and actions are paid for immediately.
func (g *Game) TryBuy(target economy.Coster) error {
	var err error
	switch t := target.(type) {
	case *grid.Blueprint:
		g.Select(t)
		return nil
	case *economy.Bonus:
		err = g.Econ.BuyBonus(t)
	case *economy.Action:
		err = g.Econ.Perform(t)
	default:
		return fmt.Errorf("app: %T cannot be bought", target)
	}
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		g.purchaseFailed(target)
	case errors.Is(err, economy.ErrAlreadyPurchased):
		g.ShowMessage(msgOwned)
	}
	return err
}

func (g *Game) purchaseFailed(target economy.Coster) {
	cost := target.Cost()
	g.ShowMessage(fmt.Sprintf(msgCantAfford, g.FormatCost(cost, "")))
	name := fmt.Sprintf("%T", target)
	switch t := target.(type) {
	case *grid.Blueprint:
		name = t.Name
	case *economy.Bonus:
		name = t.Name
	case *economy.Action:
		name = t.Name
	}
	g.Events.Dispatch(event.Event{Type: event.PurchaseFailed, Data: event.PurchaseFailure{Name: name, Cost: cost}})
}

// FormatCost writes a cost in ledger order with the configured glyphs.
func (g *Game) FormatCost(c economy.Cost, sep string) string {
	return economy.FormatCost(c, g.Econ.Ledger().Names(), g.glyphs, sep)
}

// ClickAt handles a click at screen position (px, py). A click on an item
// goes to the item. A click on an empty cell with a selection buys and places
// a new item there. A click outside the grid clears the selection.
func (g *Game) ClickAt(px, py float64) error {
	cell, ok := g.Grid.CellAtPx(px, py)
	if !ok {
		g.ClearSelection()
		return nil
	}
	if item := cell.Item(); item != nil {
		item.OnClick()
		return nil
	}
	if g.selected == nil {
		return nil
	}
	return g.buildAt(cell, g.selected)
}

func (g *Game) buildAt(cell *grid.Cell, bp *grid.Blueprint) error {
	if !cell.CanPlace(bp.Prototype()) {
		g.ShowMessage(msgCantPlace)
		g.Events.Dispatch(event.Event{
			Type: event.PlacementRejected,
			Data: event.Placement{Kind: bp.Name, X: cell.X, Y: cell.Y},
		})
		return fmt.Errorf("%w: %s at (%d,%d)", ErrIllegalPlacement, bp.Name, cell.X, cell.Y)
	}
	if err := g.Econ.Buy(bp.Cost()); err != nil {
		g.purchaseFailed(bp)
		return err
	}

	item := bp.New()
	if err := g.Grid.Place(item, cell.X, cell.Y); err != nil {
		return err
	}
	item.OnPlace()
	g.log.Debug("item built", "kind", item.Kind(), "x", cell.X, "y", cell.Y)
	return nil
}

// HoverAt updates the tooltip from the item under (px, py).
func (g *Game) HoverAt(px, py float64) {
	g.mouseX, g.mouseY = px, py
	text := ""
	if cell, ok := g.Grid.CellAtPx(px, py); ok && cell.Item() != nil {
		text = cell.Item().Info()
	}
	if text != g.overlay.Tooltip() {
		g.Events.Dispatch(event.Event{Type: event.TooltipChanged, Data: event.Tooltip{Text: text, X: px, Y: py}})
	}
	g.overlay.SetTooltip(text, px, py)
}
