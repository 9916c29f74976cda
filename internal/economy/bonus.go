package economy

import (
	"fmt"

	"go-tile-sandbox/internal/event"
)

// Bonus is a one-time purchase that runs Effect when bought.
type Bonus struct {
	Name        string
	Description string
	Price       Cost
	Effect      func()
}

func (b *Bonus) Cost() Cost { return b.Price }

// Action is a repeatable purchase.
type Action struct {
	Name   string
	Price  Cost
	Effect func()
}

func (a *Action) Cost() Cost { return a.Price }

// BuyBonus charges for b, records it as owned, then applies its effect.
// A bonus already owned is refused with ErrAlreadyPurchased.
func (e *Economy) BuyBonus(b *Bonus) error {
	if e.HasBonus(b.Name) {
		return fmt.Errorf("%w: %q", ErrAlreadyPurchased, b.Name)
	}
	if err := e.Buy(b.Price); err != nil {
		return fmt.Errorf("bonus %q: %w", b.Name, err)
	}
	e.bonuses[b.Name] = struct{}{}
	e.bonusOrder = append(e.bonusOrder, b.Name)
	if b.Effect != nil {
		b.Effect()
	}
	e.log.Info("bonus purchased", "bonus", b.Name)
	e.events.Dispatch(event.Event{
		Type: event.BonusPurchased,
		Data: event.BonusInfo{Name: b.Name, Description: b.Description},
	})
	return nil
}

// HasBonus reports whether the bonus called name was bought.
func (e *Economy) HasBonus(name string) bool {
	_, ok := e.bonuses[name]
	return ok
}

// Bonuses lists owned bonuses in purchase order.
func (e *Economy) Bonuses() []string {
	return append([]string(nil), e.bonusOrder...)
}

// Perform charges for a and runs its effect.
func (e *Economy) Perform(a *Action) error {
	if err := e.Buy(a.Price); err != nil {
		return fmt.Errorf("action %q: %w", a.Name, err)
	}
	if a.Effect != nil {
		a.Effect()
	}
	e.events.Dispatch(event.Event{Type: event.ActionPerformed, Data: event.ActionInfo{Name: a.Name}})
	return nil
}
