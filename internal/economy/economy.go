// Package economy keeps the resource ledger, runs harvesters and performs
// all-or-nothing purchases.
package economy

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/internal/timer"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownResource   = errors.New("unknown resource")
	ErrAlreadyPurchased  = errors.New("bonus already purchased")
)

// Cost maps resource names to amounts.
type Cost map[string]float64

// Coster is anything with a price: item prototypes, bonuses, actions.
type Coster interface {
	Cost() Cost
}

// Harvester periodically adds the result of its yield function to one
// resource.
type Harvester struct {
	Resource string
	Period   time.Duration
	yield    func() float64
	timer    *timer.Timer
}

// Stop cancels the harvester.
func (h *Harvester) Stop() { h.timer.Cancel() }

type Economy struct {
	ledger     *Ledger
	timers     *timer.Service
	events     *event.Dispatcher
	log        *slog.Logger
	bonuses    map[string]struct{}
	bonusOrder []string
	harvesters []*Harvester
}

// New wires an economy to its ledger and timer service.
func New(ledger *Ledger, timers *timer.Service, events *event.Dispatcher, logger *slog.Logger) *Economy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Economy{
		ledger:  ledger,
		timers:  timers,
		events:  events,
		log:     logger,
		bonuses: make(map[string]struct{}),
	}
}

// Ledger returns the underlying ledger.
func (e *Economy) Ledger() *Ledger { return e.ledger }

// CanAfford reports whether every entry of c is covered. An empty cost is
// always affordable; a resource the ledger doesn't know never is.
func (e *Economy) CanAfford(c Cost) bool {
	for name, amount := range c {
		have, ok := e.ledger.Get(name)
		if !ok || have < amount {
			return false
		}
	}
	return true
}

// Buy debits c from the ledger, or returns ErrInsufficientFunds and leaves
// the ledger untouched.
func (e *Economy) Buy(c Cost) error {
	if !e.CanAfford(c) {
		return ErrInsufficientFunds
	}
	for _, name := range e.ledger.names {
		if amount, ok := c[name]; ok && amount != 0 {
			// CanAfford guarantees the name exists.
			_ = e.ledger.Add(name, -amount)
		}
	}
	return nil
}

// DefineHarvester adds yield() to resource every period. Each tick calls
// yield afresh. A panicking yield is logged and skipped for that tick.
func (e *Economy) DefineHarvester(resource string, yield func() float64, period time.Duration) (*Harvester, error) {
	if !e.ledger.Has(resource) {
		return nil, fmt.Errorf("harvester: %w: %q", ErrUnknownResource, resource)
	}
	if period <= 0 {
		return nil, fmt.Errorf("harvester %q: period must be positive, got %v", resource, period)
	}
	h := &Harvester{Resource: resource, Period: period, yield: yield}
	h.timer = e.timers.Every(func() { e.harvest(h) }, period)
	e.harvesters = append(e.harvesters, h)
	return h, nil
}

// Harvesters returns the defined harvesters.
func (e *Economy) Harvesters() []*Harvester {
	return append([]*Harvester(nil), e.harvesters...)
}

func (e *Economy) harvest(h *Harvester) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("harvester failed", "resource", h.Resource, "panic", r)
		}
	}()
	amount := h.yield()
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		e.log.Warn("harvester yielded non-finite amount", "resource", h.Resource, "amount", amount)
		return
	}
	if amount == 0 {
		return
	}
	_ = e.ledger.Add(h.Resource, amount)
}
