package economy

import (
	"fmt"

	"go-tile-sandbox/internal/event"
)

// Resource is one ledger entry as configured at startup.
type Resource struct {
	Name   string
	Amount float64
}

// Ledger holds resource quantities. The set of names is fixed when the ledger
// is created; amounts are free to go negative through Add (harvesters can
// drain), only purchases refuse to.
type Ledger struct {
	names  []string
	values map[string]float64
	events *event.Dispatcher
}

// NewLedger creates a ledger in the given resource order. Duplicate names
// are a configuration error.
func NewLedger(resources []Resource, events *event.Dispatcher) (*Ledger, error) {
	l := &Ledger{
		names:  make([]string, 0, len(resources)),
		values: make(map[string]float64, len(resources)),
		events: events,
	}
	for _, r := range resources {
		if _, dup := l.values[r.Name]; dup {
			return nil, fmt.Errorf("resource %q declared twice", r.Name)
		}
		l.names = append(l.names, r.Name)
		l.values[r.Name] = r.Amount
	}
	return l, nil
}

// Names returns resource names in configured order.
func (l *Ledger) Names() []string {
	return append([]string(nil), l.names...)
}

// Has reports whether name is a known resource.
func (l *Ledger) Has(name string) bool {
	_, ok := l.values[name]
	return ok
}

// Get returns the amount of name.
func (l *Ledger) Get(name string) (float64, bool) {
	v, ok := l.values[name]
	return v, ok
}

// Amount returns the amount of name, or 0 for an unknown resource.
func (l *Ledger) Amount(name string) float64 {
	return l.values[name]
}

// Add changes name by delta.
func (l *Ledger) Add(name string, delta float64) error {
	v, ok := l.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	return l.Set(name, v+delta)
}

// Set overwrites the amount of name.
func (l *Ledger) Set(name string, amount float64) error {
	before, ok := l.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	l.values[name] = amount
	if before != amount {
		l.events.Dispatch(event.Event{
			Type: event.ResourceChanged,
			Data: event.ResourceChange{Name: name, Before: before, After: amount},
		})
	}
	return nil
}

// Snapshot copies the current amounts.
func (l *Ledger) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}
