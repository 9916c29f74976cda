package grid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/event"
)

var (
	// ErrNotImplemented is the panic value for a required item method that
	// the content type forgot to define.
	ErrNotImplemented = errors.New("not implemented")
	ErrItemDestroyed  = errors.New("item already destroyed")
	ErrOutOfBounds    = errors.New("cell out of bounds")
)

// Capability tags an item with a role other items can ask about without
// knowing its concrete type.
type Capability string

// Item is a placeable entity. Content types embed BaseItem and
// override what they need. Cost, Info, Image and OnClick must be overridden;
// the rest default to doing nothing.
type Item interface {
	economy.Coster
	Kind() string
	Info() string
	Image() string
	OnClick()
	OnPlace()
	OnDestroy()
	Update(neighbors []Neighbor)
	Has(c Capability) bool
	base() *BaseItem
}

// Lifecycle — стадия жизни предмета
type Lifecycle int

const (
	Constructed Lifecycle = iota
	Placed
	// Detached items were placed and then taken off the grid without being
	// destroyed. They may be placed again.
	Detached
	Destroyed
)

// BaseItem carries the bookkeeping every item shares.
type BaseItem struct {
	id    uuid.UUID
	kind  string
	self  Item
	grid  *Grid
	x, y  int
	level int
	state Lifecycle
	caps  map[Capability]struct{}
}

// Initializer is implemented by items with setup to run once after
// construction.
type Initializer interface {
	Init()
}

// NewItem finishes constructing item: assigns an id and kind and runs
// Init if the type has one.
func NewItem[T Item](kind string, item T) T {
	item.base().bind(item, kind)
	if in, ok := any(item).(Initializer); ok {
		in.Init()
	}
	return item
}

func (b *BaseItem) bind(self Item, kind string) {
	if b.self != nil {
		return
	}
	b.self = self
	b.kind = kind
	b.id = uuid.New()
}

func (b *BaseItem) base() *BaseItem { return b }

func (b *BaseItem) ID() uuid.UUID { return b.id }

func (b *BaseItem) Kind() string {
	if b.kind == "" {
		return "item"
	}
	return b.kind
}

// Pos returns the last cell the item was placed on.
func (b *BaseItem) Pos() (x, y int) { return b.x, b.y }

// Grid returns the hosting grid, nil when not placed.
func (b *BaseItem) Grid() *Grid { return b.grid }

func (b *BaseItem) Level() int { return b.level }

// LevelUp raises the level by one. Levels never go down.
func (b *BaseItem) LevelUp() { b.level++ }

func (b *BaseItem) State() Lifecycle { return b.state }

// Tag adds capabilities.
func (b *BaseItem) Tag(caps ...Capability) {
	if b.caps == nil {
		b.caps = make(map[Capability]struct{}, len(caps))
	}
	for _, c := range caps {
		b.caps[c] = struct{}{}
	}
}

func (b *BaseItem) Has(c Capability) bool {
	_, ok := b.caps[c]
	return ok
}

func (b *BaseItem) Cost() economy.Cost { panic(b.missing("Cost")) }

func (b *BaseItem) Info() string { panic(b.missing("Info")) }

func (b *BaseItem) Image() string { panic(b.missing("Image")) }

func (b *BaseItem) OnClick() { panic(b.missing("OnClick")) }

func (b *BaseItem) OnPlace() {}

func (b *BaseItem) OnDestroy() {}

func (b *BaseItem) Update(neighbors []Neighbor) {}

func (b *BaseItem) missing(method string) error {
	return fmt.Errorf("%w: %s.%s", ErrNotImplemented, b.Kind(), method)
}

// Destroy detaches the item from its cell and runs OnDestroy. Later calls
// do nothing. The cell is only cleared if it still holds this item.
func (b *BaseItem) Destroy() {
	if b.state == Destroyed {
		return
	}
	b.state = Destroyed
	g := b.grid
	if g != nil {
		if c := g.cells[b.x][b.y]; c.item != nil && c.item.base() == b {
			g.Remove(b.x, b.y)
		}
		b.grid = nil
	}
	if b.self != nil {
		b.self.OnDestroy()
	} else {
		b.OnDestroy()
	}
	if g != nil {
		g.events.Dispatch(event.Event{
			Type: event.ItemDestroyed,
			Data: event.ItemInfo{ID: b.id, Kind: b.Kind(), X: b.x, Y: b.y},
		})
	}
}
