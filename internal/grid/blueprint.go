package grid

import "go-tile-sandbox/internal/economy"

// Blueprint is a purchasable item type. The prototype answers cost, image
// and info questions before anything is built; New builds the real thing.
type Blueprint struct {
	Name  string
	New   func() Item
	proto Item
}

// NewBlueprint wraps a constructor.
func NewBlueprint(name string, build func() Item) *Blueprint {
	return &Blueprint{Name: name, New: build}
}

// Prototype returns a never-placed instance used for previews.
func (b *Blueprint) Prototype() Item {
	if b.proto == nil {
		b.proto = b.New()
	}
	return b.proto
}

func (b *Blueprint) Cost() economy.Cost { return b.Prototype().Cost() }

func (b *Blueprint) Image() string { return b.Prototype().Image() }

func (b *Blueprint) Info() string { return b.Prototype().Info() }
