// internal/event/types.go
package event

import "github.com/google/uuid"

const (
	ResourceChanged   EventType = "ResourceChanged"   // ресурс изменился
	BonusPurchased    EventType = "BonusPurchased"    // бонус куплен
	ActionPerformed   EventType = "ActionPerformed"
	PurchaseFailed    EventType = "PurchaseFailed"    // не хватает ресурсов
	ItemPlaced        EventType = "ItemPlaced"        // предмет поставлен
	ItemDestroyed     EventType = "ItemDestroyed"     // предмет уничтожен
	PlacementRejected EventType = "PlacementRejected" // клетка не принимает предмет
	SelectionChanged  EventType = "SelectionChanged"
	MessagePosted     EventType = "MessagePosted"
	TooltipChanged    EventType = "TooltipChanged"
	GamePaused        EventType = "GamePaused"
	GameResumed       EventType = "GameResumed"
)

type ResourceChange struct {
	Name   string
	Before float64
	After  float64
}

type BonusInfo struct {
	Name        string
	Description string
}

type ActionInfo struct {
	Name string
}

type PurchaseFailure struct {
	Name string
	Cost map[string]float64
}

type ItemInfo struct {
	ID   uuid.UUID
	Kind string
	X, Y int
}

type Placement struct {
	Kind string
	X, Y int
}

type Selection struct {
	Kind string // empty when the selection was cleared
}

type Message struct {
	Text string
}

type Tooltip struct {
	Text string // empty hides the tooltip
	X, Y float64
}
