// internal/ui/menu.go
package ui

import (
	"fmt"
	"image/color"

	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/pkg/render"
)

const (
	menuWidth      = 320
	menuEntryH     = 40
	menuSpacing    = 10
	menuTitleH     = 50
	menuHintOffset = 6
)

var MenuBg = color.RGBA{240, 235, 210, 240}

// CloseLabel is the label of the entry every menu ends with. Its Target is
// nil.
const CloseLabel = "Close"

// Shop answers the questions the menu asks about the economy.
type Shop interface {
	CanAfford(c economy.Cost) bool
	HasBonus(name string) bool
}

// Entry is one purchasable line. Target is a *grid.Blueprint, an
// *economy.Bonus or an *economy.Action.
type Entry struct {
	Label  string
	Target economy.Coster
}

type entryView struct {
	entry  Entry
	button *Button
	hint   string
}

// Menu is the shop: a titled column of buy buttons.
type Menu struct {
	Title   string
	Entries []Entry

	order  []string
	glyphs map[string]string
	views  []entryView
	panel  Rect
}

// NewMenu creates a menu. order and glyphs control how costs are written.
func NewMenu(title string, order []string, glyphs map[string]string, entries ...Entry) *Menu {
	return &Menu{Title: title, Entries: entries, order: order, glyphs: glyphs}
}

// Add appends an entry.
func (m *Menu) Add(label string, target economy.Coster) {
	m.Entries = append(m.Entries, Entry{Label: label, Target: target})
}

// Layout rebuilds the visible buttons. Owned bonuses are hidden, entries
// the shop cannot pay for are disabled and a Close entry goes last.
func (m *Menu) Layout(shop Shop, screenW, screenH float64) {
	m.views = m.views[:0]
	for _, e := range m.Entries {
		if b, ok := e.Target.(*economy.Bonus); ok && shop.HasBonus(b.Name) {
			continue
		}
		m.views = append(m.views, entryView{entry: e, hint: m.hint(e)})
	}
	m.views = append(m.views, entryView{entry: Entry{Label: CloseLabel}})

	h := menuTitleH + float64(len(m.views))*(menuEntryH+menuSpacing) + menuSpacing
	m.panel = Rect{X: (screenW - menuWidth) / 2, Y: (screenH - h) / 2, W: menuWidth, H: h}

	y := m.panel.Y + menuTitleH
	for i := range m.views {
		v := &m.views[i]
		v.button = NewButton(Rect{X: m.panel.X + menuSpacing, Y: y, W: menuWidth - 2*menuSpacing, H: menuEntryH}, v.entry.Label)
		if v.entry.Target != nil {
			v.button.Disabled = !shop.CanAfford(v.entry.Target.Cost())
		}
		y += menuEntryH + menuSpacing
	}
}

func (m *Menu) hint(e Entry) string {
	cost := economy.FormatCost(e.Target.Cost(), m.order, m.glyphs, "")
	if b, ok := e.Target.(*economy.Bonus); ok && b.Description != "" {
		return fmt.Sprintf("%s (%s)", b.Description, cost)
	}
	return "Costs: " + cost
}

// Visible returns the labels of the laid out entries and whether each one
// can be bought.
func (m *Menu) Visible() (labels []string, enabled []bool) {
	for _, v := range m.views {
		labels = append(labels, v.entry.Label)
		enabled = append(enabled, !v.button.Disabled)
	}
	return labels, enabled
}

// EntryAt returns the enabled entry under the point.
func (m *Menu) EntryAt(px, py float64) (Entry, bool) {
	for _, v := range m.views {
		if v.button.IsClicked(px, py) {
			return v.entry, true
		}
	}
	return Entry{}, false
}

// HintAt returns the cost hint of the entry under the point, enabled or not.
func (m *Menu) HintAt(px, py float64) (string, bool) {
	for _, v := range m.views {
		if v.button.Rect.Contains(px, py) {
			return v.hint, true
		}
	}
	return "", false
}

// Contains reports whether the point is on the menu panel.
func (m *Menu) Contains(px, py float64) bool { return m.panel.Contains(px, py) }

// Render draws the panel with the title and buttons. The hovered entry gets
// its hint drawn under the panel.
func (m *Menu) Render(s render.Surface, mouseX, mouseY float64) {
	s.FillRect(m.panel.X, m.panel.Y, m.panel.W, m.panel.H, MenuBg)
	tw, th := s.MeasureText(m.Title)
	s.DrawText(m.Title, m.panel.X+(m.panel.W-tw)/2, m.panel.Y+(menuTitleH-th)/2, TextColor)

	for _, v := range m.views {
		hovered := v.button.Rect.Contains(mouseX, mouseY)
		v.button.Draw(s, hovered)
		if hovered && v.hint != "" {
			hw, _ := s.MeasureText(v.hint)
			s.DrawText(v.hint, m.panel.X+(m.panel.W-hw)/2, m.panel.Y+m.panel.H+menuHintOffset, TextColor)
		}
	}
}
