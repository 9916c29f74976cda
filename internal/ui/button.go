// internal/ui/button.go
package ui

import (
	"image/color"

	"go-tile-sandbox/pkg/render"
)

// DisabledText is the label color of a button that cannot be pressed.
var DisabledText = color.RGBA{70, 70, 70, 255}

// Rect is a screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       Rect
	Text       string
	TextColor  color.RGBA
	BgColor    color.RGBA
	HoverColor color.RGBA
	Disabled   bool
}

// NewButton создает новую кнопку.
func NewButton(rect Rect, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  color.RGBA{0, 0, 0, 255},
		BgColor:    color.RGBA{200, 200, 200, 255},
		HoverColor: color.RGBA{130, 130, 130, 255},
	}
}

// IsClicked проверяет, попадает ли точка в кнопку. Отключенная кнопка
// клики не принимает.
func (b *Button) IsClicked(px, py float64) bool {
	return !b.Disabled && b.Rect.Contains(px, py)
}

// Draw отрисовывает кнопку. hovered подсвечивает фон.
func (b *Button) Draw(s render.Surface, hovered bool) {
	bg, fg := b.BgColor, b.TextColor
	switch {
	case b.Disabled:
		bg, fg = render.DarkenColor(bg), DisabledText
	case hovered:
		bg = b.HoverColor
	}
	s.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, bg)

	tw, th := s.MeasureText(b.Text)
	s.DrawText(b.Text, b.Rect.X+(b.Rect.W-tw)/2, b.Rect.Y+(b.Rect.H-th)/2, fg)
}
