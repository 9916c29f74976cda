// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"go-tile-sandbox/pkg/render"
)

// PauseButton - кнопка паузы в правом нижнем углу.
type PauseButton struct {
	X, Y       float64
	Size       float64
	IsPaused   bool
	PauseColor color.RGBA
	PlayColor  color.RGBA

	// sinceToggle растет с каждым кадром; пульсация после клика.
	sinceToggle time.Duration
}

func NewPauseButton(x, y, size float64, pauseColor, playColor color.RGBA) *PauseButton {
	return &PauseButton{
		X:           x,
		Y:           y,
		Size:        size,
		PauseColor:  pauseColor,
		PlayColor:   playColor,
		sinceToggle: time.Hour,
	}
}

// Tick advances the click pulse animation.
func (b *PauseButton) Tick(dt time.Duration) { b.sinceToggle += dt }

func (b *PauseButton) Draw(s render.Surface) {
	scale := 1.0 + 0.3*math.Exp(-b.sinceToggle.Seconds()*8)
	size := b.Size * scale

	if b.IsPaused {
		// play: одна широкая полоса
		s.FillRect(b.X-size/2, b.Y-size, size, 2*size, b.PlayColor)
		return
	}
	// Два прямоугольника (pause)
	width := size * 0.6
	height := size * 2.0
	spacing := size * 0.4
	s.FillRect(b.X-width-spacing/2, b.Y-height/2, width, height, b.PauseColor)
	s.FillRect(b.X+spacing/2, b.Y-height/2, width, height, b.PauseColor)
}

func (b *PauseButton) IsClicked(px, py float64) bool {
	return math.Hypot(px-b.X, py-b.Y) <= b.Size
}

func (b *PauseButton) SetPaused(paused bool) {
	if paused != b.IsPaused {
		b.sinceToggle = 0
	}
	b.IsPaused = paused
}
