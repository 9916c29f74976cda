// internal/state/menu_state.go
package state

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuState — открытый магазин. Игра на паузе, клики уходят в меню.
type MenuState struct {
	sm       *StateMachine
	previous *GameState
}

func NewMenuState(sm *StateMachine, prev *GameState) *MenuState {
	return &MenuState{sm: sm, previous: prev}
}

func (m *MenuState) Enter() {
	m.previous.game.OpenMenu()
}

func (m *MenuState) Update(deltaTime float64) {
	game := m.previous.game
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyM) {
		game.CloseMenu()
	} else {
		game.Step(time.Duration(deltaTime*float64(time.Second)), m.previous.mouse.poll())
	}
	if !game.MenuOpen() {
		m.sm.SetState(m.previous)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	m.previous.Draw(screen)
}

func (m *MenuState) Exit() {
	m.previous.game.CloseMenu()
}
