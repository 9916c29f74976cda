// internal/state/pause_state.go
package state

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

var PauseShade = color.RGBA{0, 0, 0, 128}

// PauseState freezes the game: timers stop and the grid is not updated, but
// hover, pan, zoom and clicks still reach it and the frozen scene is drawn
// under a shade.
type PauseState struct {
	stateMachine *StateMachine
	previous     *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{stateMachine: sm, previous: prev}
}

func (s *PauseState) Enter() {
	s.previous.game.Pause()
	s.previous.pauseButton.SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	prev := s.previous
	dt := time.Duration(deltaTime * float64(time.Second))
	prev.pauseButton.Tick(dt)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.stateMachine.SetState(prev)
		return
	}

	in := prev.mouse.poll()
	if in.Clicked && prev.pauseButton.IsClicked(in.MouseX, in.MouseY) {
		s.stateMachine.SetState(prev)
		return
	}
	// Сетка стоит, ввод продолжает работать
	prev.game.Step(dt, in)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previous.Draw(screen)

	surface := s.previous.surface
	w, h := surface.Size()
	surface.FillRect(0, 0, float64(w), float64(h), PauseShade)

	const pauseText = "PAUSED"
	tw, th := surface.MeasureText(pauseText)
	surface.DrawText(pauseText, (float64(w)-tw)/2, (float64(h)-th)/2, color.White)
}

func (s *PauseState) Exit() {
	s.previous.game.Resume()
	s.previous.pauseButton.SetPaused(false)
}
