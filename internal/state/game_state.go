// internal/state/game_state.go
package state

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-tile-sandbox/internal/app"
	"go-tile-sandbox/internal/ui"
	"go-tile-sandbox/pkg/render"
)

const (
	pauseButtonSize   = 14
	pauseButtonMargin = 40
)

var (
	PauseColor = color.RGBA{255, 255, 255, 230}
	PlayColor  = color.RGBA{255, 220, 90, 230}
)

// GameState — основное состояние: симуляция идёт, ввод уходит в игру.
type GameState struct {
	sm          *StateMachine
	game        *app.Game
	surface     *render.EbitenSurface
	mouse       *mouseTracker
	pauseButton *ui.PauseButton
}

func NewGameState(sm *StateMachine, game *app.Game, surface *render.EbitenSurface) *GameState {
	return &GameState{
		sm:      sm,
		game:    game,
		surface: surface,
		mouse:   newMouseTracker(game.Config().ClickCooldown()),
		pauseButton: ui.NewPauseButton(
			float64(game.Config().Screen.Width-pauseButtonMargin),
			float64(game.Config().Screen.Height-pauseButtonMargin),
			pauseButtonSize, PauseColor, PlayColor),
	}
}

// Game returns the session driven by this state.
func (g *GameState) Game() *app.Game { return g.game }

func (g *GameState) Enter() {
	g.pauseButton.SetPaused(g.game.Paused())
}

func (g *GameState) Update(deltaTime float64) {
	dt := time.Duration(deltaTime * float64(time.Second))
	g.pauseButton.Tick(dt)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if g.game.Menu() != nil {
			g.sm.SetState(NewMenuState(g.sm, g))
			return
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.game.ClearSelection()
	}

	in := g.mouse.poll()
	// Клик по кнопке паузы в игру не передаём
	if in.Clicked && g.pauseButton.IsClicked(in.MouseX, in.MouseY) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}
	g.game.Step(dt, in)
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.surface.Retarget(screen)
	g.game.Draw(g.surface)
	g.pauseButton.Draw(g.surface)
}

func (g *GameState) Exit() {}
